// Package clip wraps the system clipboard behind the small interface the
// engine consumes.
package clip

import "github.com/atotto/clipboard"

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// System is the real clipboard.
type System struct{}

// WriteText copies text to the system clipboard.
func (System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}
