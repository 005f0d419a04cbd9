package layout

// Config holds all layout-related configuration values.
type Config struct {
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
	List  ListConfig
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// WidthPercent is the modal width as percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	NameCharLimit    int
	ContentCharLimit int
	SearchCharLimit  int

	StandardWidth int
	ContentWidth  int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// ListConfig holds list rendering configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for list content.
	// Accounts for: header (2) + status line (1) + help bar (2)
	HeightReduction int

	// MinHeight is the minimum list height.
	MinHeight int

	// SearchMaxVisible: max results shown in the search overlay.
	SearchMaxVisible int
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() Config {
	return Config{
		Modal: ModalConfig{
			WidthPercent: 50,
			MinWidth:     40,
			MaxWidth:     80,
		},
		Input: InputConfig{
			NameCharLimit:    100,
			ContentCharLimit: 10000,
			SearchCharLimit:  100,
			StandardWidth:    40,
			ContentWidth:     60,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
		List: ListConfig{
			HeightReduction:  5,
			MinHeight:        3,
			SearchMaxVisible: 8,
		},
	}
}
