package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted folder or prompt name.
const MaxNameLength = 100

var ErrEmptyName = errors.New("name must not be empty")

// ValidateName checks a folder or prompt name after trimming whitespace.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return fmt.Errorf("name too long (max %d characters)", MaxNameLength)
	}
	return nil
}

// UniqueName returns base unchanged if it is not taken, otherwise the
// lowest-numbered "base (n)" variant absent from existing.
func UniqueName(base string, existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, name := range existing {
		taken[name] = true
	}

	if !taken[base] {
		return base
	}

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s (%d)", base, counter)
		if !taken[candidate] {
			return candidate
		}
	}
}
