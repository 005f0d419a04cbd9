package layout

import "testing"

func TestModalWidth(t *testing.T) {
	cfg := ModalConfig{WidthPercent: 50, MinWidth: 40, MaxWidth: 80}

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"half of wide terminal", 120, 60},
		{"clamped to max", 200, 80},
		{"clamped to min", 60, 40},
		{"narrow terminal caps at width minus margin", 30, 26},
		{"degenerate terminal", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModalWidth(tt.terminalWidth, cfg); got != tt.want {
				t.Errorf("ModalWidth(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		name        string
		maxVisible  int
		selectedIdx int
		totalItems  int
		wantStart   int
		wantEnd     int
	}{
		{"everything fits", 10, 3, 5, 0, 5},
		{"selection inside first page", 5, 2, 20, 0, 5},
		{"selection scrolled into view", 5, 9, 20, 5, 10},
		{"selection at end", 5, 19, 20, 15, 20},
		{"empty list", 5, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := VisibleWindow(tt.maxVisible, tt.selectedIdx, tt.totalItems)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("VisibleWindow() = (%d, %d), want (%d, %d)",
					start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := TextConfig{Ellipsis: "..."}

	tests := []struct {
		name          string
		text          string
		maxWidth      int
		want          string
		wantTruncated bool
	}{
		{"fits", "short", 10, "short", false},
		{"exact fit", "exactly10!", 10, "exactly10!", false},
		{"truncated", "a much longer name", 10, "a much ...", true},
		{"width smaller than ellipsis", "name", 2, "..", true},
		{"zero width", "name", 0, "", true},
		{"multibyte runes", "Notas Rápidas de Reunião", 12, "NotasRáp...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.wantTruncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.wantTruncated)
			}
		})
	}
}
