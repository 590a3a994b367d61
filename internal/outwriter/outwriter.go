// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
)

// GetMaxTableNameWidth calculates the maximum width for player names in table
// output based on terminal width and the number of score columns.
func GetMaxTableNameWidth(cfg *contract.Config, columnCount int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 25 // Rank + Total + Label with borders/padding

	// Each score column takes a formatted numeric cell
	baseWidth += columnCount * 10

	// Calculate available space for the player name
	available := termWidth - baseWidth
	if available < 8 {
		// Minimum reasonable name width
		return 8
	}
	if available > 40 {
		// Maximum name width to prevent overly wide tables
		return 40
	}
	return available
}

// truncateName shortens a display name to maxWidth runes, marking the cut
// with an ellipsis.
func truncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if maxWidth <= 0 || len(runes) <= maxWidth {
		return name
	}
	if maxWidth == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxWidth-1]) + "…"
}
