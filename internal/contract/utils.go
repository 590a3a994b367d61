package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Rank label constants.
const (
	LeaderValue    = "Leader"    // First place, ties included
	ContenderValue = "Contender" // Upper half of the board
	TrailingValue  = "Trailing"  // Lower half of the board
)

// Color variables for console output.
var (
	LeaderColor    = color.New(color.FgGreen, color.Bold) // leaderColor marks the winning row.
	ContenderColor = color.New(color.FgYellow)            // contenderColor marks rows still in reach.
	TrailingColor  = color.New(color.FgCyan)              // trailingColor is informational, not alarming.
)

// GetPlainLabel returns a plain text label for a board position. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(position, playerCount int) string {
	switch {
	case position == 1:
		return LeaderValue
	case playerCount > 0 && position <= (playerCount+1)/2:
		return ContenderValue
	default:
		return TrailingValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(position, playerCount int) string {
	text := GetPlainLabel(position, playerCount)

	switch text {
	case LeaderValue:
		return LeaderColor.Sprint(text)
	case ContenderValue:
		return ContenderColor.Sprint(text)
	default: // "Trailing"
		return TrailingColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the
// template and session store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".scorepad.db"
	}
	return filepath.Join(homeDir, ".scorepad.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
