package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGetPlainLabel tests board position labeling.
func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name        string
		position    int
		playerCount int
		expected    string
	}{
		{
			name:        "first place",
			position:    1,
			playerCount: 4,
			expected:    LeaderValue,
		},
		{
			name:        "upper half",
			position:    2,
			playerCount: 4,
			expected:    ContenderValue,
		},
		{
			name:        "lower half",
			position:    3,
			playerCount: 4,
			expected:    TrailingValue,
		},
		{
			name:        "last place",
			position:    4,
			playerCount: 4,
			expected:    TrailingValue,
		},
		{
			name:        "two player game",
			position:    2,
			playerCount: 2,
			expected:    TrailingValue,
		},
		{
			name:        "solo game",
			position:    1,
			playerCount: 1,
			expected:    LeaderValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.position, tt.playerCount))
		})
	}
}

// TestGetColorLabel ensures the colored label always contains the plain text.
func TestGetColorLabel(t *testing.T) {
	for position := 1; position <= 4; position++ {
		plain := GetPlainLabel(position, 4)
		assert.Contains(t, GetColorLabel(position, 4), plain)
	}
}

// TestParseBoolString tests boolean flag parsing.
func TestParseBoolString(t *testing.T) {
	trueValues := []string{"yes", "YES", "true", "1"}
	for _, v := range trueValues {
		result, err := ParseBoolString(v)
		assert.NoError(t, err)
		assert.True(t, result)
	}

	falseValues := []string{"no", "No", "false", "0"}
	for _, v := range falseValues {
		result, err := ParseBoolString(v)
		assert.NoError(t, err)
		assert.False(t, result)
	}

	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// TestGetStoreDBFilePath ensures a usable path comes back in any environment.
func TestGetStoreDBFilePath(t *testing.T) {
	path := GetStoreDBFilePath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".scorepad.db")
}
