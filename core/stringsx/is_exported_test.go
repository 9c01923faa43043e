package stringsx

import "testing"

func TestIsExported(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "Exported name",
			input:    "Square",
			expected: true,
		},
		{
			name:     "Unexported name",
			input:    "square",
			expected: false,
		},
		{
			name:     "Underscore prefix",
			input:    "_Square",
			expected: false,
		},
		{
			name:     "Digit prefix",
			input:    "1Square",
			expected: false,
		},
		{
			name:     "Empty string",
			input:    "",
			expected: false,
		},
		{
			name:     "Unicode upper case",
			input:    "Закрыть",
			expected: true,
		},
		{
			name:     "Unicode lower case",
			input:    "закрыть",
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if result := IsExported(tc.input); result != tc.expected {
				t.Errorf("Failed %s: expected %v, got %v", tc.name, tc.expected, result)
			}
		})
	}
}
