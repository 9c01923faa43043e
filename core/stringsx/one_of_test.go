package stringsx

import "testing"

func TestOneOf(t *testing.T) {
	testCases := []struct {
		name     string
		s        string
		ss       []string
		expected bool
	}{
		{
			name:     "String present in the list",
			s:        "json",
			ss:       []string{"json", "text"},
			expected: true,
		},
		{
			name:     "String absent from the list",
			s:        "xml",
			ss:       []string{"json", "text"},
			expected: false,
		},
		{
			name:     "Empty list",
			s:        "json",
			ss:       []string{},
			expected: false,
		},
		{
			name:     "Empty string present",
			s:        "",
			ss:       []string{"", "text"},
			expected: true,
		},
		{
			name:     "Case sensitivity check",
			s:        "JSON",
			ss:       []string{"json", "text"},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if result := OneOf(tc.s, tc.ss...); result != tc.expected {
				t.Errorf("Failed %s: expected %v, got %v", tc.name, tc.expected, result)
			}
		})
	}
}
