package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input    string
		expected Format
	}{
		{
			"cyclonedx-json",
			JSONFormat,
		},
		{
			"jSOn",
			JSONFormat,
		},
		{
			"CycloneDX-XML",
			XMLFormat,
		},
		{
			"xml",
			XMLFormat,
		},
		{
			"cyclonedx",
			XMLFormat,
		},
		{
			"cyclonedx-json@1.2",
			JSONFormat,
		},
		{
			"",
			UnknownFormat,
		},
		{
			"booboodepoopoo",
			UnknownFormat,
		},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			actual := Parse(tc.input)
			assert.Equal(t, tc.expected, actual, "unexpected result for input %q", tc.input)
		})
	}
}

func TestFormat_String_roundTrips(t *testing.T) {
	for _, f := range AvailableFormats {
		assert.Equal(t, f, Parse(f.String()))
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected Format
	}{
		{
			name:     "xml declaration",
			input:    `<?xml version="1.0" encoding="UTF-8"?><bom/>`,
			expected: XMLFormat,
		},
		{
			name:     "json with leading whitespace",
			input:    "\n\t  {\"bomFormat\": \"CycloneDX\"}",
			expected: JSONFormat,
		},
		{
			name:     "byte order mark",
			input:    "\uFEFF<bom/>",
			expected: XMLFormat,
		},
		{
			name:     "json array",
			input:    "[]",
			expected: UnknownFormat,
		},
		{
			name:     "empty",
			input:    "   ",
			expected: UnknownFormat,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Detect([]byte(tc.input)))
		})
	}
}
