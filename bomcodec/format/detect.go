package format

import "unicode"

// Detect guesses the format of an encoded document from its first significant character: '<' for XML and '{'
// for JSON. A leading byte order mark is skipped.
func Detect(data []byte) Format {
	for _, r := range string(data) {
		switch {
		case r == '\uFEFF' || unicode.IsSpace(r):
			continue
		case r == '<':
			return XMLFormat
		case r == '{':
			return JSONFormat
		}
		return UnknownFormat
	}
	return UnknownFormat
}
