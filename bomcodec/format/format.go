package format

import (
	"strings"
)

var (
	UnknownFormat = Format{name: "unknown"}
	JSONFormat    = Format{name: "cyclonedx-json"}
	XMLFormat     = Format{name: "cyclonedx-xml"}
)

// Format is a dedicated type to represent a wire form of a document.
type Format struct {
	name string
}

func (f Format) String() string {
	return f.name
}

// Parse returns the Format specified by the given user input. The bare names "json", "xml" and "cyclonedx" (XML)
// are accepted as aliases; an optional "@<version>" suffix is ignored.
func Parse(userInput string) Format {
	name := strings.SplitN(strings.TrimSpace(userInput), "@", 2)[0]

	switch strings.ToLower(name) {
	case JSONFormat.name, "json":
		return JSONFormat
	case XMLFormat.name, "xml", "cyclonedx":
		return XMLFormat
	default:
		return UnknownFormat
	}
}

// AvailableFormats is a list of format options available to users.
var AvailableFormats = []Format{
	JSONFormat,
	XMLFormat,
}
