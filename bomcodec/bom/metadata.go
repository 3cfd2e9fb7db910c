package bom

import "time"

// Metadata describes the document itself: when and by what it was produced, and the component it describes.
type Metadata struct {
	Timestamp   *time.Time              `cdx:"timestamp"`
	Tools       []Tool                  `cdx:"tools,xml=tools>tool"`
	Authors     []OrganizationalContact `cdx:"authors,xml=authors>author"`
	Component   *Component              `cdx:"component"`
	Manufacture *OrganizationalEntity   `cdx:"manufacture"`
	Supplier    *OrganizationalEntity   `cdx:"supplier"`
}

// Tool is the software that produced the document.
type Tool struct {
	Vendor  string `cdx:"vendor"`
	Name    string `cdx:"name"`
	Version string `cdx:"version"`
	Hashes  []Hash `cdx:"hashes,xml=hashes>hash"`
}

type OrganizationalEntity struct {
	Name    string                  `cdx:"name"`
	URL     []string                `cdx:"url"`
	Contact []OrganizationalContact `cdx:"contact"`
}

type OrganizationalContact struct {
	Name  string `cdx:"name"`
	Email string `cdx:"email"`
	Phone string `cdx:"phone"`
}

// AttachedText is a text payload (license text, a diff, a SWID tag) embedded in the document. The payload is
// carried verbatim and never decoded, even when Encoding is set.
type AttachedText struct {
	ContentType string   `cdx:"contentType,attr,xml=content-type"`
	Encoding    Encoding `cdx:"encoding,attr"`
	Content     string   `cdx:"content,chardata,required"`
}
