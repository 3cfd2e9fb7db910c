package bom

import (
	"github.com/google/uuid"
)

const (
	// Format is the value of the JSON "bomFormat" envelope field.
	Format = "CycloneDX"
	// SpecVersion is the schema revision produced by this package.
	SpecVersion = "1.2"
	// XMLNamespace is the namespace of every element in the XML form.
	XMLNamespace = "http://cyclonedx.org/schema/bom/" + SpecVersion
	// RootElement is the local name of the XML document element.
	RootElement = "bom"
)

// Document is the top level bill of materials.
type Document struct {
	BOMFormat    string        `cdx:"bomFormat,required,xml=-"`
	SpecVersion  string        `cdx:"specVersion,required,xml=-"`
	SerialNumber string        `cdx:"serialNumber,attr"`
	Version      int           `cdx:"version,attr,required"`
	Metadata     *Metadata     `cdx:"metadata"`
	Components   *[]Component  `cdx:"components,xml=components>component,emitempty"`
	Services     *[]Service    `cdx:"services,xml=services>service,emitempty"`
	Dependencies *[]Dependency `cdx:"dependencies,xml=dependencies>dependency,emitempty"`
}

// NewDocument creates revision 1 of a new document with a freshly generated serial number. Nil collections are
// absent from the rendered document, empty (non-nil) collections are rendered empty.
func NewDocument(metadata *Metadata, components []Component, services []Service, dependencies []Dependency) *Document {
	return &Document{
		BOMFormat:    Format,
		SpecVersion:  SpecVersion,
		SerialNumber: uuid.New().URN(),
		Version:      1,
		Metadata:     metadata,
		Components:   present(components),
		Services:     present(services),
		Dependencies: present(dependencies),
	}
}

// NextVersion returns a shallow copy of the document describing the next revision of the same BOM: the serial
// number is kept and the version incremented.
func (d *Document) NextVersion() *Document {
	next := *d
	next.Version++
	return &next
}

// WithEnvelope returns a shallow copy of the document with the envelope constants filled in.
func (d *Document) WithEnvelope() *Document {
	doc := *d
	doc.BOMFormat = Format
	doc.SpecVersion = SpecVersion
	return &doc
}

func present[T any](items []T) *[]T {
	if items == nil {
		return nil
	}
	return &items
}
