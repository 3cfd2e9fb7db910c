package bomcodec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/anchore/bomcodec/bomcodec/bom"
	"github.com/anchore/bomcodec/bomcodec/bomerr"
	"github.com/anchore/bomcodec/bomcodec/codec/jsoncodec"
	"github.com/anchore/bomcodec/bomcodec/codec/xmlcodec"
	"github.com/anchore/bomcodec/bomcodec/format"
	"github.com/anchore/bomcodec/internal/log"
)

// note: lib name must be a single word, all lowercase
const LibraryName = "bomcodec"

// Encode writes doc to w in the given format. The document is not modified; the envelope constants are always
// written for the schema revision produced by this package.
func Encode(w io.Writer, doc *bom.Document, f format.Format, opts ...Option) error {
	if doc == nil {
		return fmt.Errorf("unable to encode a nil document")
	}
	o := newOptions(opts)
	doc = doc.WithEnvelope()

	log.Debugf("encoding document serial=%q version=%d as %s", doc.SerialNumber, doc.Version, f)
	switch f {
	case format.XMLFormat:
		return xmlcodec.Encode(w, doc, xmlConfig(o))
	case format.JSONFormat:
		return jsoncodec.Encode(w, doc, jsonConfig(o))
	}
	return fmt.Errorf("unsupported format %q, supported formats are: %+v", f, format.AvailableFormats)
}

// Decode reads a document in the given format from r. Either a complete document or an error is returned.
func Decode(r io.Reader, f format.Format, opts ...Option) (*bom.Document, error) {
	o := newOptions(opts)

	var doc bom.Document
	switch f {
	case format.XMLFormat:
		if err := xmlcodec.Decode(r, &doc, xmlConfig(o)); err != nil {
			return nil, err
		}
		doc.BOMFormat = bom.Format
		doc.SpecVersion = bom.SpecVersion
	case format.JSONFormat:
		if err := jsoncodec.Decode(r, &doc, jsonConfig(o)); err != nil {
			return nil, err
		}
		if doc.BOMFormat != bom.Format {
			return nil, bomerr.NewSchemaError(bom.RootElement+".bomFormat",
				fmt.Errorf("%w: expected %q but found %q", bomerr.ErrInvalidValue, bom.Format, doc.BOMFormat))
		}
	default:
		return nil, fmt.Errorf("unsupported format %q, supported formats are: %+v", f, format.AvailableFormats)
	}

	log.Debugf("decoded %s document serial=%q version=%d", f, doc.SerialNumber, doc.Version)
	return &doc, nil
}

// Marshal returns the encoding of doc in the given format.
func Marshal(doc *bom.Document, f format.Format, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, f, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data in the given format. When f is format.UnknownFormat the format is detected from the
// data.
func Unmarshal(data []byte, f format.Format, opts ...Option) (*bom.Document, error) {
	if f == format.UnknownFormat {
		f = DetectFormat(data)
		if f == format.UnknownFormat {
			return nil, &bomerr.SyntaxError{Format: format.UnknownFormat.String(), Reason: "unable to detect the document format"}
		}
	}
	return Decode(bytes.NewReader(data), f, opts...)
}

// DetectFormat guesses the format of an encoded document.
func DetectFormat(data []byte) format.Format {
	return format.Detect(data)
}

func xmlConfig(o options) xmlcodec.Config {
	return xmlcodec.Config{
		Root:       bom.RootElement,
		Namespace:  bom.XMLNamespace,
		Prefix:     o.prefix,
		Convention: o.convention,
		Pretty:     o.pretty,
	}
}

func jsonConfig(o options) jsoncodec.Config {
	return jsoncodec.Config{
		Root:       bom.RootElement,
		Convention: o.convention,
		Pretty:     o.pretty,
	}
}
