/*
Package codec holds the pieces shared by the XML and JSON document codecs.
*/
package codec

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
)

// Writer records the first error returned by the destination stream so that failures can be attributed to the
// destination rather than to the encoder.
type Writer struct {
	w   io.Writer
	Err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err := w.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.Err = err
	}
	return n, err
}

// Classify returns err as a *bomerr.WriteError when the destination stream failed.
func (w *Writer) Classify(err error) error {
	if err == nil {
		return nil
	}
	if w.Err != nil {
		return &bomerr.WriteError{Err: w.Err}
	}
	return err
}

// Reader records the first error other than io.EOF returned by the source stream.
type Reader struct {
	r   io.Reader
	Err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && r.Err == nil {
		r.Err = err
	}
	return n, err
}

// Classify returns err as a *bomerr.ReadError when the source stream failed.
func (r *Reader) Classify(err error) error {
	if err == nil {
		return nil
	}
	if r.Err != nil {
		return &bomerr.ReadError{Err: r.Err}
	}
	return err
}

// Path locates a value within a document. Segments share their parent, so extending a path costs the same at
// any depth; the dotted form is only built by String.
type Path struct {
	parent *Path
	name   string
	// index is the item position for collection items and -1 for named segments.
	index int
}

// RootPath returns a path with a single named segment.
func RootPath(name string) *Path {
	return &Path{name: name, index: -1}
}

// Field extends the path by a named field.
func (p *Path) Field(name string) *Path {
	return &Path{parent: p, name: name, index: -1}
}

// Item extends the path by the i-th item of a collection.
func (p *Path) Item(i int) *Path {
	return &Path{parent: p, index: i}
}

// String renders the path as "bom.components[3].hashes[0].alg".
func (p *Path) String() string {
	var segments []*Path
	for s := p; s != nil; s = s.parent {
		segments = append(segments, s)
	}
	var b strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		s := segments[i]
		switch {
		case s.index >= 0:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
		case b.Len() == 0:
			b.WriteString(s.name)
		default:
			b.WriteByte('.')
			b.WriteString(s.name)
		}
	}
	return b.String()
}

// SchemaError attributes err to the field at path, unless it already names a field.
func SchemaError(path *Path, err error) error {
	var se *bomerr.SchemaError
	if errors.As(err, &se) {
		return err
	}
	return bomerr.NewSchemaError(path.String(), err)
}
