package xmlcodec

import (
	"encoding/xml"
	"fmt"
	"io"
	"reflect"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
	"github.com/anchore/bomcodec/bomcodec/codec"
	"github.com/anchore/bomcodec/bomcodec/schema"
)

// Config describes the XML dialect of a document.
type Config struct {
	// Root is the local name of the document element.
	Root string
	// Namespace is declared on the document element and expected on every element while decoding.
	Namespace string
	// Prefix, when set, is bound to Namespace and written on every element name (attributes stay unprefixed).
	Prefix string
	// Convention selects the enumeration strings written by the encoder and the extra strings accepted by the
	// decoder.
	Convention schema.Convention
	// Pretty indents nested elements by two spaces.
	Pretty bool
}

type task func() error

type encoder struct {
	cfg   Config
	xml   *xml.Encoder
	tasks []task
}

// Encode writes v, a struct or pointer to struct described by cdx tags, as an XML document.
func Encode(w io.Writer, v interface{}, cfg Config) error {
	root := reflect.ValueOf(v)
	for root.Kind() == reflect.Ptr {
		if root.IsNil() {
			return fmt.Errorf("unable to encode a nil document")
		}
		root = root.Elem()
	}

	out := codec.NewWriter(w)
	if _, err := io.WriteString(out, xml.Header); err != nil {
		return out.Classify(err)
	}

	e := &encoder{
		cfg: cfg,
		xml: xml.NewEncoder(out),
	}
	if cfg.Pretty {
		e.xml.Indent("", "  ")
	}

	if err := e.run(root); err != nil {
		return out.Classify(err)
	}
	if err := e.xml.Flush(); err != nil {
		return out.Classify(err)
	}
	if cfg.Pretty {
		_, err := io.WriteString(out, "\n")
		return out.Classify(err)
	}
	return nil
}

func (e *encoder) name(local string) xml.Name {
	if e.cfg.Prefix == "" {
		return xml.Name{Local: local}
	}
	return xml.Name{Local: e.cfg.Prefix + ":" + local}
}

func (e *encoder) namespaceAttr() xml.Attr {
	if e.cfg.Prefix == "" {
		return xml.Attr{Name: xml.Name{Local: "xmlns"}, Value: e.cfg.Namespace}
	}
	return xml.Attr{Name: xml.Name{Local: "xmlns:" + e.cfg.Prefix}, Value: e.cfg.Namespace}
}

func (e *encoder) push(t task) {
	e.tasks = append(e.tasks, t)
}

// pushAll schedules the given tasks so that they run in slice order.
func (e *encoder) pushAll(tasks []task) {
	for i := len(tasks) - 1; i >= 0; i-- {
		e.push(tasks[i])
	}
}

// run drains the work stack. Nested entities schedule their children instead of recursing, so document depth
// is not bounded by the goroutine stack.
func (e *encoder) run(root reflect.Value) error {
	e.push(func() error {
		return e.entity(e.cfg.Root, root, codec.RootPath(e.cfg.Root), e.namespaceAttr())
	})
	for len(e.tasks) > 0 {
		next := e.tasks[len(e.tasks)-1]
		e.tasks = e.tasks[:len(e.tasks)-1]
		if err := next(); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) entity(name string, v reflect.Value, path *codec.Path, extra ...xml.Attr) error {
	ent, err := schema.EntityOf(v.Type())
	if err != nil {
		return err
	}

	start := xml.StartElement{Name: e.name(name), Attr: extra}
	for _, f := range ent.Fields {
		if f.JSONOnly || f.Placement != schema.Attribute {
			continue
		}
		text, present, err := f.Text(v, e.cfg.Convention)
		if err != nil {
			return codec.SchemaError(path.Field(f.JSONName), err)
		}
		if present {
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: f.XMLName}, Value: text})
		}
	}

	if err := e.xml.EncodeToken(start); err != nil {
		return err
	}

	if ent.CharData >= 0 {
		f := ent.Fields[ent.CharData]
		text, present, err := f.Text(v, e.cfg.Convention)
		if err != nil {
			return codec.SchemaError(path.Field(f.JSONName), err)
		}
		if present {
			if err := e.xml.EncodeToken(xml.CharData(text)); err != nil {
				return err
			}
		}
		return e.xml.EncodeToken(start.End())
	}

	var children []task
	for i := range ent.Fields {
		f := &ent.Fields[i]
		if f.JSONOnly || f.Placement != schema.Element {
			continue
		}
		t, err := e.field(f, v, path.Field(f.JSONName))
		if err != nil {
			return err
		}
		if t != nil {
			children = append(children, t)
		}
	}
	children = append(children, func() error {
		return e.xml.EncodeToken(start.End())
	})
	e.pushAll(children)
	return nil
}

// field returns the task rendering the element field f of owner, or nil when nothing is rendered.
func (e *encoder) field(f *schema.Field, owner reflect.Value, path *codec.Path) (task, error) {
	switch f.Kind {
	case schema.ScalarKind:
		text, present, err := f.Text(owner, e.cfg.Convention)
		if err != nil {
			return nil, codec.SchemaError(path, err)
		}
		if !present {
			return nil, nil
		}
		return func() error { return e.text(f.XMLName, text) }, nil

	case schema.ObjectKind:
		value := owner.Field(f.Index)
		if value.IsNil() {
			if f.Required {
				return nil, codec.SchemaError(path, bomerr.ErrMissingField)
			}
			return nil, nil
		}
		return func() error { return e.entity(f.XMLName, value.Elem(), path) }, nil
	}

	list, present := f.List(owner)
	if !present {
		return nil, nil
	}
	if list.Len() == 0 && f.Emptiness != schema.EmitEmpty {
		return nil, nil
	}

	items := make([]task, 0, list.Len()+2)
	for i := 0; i < list.Len(); i++ {
		item, err := e.item(f, list.Index(i), path.Item(i))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if !f.Wrapped() {
		return func() error {
			e.pushAll(items)
			return nil
		}, nil
	}

	return func() error {
		wrapper := xml.StartElement{Name: e.name(f.XMLName)}
		if err := e.xml.EncodeToken(wrapper); err != nil {
			return err
		}
		e.pushAll(append(items, func() error {
			return e.xml.EncodeToken(wrapper.End())
		}))
		return nil
	}, nil
}

// item returns the task rendering one item of the collection field f.
func (e *encoder) item(f *schema.Field, item reflect.Value, path *codec.Path) (task, error) {
	if f.Kind == schema.ScalarListKind {
		text, _, err := schema.FormatText(item, e.cfg.Convention)
		if err != nil {
			return nil, codec.SchemaError(path, err)
		}
		if f.ItemAttr != "" {
			return func() error {
				start := xml.StartElement{
					Name: e.name(f.ItemName()),
					Attr: []xml.Attr{{Name: xml.Name{Local: f.ItemAttr}, Value: text}},
				}
				if err := e.xml.EncodeToken(start); err != nil {
					return err
				}
				return e.xml.EncodeToken(start.End())
			}, nil
		}
		return func() error { return e.text(f.ItemName(), text) }, nil
	}

	if !f.Choice {
		return func() error { return e.entity(f.ItemName(), item, path) }, nil
	}

	ent, err := schema.EntityOf(f.Elem)
	if err != nil {
		return nil, err
	}
	chosen, err := ent.ChosenField(item)
	if err != nil {
		return nil, codec.SchemaError(path, err)
	}
	t, err := e.field(chosen, item, path.Field(chosen.JSONName))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return func() error { return nil }, nil
	}
	return t, nil
}

func (e *encoder) text(name, text string) error {
	start := xml.StartElement{Name: e.name(name)}
	if err := e.xml.EncodeToken(start); err != nil {
		return err
	}
	if err := e.xml.EncodeToken(xml.CharData(text)); err != nil {
		return err
	}
	return e.xml.EncodeToken(start.End())
}
