package xmlcodec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/scylladb/go-set/strset"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
	"github.com/anchore/bomcodec/bomcodec/codec"
	"github.com/anchore/bomcodec/bomcodec/schema"
	"github.com/anchore/bomcodec/internal/log"
)

type frameKind int

const (
	// entityFrame fills the fields of a struct value.
	entityFrame frameKind = iota
	// wrapperFrame collects the items of a wrapped (or choice) collection.
	wrapperFrame
	// textFrame accumulates the text of a leaf element.
	textFrame
)

type frame struct {
	kind  frameKind
	path  *codec.Path
	field *schema.Field
	// owner is the struct holding field (wrapper and text frames).
	owner reflect.Value
	// value is the struct being filled (entity frames).
	value reflect.Value
	ent   *schema.Entity
	// seen records the JSON names of the fields found so far (entity frames).
	seen  *strset.Set
	text  strings.Builder
	items int
}

type decoder struct {
	cfg    Config
	xml    *xml.Decoder
	frames []*frame
}

// Decode reads an XML document into v, which must be a non-nil pointer to a struct described by cdx tags.
func Decode(r io.Reader, v interface{}, cfg Config) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unable to decode into %T", v)
	}

	in := codec.NewReader(r)
	d := &decoder{
		cfg: cfg,
		xml: xml.NewDecoder(in),
	}
	return in.Classify(d.run(rv.Elem()))
}

func (d *decoder) run(root reflect.Value) error {
	if err := d.root(root); err != nil {
		return err
	}
	for len(d.frames) > 0 {
		tok, err := d.token()
		if err != nil {
			return err
		}
		top := d.frames[len(d.frames)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			err = d.start(top, t)
		case xml.EndElement:
			d.frames = d.frames[:len(d.frames)-1]
			err = d.end(top)
		case xml.CharData:
			if top.kind == textFrame || (top.kind == entityFrame && top.ent.CharData >= 0) {
				top.text.Write(t)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) token() (xml.Token, error) {
	tok, err := d.xml.Token()
	if err == nil {
		return tok, nil
	}
	var se *xml.SyntaxError
	switch {
	case errors.As(err, &se):
		return nil, &bomerr.SyntaxError{Format: "xml", Line: se.Line, Reason: se.Msg}
	case errors.Is(err, io.EOF):
		return nil, &bomerr.SyntaxError{Format: "xml", Reason: "unexpected end of input"}
	}
	return nil, &bomerr.SyntaxError{Format: "xml", Reason: err.Error()}
}

// root consumes tokens up to and including the document element.
func (d *decoder) root(root reflect.Value) error {
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != d.cfg.Root || start.Name.Space != d.cfg.Namespace {
			return bomerr.NewSchemaError("", fmt.Errorf("expected root element {%s}%s but found {%s}%s",
				d.cfg.Namespace, d.cfg.Root, start.Name.Space, start.Name.Local))
		}
		return d.openEntity(root, start, codec.RootPath(d.cfg.Root))
	}
}

func (d *decoder) openEntity(v reflect.Value, start xml.StartElement, path *codec.Path) error {
	ent, err := schema.EntityOf(v.Type())
	if err != nil {
		return err
	}
	f := &frame{
		kind:  entityFrame,
		path:  path,
		value: v,
		ent:   ent,
		seen:  strset.New(),
	}
	for _, attr := range start.Attr {
		if attr.Name.Space != "" || attr.Name.Local == "xmlns" {
			continue
		}
		field, ok := ent.FieldByAttribute(attr.Name.Local)
		if !ok {
			continue
		}
		if err := schema.ParseText(attr.Value, v.Field(field.Index), d.cfg.Convention); err != nil {
			return codec.SchemaError(path.Field(field.JSONName), err)
		}
		f.seen.Add(field.JSONName)
	}
	d.frames = append(d.frames, f)
	return nil
}

func (d *decoder) skip(path *codec.Path, name xml.Name) error {
	log.Tracef("skipping XML element {%s}%s within %s", name.Space, name.Local, path)
	if err := d.xml.Skip(); err != nil {
		var se *xml.SyntaxError
		if errors.As(err, &se) {
			return &bomerr.SyntaxError{Format: "xml", Line: se.Line, Reason: se.Msg}
		}
		return &bomerr.SyntaxError{Format: "xml", Reason: err.Error()}
	}
	return nil
}

func (d *decoder) start(top *frame, start xml.StartElement) error {
	if start.Name.Space != d.cfg.Namespace || top.kind == textFrame {
		return d.skip(top.path, start.Name)
	}

	if top.kind == wrapperFrame {
		return d.startItem(top, start)
	}

	if top.ent.CharData >= 0 {
		return d.skip(top.path, start.Name)
	}
	field, ok := top.ent.FieldByElement(start.Name.Local)
	if !ok {
		return d.skip(top.path, start.Name)
	}
	top.seen.Add(field.JSONName)
	return d.openField(field, top.value, start, top.path.Field(field.JSONName))
}

// openField handles the start of the element (or first item element, for bare collections) of field within
// owner.
func (d *decoder) openField(field *schema.Field, owner reflect.Value, start xml.StartElement, path *codec.Path) error {
	switch field.Kind {
	case schema.ScalarKind:
		d.frames = append(d.frames, &frame{kind: textFrame, path: path, field: field, owner: owner})
		return nil
	case schema.ObjectKind:
		ptr := reflect.New(field.Elem)
		owner.Field(field.Index).Set(ptr)
		return d.openEntity(ptr.Elem(), start, path)
	}

	if field.Wrapped() {
		field.Touch(owner)
		d.frames = append(d.frames, &frame{kind: wrapperFrame, path: path, field: field, owner: owner})
		return nil
	}
	return d.openItem(field, owner, start, path.Item(field.Touch(owner).Len()))
}

// openItem appends a new item to the collection field of owner and starts filling it.
func (d *decoder) openItem(field *schema.Field, owner reflect.Value, start xml.StartElement, path *codec.Path) error {
	if field.Kind == schema.ObjectListKind {
		field.Append(owner, reflect.New(field.Elem).Elem())
		list := field.Touch(owner)
		return d.openEntity(list.Index(list.Len()-1), start, path)
	}

	if field.ItemAttr == "" {
		d.frames = append(d.frames, &frame{kind: textFrame, path: path, field: field, owner: owner})
		return nil
	}

	for _, attr := range start.Attr {
		if attr.Name.Space == "" && attr.Name.Local == field.ItemAttr {
			item := reflect.New(field.Elem).Elem()
			if err := schema.ParseText(attr.Value, item, d.cfg.Convention); err != nil {
				return codec.SchemaError(path, err)
			}
			field.Append(owner, item)
			break
		}
	}
	// nested content of reference elements is not part of the model
	return d.skip(path, start.Name)
}

func (d *decoder) startItem(top *frame, start xml.StartElement) error {
	field := top.field
	path := top.path.Item(top.items)

	if !field.Choice {
		if start.Name.Local != field.XMLItem {
			return d.skip(top.path, start.Name)
		}
		top.items++
		return d.openItem(field, top.owner, start, path)
	}

	ent, err := schema.EntityOf(field.Elem)
	if err != nil {
		return err
	}
	chosen, ok := ent.FieldByElement(start.Name.Local)
	if !ok {
		return d.skip(top.path, start.Name)
	}
	top.items++
	field.Append(top.owner, reflect.New(field.Elem).Elem())
	list := field.Touch(top.owner)
	return d.openField(chosen, list.Index(list.Len()-1), start, path.Field(chosen.JSONName))
}

func (d *decoder) end(top *frame) error {
	switch top.kind {
	case textFrame:
		if top.field.IsList() {
			item := reflect.New(top.field.Elem).Elem()
			if err := schema.ParseText(top.text.String(), item, d.cfg.Convention); err != nil {
				return codec.SchemaError(top.path, err)
			}
			top.field.Append(top.owner, item)
			return nil
		}
		if err := schema.ParseText(top.text.String(), top.owner.Field(top.field.Index), d.cfg.Convention); err != nil {
			return codec.SchemaError(top.path, err)
		}
	case entityFrame:
		if top.ent.CharData >= 0 {
			field := top.ent.Fields[top.ent.CharData]
			if err := schema.ParseText(top.text.String(), top.value.Field(field.Index), d.cfg.Convention); err != nil {
				return codec.SchemaError(top.path.Field(field.JSONName), err)
			}
			top.seen.Add(field.JSONName)
		}
		for _, field := range top.ent.Fields {
			if field.Required && !field.JSONOnly && !top.seen.Has(field.JSONName) {
				return codec.SchemaError(top.path.Field(field.JSONName), bomerr.ErrMissingField)
			}
		}
	}
	return nil
}
