package schema

import (
	"fmt"
	"reflect"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
)

// Placement is where a field is rendered in the XML form. The JSON form always renders a field as an object key.
type Placement int

const (
	// Element fields are child elements: text-bearing for leaf values, subtrees for entities and collections.
	Element Placement = iota
	// Attribute fields are unprefixed attributes on the entity's own start tag.
	Attribute
	// CharData is the sole character content of the entity's element.
	CharData
)

func (p Placement) String() string {
	switch p {
	case Element:
		return "element"
	case Attribute:
		return "attribute"
	case CharData:
		return "chardata"
	}
	return fmt.Sprintf("Placement(%d)", int(p))
}

// Emptiness is the rule applied to a field that is absent or empty.
type Emptiness int

const (
	// OmitEmpty drops the field entirely when it is absent or empty.
	OmitEmpty Emptiness = iota
	// AlwaysEmit renders the field even when its value is empty (required fields).
	AlwaysEmit
	// EmitEmpty renders an empty container for a collection that is present but holds no items.
	EmitEmpty
)

func (e Emptiness) String() string {
	switch e {
	case OmitEmpty:
		return "omit-empty"
	case AlwaysEmit:
		return "always-emit"
	case EmitEmpty:
		return "emit-empty"
	}
	return fmt.Sprintf("Emptiness(%d)", int(e))
}

// Kind is the shape of the Go value behind a field.
type Kind int

const (
	// ScalarKind fields hold one leaf value (optionally behind a pointer).
	ScalarKind Kind = iota
	// ObjectKind fields hold a pointer to a nested entity.
	ObjectKind
	// ScalarListKind fields hold a slice of leaf values.
	ScalarListKind
	// ObjectListKind fields hold a slice of entities.
	ObjectListKind
)

func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case ObjectKind:
		return "object"
	case ScalarListKind:
		return "scalar-list"
	case ObjectListKind:
		return "object-list"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field is one row of an entity's descriptor table.
type Field struct {
	// Name is the Go field name.
	Name string
	// Index is the position of the field within the Go struct.
	Index int
	// JSONName is the object key used in the JSON form.
	JSONName string
	// XMLName is the attribute or element name in the XML form. For wrapped and choice collections it names the
	// wrapping element.
	XMLName string
	// XMLItem is the repeated element name of a wrapped collection; empty for bare collections.
	XMLItem string
	// ItemAttr names the attribute carrying each value of a scalar collection rendered as empty elements.
	ItemAttr string
	// Placement is the XML placement class.
	Placement Placement
	// Emptiness is the absent/empty rule.
	Emptiness Emptiness
	// Kind is the shape of the Go value.
	Kind Kind
	// Type is the Go field type.
	Type reflect.Type
	// Elem is the entity type of objects and object lists, or the leaf type of scalar lists.
	Elem reflect.Type
	// Pointer is set when the value is held behind a pointer (*T or *[]T).
	Pointer bool
	// Required fields must be present on decode and are always rendered on encode.
	Required bool
	// Choice collections hold items that each set exactly one of their fields. In XML every item is rendered as
	// that one field's element directly inside the wrapper.
	Choice bool
	// JSONOnly fields have no XML representation.
	JSONOnly bool
	// Recursive is set when the field's entity type (transitively) contains the owning entity type.
	Recursive bool
}

// Wrapped reports whether the collection is rendered inside a wrapping element in the XML form.
func (f Field) Wrapped() bool {
	return f.XMLItem != "" || f.Choice
}

// IsList reports whether the field holds a collection.
func (f Field) IsList() bool {
	return f.Kind == ScalarListKind || f.Kind == ObjectListKind
}

// ItemName is the XML element name of a single collection item.
func (f Field) ItemName() string {
	if f.XMLItem != "" {
		return f.XMLItem
	}
	return f.XMLName
}

// Text renders a scalar field of the given owner struct. Required fields are present even when empty; a required
// enumeration that is not set cannot be rendered and is reported as missing.
func (f Field) Text(owner reflect.Value, c Convention) (string, bool, error) {
	s, present, err := FormatText(owner.Field(f.Index), c)
	if err != nil || present || !f.Required {
		return s, present, err
	}
	return f.requiredEmpty(owner)
}

// NativeValue is the JSON counterpart of Text.
func (f Field) NativeValue(owner reflect.Value, c Convention) (interface{}, bool, error) {
	v, present, err := Native(owner.Field(f.Index), c)
	if err != nil || present || !f.Required {
		return v, present, err
	}
	return f.requiredEmpty(owner)
}

func (f Field) requiredEmpty(owner reflect.Value) (string, bool, error) {
	v := owner.Field(f.Index)
	if v.Kind() == reflect.String {
		return "", true, nil
	}
	return "", false, bomerr.ErrMissingField
}

// List returns the collection held by the field of the given owner. The second return value is false when the
// collection is absent.
func (f Field) List(owner reflect.Value) (reflect.Value, bool) {
	v := owner.Field(f.Index)
	if f.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if !f.Pointer && v.Len() == 0 {
		return v, false
	}
	return v, true
}

// Append adds item to the collection held by the field of the given owner, creating the collection if needed.
func (f Field) Append(owner reflect.Value, item reflect.Value) {
	list := f.Touch(owner)
	list.Set(reflect.Append(list, item))
}

// Touch marks a pointer-held collection as present (empty) and returns the settable slice value.
func (f Field) Touch(owner reflect.Value) reflect.Value {
	v := owner.Field(f.Index)
	if !f.Pointer {
		return v
	}
	if v.IsNil() {
		list := reflect.New(v.Type().Elem())
		list.Elem().Set(reflect.MakeSlice(v.Type().Elem(), 0, 0))
		v.Set(list)
	}
	return v.Elem()
}
