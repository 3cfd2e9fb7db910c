package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/scylladb/go-set/strset"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
)

// TagName is the struct tag key read by EntityOf.
const TagName = "cdx"

// Entity is the descriptor table of one struct type: every tagged field in declaration order plus lookup indexes
// used while decoding.
type Entity struct {
	Type   reflect.Type
	Fields []Field
	// CharData is the index (into Fields) of the chardata field, or -1.
	CharData int

	byJSON    map[string]int
	byXMLAttr map[string]int
	byXMLElem map[string]int
}

type entityResult struct {
	entity *Entity
	err    error
}

var entityCache sync.Map // reflect.Type -> entityResult

// EntityOf returns the descriptor table of the given struct type (or pointer to struct type). Tables are built on
// first use and cached; the returned Entity must not be modified.
func EntityOf(t reflect.Type) (*Entity, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if r, ok := entityCache.Load(t); ok {
		res := r.(entityResult)
		return res.entity, res.err
	}
	e, err := build(t)
	r, _ := entityCache.LoadOrStore(t, entityResult{entity: e, err: err})
	res := r.(entityResult)
	return res.entity, res.err
}

// MustEntityOf is like EntityOf but panics on an invalid descriptor.
func MustEntityOf(t reflect.Type) *Entity {
	e, err := EntityOf(t)
	if err != nil {
		panic(err)
	}
	return e
}

// FieldByJSON returns the field rendered under the given JSON object key.
func (e *Entity) FieldByJSON(name string) (*Field, bool) {
	return e.lookup(e.byJSON, name)
}

// FieldByAttribute returns the field rendered as the given XML attribute.
func (e *Entity) FieldByAttribute(name string) (*Field, bool) {
	return e.lookup(e.byXMLAttr, name)
}

// FieldByElement returns the field rendered as (or wrapped in) the given XML child element.
func (e *Entity) FieldByElement(name string) (*Field, bool) {
	return e.lookup(e.byXMLElem, name)
}

func (e *Entity) lookup(index map[string]int, name string) (*Field, bool) {
	i, ok := index[name]
	if !ok {
		return nil, false
	}
	return &e.Fields[i], true
}

// ChosenField returns the single field set on an item of a choice collection. Items with no field set, or more
// than one, are rejected.
func (e *Entity) ChosenField(v reflect.Value) (*Field, error) {
	var chosen *Field
	for i := range e.Fields {
		f := &e.Fields[i]
		if isZero(v.Field(f.Index)) {
			continue
		}
		if chosen != nil {
			return nil, fmt.Errorf("%w: only one of %q and %q may be set", bomerr.ErrInvalidValue, chosen.JSONName, f.JSONName)
		}
		chosen = f
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: one of %s must be set", bomerr.ErrMissingField, strings.Join(e.JSONNames(), ", "))
	}
	return chosen, nil
}

// JSONNames returns the JSON names of every field in declaration order.
func (e *Entity) JSONNames() []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.JSONName
	}
	return names
}

func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return v.IsZero()
}

type tag struct {
	json     string
	xml      string
	attr     bool
	chardata bool
	required bool
	empty    bool
	choice   bool
	itemAttr string
}

func parseTag(raw string) (tag, error) {
	parts := strings.Split(raw, ",")
	t := tag{json: parts[0]}
	for _, opt := range parts[1:] {
		key, value, hasValue := strings.Cut(opt, "=")
		switch {
		case key == "attr" && !hasValue:
			t.attr = true
		case key == "chardata" && !hasValue:
			t.chardata = true
		case key == "required" && !hasValue:
			t.required = true
		case key == "emitempty" && !hasValue:
			t.empty = true
		case key == "choice" && !hasValue:
			t.choice = true
		case key == "xml" && value != "":
			t.xml = value
		case key == "itemattr" && value != "":
			t.itemAttr = value
		default:
			return t, fmt.Errorf("unknown tag option %q", opt)
		}
	}
	if t.json == "" {
		return t, fmt.Errorf("missing JSON name")
	}
	return t, nil
}

func build(t reflect.Type) (*Entity, error) {
	if t.Kind() != reflect.Struct || t == timeType {
		return nil, fmt.Errorf("%s is not an entity type", t)
	}

	e := &Entity{
		Type:      t,
		CharData:  -1,
		byJSON:    make(map[string]int),
		byXMLAttr: make(map[string]int),
		byXMLElem: make(map[string]int),
	}

	var errs error
	problem := func(sf reflect.StructField, format string, args ...interface{}) {
		errs = multierror.Append(errs, fmt.Errorf("%s.%s: %s", t.Name(), sf.Name, fmt.Sprintf(format, args...)))
	}

	jsonNames := strset.New()
	elements := 0
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		raw, ok := sf.Tag.Lookup(TagName)
		if !ok || raw == "-" || !sf.IsExported() {
			continue
		}
		tg, err := parseTag(raw)
		if err != nil {
			problem(sf, "%v", err)
			continue
		}

		f, err := newField(sf, tg)
		if err != nil {
			problem(sf, "%v", err)
			continue
		}

		if jsonNames.Has(f.JSONName) {
			problem(sf, "duplicate JSON name %q", f.JSONName)
			continue
		}
		jsonNames.Add(f.JSONName)

		if f.Choice {
			if err := validateChoice(t, f.Elem); err != nil {
				problem(sf, "%v", err)
				continue
			}
		}

		idx := len(e.Fields)
		e.byJSON[f.JSONName] = idx
		if !f.JSONOnly {
			switch f.Placement {
			case Attribute:
				if _, exists := e.byXMLAttr[f.XMLName]; exists {
					problem(sf, "duplicate XML attribute %q", f.XMLName)
					continue
				}
				e.byXMLAttr[f.XMLName] = idx
			case CharData:
				if e.CharData >= 0 {
					problem(sf, "only one chardata field is allowed")
					continue
				}
				e.CharData = idx
			case Element:
				if _, exists := e.byXMLElem[f.XMLName]; exists {
					problem(sf, "duplicate XML element %q", f.XMLName)
					continue
				}
				e.byXMLElem[f.XMLName] = idx
				elements++
			}
		}
		e.Fields = append(e.Fields, f)
	}

	if e.CharData >= 0 && elements > 0 {
		errs = multierror.Append(errs, fmt.Errorf("%s: a chardata field cannot be combined with element fields", t.Name()))
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid descriptor for %s: %w", t, errs)
	}

	for i := range e.Fields {
		f := &e.Fields[i]
		if f.Kind == ObjectKind || f.Kind == ObjectListKind {
			f.Recursive = reaches(f.Elem, t)
		}
	}
	return e, nil
}

func newField(sf reflect.StructField, tg tag) (Field, error) {
	f := Field{
		Name:     sf.Name,
		Index:    sf.Index[0],
		JSONName: tg.json,
		XMLName:  tg.json,
		Type:     sf.Type,
		Required: tg.required,
		Choice:   tg.choice,
		ItemAttr: tg.itemAttr,
	}

	if err := classify(&f); err != nil {
		return f, err
	}

	switch {
	case tg.attr && tg.chardata:
		return f, fmt.Errorf("attr and chardata are mutually exclusive")
	case tg.attr:
		f.Placement = Attribute
	case tg.chardata:
		f.Placement = CharData
	default:
		f.Placement = Element
	}
	if f.Placement != Element && f.Kind != ScalarKind {
		return f, fmt.Errorf("only scalar fields can be rendered as %s", f.Placement)
	}

	if tg.xml == "-" {
		f.JSONOnly = true
	} else if tg.xml != "" {
		segments := strings.Split(tg.xml, ">")
		if len(segments) > 2 || segments[0] == "" || (len(segments) == 2 && segments[1] == "") {
			return f, fmt.Errorf("invalid XML path %q", tg.xml)
		}
		f.XMLName = segments[0]
		if len(segments) == 2 {
			if !f.IsList() {
				return f, fmt.Errorf("only collections can be wrapped")
			}
			f.XMLItem = segments[1]
		}
	}

	switch {
	case f.Required:
		if f.IsList() {
			return f, fmt.Errorf("collections cannot be required")
		}
		f.Emptiness = AlwaysEmit
	case tg.empty:
		if !f.IsList() || !f.Pointer {
			return f, fmt.Errorf("emitempty needs a pointer to a collection")
		}
		if !f.Wrapped() && !f.JSONOnly {
			return f, fmt.Errorf("emitempty needs a wrapped collection")
		}
		f.Emptiness = EmitEmpty
	default:
		f.Emptiness = OmitEmpty
	}

	if f.Choice {
		if f.Kind != ObjectListKind {
			return f, fmt.Errorf("choice needs a collection of entities")
		}
		if f.XMLItem != "" {
			return f, fmt.Errorf("choice collections name their items by the chosen field")
		}
	}

	if f.ItemAttr != "" && (f.Kind != ScalarListKind || f.Wrapped()) {
		return f, fmt.Errorf("itemattr needs a bare collection of scalars")
	}
	return f, nil
}

func classify(f *Field) error {
	t := f.Type
	if t.Kind() == reflect.Ptr {
		f.Pointer = true
		t = t.Elem()
	}
	if isScalar(t) {
		f.Kind = ScalarKind
		f.Elem = t
		return nil
	}
	switch t.Kind() {
	case reflect.Struct:
		if !f.Pointer {
			return fmt.Errorf("nested entities must be held by pointer")
		}
		f.Kind = ObjectKind
		f.Elem = t
		return nil
	case reflect.Slice:
		elem := t.Elem()
		switch {
		case isScalar(elem):
			f.Kind = ScalarListKind
		case elem.Kind() == reflect.Struct:
			f.Kind = ObjectListKind
		default:
			return fmt.Errorf("unsupported collection item type %s", elem)
		}
		f.Elem = elem
		return nil
	}
	return fmt.Errorf("unsupported field type %s", f.Type)
}

// validateChoice checks that every field of a choice item type is an element in the XML form.
func validateChoice(owner, item reflect.Type) error {
	if item == owner {
		return fmt.Errorf("a choice item cannot be its own owner")
	}
	ent, err := EntityOf(item)
	if err != nil {
		return err
	}
	if len(ent.Fields) == 0 {
		return fmt.Errorf("choice item %s has no fields", item)
	}
	for _, f := range ent.Fields {
		if f.Placement != Element || f.JSONOnly || f.IsList() {
			return fmt.Errorf("choice item field %s.%s must be a single element", item.Name(), f.Name)
		}
	}
	return nil
}

// reaches reports whether target can be found by following the nested entity types of from (including from
// itself).
func reaches(from, target reflect.Type) bool {
	seen := map[reflect.Type]bool{from: true}
	queue := []reflect.Type{from}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if t == target {
			return true
		}
		for i := 0; i < t.NumField(); i++ {
			next := entityTypeOf(t.Field(i).Type)
			if next == nil || seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return false
}

func entityTypeOf(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice:
			t = t.Elem()
			continue
		case reflect.Struct:
			if isScalar(t) {
				return nil
			}
			return t
		}
		return nil
	}
}
