package jsoncodec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/ohler55/ojg/oj"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
	"github.com/anchore/bomcodec/bomcodec/codec"
	"github.com/anchore/bomcodec/bomcodec/schema"
	"github.com/anchore/bomcodec/internal/log"
)

// binding is a decoded JSON object waiting to be copied into the struct value.
type binding struct {
	raw   map[string]interface{}
	value reflect.Value
	path  *codec.Path
}

// Decode reads a JSON document into v, which must be a non-nil pointer to a struct described by cdx tags. Unknown
// keys are ignored and null values are treated as absent.
func Decode(r io.Reader, v interface{}, cfg Config) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unable to decode into %T", v)
	}

	in := codec.NewReader(r)
	data, err := io.ReadAll(in)
	if err != nil {
		return in.Classify(err)
	}

	tree, err := Parse(data)
	if err != nil {
		return err
	}
	return Bind(tree, rv.Elem(), cfg)
}

// Parse parses data into a generic JSON tree.
func Parse(data []byte) (interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &bomerr.SyntaxError{Format: "json", Reason: "empty input"}
	}
	tree, err := oj.Parse(data)
	if err != nil {
		var pe *oj.ParseError
		if errors.As(err, &pe) {
			return nil, &bomerr.SyntaxError{Format: "json", Line: pe.Line, Reason: pe.Message}
		}
		return nil, &bomerr.SyntaxError{Format: "json", Reason: err.Error()}
	}
	return tree, nil
}

// Bind copies a generic JSON tree into the struct value root.
func Bind(tree interface{}, root reflect.Value, cfg Config) error {
	top, ok := tree.(map[string]interface{})
	if !ok {
		return bomerr.NewSchemaError(cfg.Root, fmt.Errorf("%w: expected an object, found %s", bomerr.ErrInvalidValue, schema.DescribeJSON(tree)))
	}

	stack := []binding{{raw: top, value: root, path: codec.RootPath(cfg.Root)}}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ent, err := schema.EntityOf(b.value.Type())
		if err != nil {
			return err
		}

		for key := range b.raw {
			if _, ok := ent.FieldByJSON(key); !ok {
				log.Tracef("ignoring unknown JSON key %q within %s", key, b.path)
			}
		}

		for i := range ent.Fields {
			f := &ent.Fields[i]
			path := b.path.Field(f.JSONName)
			raw := b.raw[f.JSONName]
			if raw == nil {
				if f.Required {
					return codec.SchemaError(path, bomerr.ErrMissingField)
				}
				continue
			}
			next, err := bindField(f, b.value, raw, path, cfg)
			if err != nil {
				return err
			}
			// reversed so that siblings are bound in document order
			for j := len(next) - 1; j >= 0; j-- {
				stack = append(stack, next[j])
			}
		}
	}
	return nil
}

// bindField stores raw into the field f of owner and returns the nested objects still to be bound.
func bindField(f *schema.Field, owner reflect.Value, raw interface{}, path *codec.Path, cfg Config) ([]binding, error) {
	dst := owner.Field(f.Index)
	switch f.Kind {
	case schema.ScalarKind:
		if err := schema.SetNative(dst, raw, cfg.Convention); err != nil {
			return nil, codec.SchemaError(path, err)
		}
		return nil, nil

	case schema.ObjectKind:
		obj, err := object(raw, path)
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(f.Elem)
		dst.Set(ptr)
		return []binding{{raw: obj, value: ptr.Elem(), path: path}}, nil
	}

	arr, ok := raw.([]interface{})
	if !ok {
		return nil, codec.SchemaError(path, fmt.Errorf("%w: expected an array, found %s", bomerr.ErrInvalidValue, schema.DescribeJSON(raw)))
	}

	sliceType := f.Type
	if f.Pointer {
		sliceType = sliceType.Elem()
	}
	if len(arr) == 0 && !f.Pointer {
		return nil, nil
	}

	// the slice is allocated up front so that the item values handed out below stay valid
	list := reflect.MakeSlice(sliceType, len(arr), len(arr))
	var next []binding
	for i, item := range arr {
		itemPath := path.Item(i)
		if f.Kind == schema.ScalarListKind {
			if err := schema.SetNative(list.Index(i), item, cfg.Convention); err != nil {
				return nil, codec.SchemaError(itemPath, err)
			}
			continue
		}
		obj, err := object(item, itemPath)
		if err != nil {
			return nil, err
		}
		if f.Choice {
			if err := checkChoice(f.Elem, obj, itemPath); err != nil {
				return nil, err
			}
		}
		next = append(next, binding{raw: obj, value: list.Index(i), path: itemPath})
	}

	if f.Pointer {
		ptr := reflect.New(sliceType)
		ptr.Elem().Set(list)
		dst.Set(ptr)
	} else {
		dst.Set(list)
	}
	return next, nil
}

func object(raw interface{}, path *codec.Path) (map[string]interface{}, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, codec.SchemaError(path, fmt.Errorf("%w: expected an object, found %s", bomerr.ErrInvalidValue, schema.DescribeJSON(raw)))
	}
	return obj, nil
}

// checkChoice verifies that exactly one field of a choice item is set.
func checkChoice(t reflect.Type, obj map[string]interface{}, path *codec.Path) error {
	ent, err := schema.EntityOf(t)
	if err != nil {
		return err
	}
	var set []string
	for _, f := range ent.Fields {
		if obj[f.JSONName] != nil {
			set = append(set, f.JSONName)
		}
	}
	sort.Strings(set)
	switch len(set) {
	case 1:
		return nil
	case 0:
		return codec.SchemaError(path, fmt.Errorf("%w: one of %s must be set", bomerr.ErrMissingField, strings.Join(ent.JSONNames(), ", ")))
	}
	return codec.SchemaError(path, fmt.Errorf("%w: only one of %s may be set", bomerr.ErrInvalidValue, strings.Join(set, ", ")))
}
