package jsoncodec

import (
	"fmt"
	"io"
	"reflect"

	"github.com/ohler55/ojg/oj"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
	"github.com/anchore/bomcodec/bomcodec/codec"
	"github.com/anchore/bomcodec/bomcodec/schema"
)

// Config describes the JSON dialect of a document.
type Config struct {
	// Root names the document in field paths of reported errors.
	Root string
	// Convention selects the enumeration strings written by the encoder and the extra strings accepted by the
	// decoder.
	Convention schema.Convention
	// Pretty indents nested values by two spaces.
	Pretty bool
}

// pending is an entity whose fields still have to be copied into its JSON object.
type pending struct {
	value reflect.Value
	out   map[string]interface{}
	path  *codec.Path
}

// Encode writes v, a struct or pointer to struct described by cdx tags, as a JSON document. Object keys are
// written in sorted order.
func Encode(w io.Writer, v interface{}, cfg Config) error {
	root := reflect.ValueOf(v)
	for root.Kind() == reflect.Ptr {
		if root.IsNil() {
			return fmt.Errorf("unable to encode a nil document")
		}
		root = root.Elem()
	}

	tree, err := Tree(root, cfg)
	if err != nil {
		return err
	}

	opts := oj.DefaultOptions
	opts.Sort = true
	opts.Indent = 0
	if cfg.Pretty {
		opts.Indent = 2
	}

	out := codec.NewWriter(w)
	_, err = io.WriteString(out, oj.JSON(tree, &opts)+"\n")
	return out.Classify(err)
}

// Tree renders the struct value root as a generic JSON tree (maps, slices and primitives).
func Tree(root reflect.Value, cfg Config) (map[string]interface{}, error) {
	top := make(map[string]interface{})
	stack := []pending{{value: root, out: top, path: codec.RootPath(cfg.Root)}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ent, err := schema.EntityOf(p.value.Type())
		if err != nil {
			return nil, err
		}

		for i := range ent.Fields {
			f := &ent.Fields[i]
			path := p.path.Field(f.JSONName)
			switch f.Kind {
			case schema.ScalarKind:
				value, present, err := f.NativeValue(p.value, cfg.Convention)
				if err != nil {
					return nil, codec.SchemaError(path, err)
				}
				if present {
					p.out[f.JSONName] = value
				}

			case schema.ObjectKind:
				value := p.value.Field(f.Index)
				if value.IsNil() {
					if f.Required {
						return nil, codec.SchemaError(path, bomerr.ErrMissingField)
					}
					continue
				}
				child := make(map[string]interface{})
				p.out[f.JSONName] = child
				stack = append(stack, pending{value: value.Elem(), out: child, path: path})

			default:
				list, present := f.List(p.value)
				if !present || (list.Len() == 0 && f.Emptiness != schema.EmitEmpty) {
					continue
				}
				items := make([]interface{}, list.Len())
				for j := 0; j < list.Len(); j++ {
					itemPath := path.Item(j)
					item := list.Index(j)
					if f.Kind == schema.ScalarListKind {
						value, _, err := schema.Native(item, cfg.Convention)
						if err != nil {
							return nil, codec.SchemaError(itemPath, err)
						}
						items[j] = value
						continue
					}
					if f.Choice {
						itemEnt, err := schema.EntityOf(f.Elem)
						if err != nil {
							return nil, err
						}
						if _, err := itemEnt.ChosenField(item); err != nil {
							return nil, codec.SchemaError(itemPath, err)
						}
					}
					child := make(map[string]interface{})
					items[j] = child
					stack = append(stack, pending{value: item, out: child, path: itemPath})
				}
				p.out[f.JSONName] = items
			}
		}
	}
	return top, nil
}
