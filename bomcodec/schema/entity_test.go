package schema

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
)

type color int

const (
	noColor color = iota
	red
	green
)

var colors = NewEnum("color", map[color]Variant{
	red:   {Current: "red", Legacy: "RED"},
	green: {Current: "green"},
})

type leaf struct {
	Kind    color  `cdx:"kind,attr,required"`
	Content string `cdx:"content,chardata,required"`
}

type pick struct {
	Leaf *leaf  `cdx:"leaf"`
	Expr string `cdx:"expr"`
}

type node struct {
	ID       string     `cdx:"id,attr"`
	Name     string     `cdx:"name,required"`
	When     *time.Time `cdx:"when"`
	Count    *int       `cdx:"count"`
	Tags     []string   `cdx:"tags,xml=tags>tag"`
	Refs     []string   `cdx:"refs,xml=ref,itemattr=to"`
	Leaves   []leaf     `cdx:"leaves,xml=leaves>leaf"`
	Picks    *[]pick    `cdx:"picks,choice,emitempty"`
	Children []node     `cdx:"children,xml=children>node"`
	Parent   *holder    `cdx:"parent"`
	Format   string     `cdx:"format,required,xml=-"`
	Ignored  string     `cdx:"-"`
	Untagged string
}

type holder struct {
	Node *node `cdx:"node"`
}

func TestEntityOf(t *testing.T) {
	ent, err := EntityOf(reflect.TypeOf(&node{}))
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeOf(node{}), ent.Type)
	assert.Equal(t, -1, ent.CharData)
	assert.Equal(t, []string{"id", "name", "when", "count", "tags", "refs", "leaves", "picks", "children", "parent", "format"}, ent.JSONNames())

	id, ok := ent.FieldByAttribute("id")
	require.True(t, ok)
	assert.Equal(t, Attribute, id.Placement)
	assert.Equal(t, OmitEmpty, id.Emptiness)

	name, ok := ent.FieldByElement("name")
	require.True(t, ok)
	assert.True(t, name.Required)
	assert.Equal(t, AlwaysEmit, name.Emptiness)

	count, ok := ent.FieldByJSON("count")
	require.True(t, ok)
	assert.True(t, count.Pointer)
	assert.Equal(t, ScalarKind, count.Kind)

	tags, ok := ent.FieldByElement("tags")
	require.True(t, ok)
	assert.Equal(t, ScalarListKind, tags.Kind)
	assert.True(t, tags.Wrapped())
	assert.Equal(t, "tag", tags.ItemName())

	refs, ok := ent.FieldByElement("ref")
	require.True(t, ok)
	assert.False(t, refs.Wrapped())
	assert.Equal(t, "to", refs.ItemAttr)
	assert.Equal(t, "ref", refs.ItemName())

	picks, ok := ent.FieldByJSON("picks")
	require.True(t, ok)
	assert.True(t, picks.Choice)
	assert.True(t, picks.Wrapped())
	assert.Equal(t, EmitEmpty, picks.Emptiness)
	assert.Equal(t, ObjectListKind, picks.Kind)
	assert.Equal(t, reflect.TypeOf(pick{}), picks.Elem)

	format, ok := ent.FieldByJSON("format")
	require.True(t, ok)
	assert.True(t, format.JSONOnly)
	_, ok = ent.FieldByElement("format")
	assert.False(t, ok)

	_, ok = ent.FieldByJSON("Ignored")
	assert.False(t, ok)
	_, ok = ent.FieldByJSON("Untagged")
	assert.False(t, ok)

	again, err := EntityOf(reflect.TypeOf(node{}))
	require.NoError(t, err)
	assert.Same(t, ent, again)
}

func TestEntityOf_recursiveFields(t *testing.T) {
	ent := MustEntityOf(reflect.TypeOf(node{}))

	recursive := map[string]bool{}
	for _, f := range ent.Fields {
		if f.Recursive {
			recursive[f.JSONName] = true
		}
	}
	assert.Equal(t, map[string]bool{"children": true, "parent": true}, recursive)
}

func TestEntityOf_chardata(t *testing.T) {
	ent := MustEntityOf(reflect.TypeOf(leaf{}))
	require.Equal(t, 1, ent.CharData)
	assert.Equal(t, "content", ent.Fields[ent.CharData].JSONName)
}

func TestEntityOf_invalidDescriptors(t *testing.T) {
	type unknownOption struct {
		A string `cdx:"a,sometimes"`
	}
	type duplicateNames struct {
		A string `cdx:"a"`
		B string `cdx:"a"`
	}
	type chardataAndElements struct {
		A string `cdx:"a,chardata"`
		B string `cdx:"b"`
	}
	type nestedByValue struct {
		A leaf `cdx:"a"`
	}
	type requiredList struct {
		A []string `cdx:"a,required"`
	}
	type emitEmptyBare struct {
		A *[]string `cdx:"a,emitempty"`
	}
	type wrappedScalar struct {
		A string `cdx:"a,xml=a>b"`
	}
	type attributeObject struct {
		A *leaf `cdx:"a,attr"`
	}
	type choiceOfScalars struct {
		A []string `cdx:"a,choice"`
	}
	type manyProblems struct {
		A string   `cdx:"a,sometimes"`
		B []string `cdx:"b,required"`
		C leaf     `cdx:"c"`
	}

	cases := []struct {
		name     string
		value    interface{}
		problems int
	}{
		{name: "unknown option", value: unknownOption{}, problems: 1},
		{name: "duplicate names", value: duplicateNames{}, problems: 1},
		{name: "chardata and elements", value: chardataAndElements{}, problems: 1},
		{name: "nested entity by value", value: nestedByValue{}, problems: 1},
		{name: "required collection", value: requiredList{}, problems: 1},
		{name: "emitempty on a bare collection", value: emitEmptyBare{}, problems: 1},
		{name: "wrapped scalar", value: wrappedScalar{}, problems: 1},
		{name: "object attribute", value: attributeObject{}, problems: 1},
		{name: "choice of scalars", value: choiceOfScalars{}, problems: 1},
		{name: "every problem is reported", value: manyProblems{}, problems: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EntityOf(reflect.TypeOf(tc.value))
			require.Error(t, err)
			var merr *multierror.Error
			require.True(t, errors.As(err, &merr))
			assert.Len(t, merr.Errors, tc.problems)
			assert.Panics(t, func() { MustEntityOf(reflect.TypeOf(tc.value)) })
		})
	}

	_, err := EntityOf(reflect.TypeOf(""))
	assert.Error(t, err)
}

func TestEntity_ChosenField(t *testing.T) {
	ent := MustEntityOf(reflect.TypeOf(pick{}))

	chosen, err := ent.ChosenField(reflect.ValueOf(pick{Expr: "MIT"}))
	require.NoError(t, err)
	assert.Equal(t, "expr", chosen.JSONName)

	chosen, err = ent.ChosenField(reflect.ValueOf(pick{Leaf: &leaf{}}))
	require.NoError(t, err)
	assert.Equal(t, "leaf", chosen.JSONName)

	_, err = ent.ChosenField(reflect.ValueOf(pick{}))
	assert.ErrorIs(t, err, bomerr.ErrMissingField)

	_, err = ent.ChosenField(reflect.ValueOf(pick{Leaf: &leaf{}, Expr: "MIT"}))
	assert.ErrorIs(t, err, bomerr.ErrInvalidValue)
}
