package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
)

// Convention selects which canonical string set is used when rendering enumerated values.
type Convention int

const (
	// CurrentConvention is the casing defined by the current schema revision.
	CurrentConvention Convention = iota
	// LegacyConvention is the casing used by early schema revisions and tooling.
	LegacyConvention
)

// Conventions lists every supported Convention.
var Conventions = []Convention{CurrentConvention, LegacyConvention}

var conventionNames = map[Convention]string{
	CurrentConvention: "current",
	LegacyConvention:  "legacy",
}

func (c Convention) String() string {
	if n, ok := conventionNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// ParseConvention returns the Convention named by the given user input.
func ParseConvention(userInput string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(userInput)) {
	case "", "current":
		return CurrentConvention, nil
	case "legacy":
		return LegacyConvention, nil
	}
	return CurrentConvention, fmt.Errorf("unknown enum convention %q (available: current, legacy)", userInput)
}

// Variant is the set of canonical strings of one enumerated value. An empty Legacy string means the legacy
// rendering is identical to the current one.
type Variant struct {
	Current string
	Legacy  string
}

func (v Variant) text(c Convention) string {
	if c == LegacyConvention && v.Legacy != "" {
		return v.Legacy
	}
	return v.Current
}

// enumCodec is the type-erased view of an Enum used by the reflection based codecs.
type enumCodec interface {
	Name() string
	formatValue(v reflect.Value, c Convention) (string, error)
	parseValue(s string, c Convention, dst reflect.Value) error
}

var enums sync.Map // reflect.Type -> enumCodec

func lookupEnum(t reflect.Type) (enumCodec, bool) {
	e, ok := enums.Load(t)
	if !ok {
		return nil, false
	}
	return e.(enumCodec), true
}

// Enum is the table of canonical strings for a closed enumeration type. The zero value of T is reserved to mean
// "not set" and has no canonical string.
type Enum[T ~int] struct {
	name     string
	variants map[T]Variant
	current  map[string]T
	legacy   map[string]T
}

// NewEnum creates the table for T and registers it so that struct fields of type T are rendered through it.
func NewEnum[T ~int](name string, variants map[T]Variant) *Enum[T] {
	e := &Enum[T]{
		name:     name,
		variants: variants,
		current:  make(map[string]T, len(variants)),
		legacy:   make(map[string]T, len(variants)),
	}
	for value, v := range variants {
		if value == 0 {
			panic(fmt.Sprintf("enum %s: the zero value is reserved", name))
		}
		if _, exists := e.current[v.Current]; exists {
			panic(fmt.Sprintf("enum %s: duplicate canonical string %q", name, v.Current))
		}
		e.current[v.Current] = value
		e.legacy[v.text(LegacyConvention)] = value
	}
	enums.Store(reflect.TypeOf(T(0)), e)
	return e
}

// Name is the human readable name of the enumeration (used in error messages).
func (e *Enum[T]) Name() string {
	return e.name
}

// Values returns every defined variant in ascending order.
func (e *Enum[T]) Values() []T {
	values := make([]T, 0, len(e.variants))
	for v := range e.variants {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

// String returns the current canonical string of v, or a descriptive placeholder for undefined values.
func (e *Enum[T]) String(v T) string {
	if variant, ok := e.variants[v]; ok {
		return variant.Current
	}
	return fmt.Sprintf("%s(%d)", e.name, int(v))
}

// Format returns the canonical string of v under the given convention.
func (e *Enum[T]) Format(v T, c Convention) (string, error) {
	variant, ok := e.variants[v]
	if !ok {
		return "", fmt.Errorf("%w: %s has no variant %d", bomerr.ErrUnknownEnumValue, e.name, int(v))
	}
	return variant.text(c), nil
}

// Parse returns the variant named by s. Current strings are always accepted, legacy strings only when the legacy
// convention is requested.
func (e *Enum[T]) Parse(s string, c Convention) (T, error) {
	if v, ok := e.current[s]; ok {
		return v, nil
	}
	if c == LegacyConvention {
		if v, ok := e.legacy[s]; ok {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not a valid %s", bomerr.ErrUnknownEnumValue, s, e.name)
}

func (e *Enum[T]) formatValue(v reflect.Value, c Convention) (string, error) {
	return e.Format(T(v.Int()), c)
}

func (e *Enum[T]) parseValue(s string, c Convention, dst reflect.Value) error {
	v, err := e.Parse(s, c)
	if err != nil {
		return err
	}
	dst.SetInt(int64(v))
	return nil
}
