package xmlcodec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
	"github.com/anchore/bomcodec/bomcodec/schema"
)

type note struct {
	Lang string `cdx:"lang,attr"`
	Body string `cdx:"body,chardata,required"`
}

type choice struct {
	Note *note `cdx:"note"`
	Ref  string `cdx:"ref"`
}

type shelf struct {
	Kind    string    `cdx:"kind,attr,required"`
	Count   *int      `cdx:"count,attr"`
	Label   string    `cdx:"label"`
	Tags    []string  `cdx:"tags,xml=tags>tag"`
	Refs    []string  `cdx:"refs,xml=link,itemattr=href"`
	Notes   []note    `cdx:"notes,xml=note"`
	Extras  *[]choice `cdx:"extras,choice,emitempty"`
	Shelves []shelf   `cdx:"shelves,xml=shelves>shelf"`
	Hidden  string    `cdx:"hidden,xml=-"`
}

const testNamespace = "urn:test:shelf"

var cfg = Config{Root: "shelf", Namespace: testNamespace}

func intRef(i int) *int {
	return &i
}

func encode(t *testing.T, v interface{}, c Config) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, v, c))
	return buf.String()
}

func TestEncode(t *testing.T) {
	value := shelf{
		Kind:   "top",
		Count:  intRef(0),
		Label:  "a < b",
		Tags:   []string{"x", "y"},
		Refs:   []string{"#1", "#2"},
		Notes:  []note{{Lang: "en", Body: "hi"}, {Body: ""}},
		Extras: &[]choice{{Ref: "r"}, {Note: &note{Body: "n"}}},
		Shelves: []shelf{
			{Kind: "inner"},
		},
		Hidden: "not in xml",
	}

	expected := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<shelf xmlns="urn:test:shelf" kind="top" count="0">` +
		`<label>a &lt; b</label>` +
		`<tags><tag>x</tag><tag>y</tag></tags>` +
		`<link href="#1"></link><link href="#2"></link>` +
		`<note lang="en">hi</note><note></note>` +
		`<extras><ref>r</ref><note>n</note></extras>` +
		`<shelves><shelf kind="inner"></shelf></shelves>` +
		`</shelf>`
	assert.Equal(t, expected, encode(t, &value, cfg))
}

func TestEncode_pretty(t *testing.T) {
	value := shelf{Kind: "top", Tags: []string{"x"}, Extras: &[]choice{}}
	c := cfg
	c.Pretty = true

	expected := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<shelf xmlns="urn:test:shelf" kind="top">` + "\n" +
		`  <tags>` + "\n" +
		`    <tag>x</tag>` + "\n" +
		`  </tags>` + "\n" +
		`  <extras></extras>` + "\n" +
		`</shelf>` + "\n"
	assert.Equal(t, expected, encode(t, value, c))
}

func TestEncode_prefix(t *testing.T) {
	c := cfg
	c.Prefix = "s"
	value := shelf{Kind: "top", Count: intRef(2), Notes: []note{{Lang: "en", Body: "hi"}}}

	expected := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<s:shelf xmlns:s="urn:test:shelf" kind="top" count="2"><s:note lang="en">hi</s:note></s:shelf>`
	assert.Equal(t, expected, encode(t, value, c))
}

func TestEncode_errors(t *testing.T) {
	var se *bomerr.SchemaError

	err := Encode(&bytes.Buffer{}, shelf{Kind: "top", Extras: &[]choice{{}}}, cfg)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "shelf.extras[0]", se.Path)
	assert.ErrorIs(t, err, bomerr.ErrMissingField)

	err = Encode(&bytes.Buffer{}, (*shelf)(nil), cfg)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	cases := []shelf{
		{Kind: "empty"},
		{Kind: "empty extras", Extras: &[]choice{}},
		{
			Kind:    "full",
			Count:   intRef(3),
			Label:   "  padded  ",
			Tags:    []string{"x"},
			Refs:    []string{"#1"},
			Notes:   []note{{Lang: "en", Body: "a & b"}},
			Extras:  &[]choice{{Note: &note{Body: "n"}}, {Ref: "r"}},
			Shelves: []shelf{{Kind: "a", Shelves: []shelf{{Kind: "b"}}}, {Kind: "c"}},
		},
	}

	for _, expected := range cases {
		for _, pretty := range []bool{false, true} {
			c := cfg
			c.Pretty = pretty
			data := encode(t, expected, c)

			var actual shelf
			require.NoError(t, Decode(strings.NewReader(data), &actual, c))
			if d := cmp.Diff(expected, actual); d != "" {
				t.Errorf("%s round trip mismatch (-want +got):\n%s", expected.Kind, d)
			}
		}
	}
}

func TestDecode_errors(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		wantErr  error
		wantPath string
	}{
		{
			name:     "missing required attribute",
			input:    `<shelf xmlns="urn:test:shelf"/>`,
			wantErr:  bomerr.ErrMissingField,
			wantPath: "shelf.kind",
		},
		{
			name:     "missing nested required attribute",
			input:    `<shelf xmlns="urn:test:shelf" kind="k"><shelves><shelf/></shelves></shelf>`,
			wantErr:  bomerr.ErrMissingField,
			wantPath: "shelf.shelves[0].kind",
		},
		{
			name:     "invalid attribute",
			input:    `<shelf xmlns="urn:test:shelf" kind="k" count="many"/>`,
			wantErr:  bomerr.ErrInvalidValue,
			wantPath: "shelf.count",
		},
		{
			name:    "wrong namespace",
			input:   `<shelf xmlns="urn:test:other" kind="k"/>`,
			wantErr: bomerr.ErrSchemaViolation,
		},
		{
			name:    "truncated",
			input:   `<shelf xmlns="urn:test:shelf" kind="k"><tags>`,
			wantErr: bomerr.ErrMalformedInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var actual shelf
			err := Decode(strings.NewReader(tc.input), &actual, cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.wantPath != "" {
				var se *bomerr.SchemaError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tc.wantPath, se.Path)
			}
		})
	}

	var actual shelf
	assert.Error(t, Decode(strings.NewReader(`<shelf/>`), actual, cfg))
}

func TestDecode_legacyEnumerations(t *testing.T) {
	type level int
	levels := schema.NewEnum("level", map[level]schema.Variant{1: {Current: "high", Legacy: "HIGH"}})
	type gauge struct {
		Level level `cdx:"level,attr,required"`
	}

	c := Config{Root: "gauge", Namespace: testNamespace, Convention: schema.LegacyConvention}
	data := encode(t, gauge{Level: 1}, c)
	assert.Contains(t, data, `level="HIGH"`)

	var actual gauge
	require.NoError(t, Decode(strings.NewReader(data), &actual, c))
	assert.Equal(t, "high", levels.String(actual.Level))

	c.Convention = schema.CurrentConvention
	err := Decode(strings.NewReader(data), &actual, c)
	assert.ErrorIs(t, err, bomerr.ErrUnknownEnumValue)
}
