package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
)

func TestParseConvention(t *testing.T) {
	cases := []struct {
		input    string
		expected Convention
		wantErr  require.ErrorAssertionFunc
	}{
		{input: "", expected: CurrentConvention, wantErr: require.NoError},
		{input: "current", expected: CurrentConvention, wantErr: require.NoError},
		{input: " Legacy ", expected: LegacyConvention, wantErr: require.NoError},
		{input: "upper", expected: CurrentConvention, wantErr: require.Error},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			actual, err := ParseConvention(tc.input)
			tc.wantErr(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestEnum_Format(t *testing.T) {
	s, err := colors.Format(red, CurrentConvention)
	require.NoError(t, err)
	assert.Equal(t, "red", s)

	s, err = colors.Format(red, LegacyConvention)
	require.NoError(t, err)
	assert.Equal(t, "RED", s)

	// no legacy variant: the current string is used
	s, err = colors.Format(green, LegacyConvention)
	require.NoError(t, err)
	assert.Equal(t, "green", s)

	_, err = colors.Format(color(42), CurrentConvention)
	assert.ErrorIs(t, err, bomerr.ErrUnknownEnumValue)

	_, err = colors.Format(noColor, CurrentConvention)
	assert.ErrorIs(t, err, bomerr.ErrUnknownEnumValue)
}

func TestEnum_Parse(t *testing.T) {
	cases := []struct {
		input      string
		convention Convention
		expected   color
		wantErr    bool
	}{
		{input: "red", convention: CurrentConvention, expected: red},
		{input: "red", convention: LegacyConvention, expected: red},
		{input: "RED", convention: LegacyConvention, expected: red},
		{input: "RED", convention: CurrentConvention, wantErr: true},
		{input: "green", convention: LegacyConvention, expected: green},
		{input: "Green", convention: LegacyConvention, wantErr: true},
		{input: "", convention: CurrentConvention, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.input+"/"+tc.convention.String(), func(t *testing.T) {
			actual, err := colors.Parse(tc.input, tc.convention)
			if tc.wantErr {
				assert.ErrorIs(t, err, bomerr.ErrUnknownEnumValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestEnum_Values(t *testing.T) {
	assert.Equal(t, []color{red, green}, colors.Values())
	assert.Equal(t, "red", colors.String(red))
	assert.Equal(t, "color(7)", colors.String(color(7)))
	assert.Equal(t, "color", colors.Name())
}

func TestNewEnum_rejectsInvalidTables(t *testing.T) {
	type shade int

	assert.Panics(t, func() {
		NewEnum("shade", map[shade]Variant{0: {Current: "none"}})
	})
	assert.Panics(t, func() {
		NewEnum("shade", map[shade]Variant{1: {Current: "dark"}, 2: {Current: "dark"}})
	})
}
