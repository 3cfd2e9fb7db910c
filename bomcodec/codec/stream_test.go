package codec

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
)

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

func TestWriter_Classify(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, err := w.Write([]byte("ok"))
	require.NoError(t, err)
	assert.Nil(t, w.Classify(nil))

	encoderErr := errors.New("encoder failure")
	assert.Equal(t, encoderErr, w.Classify(encoderErr))

	short := NewWriter(shortWriter{})
	_, err = short.Write([]byte("four"))
	require.ErrorIs(t, err, io.ErrShortWrite)

	// later writes keep failing with the first error
	_, err = short.Write([]byte("more"))
	assert.ErrorIs(t, err, io.ErrShortWrite)

	classified := short.Classify(err)
	assert.ErrorIs(t, classified, bomerr.ErrWriteFailure)
	assert.ErrorIs(t, classified, io.ErrShortWrite)
}

type brokenReader struct {
	data io.Reader
	err  error
}

func (r *brokenReader) Read(p []byte) (int, error) {
	n, err := r.data.Read(p)
	if err == io.EOF {
		return n, r.err
	}
	return n, err
}

func TestReader_Classify(t *testing.T) {
	r := NewReader(strings.NewReader("data"))
	_, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Nil(t, r.Err)

	parseErr := errors.New("parse failure")
	assert.Equal(t, parseErr, r.Classify(parseErr))

	boom := errors.New("boom")
	broken := NewReader(&brokenReader{data: strings.NewReader("partial"), err: boom})
	_, err = io.ReadAll(broken)
	require.ErrorIs(t, err, boom)

	classified := broken.Classify(parseErr)
	assert.ErrorIs(t, classified, bomerr.ErrReadFailure)
	assert.ErrorIs(t, classified, boom)
	assert.NotErrorIs(t, classified, parseErr)
}

func TestPath_String(t *testing.T) {
	tests := []struct {
		name     string
		path     *Path
		expected string
	}{
		{name: "root", path: RootPath("bom"), expected: "bom"},
		{name: "unnamed root", path: RootPath("").Field("name"), expected: "name"},
		{name: "field", path: RootPath("bom").Field("components"), expected: "bom.components"},
		{name: "item", path: RootPath("bom").Field("components").Item(3), expected: "bom.components[3]"},
		{name: "nested", path: RootPath("bom").Field("components").Item(3).Field("hashes").Item(0).Field("alg"), expected: "bom.components[3].hashes[0].alg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.path.String())
		})
	}
}

func TestPath_sharesParent(t *testing.T) {
	components := RootPath("bom").Field("components")
	first := components.Item(0).Field("name")
	second := components.Item(1).Field("version")

	assert.Equal(t, "bom.components[0].name", first.String())
	assert.Equal(t, "bom.components[1].version", second.String())
	assert.Equal(t, "bom.components", components.String())
}

func TestSchemaError(t *testing.T) {
	err := SchemaError(RootPath("bom").Field("version"), bomerr.ErrInvalidValue)
	var se *bomerr.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "bom.version", se.Path)

	// the innermost path wins
	again := SchemaError(RootPath("bom"), err)
	require.True(t, errors.As(again, &se))
	assert.Equal(t, "bom.version", se.Path)
	assert.ErrorIs(t, again, bomerr.ErrSchemaViolation)
}
