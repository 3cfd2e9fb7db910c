package bom

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/bomcodec/bomcodec/schema"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument(nil, []Component{}, nil, []Dependency{{Ref: "a"}})

	assert.Equal(t, Format, doc.BOMFormat)
	assert.Equal(t, SpecVersion, doc.SpecVersion)
	assert.Equal(t, 1, doc.Version)
	assert.Nil(t, doc.Metadata)

	require.True(t, strings.HasPrefix(doc.SerialNumber, "urn:uuid:"))
	_, err := uuid.Parse(doc.SerialNumber)
	assert.NoError(t, err)

	require.NotNil(t, doc.Components)
	assert.Empty(t, *doc.Components)
	assert.Nil(t, doc.Services)
	require.NotNil(t, doc.Dependencies)
	assert.Len(t, *doc.Dependencies, 1)

	other := NewDocument(nil, nil, nil, nil)
	assert.NotEqual(t, doc.SerialNumber, other.SerialNumber)
}

func TestDocument_NextVersion(t *testing.T) {
	doc := NewDocument(nil, nil, nil, nil)
	next := doc.NextVersion()

	assert.Equal(t, doc.SerialNumber, next.SerialNumber)
	assert.Equal(t, 2, next.Version)
	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, 3, next.NextVersion().Version)
}

func TestDocument_WithEnvelope(t *testing.T) {
	doc := &Document{SpecVersion: "1.1", Version: 4}
	actual := doc.WithEnvelope()

	assert.Equal(t, Format, actual.BOMFormat)
	assert.Equal(t, SpecVersion, actual.SpecVersion)
	assert.Equal(t, 4, actual.Version)
	assert.Equal(t, "1.1", doc.SpecVersion)
	assert.Empty(t, doc.BOMFormat)
}

func TestEntityDescriptors(t *testing.T) {
	// every model type must have a valid descriptor
	for _, v := range []interface{}{
		Document{}, Metadata{}, Tool{}, OrganizationalEntity{}, OrganizationalContact{}, AttachedText{},
		Component{}, Pedigree{}, Commit{}, IdentifiableAction{}, Patch{}, Diff{}, Issue{}, IssueSource{},
		Swid{}, Hash{}, LicenseChoice{}, License{}, ExternalReference{},
		Service{}, DataClassification{}, Dependency{},
	} {
		t.Run(reflect.TypeOf(v).Name(), func(t *testing.T) {
			_, err := schema.EntityOf(reflect.TypeOf(v))
			assert.NoError(t, err)
		})
	}
}

func TestEntityDescriptors_recursion(t *testing.T) {
	recursive := func(v interface{}) []string {
		var names []string
		for _, f := range schema.MustEntityOf(reflect.TypeOf(v)).Fields {
			if f.Recursive {
				names = append(names, f.JSONName)
			}
		}
		return names
	}

	assert.Equal(t, []string{"pedigree", "components"}, recursive(Component{}))
	assert.Equal(t, []string{"ancestors", "descendants", "variants"}, recursive(Pedigree{}))
	assert.Equal(t, []string{"services"}, recursive(Service{}))
	assert.Empty(t, recursive(Document{}))
}
