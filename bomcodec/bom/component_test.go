package bom

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tree() *Component {
	return &Component{
		Name: "root",
		Components: []Component{
			{
				Name: "a",
				Components: []Component{
					{Name: "a1"},
					{Name: "a2", Components: []Component{{Name: "a2x"}}},
				},
			},
			{Name: "b"},
			{Name: "c", Components: []Component{{Name: "c1"}}},
		},
	}
}

func TestComponent_Walk(t *testing.T) {
	cases := []struct {
		name     string
		skip     string
		expected []string
	}{
		{
			name:     "pre-order",
			expected: []string{"root@0", "a@1", "a1@2", "a2@2", "a2x@3", "b@1", "c@1", "c1@2"},
		},
		{
			name:     "skip children",
			skip:     "a",
			expected: []string{"root@0", "a@1", "b@1", "c@1", "c1@2"},
		},
		{
			name:     "skip root",
			skip:     "root",
			expected: []string{"root@0"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var visited []string
			tree().Walk(func(c *Component, depth int) bool {
				visited = append(visited, fmt.Sprintf("%s@%d", c.Name, depth))
				return c.Name != tc.skip
			})
			assert.Equal(t, tc.expected, visited)
		})
	}
}

func TestComponent_Walk_mutates(t *testing.T) {
	root := tree()
	root.Walk(func(c *Component, _ int) bool {
		c.Name = strings.ToUpper(c.Name)
		return true
	})
	assert.Equal(t, "A2X", root.Components[0].Components[1].Components[0].Name)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "operating-system", OperatingSystem.String())
	assert.Equal(t, "SHA3-512", SHA3_512.String())
	assert.Equal(t, "build-meta", BuildMetaReference.String())
	assert.Equal(t, "bi-directional", BiDirectional.String())
	assert.Equal(t, "base64", Base64.String())
	assert.Equal(t, "cherry-pick", CherryPickPatch.String())
	assert.Equal(t, "security", SecurityIssue.String())
	assert.Equal(t, "excluded", Excluded.String())

	assert.Len(t, Classifications.Values(), 8)
	assert.Len(t, HashAlgorithms.Values(), 12)
	assert.Len(t, ExternalReferenceTypes.Values(), 15)
}
