package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGetTemplate_All(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contains string
	}{
		{"fizzcheck.yaml", "FIZZCHECK_API_URL"},
		{"testdata.yaml", "inputs:"},
		{"mcp-config.json", "fizzcheck"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			content, err := GetTemplate(tt.name)
			require.NoError(t, err)
			assert.Contains(t, content, tt.contains)
		})
	}
}

func TestGetTemplate_Unknown(t *testing.T) {
	t.Parallel()
	_, err := GetTemplate("nonexistent.txt")
	assert.EqualError(t, err, `template "nonexistent.txt" not found`)
}

func TestListTemplates(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"fizzcheck.yaml", "mcp-config.json", "testdata.yaml"}, ListTemplates())
}

func TestTemplates_Parse(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"fizzcheck.yaml", "testdata.yaml"} {
		content, err := GetTemplate(name)
		require.NoError(t, err)
		var v map[string]any
		assert.NoError(t, yaml.Unmarshal([]byte(content), &v), "%s is not valid YAML", name)
	}

	content, err := GetTemplate("mcp-config.json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(content)), "mcp-config.json is not valid JSON")
}
