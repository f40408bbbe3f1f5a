package parser

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/moamenhredeen/oascurl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

const agentSpec = `openapi: 3.0.3
info:
  title: Agent API
  version: 0.1.0
paths:
  /agents:
    parameters:
      - name: limit
        in: query
    get:
      operationId: listAgents
    post:
      operationId: createAgent
  /health: {}
`

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agent-api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeSpec(t, agentSpec)

	doc, err := ParseFile(path)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, path, doc.Path())
	assert.Equal(t, yaml.DocumentNode, doc.Root().Kind)
	require.NotNil(t, doc.Paths())

	items := doc.PathItems()
	require.Len(t, items, 2)
	assert.Equal(t, "/agents", items[0].Key)
	assert.Equal(t, "/health", items[1].Key)
}

func TestParseFileNotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrFileNotFound))
	assert.True(t, apperrors.IsFatal(err))
}

func TestParseFileEmpty(t *testing.T) {
	_, err := ParseFile(writeSpec(t, ""))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrEmptyInput))
	assert.False(t, apperrors.IsFatal(err))
}

func TestParseFileDirectory(t *testing.T) {
	_, err := ParseFile(t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrRead))
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("paths:\n  /a: [unclosed\n"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrParse))
}

func TestParseMultipleDocuments(t *testing.T) {
	content := "openapi: 3.0.3\npaths:\n  /a:\n    get: {}\n---\nsecond: document\nkeep: me\n"

	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrParse))
	assert.Contains(t, err.Error(), "expected a single document")
	assert.True(t, apperrors.IsFatal(err))
}

func TestParseLeadingDocumentMarker(t *testing.T) {
	doc, err := Parse([]byte("---\nopenapi: 3.0.3\npaths:\n  /a:\n    get: {}\n"))
	require.NoError(t, err)
	assert.Len(t, doc.PathItems(), 1)
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"null document", "null\n", apperrors.ErrInvalidShape},
		{"comment only", "# downloaded later\n", apperrors.ErrInvalidShape},
		{"top-level sequence", "- a\n- b\n", apperrors.ErrInvalidShape},
		{"top-level scalar", "just text\n", apperrors.ErrInvalidShape},
		{"missing paths", "info:\n  title: x\n", apperrors.ErrMissingPaths},
		{"paths is a list", "paths:\n  - /a\n", apperrors.ErrInvalidShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseNullPaths(t *testing.T) {
	doc, err := Parse([]byte("openapi: 3.0.3\npaths:\n"))
	require.NoError(t, err)

	assert.Nil(t, doc.Paths())
	assert.Empty(t, doc.PathItems())
}

func TestParseAnchoredPaths(t *testing.T) {
	content := `shared: &p
  /a:
    get: {}
paths: *p
`
	doc, err := Parse([]byte(content))
	require.NoError(t, err)

	items := doc.PathItems()
	require.Len(t, items, 1)
	assert.Equal(t, "/a", items[0].Key)
}
