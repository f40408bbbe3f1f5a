package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	apperrors "github.com/moamenhredeen/oascurl/internal/errors"
	"go.yaml.in/yaml/v3"
)

// Document is an OpenAPI document held as a YAML node tree so that key
// order, comments and scalar styles survive a rewrite
type Document struct {
	path  string
	root  *yaml.Node
	paths *yaml.Node
}

// ParseFile reads and parses the spec document at filePath
func ParseFile(filePath string) (*Document, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrFileNotFound, filePath)
		}
		return nil, apperrors.WrapCause(apperrors.ErrRead, filePath, err)
	}
	if info.IsDir() {
		return nil, apperrors.Wrap(apperrors.ErrRead, fmt.Sprintf("%s is a directory", filePath))
	}
	if info.Size() == 0 {
		return nil, apperrors.Wrap(apperrors.ErrEmptyInput, filePath)
	}

	specBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, apperrors.WrapCause(apperrors.ErrRead, filePath, err)
	}

	doc, err := Parse(specBytes)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, filePath)
	}
	doc.path = filePath
	return doc, nil
}

// Parse parses YAML content into a Document. The content must hold a
// single document whose top-level value is a mapping with a paths key; a
// null paths value yields a document with no path items.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	err := dec.Decode(&root)
	switch {
	case errors.Is(err, io.EOF):
		// no document at all, reported as an empty shape below
	case err != nil:
		return nil, fmt.Errorf("%w: %w", apperrors.ErrParse, err)
	default:
		// A second document would be dropped on write
		var extra yaml.Node
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			if err != nil {
				return nil, fmt.Errorf("%w: %w", apperrors.ErrParse, err)
			}
			return nil, fmt.Errorf("%w: expected a single document", apperrors.ErrParse)
		}
	}

	top := documentContent(&root)
	if IsNull(top) {
		return nil, fmt.Errorf("%w: YAML file is empty or invalid", apperrors.ErrInvalidShape)
	}
	if !IsMapping(top) {
		return nil, fmt.Errorf("%w: YAML file does not contain a valid OpenAPI spec", apperrors.ErrInvalidShape)
	}

	doc := &Document{root: &root}

	pathsNode, ok := Lookup(top, "paths")
	if !ok {
		return nil, apperrors.ErrMissingPaths
	}

	switch {
	case IsNull(pathsNode):
		// nothing to annotate
	case IsMapping(pathsNode):
		doc.paths = Resolve(pathsNode)
	default:
		return nil, fmt.Errorf("%w: 'paths' is not a mapping", apperrors.ErrInvalidShape)
	}

	return doc, nil
}

// Path returns the file the document was read from
func (d *Document) Path() string {
	return d.path
}

// Root returns the document node used for serialization
func (d *Document) Root() *yaml.Node {
	return d.root
}

// Paths returns the paths mapping, or nil when the document has none
func (d *Document) Paths() *yaml.Node {
	return d.paths
}

// PathItems returns the path templates and their raw value nodes in
// document order
func (d *Document) PathItems() []KeyValue {
	return Pairs(d.paths)
}

func documentContent(root *yaml.Node) *yaml.Node {
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		return root.Content[0]
	}
	if root.Kind == 0 {
		return nil
	}
	return root
}
