package output

import (
	"bytes"
	"io"
	"os"
	"strings"

	apperrors "github.com/moamenhredeen/oascurl/internal/errors"
	"github.com/moamenhredeen/oascurl/internal/parser"
	"go.yaml.in/yaml/v3"
)

// WriteDocument serializes doc and overwrites filePath with the result.
// The document is fully encoded before the file is touched.
func WriteDocument(doc *parser.Document, filePath string, indent int) error {
	var buf bytes.Buffer
	if err := EncodeDocument(&buf, doc, indent); err != nil {
		return apperrors.WrapCause(apperrors.ErrWrite, filePath, err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(filePath); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(filePath, buf.Bytes(), mode); err != nil {
		return apperrors.WrapCause(apperrors.ErrWrite, filePath, err)
	}
	return nil
}

// EncodeDocument writes doc to w in block style. Key order is kept as
// parsed and strings holding a newline or backslash become literal blocks.
func EncodeDocument(w io.Writer, doc *parser.Document, indent int) error {
	root := doc.Root()
	normalize(root, false)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(indent)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

// normalize clears flow style on collections and switches multi-line or
// backslash-bearing string values to literal style. Mapping keys keep
// their style since a literal block cannot be a simple key.
func normalize(n *yaml.Node, isKey bool) {
	if n == nil {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		n.Style &^= yaml.FlowStyle
		for _, c := range n.Content {
			normalize(c, false)
		}
	case yaml.MappingNode:
		n.Style &^= yaml.FlowStyle
		for i, c := range n.Content {
			normalize(c, i%2 == 0)
		}
	case yaml.ScalarNode:
		if !isKey && n.ShortTag() == "!!str" && strings.ContainsAny(n.Value, "\n\\") {
			n.Style = yaml.LiteralStyle
		}
	}
}
