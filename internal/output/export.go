package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/moamenhredeen/oascurl/internal/models"
)

// Format represents the report format type
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ExportSummary exports the annotation summary to the specified format.
// The report goes to filePath, or to out when filePath is empty.
func ExportSummary(out io.Writer, summary models.Summary, format Format, filePath string) error {
	w, closer, err := getWriter(out, filePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	switch format {
	case FormatJSON:
		return exportJSON(w, summary)
	case FormatCSV:
		return exportCSV(w, summary)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// getWriter returns an io.Writer for output (out or file)
func getWriter(out io.Writer, filePath string) (io.Writer, io.Closer, error) {
	if filePath == "" {
		return out, nil, nil
	}

	f, err := os.Create(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

func exportJSON(w io.Writer, summary models.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func exportCSV(w io.Writer, summary models.Summary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"file", "path", "method", "operation_id", "kind", "index", "recreated",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, c := range summary.Changes {
		row := []string{
			summary.File,
			c.Path,
			c.Method,
			c.OperationID,
			string(c.Kind),
			strconv.Itoa(c.Index),
			strconv.FormatBool(c.Recreated),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseFormat parses a string into a Format, returning error if invalid
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'json' or 'csv'", s)
	}
}
