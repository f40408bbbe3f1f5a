package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/moamenhredeen/oascurl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() models.Summary {
	s := models.Summary{File: "agent-api.yaml", TotalPaths: 2}
	s.AddChange(models.Change{Path: "/agents", Method: "GET", OperationID: "listAgents", Kind: models.ChangeAdded})
	s.AddChange(models.Change{Path: "/agents/{id}", Method: "DELETE", Kind: models.ChangeUpdated, Index: 2})
	return s
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestExportSummaryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, ExportSummary(io.Discard, sampleSummary(), FormatJSON, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.Summary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.Added)
	assert.Equal(t, 1, decoded.Updated)
	require.Len(t, decoded.Changes, 2)
	assert.Equal(t, "listAgents", decoded.Changes[0].OperationID)
}

func TestExportSummaryToWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportSummary(&buf, sampleSummary(), FormatCSV, ""))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "listAgents", rows[1][3])
}

func TestExportSummaryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, ExportSummary(io.Discard, sampleSummary(), FormatCSV, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "operation_id", rows[0][3])
	assert.Equal(t, []string{"agent-api.yaml", "/agents/{id}", "DELETE", "", "updated", "2", "false"}, rows[2])
}

func TestExportSummaryUnsupportedFormat(t *testing.T) {
	err := ExportSummary(io.Discard, sampleSummary(), Format("xml"), filepath.Join(t.TempDir(), "r"))
	assert.Error(t, err)
}
