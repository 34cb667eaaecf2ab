package output_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/immocalc/realty-calculator/internal/output"
)

func TestGenerateReport_SingleFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	files, err := output.GenerateReport(&domain.Report{Title: "Empty"}, "csv", dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], "_csv.csv"))

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "Section,Label,Metric,Value\n", string(data))
}

func TestGenerateReport_All(t *testing.T) {
	files, err := output.GenerateReport(&domain.Report{Title: "Empty"}, "all", t.TempDir())
	require.NoError(t, err)
	require.Len(t, files, 4)
	var exts []string
	for _, f := range files {
		exts = append(exts, filepath.Ext(f))
	}
	assert.Equal(t, []string{".txt", ".csv", ".json", ".html"}, exts)
}

func TestGenerateReport_NilReport(t *testing.T) {
	_, err := output.GenerateReport(nil, "json", t.TempDir())
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	out, err := output.Render(&domain.Report{Title: "Hello"}, "json-pretty")
	require.NoError(t, err)
	assert.Contains(t, string(out), `"title": "Hello"`)

	_, err = output.Render(&domain.Report{}, "pdf")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}
