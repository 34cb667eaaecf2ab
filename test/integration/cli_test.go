package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immocalc/realty-calculator/internal/calculation"
	"github.com/immocalc/realty-calculator/internal/config"
	"github.com/immocalc/realty-calculator/internal/output"
	"github.com/immocalc/realty-calculator/internal/snapshot"
)

func TestOutputGeneration(t *testing.T) {
	input, err := config.NewInputParser().LoadFromFile("../testdata/example_input.yaml")
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	report, err := engine.RunComparison(context.Background(), input.Comparison.Offers)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, format := range []string{"console", "console-lite", "json", "csv", "detailed-csv", "html"} {
		files, err := output.GenerateReport(report, format, dir)
		require.NoError(t, err, format)
		require.Len(t, files, 1)
		info, err := os.Stat(files[0])
		require.NoError(t, err)
		assert.Positive(t, info.Size(), format)
	}
}

func TestSnapshotRoundTripThroughFileStore(t *testing.T) {
	input, err := config.NewInputParser().LoadFromFile("../testdata/example_input.yaml")
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	report, err := engine.RunInvestment(*input.Investment)
	require.NoError(t, err)

	store, err := snapshot.NewFileStore(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)
	snap, err := snapshot.FromReport(report, nil, false)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), snap))

	loaded, err := store.Load(context.Background(), snap.ID)
	require.NoError(t, err)
	restored, err := snapshot.Restore(context.Background(), engine, loaded)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Drift(loaded, restored))

	data, err := output.Render(restored, "console")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "RENTAL INVESTMENT"))
}
