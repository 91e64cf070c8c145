package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthsim/internal/usecase/seeder"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "wealthsim.db"))
}

func TestProjectCmd_JSON(t *testing.T) {
	out, err := runCmd(t, "project", "--rate", "0.05", "--start", "2024", "--end", "2025", "--json")
	require.NoError(t, err)

	var points []map[string]json.Number
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	require.Len(t, points, 2)
	assert.Equal(t, json.Number("2024"), points[0]["year"])
	assert.Equal(t, json.Number("16800.00"), points[0]["totalValue"])
	assert.Equal(t, json.Number("23940.00"), points[1]["totalValue"])
}

func TestProjectCmd_Text(t *testing.T) {
	out, err := runCmd(t, "project", "--rate", "0.05", "--start", "2024", "--end", "2025")
	require.NoError(t, err)

	assert.Contains(t, out, "16,800.00")
	assert.Contains(t, out, "final value 23,940")
}

func TestProjectCmd_EmptyRange(t *testing.T) {
	out, err := runCmd(t, "project", "--start", "2030", "--end", "2029")
	require.NoError(t, err)
	assert.Contains(t, out, "empty projection")
}

func TestProjectCmd_InvalidRate(t *testing.T) {
	_, err := runCmd(t, "project", "--rate", "-0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate")
}

func TestChartCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")

	out, err := runCmd(t, "chart", "--rate", "0.04", "--start", "2025", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	img, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
}

func TestStoreCommands(t *testing.T) {
	useSQLite(t)

	out, err := runCmd(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema ready (sqlite)")

	out, err = runCmd(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no simulations")

	_, err = runCmd(t, "seed")
	require.NoError(t, err)

	out, err = runCmd(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline")
	assert.Contains(t, out, "Conservative")

	baseline := seeder.DEMO_BASELINE_SIMULATION.String()
	missing := "00000000-0000-0000-0000-00000000dead"
	out, err = runCmd(t, "compare", baseline, missing, "--json")
	require.NoError(t, err)

	var results map[string][]map[string]json.Number
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 1)
	assert.Contains(t, results, baseline)

	out, err = runCmd(t, "compare", baseline, missing)
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline")
	assert.Contains(t, out, missing+"  not found")
}

func TestCompareCmd_InvalidID(t *testing.T) {
	useSQLite(t)

	_, err := runCmd(t, "compare", "not-an-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")
}
