package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

func generate(t *testing.T, cfg experiment.Config) *experiment.Result {
	t.Helper()
	res, err := experiment.Generate(context.Background(), experiment.NewRegistry(), cfg)
	require.NoError(t, err)
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	res := generate(t, experiment.Config{
		Algorithm: "binary_search",
		Input:     []int{64, 34, 25, 12, 22, 11, 90},
		Target:    trace.TargetOf(22),
	})

	runID, err := st.Save(res)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "binary_search_"), runID)
	assert.Len(t, runID, len("binary_search_")+8)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "binary_search", meta.Algorithm)
	assert.Equal(t, len(res.Trace), meta.Steps)
	require.NotNil(t, meta.Target)
	assert.Equal(t, 22, *meta.Target)
	assert.Equal(t, res.Metrics["comparisons"], meta.Metrics["comparisons"])
	assert.Equal(t, res.Config, meta.Config())

	tr, err := st.LoadTrace(runID)
	require.NoError(t, err)
	assert.Equal(t, res.Trace, tr)
}

func TestStoreSortRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	res := generate(t, experiment.Config{Algorithm: "bubble_sort", Input: []int{3, 1, 2}})

	runID, err := st.Save(res)
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Nil(t, meta.Target)

	tr, err := st.LoadTrace(runID)
	require.NoError(t, err)
	assert.Equal(t, res.Trace, tr)
	assert.NoError(t, trace.Validate(tr))
}

func TestStoreListSorted(t *testing.T) {
	st := New(t.TempDir())

	first, err := st.Save(generate(t, experiment.Config{Algorithm: "bubble_sort", Input: []int{2, 1}}))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := st.Save(generate(t, experiment.Config{Algorithm: "binary_search", Input: []int{1}, Target: trace.TargetOf(1)}))
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(st.baseDir, "junk"), 0755))

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("bubble_sort_deadbeef")
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = st.LoadTrace("bubble_sort_deadbeef")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestStoreSaveRejectsEmpty(t *testing.T) {
	_, err := New(t.TempDir()).Save(&experiment.Result{})
	assert.ErrorIs(t, err, trace.ErrEmptyTrace)
}

func TestStoreSaveRemovesPartialRun(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	res := generate(t, experiment.Config{Algorithm: "bubble_sort", Input: []int{2, 1}})

	// A directory where the steps table belongs makes the second write fail
	runID := "bubble_sort_deadbeef"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, runID, stepsFile), 0755))

	err := st.saveAs(runID, res)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, runID))
	assert.True(t, os.IsNotExist(statErr), "partial run directory should be removed")

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(strings.Join(stepsHeader, ",") + "\n"))
	assert.ErrorIs(t, err, trace.ErrEmptyTrace)

	bad := strings.Join(stepsHeader, ",") + "\n0,init,1,,,,1 x,Initializing\n"
	_, err = ReadCSV(strings.NewReader(bad))
	var stepErr *trace.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 0, stepErr.Index)
}

func TestExportJSON(t *testing.T) {
	res := generate(t, experiment.Config{Algorithm: "binary_search", Input: []int{5, 3, 1}, Target: trace.TargetOf(99)})

	var buf bytes.Buffer
	require.NoError(t, ExportJSONTo(&buf, res))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "binary_search", data.Algorithm)
	assert.Equal(t, []int{5, 3, 1}, data.Input)
	assert.Len(t, data.Steps, len(res.Trace))
	assert.Nil(t, data.Steps[len(data.Steps)-1].Found)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, ExportJSON(path, res))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"highlights"`)
}
