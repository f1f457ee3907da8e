package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/24dai03-saifchaus/algonexus/internal/algorithms"
	"github.com/24dai03-saifchaus/algonexus/internal/cache"
	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
	"github.com/24dai03-saifchaus/algonexus/internal/logging"
)

func newTestServer(store cache.Store) (*Server, http.Handler) {
	s := New(experiment.NewRegistry(), store, logging.NewNop())
	return s, s.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(nil)
	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListAlgorithms(t *testing.T) {
	_, h := newTestServer(nil)
	w := do(t, h, http.MethodGet, "/algorithms", "")
	require.Equal(t, http.StatusOK, w.Code)

	var infos []algorithms.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "binary_search", infos[0].ID)
	assert.Equal(t, algorithms.Sorting, infos[1].Category)
}

func TestCode(t *testing.T) {
	_, h := newTestServer(nil)

	w := do(t, h, http.MethodGet, "/algorithms/bubble_sort/code?lang=python", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "python", body["language"])
	assert.Contains(t, body["code"], "def bubble_sort")

	w = do(t, h, http.MethodGet, "/algorithms/binary_search/code", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cpp")

	w = do(t, h, http.MethodGet, "/algorithms/bubble_sort/code?lang=cobol", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/algorithms/heap_sort/code", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported algorithm")
}

func TestCreateSortTrace(t *testing.T) {
	_, h := newTestServer(nil)
	w := do(t, h, http.MethodPost, "/traces", `{"algorithm":"Bubble Sort","input":"64, 34, 25, 12, 22, 11, 90"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TraceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bubble_sort", resp.Algorithm)
	assert.Nil(t, resp.Target)
	assert.True(t, resp.Succeeded)
	assert.False(t, resp.Cached)
	assert.Equal(t, []int{11, 12, 22, 25, 34, 64, 90}, resp.Steps.Final().Array)
	assert.Equal(t, 21.0, resp.Metrics["comparisons"])
}

func TestCreateSearchTrace(t *testing.T) {
	_, h := newTestServer(nil)
	w := do(t, h, http.MethodPost, "/traces", `{"algorithm":"binary_search","input":"64, 34, 25, 12, 22, 11, 90","target":"22"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TraceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Target)
	assert.Equal(t, 22, *resp.Target)
	assert.True(t, resp.Succeeded)
	require.True(t, resp.Steps.Final().HasFound())
	assert.Equal(t, 2, *resp.Steps.Final().Found)
}

func TestCreateTraceErrors(t *testing.T) {
	_, h := newTestServer(nil)

	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"unknown algorithm", `{"algorithm":"quick_sort","input":"3,1"}`, http.StatusNotFound, "unsupported algorithm"},
		{"empty sort dataset", `{"algorithm":"bubble_sort","input":"a, b"}`, http.StatusUnprocessableEntity, "empty dataset"},
		{"malformed body", `{"algorithm":`, http.StatusBadRequest, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/traces", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.msg)
		})
	}
}

func descending(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.Itoa(n - i)
	}
	return strings.Join(parts, ",")
}

func TestCreateTraceRejectsLargeDataset(t *testing.T) {
	_, h := newTestServer(nil)

	w := do(t, h, http.MethodPost, "/traces", `{"algorithm":"bubble_sort","input":"`+descending(400)+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "dataset too large")
	assert.Less(t, w.Body.Len(), 512, "rejection must not carry a trace")

	w = do(t, h, http.MethodPost, "/traces", `{"algorithm":"bubble_sort","input":"`+descending(DefaultMaxDatasetSize)+`"}`)
	assert.Equal(t, http.StatusOK, w.Code, "a dataset at the limit is served")
}

func TestCreateTraceCustomDatasetLimit(t *testing.T) {
	s := New(experiment.NewRegistry(), nil, logging.NewNop(), WithMaxDatasetSize(3))
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/traces", `{"algorithm":"binary_search","input":"1,2,3,4","target":"2"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/traces", `{"algorithm":"binary_search","input":"1,2,3","target":"2"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	out := do(t, h, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, out, "algonexus_trace_steps_count 1", "rejected requests are not counted")
}

func TestCreateTraceUsesCache(t *testing.T) {
	_, h := newTestServer(cache.NewMemory(8))
	body := `{"algorithm":"bubble_sort","input":"3, 2, 1"}`

	first := do(t, h, http.MethodPost, "/traces", body)
	second := do(t, h, http.MethodPost, "/traces", body)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var a, b TraceResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.False(t, a.Cached)
	assert.True(t, b.Cached)
	assert.Equal(t, a.Steps, b.Steps)
	assert.Equal(t, a.Metrics, b.Metrics)

	out := do(t, h, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, out, `algonexus_traces_generated_total{algorithm="bubble_sort"} 2`)
	assert.Contains(t, out, "algonexus_trace_cache_hits_total 1")
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newTestServer(nil)
	do(t, h, http.MethodPost, "/traces", `{"algorithm":"binary_search","input":"1,2,3","target":"2"}`)

	w := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.Contains(t, out, `algonexus_traces_generated_total{algorithm="binary_search"} 1`)
	assert.Contains(t, out, "algonexus_trace_steps_count 1")
	assert.Contains(t, out, "algonexus_trace_cache_hits_total 0")
}
