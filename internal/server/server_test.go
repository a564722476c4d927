package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup creates a server with metrics and a fixed random seed.
func setup(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	srv, err := New(cfg, nil, prometheus.NewRegistry())
	require.NoError(t, err, "Failed to create server")
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type opResponse struct {
	Success        bool             `json:"success"`
	Message        string           `json:"message"`
	TreeState      map[string]any   `json:"tree_state"`
	OperationSteps []map[string]any `json:"operation_steps"`
}

func insertAll(t *testing.T, srv *Server, values ...int) {
	t.Helper()
	for _, v := range values {
		rec := do(t, srv, http.MethodPost, "/tree/insert", `{"value": `+itoa(v)+`}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func itoa(v int) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestIndex(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	rec := do(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[map[string]any](t, rec)
	assert.Equal(t, "Binary Search Tree API", got["message"])
	assert.Equal(t, Version, got["version"])
	assert.Contains(t, got["endpoints"], "POST /tree/insert")

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/nope", "").Code)
}

func TestInsertAndDuplicate(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	rec := do(t, srv, http.MethodPost, "/tree/insert", `{"value": 10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decode[opResponse](t, rec)
	assert.True(t, got.Success)
	assert.Equal(t, "Value 10 inserted successfully", got.Message)
	assert.Equal(t, 1.0, got.TreeState["size"])
	require.Len(t, got.OperationSteps, 1)
	assert.Equal(t, "insert_root", got.OperationSteps[0]["action"])

	rec = do(t, srv, http.MethodPost, "/tree/insert", `{"value": 10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got = decode[opResponse](t, rec)
	assert.False(t, got.Success)
	assert.Equal(t, "Value 10 already exists", got.Message)
	assert.Equal(t, 1.0, got.TreeState["size"])
}

func TestSearchAndDelete(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	insertAll(t, srv, 10, 5, 15, 3, 7, 12, 18)

	got := decode[opResponse](t, do(t, srv, http.MethodPost, "/tree/search", `{"value": 7}`))
	assert.True(t, got.Success)
	assert.Equal(t, "Value 7 found", got.Message)
	assert.Len(t, got.OperationSteps, 4)

	got = decode[opResponse](t, do(t, srv, http.MethodPost, "/tree/delete", `{"value": 10}`))
	assert.True(t, got.Success)
	assert.Equal(t, "Value 10 deleted successfully", got.Message)
	assert.Equal(t, 6.0, got.TreeState["size"])
	root := got.TreeState["root"].(map[string]any)
	assert.Equal(t, 12.0, root["value"])
	assert.Equal(t, "delete_two_children", got.OperationSteps[1]["action"])
	assert.Equal(t, 12.0, got.OperationSteps[1]["successor"])

	got = decode[opResponse](t, do(t, srv, http.MethodPost, "/tree/delete", `{"value": 10}`))
	assert.False(t, got.Success)
	assert.Equal(t, "Value 10 not found", got.Message)

	got = decode[opResponse](t, do(t, srv, http.MethodPost, "/tree/search", `{"value": 10}`))
	assert.False(t, got.Success)
	assert.Equal(t, "Value 10 not found", got.Message)
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	for _, body := range []string{
		``,
		`not json`,
		`{}`,
		`{"value": null}`,
		`{"value": "10"}`,
		`{"value": 1.5}`,
		`[10]`,
	} {
		rec := do(t, srv, http.MethodPost, "/tree/insert", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "body %q", body)
		assert.NotEmpty(t, decode[errorResponse](t, rec).Detail)
	}

	got := decode[map[string]any](t, do(t, srv, http.MethodGet, "/tree/size", ""))
	assert.Equal(t, 0.0, got["size"])
}

func TestTreeState(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	insertAll(t, srv, 10, 5)
	do(t, srv, http.MethodPost, "/tree/search", `{"value": 5}`)

	got := decode[struct {
		TreeState      map[string]any   `json:"tree_state"`
		OperationSteps []map[string]any `json:"operation_steps"`
	}](t, do(t, srv, http.MethodGet, "/tree", ""))
	assert.Equal(t, 2.0, got.TreeState["size"])
	assert.Equal(t, 1.0, got.TreeState["height"])
	assert.Equal(t, false, got.TreeState["is_empty"])
	assert.Len(t, got.OperationSteps, 3)
}

func TestTraversal(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	insertAll(t, srv, 10, 5, 15, 3, 7, 12, 18)

	tests := []struct {
		order string
		want  []int
	}{
		{"inorder", []int{3, 5, 7, 10, 12, 15, 18}},
		{"preorder", []int{10, 5, 3, 7, 15, 12, 18}},
		{"postorder", []int{3, 7, 5, 12, 18, 15, 10}},
		{"levelorder", []int{10, 5, 15, 3, 7, 12, 18}},
	}
	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/tree/traversal/"+tt.order, "")
			require.Equal(t, http.StatusOK, rec.Code)
			got := decode[struct {
				Traversal []int `json:"traversal"`
			}](t, rec)
			assert.Equal(t, tt.want, got.Traversal)
		})
	}

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/tree/traversal/sideways", "").Code)
}

func TestClearHeightSize(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	insertAll(t, srv, 10, 5, 15, 3)

	h := decode[map[string]any](t, do(t, srv, http.MethodGet, "/tree/height", ""))
	assert.Equal(t, 2.0, h["height"])
	s := decode[map[string]any](t, do(t, srv, http.MethodGet, "/tree/size", ""))
	assert.Equal(t, 4.0, s["size"])

	got := decode[opResponse](t, do(t, srv, http.MethodPost, "/tree/clear", ""))
	assert.True(t, got.Success)
	assert.Equal(t, "Tree cleared successfully", got.Message)
	assert.Equal(t, true, got.TreeState["is_empty"])
	assert.Equal(t, -1.0, got.TreeState["height"])
	assert.NotNil(t, got.OperationSteps)
	assert.Empty(t, got.OperationSteps)

	raw := do(t, srv, http.MethodGet, "/tree", "").Body.String()
	assert.Contains(t, raw, `"operation_steps":[]`)
	assert.Contains(t, raw, `"root":null`)
}

func TestRandom(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	for i := 0; i < 20; i++ {
		got := decode[opResponse](t, do(t, srv, http.MethodGet, "/tree/random", ""))
		assert.True(t, got.Success)
		assert.Empty(t, got.OperationSteps)

		size := int(got.TreeState["size"].(float64))
		assert.GreaterOrEqual(t, size, 5)
		assert.LessOrEqual(t, size, 15)
		assert.Equal(t, "Random tree generated with "+itoa(size)+" values", got.Message)

		trav := decode[struct {
			Traversal []int `json:"traversal"`
		}](t, do(t, srv, http.MethodGet, "/tree/traversal/inorder", ""))
		require.Len(t, trav.Traversal, size)
		for j, v := range trav.Traversal {
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, 20)
			if j > 0 {
				assert.Less(t, trav.Traversal[j-1], v)
			}
		}
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	insertAll(t, srv, 10, 5, 15)

	rec := do(t, srv, http.MethodGet, "/tree/render", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "│   ┌── 15\n└── 10\n    └── 5\n", rec.Body.String())
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/tree/render", nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	srv.ServeHTTP(cached, req)
	assert.Equal(t, http.StatusNotModified, cached.Code)

	rec = do(t, srv, http.MethodGet, "/tree/render?format=dot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "digraph")
	assert.Equal(t, 2, srv.renders.Len())

	insertAll(t, srv, 20)
	rec = do(t, srv, http.MethodGet, "/tree/render", "")
	assert.NotEqual(t, etag, rec.Header().Get("ETag"))

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, srv, http.MethodGet, "/tree/render?format=svg", "").Code)
}

func TestCORS(t *testing.T) {
	t.Parallel()

	srv := setup(t)

	req := httptest.NewRequest(http.MethodOptions, "/tree/insert", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")

	req = httptest.NewRequest(http.MethodOptions, "/tree/insert", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/tree", nil)
	req.Header.Set("Origin", "http://127.0.0.1:3000")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://127.0.0.1:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := setup(t)
	insertAll(t, srv, 1, 2, 3)

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `bstviz_operations_total{op="insert",outcome="true"} 3`)
	assert.Contains(t, body, "bstviz_tree_size 3")
	assert.Contains(t, body, "bstviz_tree_height 2")
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.RandomMin, cfg.RandomMax = 10, 1
	_, err := New(cfg, nil, nil)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.RenderCacheSize = 0
	_, err = New(cfg, nil, nil)
	assert.Error(t, err)

	srv, err := New(DefaultConfig(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/metrics", "").Code)
}
