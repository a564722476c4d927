package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"

	"bstviz"
)

var (
	errInvalidInput = errors.New("invalid input")
	errNotFound     = errors.New("not found")
)

type valueRequest struct {
	Value json.RawMessage `json:"value"`
}

type operationResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	TreeState      bstviz.Snapshot `json:"tree_state"`
	OperationSteps []bstviz.Step   `json:"operation_steps"`
}

type treeStateResponse struct {
	TreeState      bstviz.Snapshot `json:"tree_state"`
	OperationSteps []bstviz.Step   `json:"operation_steps"`
}

type traversalResponse struct {
	Traversal []int           `json:"traversal"`
	TreeState bstviz.Snapshot `json:"tree_state"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

var endpoints = map[string]string{
	"GET /tree":                      "Get current tree state",
	"POST /tree/insert":              "Insert a value",
	"POST /tree/delete":              "Delete a value",
	"POST /tree/search":              "Search for a value",
	"GET /tree/traversal/inorder":    "Get inorder traversal",
	"GET /tree/traversal/preorder":   "Get preorder traversal",
	"GET /tree/traversal/postorder":  "Get postorder traversal",
	"GET /tree/traversal/levelorder": "Get level-order traversal",
	"POST /tree/clear":               "Clear the tree",
	"GET /tree/height":               "Get tree height",
	"GET /tree/size":                 "Get tree size",
	"GET /tree/random":               "Generate a random tree",
	"GET /tree/render":               "Render the tree as ascii or dot",
}

func (srv *Server) handIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Binary Search Tree API",
		"version":   Version,
		"endpoints": endpoints,
	})
}

func (srv *Server) handTree(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	writeJSON(w, http.StatusOK, treeStateResponse{
		TreeState:      srv.tree.Snapshot(),
		OperationSteps: srv.tree.LastSteps(),
	})
}

// decodeValue reads {"value": <int>} from the request body.
func decodeValue(r *http.Request) (int, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		return 0, errors.Mark(errors.Wrap(err, "reading request body"), errInvalidInput)
	}
	var req valueRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return 0, errors.Mark(errors.Wrap(err, "decoding request body"), errInvalidInput)
	}
	if len(req.Value) == 0 || string(req.Value) == "null" {
		return 0, errors.Mark(errors.New("field \"value\" is required"), errInvalidInput)
	}
	var v int
	if err := json.Unmarshal(req.Value, &v); err != nil {
		return 0, errors.Mark(errors.Newf("field \"value\" must be an integer, got %s", req.Value), errInvalidInput)
	}
	return v, nil
}

// valueOp runs op on the tree and renders the outcome with one of two
// messages. A false outcome is a normal response, not an error.
func (srv *Server) valueOp(w http.ResponseWriter, r *http.Request, op func(int) bool, okMsg, failMsg string) {
	v, err := decodeValue(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	ok := op(v)
	msg := failMsg
	if ok {
		msg = okMsg
	}
	writeJSON(w, http.StatusOK, operationResponse{
		Success:        ok,
		Message:        fmt.Sprintf(msg, v),
		TreeState:      srv.tree.Snapshot(),
		OperationSteps: srv.tree.LastSteps(),
	})
}

func (srv *Server) handInsert(w http.ResponseWriter, r *http.Request) {
	srv.valueOp(w, r, srv.tree.Insert, "Value %d inserted successfully", "Value %d already exists")
}

func (srv *Server) handDelete(w http.ResponseWriter, r *http.Request) {
	srv.valueOp(w, r, srv.tree.Delete, "Value %d deleted successfully", "Value %d not found")
}

func (srv *Server) handSearch(w http.ResponseWriter, r *http.Request) {
	srv.valueOp(w, r, srv.tree.Search, "Value %d found", "Value %d not found")
}

func (srv *Server) handTraversal(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("order")
	order, err := bstviz.ParseOrder(name)
	if err != nil {
		srv.writeError(w, errors.Mark(err, errNotFound))
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	writeJSON(w, http.StatusOK, traversalResponse{
		Traversal: srv.tree.Traverse(order),
		TreeState: srv.tree.Snapshot(),
	})
}

func (srv *Server) handClear(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.tree.Clear()
	writeJSON(w, http.StatusOK, operationResponse{
		Success:        true,
		Message:        "Tree cleared successfully",
		TreeState:      srv.tree.Snapshot(),
		OperationSteps: []bstviz.Step{},
	})
}

func (srv *Server) handHeight(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"height":     srv.tree.Height(),
		"tree_state": srv.tree.Snapshot(),
	})
}

func (srv *Server) handSize(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"size":       srv.tree.Size(),
		"tree_state": srv.tree.Snapshot(),
	})
}

func (srv *Server) handRandom(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	values := srv.randomValues()
	srv.tree.Clear()
	for _, v := range values {
		srv.tree.Insert(v)
	}
	writeJSON(w, http.StatusOK, operationResponse{
		Success:        true,
		Message:        fmt.Sprintf("Random tree generated with %d values", len(values)),
		TreeState:      srv.tree.Snapshot(),
		OperationSteps: []bstviz.Step{},
	})
}

// handRender returns the tree as text. Renderings are cached by snapshot
// fingerprint, which also serves as the ETag. The cache is guarded by srv.mu.
func (srv *Server) handRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "ascii"
	}
	var render func(bstviz.Snapshot) string
	contentType := "text/plain; charset=utf-8"
	switch format {
	case "ascii":
		render = bstviz.Snapshot.String
	case "dot":
		render = bstviz.Snapshot.Dot
		contentType = "text/vnd.graphviz; charset=utf-8"
	default:
		srv.writeError(w, errors.Mark(errors.Newf("unknown render format %q", format), errInvalidInput))
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	snap := srv.tree.Snapshot()
	fp := snap.Fingerprint()
	etag := `"` + strconv.FormatUint(fp, 16) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	key := renderKey{fingerprint: fp, format: format}
	out, ok := srv.renders.Get(key)
	if !ok {
		out = render(snap)
		srv.renders.Add(key, out)
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out+"\n")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	encoded, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

func (srv *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errInvalidInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errNotFound):
		status = http.StatusNotFound
	default:
		srv.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Detail: err.Error()})
}
