package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	localkit "github.com/hazyhaar/stressmatch/pkg/kit"
	"github.com/hazyhaar/stressmatch/pkg/match"
	"github.com/hazyhaar/stressmatch/pkg/phrases"
)

// Options configures the router.
type Options struct {
	Logger *slog.Logger
	// MCPServer, when set, is exposed over streamable HTTP at /mcp.
	MCPServer *server.MCPServer
}

// NewRouter returns an http.Handler with all stressmatch API routes.
func NewRouter(reg *phrases.Registry, engine *match.Engine, opts Options) http.Handler {
	eps := newEndpoints(&service{reg: reg, engine: engine}, opts.Logger)
	mux := http.NewServeMux()
	h := &handler{
		match:      localkit.Endpoint(eps.match),
		matchBatch: localkit.Endpoint(eps.matchBatch),
		explain:    localkit.Endpoint(eps.explain),
		lists:      localkit.Endpoint(eps.lists),
		reg:        reg,
	}

	mux.HandleFunc("GET /v1/match/batch", methodNotAllowed) // prevent GET on batch
	mux.HandleFunc("POST /v1/match/batch", h.handleMatchBatch)
	mux.HandleFunc("GET /v1/match", h.handleMatch)
	mux.HandleFunc("GET /v1/stress/{phrase}", h.handleExplain)
	mux.HandleFunc("GET /v1/lists", h.handleLists)
	mux.HandleFunc("GET /v1/health", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	if opts.MCPServer != nil {
		mux.Handle("/mcp", server.NewStreamableHTTPServer(opts.MCPServer))
	}

	return requestID(cors(mux))
}

type handler struct {
	match      localkit.Endpoint
	matchBatch localkit.Endpoint
	explain    localkit.Endpoint
	lists      localkit.Endpoint
	reg        *phrases.Registry
}

// --- match single phrase ---

func (h *handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	phrase := r.URL.Query().Get("phrase")
	if phrase == "" {
		writeError(w, http.StatusBadRequest, "missing phrase")
		return
	}

	resp, err := h.match(r.Context(), &matchReq{
		Phrase: phrase,
		List:   r.URL.Query().Get("list"),
	})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- match batch ---

type httpBatchRequest struct {
	Phrases []string `json:"phrases"`
	List    string   `json:"list,omitempty"`
}

func (h *handler) handleMatchBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req httpBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.matchBatch(r.Context(), &matchBatchReq{
		Phrases: req.Phrases,
		List:    req.List,
	})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- explain ---

func (h *handler) handleExplain(w http.ResponseWriter, r *http.Request) {
	phrase := r.PathValue("phrase")
	if phrase == "" {
		writeError(w, http.StatusBadRequest, "missing phrase")
		return
	}

	resp, err := h.explain(r.Context(), &matchReq{
		Phrase: phrase,
		List:   r.URL.Query().Get("list"),
	})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- lists ---

func (h *handler) handleLists(w http.ResponseWriter, r *http.Request) {
	resp, err := h.lists(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status       string `json:"status"`
	Lists        int    `json:"lists"`
	TotalEntries int    `json:"total_entries"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		Lists:        h.reg.ListCount(),
		TotalEntries: h.reg.TotalEntries(),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeEndpointError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, phrases.ErrUnknownList):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, localkit.ErrPanic):
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
