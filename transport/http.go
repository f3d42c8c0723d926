package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/telex-agents/fittip/a2a/schema"
	"github.com/telex-agents/fittip/agent"
)

// Manifest describes this agent to the platform.
type Manifest struct {
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	Author           string `json:"author"`
	Version          string `json:"version"`
}

// DefaultManifest is served on GET /manifest.
var DefaultManifest = Manifest{
	Name:             "AI Fitness Tip Agent",
	ShortDescription: "Provides daily fitness tips over the A2A JSON-RPC protocol.",
	Description: "An A2A agent that generates and serves AI-powered daily health and " +
		"fitness tips via JSON-RPC 2.0, with a day-scoped cache, bounded history and " +
		"domain-scoped chat.",
	Author:  "telex-agents",
	Version: "1.0.0",
}

// Handler serves the agent's HTTP surface: the single JSON-RPC POST endpoint
// plus the status and manifest endpoints.
type Handler struct {
	logger     *zap.Logger
	dispatcher *agent.Dispatcher
}

// NewHandler creates a Handler.
func NewHandler(logger *zap.Logger, dispatcher *agent.Dispatcher) *Handler {
	return &Handler{
		logger:     logger.Named("transport"),
		dispatcher: dispatcher,
	}
}

// Register attaches all routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/rpc", h.handleRPC)
	mux.HandleFunc("/manifest", h.handleManifest)
	mux.HandleFunc("/", h.handleRoot)
}

// handleRPC is the single JSON-RPC 2.0 endpoint. Parsing is the effective
// input-validation boundary: malformed bodies and envelopes surface as
// client-error RPC codes with a 4xx status; everything downstream answers
// with a structurally valid success envelope.
func (h *Handler) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, nil, schema.NewParseError("unable to read body"))
		return
	}

	var req schema.JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, nil, schema.NewParseError("invalid JSON"))
		return
	}
	if req.JSONRPC != schema.JSONRPCVersion {
		h.writeError(w, req.ID, schema.NewInvalidRequestError(`jsonrpc must be "2.0"`))
		return
	}
	if req.Method != schema.MethodMessageSend {
		h.writeError(w, req.ID, schema.NewMethodNotFoundError(req.Method))
		return
	}
	if req.Params == nil {
		h.writeError(w, req.ID, schema.NewInvalidParamsError("params are required"))
		return
	}

	var params schema.MessageSendParams
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		h.writeError(w, req.ID, schema.NewInvalidParamsError(err.Error()))
		return
	}

	task, rpcErr := h.dispatcher.HandleMessage(r.Context(), &params)
	if rpcErr != nil {
		h.writeError(w, req.ID, rpcErr)
		return
	}

	h.writeJSON(w, http.StatusOK, schema.JSONRPCResponse{
		JSONRPC: schema.JSONRPCVersion,
		Result:  task,
		ID:      req.ID,
	})
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":       "AI Fitness Tip Agent running",
		"rpc_endpoint": "POST /rpc",
	})
}

func (h *Handler) handleManifest(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, DefaultManifest)
}

func (h *Handler) writeError(w http.ResponseWriter, id any, rpcErr *schema.JSONRPCError) {
	status := http.StatusOK
	if schema.IsClientError(rpcErr.Code) {
		status = http.StatusBadRequest
	}
	h.logger.Debug("Returning RPC error",
		zap.Int("code", rpcErr.Code), zap.String("message", rpcErr.Message))
	h.writeJSON(w, status, schema.JSONRPCResponse{
		JSONRPC: schema.JSONRPCVersion,
		Error:   rpcErr,
		ID:      id,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
