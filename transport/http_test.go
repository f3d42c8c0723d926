package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telex-agents/fittip/a2a/schema"
	"github.com/telex-agents/fittip/agent"
	"github.com/telex-agents/fittip/tips"
)

type staticGenerator struct{}

func (staticGenerator) GenerateTip(ctx context.Context) string { return "static tip" }
func (staticGenerator) Chat(ctx context.Context, userID, utterance string) string {
	return "static chat"
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := tips.NewStore(zap.NewNop(), filepath.Join(t.TempDir(), "cache.json"), 7)
	dispatcher := agent.NewDispatcher(zap.NewNop(), store, staticGenerator{})
	handler := NewHandler(zap.NewNop(), dispatcher)

	mux := http.NewServeMux()
	handler.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postRPC(t *testing.T, srv *httptest.Server, body string) (*http.Response, schema.JSONRPCResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/rpc", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var rpcResp schema.JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	return resp, rpcResp
}

func sendBody(text string) string {
	return `{
		"jsonrpc": "2.0",
		"id": "req-1",
		"method": "message/send",
		"params": {
			"message": {
				"kind": "message",
				"messageId": "m-1",
				"role": "user",
				"parts": [{"kind": "text", "text": "` + text + `"}],
				"taskId": "t-1"
			}
		}
	}`
}

func TestRPCParseError(t *testing.T) {
	srv := newTestServer(t)
	resp, rpcResp := postRPC(t, srv, "{not json")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, schema.ErrorParseError, rpcResp.Error.Code)
	assert.Nil(t, rpcResp.ID)
}

func TestRPCInvalidVersion(t *testing.T) {
	srv := newTestServer(t)
	resp, rpcResp := postRPC(t, srv, `{"jsonrpc":"1.0","id":1,"method":"message/send"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, schema.ErrorInvalidRequest, rpcResp.Error.Code)
}

func TestRPCMethodNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, rpcResp := postRPC(t, srv, `{"jsonrpc":"2.0","id":7,"method":"tasks/cancel","params":{}}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, schema.ErrorMethodNotFound, rpcResp.Error.Code)
	assert.EqualValues(t, 7, rpcResp.ID)
}

func TestRPCMissingParams(t *testing.T) {
	srv := newTestServer(t)
	resp, rpcResp := postRPC(t, srv, `{"jsonrpc":"2.0","id":"x","method":"message/send"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, schema.ErrorInvalidParams, rpcResp.Error.Code)
}

func TestRPCUnknownPartKindRejected(t *testing.T) {
	srv := newTestServer(t)
	body := `{
		"jsonrpc": "2.0",
		"id": "req-2",
		"method": "message/send",
		"params": {"message": {"role": "user", "parts": [{"kind": "video", "url": "x"}]}}
	}`
	resp, rpcResp := postRPC(t, srv, body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, schema.ErrorInvalidParams, rpcResp.Error.Code)
}

func TestRPCEmptyPartsIsClientError(t *testing.T) {
	srv := newTestServer(t)
	body := `{
		"jsonrpc": "2.0",
		"id": "req-3",
		"method": "message/send",
		"params": {"message": {"role": "user", "parts": []}}
	}`
	resp, rpcResp := postRPC(t, srv, body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "never a server error")
	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, schema.ErrorInvalidParams, rpcResp.Error.Code)
	assert.EqualValues(t, "req-3", rpcResp.ID)
}

func TestRPCMessageSendSuccess(t *testing.T) {
	srv := newTestServer(t)
	resp, rpcResp := postRPC(t, srv, sendBody("daily tip please"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Nil(t, rpcResp.Error)
	assert.EqualValues(t, "req-1", rpcResp.ID, "inbound id is echoed")

	raw, err := json.Marshal(rpcResp.Result)
	require.NoError(t, err)
	var task schema.Task
	require.NoError(t, json.Unmarshal(raw, &task))

	assert.Equal(t, "task", task.Kind)
	assert.Equal(t, schema.TaskStateCompleted, task.Status.State)
	require.NotNil(t, task.Status.Message)
	assert.Equal(t, "static tip", task.Status.Message.Parts[0].Text.Text)
	require.Len(t, task.Artifacts, 1)
	assert.Equal(t, "static tip", task.Artifacts[0].Parts[0].Text.Text)
}

func TestRPCRejectsGet(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/rpc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRootStatus(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "POST /rpc", status["rpc_endpoint"])
}

func TestManifest(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/manifest")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var m Manifest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.NotEmpty(t, m.Name)
	assert.NotEmpty(t, m.Version)
}
