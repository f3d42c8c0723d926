package schema

import (
	"encoding/json"
	"fmt"
)

// JSONRPCVersion defines the JSON-RPC version used ("2.0").
const JSONRPCVersion = "2.0"

// MethodMessageSend is the only method this agent serves.
const MethodMessageSend = "message/send"

// JSONRPCRequest represents a JSON-RPC request object.
type JSONRPCRequest struct {
	// Specifies the JSON-RPC version, must be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// The name of the method to be invoked.
	Method string `json:"method"`
	// Parameters for the method.
	Params *json.RawMessage `json:"params,omitempty"`
	// Request identifier (string or number). If null/omitted, it's a notification.
	ID any `json:"id,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response object.
type JSONRPCResponse struct {
	// Specifies the JSON-RPC version, must be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// The result of the method invocation (on success). Mutually exclusive with Error.
	Result any `json:"result,omitempty"`
	// Error object if the request failed. Mutually exclusive with Result.
	Error *JSONRPCError `json:"error,omitempty"`
	// Must match the ID of the corresponding request. Null if it could not be
	// determined (e.g., parse error).
	ID any `json:"id"`
}

// JSONRPCError represents a JSON-RPC error object.
type JSONRPCError struct {
	// A number indicating the error type that occurred.
	Code int `json:"code"`
	// A string providing a short description of the error.
	Message string `json:"message"`
	// Optional additional information about the error.
	Data any `json:"data,omitempty"`
}

// Error implements the Go error interface for JSONRPCError.
func (e *JSONRPCError) Error() string {
	return fmt.Sprintf("JSON-RPC Error %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC error codes
const (
	ErrorParseError     = -32700 // Invalid JSON received.
	ErrorInvalidRequest = -32600 // JSON is not a valid Request object.
	ErrorMethodNotFound = -32601 // Method does not exist/is not available.
	ErrorInvalidParams  = -32602 // Invalid method parameter(s).
	ErrorInternalError  = -32603 // Internal JSON-RPC error.
	ErrorServerError    = -32000 // Implementation-defined server error.
)

func NewParseError(detail string) *JSONRPCError {
	return &JSONRPCError{Code: ErrorParseError, Message: "Parse error: " + detail}
}

func NewInvalidRequestError(detail string) *JSONRPCError {
	return &JSONRPCError{Code: ErrorInvalidRequest, Message: "Invalid Request: " + detail}
}

func NewMethodNotFoundError(method string) *JSONRPCError {
	return &JSONRPCError{
		Code:    ErrorMethodNotFound,
		Message: "Method not found",
		Data:    map[string]string{"method": method},
	}
}

func NewInvalidParamsError(detail string) *JSONRPCError {
	return &JSONRPCError{Code: ErrorInvalidParams, Message: "Invalid params: " + detail}
}

func NewInternalError() *JSONRPCError {
	return &JSONRPCError{Code: ErrorInternalError, Message: "Internal error"}
}

// IsClientError reports whether the code belongs to the caller-fault family,
// which the HTTP transport surfaces with a 4xx status.
func IsClientError(code int) bool {
	switch code {
	case ErrorParseError, ErrorInvalidRequest, ErrorMethodNotFound, ErrorInvalidParams:
		return true
	}
	return false
}
