package lsp

import (
	"errors"
	"fmt"
)

// Standard errors returned by the server.
var (
	// ErrShutdown indicates the connection has been closed.
	ErrShutdown = errors.New("lsp connection closed")

	// ErrExitWithoutShutdown indicates the client sent exit before shutdown.
	ErrExitWithoutShutdown = errors.New("exit received before shutdown")

	// ErrMissingContentLength indicates a message header without Content-Length.
	ErrMissingContentLength = errors.New("missing Content-Length header")

	// ErrMessageTooLarge indicates a Content-Length above MaxContentLength.
	ErrMessageTooLarge = errors.New("message exceeds maximum content length")

	// ErrDocumentNotOpen indicates the document is not open.
	ErrDocumentNotOpen = errors.New("document not open")
)

// RPCError represents a JSON-RPC error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("rpc error %d: %s (data: %v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC error codes.
const (
	// JSON-RPC standard errors
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// LSP-specific errors
	CodeServerNotInitialized = -32002
	CodeRequestFailed        = -32803
)

func newRPCError(code int, format string, args ...any) *RPCError {
	return &RPCError{Code: code, Message: fmt.Sprintf(format, args...)}
}
