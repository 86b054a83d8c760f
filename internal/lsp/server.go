package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/calloutls/internal/callout"
	"github.com/dshills/calloutls/internal/config/notify"
	"github.com/dshills/calloutls/internal/logging"
	"github.com/dshills/calloutls/internal/settings"
	"github.com/dshills/calloutls/internal/suggest"
)

// ServerStatus indicates where the server is in the LSP lifecycle.
type ServerStatus int

const (
	ServerStatusUninitialized ServerStatus = iota
	ServerStatusInitializing
	ServerStatusReady
	ServerStatusShuttingDown
)

// String returns a human-readable status name.
func (s ServerStatus) String() string {
	switch s {
	case ServerStatusUninitialized:
		return "uninitialized"
	case ServerStatusInitializing:
		return "initializing"
	case ServerStatusReady:
		return "ready"
	case ServerStatusShuttingDown:
		return "shutting down"
	default:
		return "unknown"
	}
}

// ServerName is reported to clients in the initialize result.
const ServerName = "calloutls"

var nullID = json.RawMessage("null")

// Server answers callout completion requests over one connection.
//
// Messages are handled one at a time on the goroutine running Serve, so
// document state and the suggestion session need no locking. Settings
// reloads triggered from other goroutines only swap the shared catalog.
type Server struct {
	conn    *Conn
	session *suggest.Session
	docs    *documentStore
	logger  *logging.Logger

	id           string
	version      string
	triggerChars []string

	// source loads settings from disk; pushed holds settings sent by the
	// client, which take precedence once present.
	source suggest.SourceFunc
	pushed atomic.Pointer[settings.Callouts]

	onReady func()

	status atomic.Int32
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *logging.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets the function that loads settings from disk.
func WithSource(source suggest.SourceFunc) ServerOption {
	return func(s *Server) {
		s.source = source
	}
}

// WithTriggerCharacters sets the characters that make the client request
// completion.
func WithTriggerCharacters(chars []string) ServerOption {
	return func(s *Server) {
		s.triggerChars = append([]string(nil), chars...)
	}
}

// WithReadyHook sets a function called on the serve goroutine right after
// the catalog is first populated.
func WithReadyHook(fn func()) ServerOption {
	return func(s *Server) {
		s.onReady = fn
	}
}

// WithVersion sets the version reported in the initialize result.
func WithVersion(v string) ServerOption {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer creates a server on conn. All documents share catalog; a nil
// catalog gets a fresh one.
func NewServer(conn *Conn, catalog *callout.Catalog, opts ...ServerOption) *Server {
	s := &Server{
		conn:         conn,
		docs:         newDocumentStore(),
		logger:       logging.Nop(),
		id:           uuid.NewString(),
		triggerChars: []string{"[", "!"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("lsp").WithField("session", s.id)
	s.session = suggest.New(nil, suggest.WithCatalog(catalog), suggest.WithLogger(s.logger))
	return s
}

// ID returns the unique identifier of this server instance.
func (s *Server) ID() string {
	return s.id
}

// Status returns the lifecycle status.
func (s *Server) Status() ServerStatus {
	return ServerStatus(s.status.Load())
}

// Catalog returns the catalog completions are drawn from.
func (s *Server) Catalog() *callout.Catalog {
	return s.session.Catalog()
}

// Settings returns the settings the catalog should be built from: the
// client's, if it sent any, otherwise the source's.
func (s *Server) Settings() *settings.Callouts {
	if src := s.pushed.Load(); src != nil {
		return src
	}
	if s.source != nil {
		return s.source()
	}
	return nil
}

// Watch reloads the catalog whenever n publishes a callouts change.
func (s *Server) Watch(n *notify.Notifier) *notify.Subscription {
	return s.session.Watch(n, s.Settings)
}

// Serve handles messages until the client exits, the stream ends or ctx
// is cancelled. It returns nil after a clean shutdown and exit.
//
// A body that fails to parse is answered with a parse error and skipped.
// Bad framing (missing or oversized Content-Length) loses the message
// boundary, so Serve drops the connection and returns the framing error.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = s.conn.Close() })
	defer stop()

	s.logger.Info("serving")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := s.conn.Read()
		if err != nil {
			var rpcErr *RPCError
			switch {
			case errors.As(err, &rpcErr):
				s.logger.Warn("malformed message: %v", err)
				_ = s.conn.Reply(nullID, nil, rpcErr)
				continue
			case errors.Is(err, io.EOF), errors.Is(err, io.ErrClosedPipe), ctx.Err() != nil:
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Info("client closed the connection")
				return nil
			default:
				s.logger.Error("dropping connection: %v", err)
				return fmt.Errorf("read message: %w", err)
			}
		}

		if done, err := s.handle(msg); done {
			return err
		}
	}
}

// handle dispatches one message. It reports done when the client has
// asked the server to exit.
func (s *Server) handle(msg *Message) (done bool, err error) {
	if msg.Method == "" {
		// Responses to server requests; none are sent.
		return false, nil
	}

	if msg.Method == MethodExit {
		if s.Status() != ServerStatusShuttingDown {
			return true, ErrExitWithoutShutdown
		}
		return true, nil
	}

	if msg.IsNotification() {
		s.handleNotification(msg)
		return false, nil
	}

	result, rpcErr := s.handleRequest(msg)
	if err := s.conn.Reply(msg.ID, result, rpcErr); err != nil {
		s.logger.Error("reply to %s: %v", msg.Method, err)
	}
	return false, nil
}

func (s *Server) handleRequest(msg *Message) (any, *RPCError) {
	status := s.Status()
	switch {
	case status == ServerStatusUninitialized && msg.Method != MethodInitialize:
		return nil, newRPCError(CodeServerNotInitialized, "server not initialized")
	case status == ServerStatusShuttingDown:
		return nil, newRPCError(CodeInvalidRequest, "server is shutting down")
	}

	switch msg.Method {
	case MethodInitialize:
		if status != ServerStatusUninitialized {
			return nil, newRPCError(CodeInvalidRequest, "server already initialized")
		}
		var params InitializeParams
		if err := unmarshalParams(msg.Params, &params); err != nil {
			return nil, err
		}
		return s.initialize(params), nil

	case MethodShutdown:
		s.status.Store(int32(ServerStatusShuttingDown))
		s.logger.Info("shutdown requested")
		return nil, nil

	case MethodCompletion:
		var params CompletionParams
		if err := unmarshalParams(msg.Params, &params); err != nil {
			return nil, err
		}
		list, err := s.completion(params)
		if err != nil {
			return nil, newRPCError(CodeRequestFailed, "%v", err)
		}
		return list, nil

	case MethodCompletionResolve:
		var item CompletionItem
		if err := unmarshalParams(msg.Params, &item); err != nil {
			return nil, err
		}
		return item, nil

	default:
		return nil, newRPCError(CodeMethodNotFound, "method not found: %s", msg.Method)
	}
}

func (s *Server) handleNotification(msg *Message) {
	if s.Status() == ServerStatusUninitialized {
		s.logger.Debug("dropping %s before initialize", msg.Method)
		return
	}

	switch msg.Method {
	case MethodInitialized:
		s.initialized()

	case MethodDidOpen:
		var params DidOpenTextDocumentParams
		if s.decode(msg, &params) {
			s.docs.open(params.TextDocument)
			s.logger.Debug("opened %s (%d open)", params.TextDocument.URI, s.docs.len())
		}

	case MethodDidChange:
		var params DidChangeTextDocumentParams
		if s.decode(msg, &params) {
			if err := s.docs.change(params); err != nil {
				s.logger.Warn("didChange: %v", err)
			}
		}

	case MethodDidClose:
		var params DidCloseTextDocumentParams
		if s.decode(msg, &params) {
			if err := s.docs.close(params.TextDocument.URI); err != nil {
				s.logger.Warn("didClose: %v", err)
			}
		}

	case MethodDidChangeConfiguration:
		var params DidChangeConfigurationParams
		if s.decode(msg, &params) {
			s.configure(params.Settings)
		}

	default:
		s.logger.Debug("ignoring notification %s", msg.Method)
	}
}

func (s *Server) initialize(params InitializeParams) *InitializeResult {
	if params.ClientInfo != nil {
		s.logger.Info("initialize from %s %s", params.ClientInfo.Name, params.ClientInfo.Version)
	}
	if len(params.InitializationOptions) > 0 {
		if src := settings.FromJSON(params.InitializationOptions); src != nil {
			s.pushed.Store(src)
		}
	}
	s.status.Store(int32(ServerStatusInitializing))

	return &InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindIncremental,
			},
			CompletionProvider: &CompletionOptions{
				TriggerCharacters: s.triggerChars,
				ResolveProvider:   true,
			},
		},
		ServerInfo: &ServerInfo{Name: ServerName, Version: s.version},
	}
}

// initialized is the host's layout-ready moment: the catalog is populated
// for the first time here.
func (s *Server) initialized() {
	if s.Status() != ServerStatusInitializing {
		return
	}
	s.session.Ready(s.Settings())
	s.status.Store(int32(ServerStatusReady))
	if s.onReady != nil {
		s.onReady()
	}

	_ = s.conn.Notify(MethodLogMessage, &LogMessageParams{
		Type:    MessageTypeInfo,
		Message: fmt.Sprintf("%s ready: %d callout types", ServerName, s.Catalog().Len()),
	})
}

// configure handles settings pushed by the client. A payload without a
// callouts section leaves the current settings in place.
func (s *Server) configure(raw json.RawMessage) {
	src := settings.FromJSON(raw)
	if src == nil {
		s.logger.Debug("configuration change without callouts settings")
		return
	}
	s.pushed.Store(src)
	s.session.Reload(src)
}

// decode unmarshals notification params, logging failures.
func (s *Server) decode(msg *Message, v any) bool {
	if err := unmarshalParams(msg.Params, v); err != nil {
		s.logger.Warn("%s: %v", msg.Method, err)
		return false
	}
	return true
}

func unmarshalParams(raw json.RawMessage, v any) *RPCError {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return newRPCError(CodeInvalidParams, "invalid params: %v", err)
	}
	return nil
}
