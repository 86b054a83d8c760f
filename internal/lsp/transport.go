package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Message is a decoded JSON-RPC 2.0 message. A message with a method and
// an ID is a request; with a method and no ID a notification; without a
// method a response.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// IsRequest reports whether m expects a response.
func (m *Message) IsRequest() bool {
	return m.Method != "" && len(m.ID) > 0 && string(m.ID) != "null"
}

// IsNotification reports whether m is a notification.
func (m *Message) IsNotification() bool {
	return m.Method != "" && !m.IsRequest()
}

// response is an outgoing reply. Result is always present on success, even
// when nil, so clients see "result": null.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

type errorResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Error   *RPCError       `json:"error"`
}

type outgoingNotification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// MaxContentLength bounds the body size Read accepts.
const MaxContentLength = 64 << 20

// Conn reads and writes LSP base-protocol messages: a Content-Length
// header block followed by a JSON body. Reads must come from one
// goroutine; writes may come from any.
type Conn struct {
	reader *bufio.Reader
	writer io.Writer
	closer io.Closer

	mu     sync.Mutex
	closed atomic.Bool
}

// NewConn creates a connection over r and w. c, if non-nil, is closed by Close.
func NewConn(r io.Reader, w io.Writer, c io.Closer) *Conn {
	return &Conn{
		reader: bufio.NewReaderSize(r, 64*1024),
		writer: w,
		closer: c,
	}
}

// Close closes the connection.
func (c *Conn) Close() error {
	if c.closed.Swap(true) {
		return nil // Already closed
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// Read reads the next message. It returns io.EOF when the peer closes the
// stream between messages. A body that is not JSON yields an *RPCError and
// leaves the stream usable; a broken header block (missing or oversized
// Content-Length) does not, since the message boundary is lost.
func (c *Conn) Read() (*Message, error) {
	body, err := c.readBody()
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, &RPCError{Code: CodeParseError, Message: err.Error()}
	}
	return &msg, nil
}

// Reply answers the request with id. A non-nil rpcErr is sent instead of
// result.
func (c *Conn) Reply(id json.RawMessage, result any, rpcErr *RPCError) error {
	if rpcErr != nil {
		return c.send(&errorResponse{JSONRPC: "2.0", ID: id, Error: rpcErr})
	}
	return c.send(&response{JSONRPC: "2.0", ID: id, Result: result})
}

// Notify sends a notification to the client.
func (c *Conn) Notify(method string, params any) error {
	return c.send(&outgoingNotification{JSONRPC: "2.0", Method: method, Params: params})
}

// send writes a message with LSP content-length header.
func (c *Conn) send(msg any) error {
	if c.closed.Load() {
		return ErrShutdown
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(data))

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := io.WriteString(c.writer, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := c.writer.Write(data); err != nil {
		return fmt.Errorf("write body: %w", err)
	}

	return nil
}

// readBody reads a single LSP message body.
func (c *Conn) readBody() ([]byte, error) {
	// Read headers
	contentLength := -1
	sawHeader := false
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			if !sawHeader {
				continue
			}
			break // End of headers
		}
		sawHeader = true
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "content-length") {
			length, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || length < 0 {
				return nil, fmt.Errorf("%w: %q", ErrMissingContentLength, value)
			}
			contentLength = length
		}
		// Ignore Content-Type and other headers
	}

	if contentLength <= 0 {
		return nil, ErrMissingContentLength
	}
	if contentLength > MaxContentLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, contentLength)
	}

	// Read body
	body := make([]byte, contentLength)
	if _, err := io.ReadFull(c.reader, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
