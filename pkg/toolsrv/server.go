package toolsrv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
)

var (
	ErrServerClosed = errors.New("toolsrv: server closed")
	ErrDuplicate    = errors.New("toolsrv: duplicate tool name")
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolError      = -32000
)

// Server dispatches JSON-RPC 2.0 requests to registered tools. Wire format
// is one JSON object per line. The zero value is usable.
type Server struct {
	Logger *slog.Logger

	mu    sync.RWMutex
	tools map[string]*Tool
}

// Register adds tools to the server.
func (s *Server) Register(tools ...*Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tools == nil {
		s.tools = make(map[string]*Tool)
	}
	for _, t := range tools {
		if _, ok := s.tools[t.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, t.Name)
		}
		s.tools[t.Name] = t
	}
	return nil
}

// Tools returns the registered tools sorted by name.
func (s *Server) Tools() []*Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Tool, 0, len(s.tools))
	for _, t := range s.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Server) tool(name string) (*Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tools[name]
	return t, ok
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *responseError  `json:"error,omitempty"`
}

type responseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type toolDesc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"inputSchema"`
}

// Serve reads requests from r and writes responses to w until r reaches
// EOF or ctx is canceled. It returns ErrServerClosed on context
// cancellation so callers can tell a shutdown from a transport error.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	log := s.logger()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var wmu sync.Mutex
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ErrServerClosed
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		resp := s.Handle(ctx, line)
		if resp == nil {
			continue // notification
		}
		data, err := json.Marshal(resp)
		if err != nil {
			log.Error("marshal response", "error", err)
			continue
		}
		wmu.Lock()
		_, err = w.Write(append(data, '\n'))
		wmu.Unlock()
		if err != nil {
			return fmt.Errorf("toolsrv: write response: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("toolsrv: read request: %w", err)
	}
	if ctx.Err() != nil {
		return ErrServerClosed
	}
	return nil
}

// Handle processes a single raw request and returns the response, or nil
// for notifications.
func (s *Server) Handle(ctx context.Context, raw []byte) *response {
	log := s.logger()
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return &response{
			JSONRPC: "2.0",
			Error:   &responseError{Code: codeParseError, Message: "parse error: " + err.Error()},
		}
	}
	resp := &response{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case "ping":
		resp.Result = struct{}{}
	case "tools/list":
		tools := s.Tools()
		descs := make([]toolDesc, 0, len(tools))
		for _, t := range tools {
			descs = append(descs, toolDesc{Name: t.Name, Description: t.Description, InputSchema: t.Argument})
		}
		resp.Result = map[string]any{"tools": descs}
	case "tools/call":
		var params callParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			resp.Error = &responseError{Code: codeInvalidParams, Message: "invalid params: " + err.Error()}
			break
		}
		t, ok := s.tool(params.Name)
		if !ok {
			resp.Error = &responseError{Code: codeMethodNotFound, Message: "unknown tool: " + params.Name}
			break
		}
		log.Info("tool call", "tool", params.Name)
		result, err := t.Invoke(ctx, params.Arguments)
		if err != nil {
			log.Warn("tool failed", "tool", params.Name, "error", err)
			resp.Error = &responseError{Code: codeToolError, Message: err.Error()}
			break
		}
		resp.Result = result
	default:
		resp.Error = &responseError{Code: codeMethodNotFound, Message: "unknown method: " + req.Method}
	}
	if len(req.ID) == 0 {
		return nil
	}
	return resp
}
