// Package gateway exposes the tool catalog over the Model Context Protocol,
// either on stdio or as a streamable HTTP endpoint with a small REST surface.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"modelbridge/pkg/config"
	"modelbridge/pkg/logger"
	"modelbridge/pkg/tools"
	"modelbridge/pkg/version"
)

const methodCallTool = "tools/call"

// Server is the MCP gateway.
type Server struct {
	config     *config.Config
	logger     *logger.Logger
	dispatcher *tools.Dispatcher
	mcp        *mcp.Server
	mux        *http.ServeMux
	server     *http.Server

	cancel context.CancelFunc
	done   chan error
	once   sync.Once
}

// NewServer creates the gateway and registers every catalog entry.
func NewServer(cfg *config.Config, log *logger.Logger, dispatcher *tools.Dispatcher) *Server {
	s := &Server{
		config:     cfg,
		logger:     log,
		dispatcher: dispatcher,
		done:       make(chan error, 1),
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    version.AppName(),
		Version: version.GetVersion(),
	}, nil)

	for _, d := range dispatcher.Registry().Descriptors() {
		s.mcp.AddTool(&mcp.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema,
		}, s.handleCallTool)
	}
	s.mcp.AddReceivingMiddleware(s.unknownToolMiddleware)

	s.setupRoutes()
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Done is closed after the transport finishes, carrying its terminal error.
func (s *Server) Done() <-chan error {
	return s.done
}

func (s *Server) handleCallTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	env := s.dispatcher.InvokeJSON(ctx, req.Params.Name, req.Params.Arguments)
	return toResult(env), nil
}

// unknownToolMiddleware answers calls outside the catalog with an error result
// instead of a protocol error.
func (s *Server) unknownToolMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != methodCallTool {
			return next(ctx, method, req)
		}
		call, ok := req.(*mcp.CallToolRequest)
		if !ok || call.Params == nil || s.dispatcher.Has(call.Params.Name) {
			return next(ctx, method, req)
		}
		return toResult(s.dispatcher.Invoke(ctx, call.Params.Name, nil)), nil
	}
}

func toResult(env tools.Envelope) *mcp.CallToolResult {
	res := &mcp.CallToolResult{IsError: env.IsError}
	for _, c := range env.Content {
		res.Content = append(res.Content, &mcp.TextContent{Text: c.Text})
	}
	return res
}

func (s *Server) setupRoutes() {
	mux := http.NewServeMux()

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
	mux.Handle(s.config.Server.Path, s.requireAuth(handler))

	// REST endpoints
	mux.Handle("GET /api/v1/status", s.requireAuth(http.HandlerFunc(s.handleStatus)))
	mux.Handle("GET /api/v1/tools", s.requireAuth(http.HandlerFunc(s.handleTools)))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.mux = mux
}

// Start starts the configured transport. It returns once the transport is
// running; termination is reported on Done.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	switch s.config.Server.Transport {
	case config.TransportHTTP:
		return s.startHTTP()
	default:
		s.logger.Info("MCP server starting", zap.String("transport", config.TransportStdio))
		go func() {
			err := s.mcp.Run(ctx, &mcp.StdioTransport{})
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			s.finish(err)
		}()
		return nil
	}
}

func (s *Server) startHTTP() error {
	addr := s.config.Server.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("MCP server starting",
		zap.String("transport", config.TransportHTTP),
		zap.String("addr", ln.Addr().String()),
		zap.String("path", s.config.Server.Path),
	)

	s.server = &http.Server{Handler: s.mux}
	go func() {
		err := s.server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			s.logger.Error("MCP server error", zap.Error(err))
		}
		s.finish(err)
	}()
	return nil
}

func (s *Server) finish(err error) {
	s.once.Do(func() {
		s.done <- err
		close(s.done)
	})
}

// Stop gracefully shuts down the transport.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("MCP server stopping")

	if s.cancel != nil {
		s.cancel()
	}
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// --- REST Handlers ---

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":      version.AppName(),
		"version":   version.GetVersion(),
		"provider":  s.config.Provider.Profile,
		"transport": s.config.Server.Transport,
		"tools":     s.dispatcher.Registry().List(),
	})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dispatcher.Registry().Descriptors())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
