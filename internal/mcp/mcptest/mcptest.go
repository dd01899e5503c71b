// Package mcptest provides test helpers for invoking deskcalc MCP tools
// with swappable transports: in-process (fast) or subprocess (full binary).
package mcptest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	markclient "github.com/mark3labs/mcp-go/client"
	markmcp "github.com/mark3labs/mcp-go/mcp"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mamaar/deskcalc/internal/history"
	internalmcp "github.com/mamaar/deskcalc/internal/mcp"
)

// Result is the text and error flag of one tool call.
type Result struct {
	Text    string
	IsError bool
}

// Decode unmarshals the result text into v.
func (r Result) Decode(v any) error {
	if err := json.Unmarshal([]byte(r.Text), v); err != nil {
		return fmt.Errorf("decode %q: %w", r.Text, err)
	}
	return nil
}

// Session is a connected MCP client.
type Session struct {
	call  func(ctx context.Context, name string, args map[string]any) (Result, error)
	close func()
}

// Call invokes the named tool.
func (s *Session) Call(ctx context.Context, name string, args map[string]any) (Result, error) {
	return s.call(ctx, name, args)
}

// Close tears down the session.
func (s *Session) Close() {
	if s.close != nil {
		s.close()
	}
}

// Transport selects how the MCP server is reached.
type Transport interface {
	connect(ctx context.Context, t testing.TB) (*Session, error)
}

// Dial connects to an MCP server using the given transport. The server
// records history to a database in a fresh temporary directory. The session
// is closed when the test ends.
func Dial(ctx context.Context, t testing.TB, transport Transport) *Session {
	t.Helper()
	sess, err := transport.connect(ctx, t)
	if err != nil {
		t.Fatalf("mcptest.Dial: connect: %v", err)
	}
	t.Cleanup(sess.Close)
	return sess
}

// inProcess is the in-process transport using NewInMemoryTransports.
type inProcess struct{}

// InProcess returns a transport that runs the MCP server in-process.
func InProcess() Transport { return inProcess{} }

func (inProcess) connect(ctx context.Context, t testing.TB) (*Session, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := history.Open(ctx, filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		return nil, err
	}
	state := internalmcp.NewCalcServer(store, logger)

	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "deskcalc", Version: "test"}, nil)
	internalmcp.RegisterAllTools(server, state)

	serverT, clientT := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(ctx)
	go func() { _ = server.Run(ctx, serverT) }()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "1.0"}, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		cancel()
		state.Close()
		return nil, err
	}

	return &Session{
		call: func(ctx context.Context, name string, args map[string]any) (Result, error) {
			res, err := session.CallTool(ctx, &mcpsdk.CallToolParams{Name: name, Arguments: args})
			if err != nil {
				return Result{}, err
			}
			var parts []string
			for _, c := range res.Content {
				if tc, ok := c.(*mcpsdk.TextContent); ok {
					parts = append(parts, tc.Text)
				}
			}
			return Result{Text: strings.Join(parts, "\n"), IsError: res.IsError}, nil
		},
		close: func() {
			_ = session.Close()
			cancel()
			state.Close()
		},
	}, nil
}

// subprocess talks to the deskcalc-mcp binary over stdio with an
// independent client implementation.
type subprocess struct {
	binPath string
}

// Subprocess returns a transport that shells out to the given binary.
func Subprocess(bin string) Transport { return subprocess{binPath: bin} }

func (sp subprocess) connect(ctx context.Context, t testing.TB) (*Session, error) {
	env := []string{"DESKCALC_HISTORY_DB=" + filepath.Join(t.TempDir(), "history.db")}
	c, err := markclient.NewStdioMCPClient(sp.binPath, env)
	if err != nil {
		return nil, err
	}

	initReq := markmcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = markmcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = markmcp.Implementation{Name: "test-client", Version: "1.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		_ = c.Close()
		return nil, err
	}

	return &Session{
		call: func(ctx context.Context, name string, args map[string]any) (Result, error) {
			req := markmcp.CallToolRequest{}
			req.Params.Name = name
			req.Params.Arguments = args
			res, err := c.CallTool(ctx, req)
			if err != nil {
				return Result{}, err
			}
			var parts []string
			for _, content := range res.Content {
				switch tc := content.(type) {
				case markmcp.TextContent:
					parts = append(parts, tc.Text)
				case *markmcp.TextContent:
					parts = append(parts, tc.Text)
				}
			}
			return Result{Text: strings.Join(parts, "\n"), IsError: res.IsError}, nil
		},
		close: func() { _ = c.Close() },
	}, nil
}
