package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mamaar/deskcalc/pkg/calc"
)

// --- list_sessions ---

type ListSessionsInput struct{}

type ListSessionsOutput struct {
	Sessions []SessionInfo `json:"sessions"`
}

// --- read_state ---

type ReadStateOutput struct {
	Session string        `json:"session"`
	State   calc.Snapshot `json:"state"`
}

func registerSessionTools(s *mcpsdk.Server, state *CalcServer) {
	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "list_sessions",
		Description: "List the calculator sessions in use with their displays.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in ListSessionsInput) (*mcpsdk.CallToolResult, any, error) {
		return textResult(ListSessionsOutput{Sessions: state.Sessions()}), nil, nil
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "read_state",
		Description: "Return the full state of a calculator session: display, held operand, pending operator and phase.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in SessionInput) (*mcpsdk.CallToolResult, any, error) {
		name := sessionName(in.Session)
		return textResult(ReadStateOutput{Session: name, State: state.State(name).Snapshot()}), nil, nil
	})
}
