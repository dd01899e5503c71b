package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mamaar/deskcalc/pkg/calc"
)

// --- press_keys ---

type PressKeysInput struct {
	Keys    string `json:"keys" jsonschema:"button labels separated by spaces, e.g. '3 + 4 × 2 ='"`
	Session string `json:"session,omitempty" jsonschema:"session name (default 'default')"`
}

type PressKeysOutput struct {
	Session string        `json:"session"`
	Display string        `json:"display"`
	State   calc.Snapshot `json:"state"`
}

// --- read_display ---

type SessionInput struct {
	Session string `json:"session,omitempty" jsonschema:"session name (default 'default')"`
}

type ReadDisplayOutput struct {
	Session string `json:"session"`
	Display string `json:"display"`
}

func registerCalcTools(s *mcpsdk.Server, state *CalcServer) {
	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name: "press_keys",
		Description: "Press calculator keys in order and return the display. Keys: 0-9 . AC ± % ÷ × − + = " +
			"(ASCII: C +/- / * x -). Operators chain left to right with no precedence.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in PressKeysInput) (*mcpsdk.CallToolResult, any, error) {
		evs, err := calc.ParseKeys(in.Keys)
		if err != nil {
			return errResult(err), nil, nil
		}
		name := sessionName(in.Session)
		st := state.Press(name, evs)
		return textResult(PressKeysOutput{
			Session: name,
			Display: st.Display,
			State:   st.Snapshot(),
		}), nil, nil
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "read_display",
		Description: "Return the current display of a calculator session.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in SessionInput) (*mcpsdk.CallToolResult, any, error) {
		name := sessionName(in.Session)
		return textResult(ReadDisplayOutput{Session: name, Display: state.State(name).Display}), nil, nil
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "clear",
		Description: "Press AC on a calculator session, resetting it to 0.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in SessionInput) (*mcpsdk.CallToolResult, any, error) {
		name := sessionName(in.Session)
		st := state.Press(name, []calc.Event{calc.Clear()})
		return textResult(ReadDisplayOutput{Session: name, Display: st.Display}), nil, nil
	})
}
