package mcp

import (
	"context"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// --- list_history ---

type ListHistoryInput struct {
	Session string `json:"session,omitempty" jsonschema:"only list this session (empty for all sessions)"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of entries, newest first (default 20)"`
}

type HistoryEntry struct {
	ID      int64  `json:"id"`
	Session string `json:"session"`
	Line    string `json:"line"`
	Result  string `json:"result"`
	At      string `json:"at"`
}

type ListHistoryOutput struct {
	Entries []HistoryEntry `json:"entries"`
}

func registerHistoryTools(s *mcpsdk.Server, state *CalcServer) {
	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "list_history",
		Description: "List recorded evaluations (the paper tape), newest first. Requires the server to run with history enabled.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in ListHistoryInput) (*mcpsdk.CallToolResult, any, error) {
		limit := in.Limit
		if limit == 0 {
			limit = 20
		}
		entries, err := state.History(ctx, in.Session, limit)
		if err != nil {
			return errResult(err), nil, nil
		}
		out := ListHistoryOutput{Entries: make([]HistoryEntry, len(entries))}
		for i, e := range entries {
			out.Entries[i] = HistoryEntry{
				ID:      e.ID,
				Session: e.Session,
				Line:    e.String(),
				Result:  e.Result,
				At:      e.At.Format(time.RFC3339),
			}
		}
		return textResult(out), nil, nil
	})
}
