package mcp

import mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

// RegisterAllTools wires every deskcalc tool into the MCP server.
func RegisterAllTools(s *mcpsdk.Server, state *CalcServer) {
	registerCalcTools(s, state)
	registerSessionTools(s, state)
	registerHistoryTools(s, state)
}
