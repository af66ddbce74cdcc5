// Package mcp provides the attacksim MCP server, exposing the command
// catalog, batch execution, and stored run reports as tools.
package mcp

import (
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/noxsec/attacksim"
	"github.com/noxsec/attacksim/internal/report"
	"github.com/noxsec/attacksim/internal/simulate"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	orch        *simulate.Orchestrator
	store       report.Store
	catalogPath string
}

// NewServer creates an MCP server with all attacksim tools registered.
// catalogPath is the default command catalog; sim_run may override it
// per call.
func NewServer(orch *simulate.Orchestrator, store report.Store, catalogPath string) *mcp.Server {
	h := &handler{
		orch:        orch,
		store:       store,
		catalogPath: catalogPath,
	}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "attacksim", Version: attacksim.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "sim_catalog",
		Description: "List the command catalog: every simulated technique with its severity and MITRE ATT&CK tag. Nothing is executed.",
	}, h.catalogHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "sim_run",
		Description: `Execute the whole command catalog against the host and classify each outcome.

WARNING: commands run live and unsandboxed; they may create files, touch the registry,
and trigger security tooling. One command's failure never stops the rest.
The run is stored; drill into it or render HTML via sim_report.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "sim_report",
		Description: `Fetch a stored run by run_id. Returns the summary and per-command results,
and optionally writes the HTML report to output_path. Does not re-execute anything.`,
	}, h.reportHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
