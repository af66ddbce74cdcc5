package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/noxsec/attacksim/internal/catalog"
	"github.com/noxsec/attacksim/internal/report"
)

type runParams struct {
	CatalogPath string `json:"catalog_path,omitempty" jsonschema:"Path to the command catalog JSON file. Defaults to the server's configured catalog."`
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, any, error) {
	path := params.CatalogPath
	if path == "" {
		path = h.catalogPath
	}

	specs, err := catalog.Load(path)
	if err != nil {
		return errorResult(fmt.Sprintf("loading catalog: %v", err))
	}

	run := h.orch.RunAll(ctx, specs)

	// Save for sim_report drill-down.
	_ = h.store.Save(run)

	return textResult(formatRun(run))
}

func formatRun(run *report.Run) string {
	var b strings.Builder

	s := run.Summary()
	fmt.Fprintf(&b, "Run: %s\n", run.ID)
	fmt.Fprintf(&b, "Summary: %s\n", s)
	fmt.Fprintln(&b)

	if s.Failed > 0 {
		fmt.Fprintln(&b, "Failed commands:")
		for _, rec := range run.Records {
			if rec.Succeeded {
				continue
			}
			msg := rec.ErrorMessage
			if msg == "" {
				msg = "(no output)"
			} else if i := strings.IndexByte(msg, '\n'); i >= 0 {
				msg = msg[:i]
			}
			fmt.Fprintf(&b, "  [%s] %s — %s\n", rec.Severity, rec.Command, msg)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "Full results with sim_report(run_id=%q).\n", run.ID)
	return b.String()
}
