package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/noxsec/attacksim/internal/report"
)

type reportParams struct {
	RunID      string `json:"run_id" jsonschema:"ID of a stored run, as returned by sim_run."`
	OutputPath string `json:"output_path,omitempty" jsonschema:"If set, the HTML report is written to this path."`
}

func (h *handler) reportHandler(ctx context.Context, req *mcp.CallToolRequest, params reportParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return nil, nil, fmt.Errorf("run_id is required")
	}

	run, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("loading run: %v", err))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s (generated %s)\n", run.ID, run.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Summary: %s\n", run.Summary())
	fmt.Fprintln(&b)
	for _, rec := range run.Records {
		fmt.Fprintf(&b, "  %-7s [%s] %s (%s)\n", rec.Status(), rec.Severity, rec.Command, rec.MitreAttackTag)
		if !rec.Succeeded && rec.ErrorMessage != "" {
			fmt.Fprintf(&b, "          %s\n", firstLine(rec.ErrorMessage))
		}
	}

	if params.OutputPath != "" {
		if err := report.WriteHTML(params.OutputPath, run); err != nil {
			// The run itself is intact; a different path can be retried.
			return errorResult(fmt.Sprintf("writing report: %v", err))
		}
		fmt.Fprintf(&b, "\nHTML report written to %s\n", params.OutputPath)
	}

	return textResult(b.String())
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
