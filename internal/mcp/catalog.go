package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/noxsec/attacksim/internal/catalog"
)

type catalogParams struct {
	CatalogPath string `json:"catalog_path,omitempty" jsonschema:"Path to the command catalog JSON file. Defaults to the server's configured catalog."`
}

func (h *handler) catalogHandler(ctx context.Context, req *mcp.CallToolRequest, params catalogParams) (*mcp.CallToolResult, any, error) {
	path := params.CatalogPath
	if path == "" {
		path = h.catalogPath
	}

	specs, err := catalog.Load(path)
	if err != nil {
		return errorResult(fmt.Sprintf("loading catalog: %v", err))
	}

	return textResult(formatCatalog(path, specs))
}

func formatCatalog(path string, specs []catalog.CommandSpec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Catalog: %s (%d commands)\n", path, len(specs))

	bySeverity := make(map[catalog.Severity]int)
	for _, s := range specs {
		bySeverity[s.Severity]++
	}
	var parts []string
	for _, sev := range []catalog.Severity{catalog.Critical, catalog.High, catalog.Medium, catalog.Low, catalog.Informational} {
		if n := bySeverity[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(&b, "Severity: %s\n", strings.Join(parts, ", "))
	}
	fmt.Fprintln(&b)

	for _, s := range specs {
		fmt.Fprintf(&b, "  [%s] %s (%s)\n      %s\n", s.Severity, s.Command, s.MitreAttackTag, s.Description)
	}

	return b.String()
}
