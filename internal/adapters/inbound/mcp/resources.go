package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/automigrate/internal/domain/fixes"
)

const fixesURI = "automigrate://fixes"

// registerResources registers all automigrate MCP resources on the given server.
func registerResources(s *server.MCPServer) {
	s.AddResource(
		mcplib.NewResource(
			fixesURI,
			"Fix Catalog",
			mcplib.WithResourceDescription("Storybook 7 migration fixes in evaluation order"),
			mcplib.WithMIMEType("application/json"),
		),
		handleFixesResource(),
	)
}

func handleFixesResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		catalog, err := fixes.NewCatalog()
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(catalog.Summaries(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling fixes: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      fixesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
