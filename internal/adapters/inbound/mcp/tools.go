package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/openkraft/automigrate/internal/adapters/outbound/babel"
	"github.com/openkraft/automigrate/internal/adapters/outbound/config"
	"github.com/openkraft/automigrate/internal/adapters/outbound/mainconfig"
	"github.com/openkraft/automigrate/internal/adapters/outbound/manifest"
	"github.com/openkraft/automigrate/internal/application"
	"github.com/openkraft/automigrate/internal/domain/fixes"
)

// registerTools registers all automigrate MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. automigrate_list_fixes
	s.AddTool(
		mcplib.NewTool("automigrate_list_fixes",
			mcplib.WithDescription("Lists every Storybook 7 migration fix in evaluation order, with whether it can be applied automatically"),
		),
		handleListFixes(),
	)

	// 2. automigrate_check
	s.AddTool(
		mcplib.NewTool("automigrate_check",
			mcplib.WithDescription("Checks the project for Storybook 7 migration hazards without changing any file. Returns the run report with guidance for each applicable fix."),
			mcplib.WithString("fix_ids", mcplib.Description("Comma-separated fix ids to check (default: all)")),
			mcplib.WithString("skip", mcplib.Description("Comma-separated fix ids to skip")),
		),
		handleCheck(projectPath),
	)
}

// newService creates a dry-run service. Guidance is returned in the report,
// so no presenter is attached.
func newService() (*application.AutomigrateService, error) {
	catalog, err := fixes.NewCatalog()
	if err != nil {
		return nil, err
	}
	logger := zap.NewNop().Sugar()
	mc := mainconfig.New()
	deps := application.Collaborators{
		Settings: config.New(),
		Packages: manifest.New(),
		Locator:  mc,
		Configs:  mc,
		Compiler: babel.New(),
	}
	return application.NewAutomigrateService(catalog, deps, application.NewFixRunner(nil, logger), logger), nil
}

func handleListFixes() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc, err := newService()
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(svc.ListFixes())
	}
}

func handleCheck(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc, err := newService()
		if err != nil {
			return errorResult(err.Error()), nil
		}

		fixIDs, _ := request.GetArguments()["fix_ids"].(string)
		skip, _ := request.GetArguments()["skip"].(string)

		report, err := svc.Automigrate(ctx, projectPath, application.AutomigrateOptions{
			FixIDs: splitList(fixIDs),
			Skip:   splitList(skip),
			DryRun: true,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
