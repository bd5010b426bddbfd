package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/automigrate/internal/domain"
)

const projectsDir = "../../../../testdata/storybook"

func callTool(t *testing.T, name string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	var req mcplib.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	root := filepath.Join(projectsDir, "sb7-react-webpack5")
	handlers := map[string]func(context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error){
		"automigrate_list_fixes": handleListFixes(),
		"automigrate_check":      handleCheck(root),
	}
	result, err := handlers[name](context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	return result
}

func resultText(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	text, ok := result.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleListFixes(t *testing.T) {
	result := callTool(t, "automigrate_list_fixes", nil)
	require.False(t, result.IsError)

	var fixes []domain.FixSummary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &fixes))
	assert.Len(t, fixes, 3)
}

func TestHandleCheck_IsDryRun(t *testing.T) {
	result := callTool(t, "automigrate_check", map[string]any{"fix_ids": "sb-scripts, missing-babelrc"})
	require.False(t, result.IsError, resultText(t, result))

	var report domain.RunReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	assert.True(t, report.DryRun)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, domain.ActionSkipped, report.Entries[0].Action)
	assert.Equal(t, domain.ActionManual, report.Entries[1].Action)
	require.NotNil(t, report.Entries[1].Guidance)
	assert.Equal(t, "npx storybook@next babelrc", report.Entries[1].Guidance.Command)
}

func TestHandleCheck_UnknownFix(t *testing.T) {
	result := callTool(t, "automigrate_check", map[string]any{"skip": "not-a-fix"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "check failed")
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
