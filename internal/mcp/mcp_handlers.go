package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cohort-tools/cohort/core"
	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.AssessmentStore
}

func (h *toolHandler) handleDetectUnderperforming(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	if m := request.GetInt("min_attempts", 0); m > 0 {
		cfg.MinAttempts = m
	}

	flags, err := core.GetDetectResults(cfg, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("detection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(flags, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCohortStats(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assessmentID := request.GetString("assessment_id", "")
	if assessmentID == "" {
		return mcp.NewToolResultError("assessment_id is required"), nil
	}

	stats, err := core.GetStatsResults(h.store, assessmentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStudentResults(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	studentID := request.GetString("student_id", "")
	if studentID == "" {
		return mcp.NewToolResultError("student_id is required"), nil
	}

	results, err := core.GetStudentResults(h.store, studentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStudentPerformance(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	studentID := request.GetString("student_id", "")
	assessmentID := request.GetString("assessment_id", "")
	if studentID == "" || assessmentID == "" {
		return mcp.NewToolResultError("student_id and assessment_id are required"), nil
	}

	perf, err := core.GetStudentPerformanceResults(h.store, studentID, assessmentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(perf, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
