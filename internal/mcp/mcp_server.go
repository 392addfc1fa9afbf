// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Cohort MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.AssessmentStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Cohort Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: detect_underperforming_students ---
	s.AddTool(mcp.NewTool("detect_underperforming_students",
		mcp.WithDescription("Flag students scoring below the cohort mean on summative assessments, ranked by deficit."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of flags returned.")),
		mcp.WithNumber("min_attempts", mcp.Description("Only include students with at least this many formative assessments attempted.")),
	), h.handleDetectUnderperforming)

	// --- 2. Tool: get_cohort_stats ---
	s.AddTool(mcp.NewTool("get_cohort_stats",
		mcp.WithDescription("Get the cohort mean and per-question statistics for one stored assessment."),
		mcp.WithString("assessment_id", mcp.Description("The assessment to compute statistics for."), mcp.Required()),
	), h.handleGetCohortStats)

	// --- 3. Tool: get_student_results ---
	s.AddTool(mcp.NewTool("get_student_results",
		mcp.WithDescription("Get one student's mean normalized score in every assessment they appear in."),
		mcp.WithString("student_id", mcp.Description("The student to look up."), mcp.Required()),
	), h.handleGetStudentResults)

	// --- 4. Tool: get_student_performance ---
	s.AddTool(mcp.NewTool("get_student_performance",
		mcp.WithDescription("Compare one student's per-question scores against the cohort means for an assessment."),
		mcp.WithString("student_id", mcp.Description("The student to look up."), mcp.Required()),
		mcp.WithString("assessment_id", mcp.Description("The assessment to compare within."), mcp.Required()),
	), h.handleGetStudentPerformance)

	return s
}

// StartMCPServer starts the Cohort MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.AssessmentStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
