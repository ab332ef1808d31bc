// Package mcp adapts the manager layer to the Model Context Protocol,
// grounded on the teacher's internal/adapters/mcp/mcp_server.go. Unlike
// the RPC server, tool handlers call straight into the managers — there
// is no socket round-trip (SPEC_FULL.md §4.9).
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mootimer/daemon/internal/rpc"
)

// Server exposes eight tools — one per named RPC method family the
// distillation calls out for timing agents.
type Server struct {
	mcp  *server.MCPServer
	deps *rpc.Deps
}

func NewServer(deps *rpc.Deps) *Server {
	s := &Server{deps: deps}
	s.mcp = server.NewMCPServer("mootimer", "1.0.0", server.WithLogging())
	s.registerTools()
	return s
}

// Start serves MCP requests over stdio until the stream closes.
func (s *Server) Start(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("timer_start",
			mcp.WithDescription("Start a manual timer for a profile, optionally against a task"),
			mcp.WithString("profile_id", mcp.Required(), mcp.Description("Profile to start the timer in")),
			mcp.WithString("task_id", mcp.Description("Optional task to associate with the session")),
		),
		s.handleTimerStart,
	)

	s.mcp.AddTool(
		mcp.NewTool("timer_stop",
			mcp.WithDescription("Stop the active timer for a profile and persist the resulting entry"),
			mcp.WithString("profile_id", mcp.Required(), mcp.Description("Profile whose timer should stop")),
		),
		s.handleTimerStop,
	)

	s.mcp.AddTool(
		mcp.NewTool("timer_status",
			mcp.WithDescription("Get the active timer for a profile, if any"),
			mcp.WithString("profile_id", mcp.Required(), mcp.Description("Profile to inspect")),
		),
		s.handleTimerStatus,
	)

	s.mcp.AddTool(
		mcp.NewTool("task_create",
			mcp.WithDescription("Create a task within a profile"),
			mcp.WithString("profile_id", mcp.Required(), mcp.Description("Profile the task belongs to")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
		),
		s.handleTaskCreate,
	)

	s.mcp.AddTool(
		mcp.NewTool("task_list",
			mcp.WithDescription("List tasks in a profile"),
			mcp.WithString("profile_id", mcp.Required(), mcp.Description("Profile to list tasks for")),
		),
		s.handleTaskList,
	)

	s.mcp.AddTool(
		mcp.NewTool("entry_today",
			mcp.WithDescription("List today's entries for a profile"),
			mcp.WithString("profile_id", mcp.Required(), mcp.Description("Profile to query")),
		),
		s.handleEntryToday,
	)

	s.mcp.AddTool(
		mcp.NewTool("entry_stats_today",
			mcp.WithDescription("Get today's aggregate stats for a profile"),
			mcp.WithString("profile_id", mcp.Required(), mcp.Description("Profile to query")),
		),
		s.handleEntryStatsToday,
	)

	s.mcp.AddTool(
		mcp.NewTool("profile_list",
			mcp.WithDescription("List every known profile"),
		),
		s.handleProfileList,
	)
}

func (s *Server) handleTimerStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID := request.GetString("profile_id", "")
	var taskID *string
	if t := request.GetString("task_id", ""); t != "" {
		taskID = &t
	}

	id, err := s.deps.Timers.StartManual(profileID, taskID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start timer: %v", err)), nil
	}
	return jsonResult(map[string]string{"timer_id": id})
}

func (s *Server) handleTimerStop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID := request.GetString("profile_id", "")

	e, err := s.deps.Timers.Stop(profileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to stop timer: %v", err)), nil
	}
	if err := s.deps.Entries.Add(profileID, e); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to persist entry: %v", err)), nil
	}
	return jsonResult(e)
}

func (s *Server) handleTimerStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID := request.GetString("profile_id", "")
	t := s.deps.Timers.GetByProfile(profileID)
	if t == nil {
		return jsonResult(map[string]interface{}{"active": false})
	}
	return jsonResult(t)
}

func (s *Server) handleTaskCreate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID := request.GetString("profile_id", "")
	title := request.GetString("title", "")

	task, err := s.deps.Tasks.Create(profileID, title)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create task: %v", err)), nil
	}
	return jsonResult(task)
}

func (s *Server) handleTaskList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID := request.GetString("profile_id", "")
	tasks, err := s.deps.Tasks.List(profileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list tasks: %v", err)), nil
	}
	return jsonResult(tasks)
}

func (s *Server) handleEntryToday(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID := request.GetString("profile_id", "")
	entries, err := s.deps.Entries.Today(profileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list today's entries: %v", err)), nil
	}
	return jsonResult(entries)
}

func (s *Server) handleEntryStatsToday(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID := request.GetString("profile_id", "")
	stats, err := s.deps.Entries.StatsToday(profileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute today's stats: %v", err)), nil
	}
	return jsonResult(stats)
}

func (s *Server) handleProfileList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.deps.Profiles.List())
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
