// Package mcp exposes the worksheet filler as Model Context Protocol tools
// over stdio, so agent pipelines that already produce the input records can
// drive the fill directly.
package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/riskworks/draw2977/internal/config"
	"github.com/riskworks/draw2977/internal/fill"
	"github.com/riskworks/draw2977/internal/form"
)

// Server represents the MCP server instance.
type Server struct {
	config    *config.Config
	service   *fill.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, service *fill.Service) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		service:   service,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	fillTool := mcp.NewTool(
		"draw_fill_form",
		mcp.WithDescription("Fill a DD Form 2977 PDF template from a JSON input record"),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description("Full path to the input record (JSON or Hjson)"),
		),
		mcp.WithString("output",
			mcp.Required(),
			mcp.Description("Full path for the filled PDF"),
		),
		mcp.WithString("template",
			mcp.Description("Path to the template PDF (uses the configured default if empty)"),
		),
		mcp.WithString("preview",
			mcp.Description("Optional path for a first-page PNG preview"),
		),
		mcp.WithString("strategy",
			mcp.Description("Form strategy: auto, acroform, or xfa"),
		),
	)
	s.mcpServer.AddTool(fillTool, s.handleFillForm)

	inspectTool := mcp.NewTool(
		"draw_inspect_template",
		mcp.WithDescription("List the AcroForm fields of a PDF template"),
		mcp.WithString("template",
			mcp.Description("Path to the template PDF (uses the configured default if empty)"),
		),
	)
	s.mcpServer.AddTool(inspectTool, s.handleInspectTemplate)

	validateTool := mcp.NewTool(
		"draw_validate_template",
		mcp.WithDescription("Check a PDF template against the DD Form 2977 field-name contract"),
		mcp.WithString("template",
			mcp.Description("Path to the template PDF (uses the configured default if empty)"),
		),
		mcp.WithString("strategy",
			mcp.Description("Form strategy: auto, acroform, or xfa"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidateTemplate)
}

// Handler functions

func (s *Server) handleFillForm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	output, err := request.RequireString("output")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	template := s.config.TemplatePath
	if t, ok := args["template"].(string); ok && t != "" {
		template = t
	}

	strategy := s.config.FormStrategy()
	if raw, ok := args["strategy"].(string); ok && raw != "" {
		strategy, err = form.ParseStrategy(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	req := fill.FillRequest{
		TemplatePath: template,
		InputPath:    input,
		OutputPath:   output,
		Strategy:     strategy,
		Refresh:      s.config.Refresh,
		Verify:       s.config.Verify,
	}
	if p, ok := args["preview"].(string); ok {
		req.PreviewPath = p
	}

	result, err := s.service.Fill(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatFillResult(result)), nil
}

func (s *Server) handleInspectTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	template := s.config.TemplatePath
	if t, ok := args["template"].(string); ok && t != "" {
		template = t
	}

	result, err := s.service.Inspect(fill.InspectRequest{TemplatePath: template})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatInspectResult(result)), nil
}

func (s *Server) handleValidateTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	template := s.config.TemplatePath
	if t, ok := args["template"].(string); ok && t != "" {
		template = t
	}

	strategy := form.StrategyAuto
	if raw, ok := args["strategy"].(string); ok && raw != "" {
		var err error
		strategy, err = form.ParseStrategy(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	result, err := s.service.Validate(fill.ValidateRequest{TemplatePath: template, Strategy: strategy})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatValidateResult(result)), nil
}

// Formatting methods

func (s *Server) formatFillResult(result *fill.FillResult) string {
	text := fmt.Sprintf("Created: %s\n", result.OutputPath)
	text += fmt.Sprintf("Strategy: %s\n", result.Strategy)
	text += fmt.Sprintf("Fields written: %d\n", result.FieldsWritten)
	text += fmt.Sprintf("Hazard rows written: %d\n", result.RowsWritten)
	if result.Refreshed {
		text += "Appearances refreshed\n"
	}
	if result.PreviewPath != "" {
		text += fmt.Sprintf("Preview: %s\n", result.PreviewPath)
	}
	if len(result.Warnings) > 0 {
		text += "\nWarnings:\n"
		for _, w := range result.Warnings {
			text += fmt.Sprintf("  - %s\n", w)
		}
	}
	return text
}

func (s *Server) formatInspectResult(result *fill.InspectResult) string {
	text := fmt.Sprintf("Template: %s\n", result.TemplatePath)
	text += fmt.Sprintf("Fields: %d\n\n", len(result.Fields))
	for _, f := range result.Fields {
		text += fmt.Sprintf("%s (%s)", f.Name, f.Type)
		if f.Value != "" {
			text += fmt.Sprintf(" = %q", f.Value)
		}
		if len(f.Options) > 0 {
			text += fmt.Sprintf(" options: %s", strings.Join(f.Options, ", "))
		}
		text += "\n"
	}
	return text
}

func (s *Server) formatValidateResult(result *fill.ValidateResult) string {
	report := result.Report
	text := fmt.Sprintf("Template: %s\n", result.TemplatePath)
	text += fmt.Sprintf("Strategy: %s\n", report.Strategy)
	text += fmt.Sprintf("Present: %d of %d expected slots\n", len(report.Present), len(report.Present)+len(report.Missing))
	if len(report.Missing) > 0 {
		text += "\nMissing (skipped at fill time):\n"
		for _, name := range report.Missing {
			text += fmt.Sprintf("  - %s\n", name)
		}
	}
	return text
}

// Run serves MCP over stdio until the parent process closes the stream.
func (s *Server) Run(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting %s MCP server in stdio mode", s.config.ServerName)
		log.Printf("Template: %s", s.config.TemplatePath)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
