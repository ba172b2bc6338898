// Package mcp provides an MCP (Model Context Protocol) server for bx.
// This allows AI agents and editor integrations to transform barrel files
// through MCP tools instead of CLI commands.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/anthropics/bx/internal/barrel"
	"github.com/anthropics/bx/internal/cache"
	"github.com/anthropics/bx/internal/config"
	"github.com/anthropics/bx/internal/exclude"
	"github.com/anthropics/bx/internal/output"
	"github.com/anthropics/bx/internal/scan"
)

// AllTools lists all available tools.
var AllTools = []string{"bx_process", "bx_parse", "bx_scan"}

// Server wraps the MCP server with bx-specific functionality.
type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
}

// New creates a new MCP server for bx. Configuration is loaded from the
// nearest .bx directory, falling back to defaults.
func New() (*Server, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"bx",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer: mcpServer,
		cfg:       cfg,
	}

	s.registerProcessTool()
	s.registerParseTool()
	s.registerScanTool()

	return s, nil
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// options builds the effective pipeline options for a call: configured
// defaults plus per-call overrides.
func (s *Server) options(args map[string]any) barrel.Options {
	opts := barrel.Options{
		RemoveDuplicates:        s.cfg.Options.RemoveDuplicatesEnabled(),
		Sort:                    s.cfg.Options.Sort,
		ResolveBarrelExports:    s.cfg.Options.ResolveBarrelExports,
		ConvertNamespaceToNamed: s.cfg.Options.ConvertNamespaceToNamed,
	}
	if v, ok := args["sort"].(bool); ok {
		opts.Sort = v
	}
	if v, ok := args["remove_duplicates"].(bool); ok {
		opts.RemoveDuplicates = v
	}
	if v, ok := args["resolve_barrel"].(bool); ok {
		opts.ResolveBarrelExports = v
	}
	if v, ok := args["convert_namespace"].(bool); ok {
		opts.ConvertNamespaceToNamed = v
	}
	return opts
}

// loaderFor builds a configured Loader for an effective option set.
func (s *Server) loaderFor(opts barrel.Options) *barrel.Loader {
	l := barrel.New(opts, nil)
	l.SetExtensions(s.cfg.Resolve.Extensions)
	l.SetBarrelNames(s.cfg.Scan.BarrelNames)
	return l
}

// registerProcessTool registers the bx_process tool.
func (s *Server) registerProcessTool() {
	tool := mcp.NewTool("bx_process",
		mcp.WithDescription("Transform a barrel file into a minimal, deterministic set of export statements. Returns the regenerated source."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the barrel file to process"),
		),
		mcp.WithBoolean("sort",
			mcp.Description("Sort exports by source, then name"),
		),
		mcp.WithBoolean("remove_duplicates",
			mcp.Description("Remove duplicate exports (default: true)"),
		),
		mcp.WithBoolean("resolve_barrel",
			mcp.Description("Resolve re-export chains through nested barrels"),
		),
		mcp.WithBoolean("convert_namespace",
			mcp.Description("Convert namespace exports to named exports"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleProcess)
}

// registerParseTool registers the bx_parse tool.
func (s *Server) registerParseTool() {
	tool := mcp.NewTool("bx_parse",
		mcp.WithDescription("Parse a barrel file and return its export entries as structured data."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the file to parse"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: yaml or json (default: yaml)"),
		),
		mcp.WithBoolean("resolve_barrel",
			mcp.Description("Resolve re-export chains before returning entries"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleParse)
}

// registerScanTool registers the bx_scan tool.
func (s *Server) registerScanTool() {
	tool := mcp.NewTool("bx_scan",
		mcp.WithDescription("Walk a directory tree, process every barrel file, and report which would change."),
		mcp.WithString("dir",
			mcp.Description("Directory to scan (default: current directory)"),
		),
		mcp.WithBoolean("write",
			mcp.Description("Rewrite changed files in place"),
		),
		mcp.WithBoolean("sort",
			mcp.Description("Sort exports by source, then name"),
		),
		mcp.WithBoolean("remove_duplicates",
			mcp.Description("Remove duplicate exports (default: true)"),
		),
		mcp.WithBoolean("resolve_barrel",
			mcp.Description("Resolve re-export chains through nested barrels"),
		),
		mcp.WithBoolean("convert_namespace",
			mcp.Description("Convert namespace exports to named exports"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleScan)
}

func (s *Server) handleProcess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	file, ok := args["file"].(string)
	if !ok || file == "" {
		return mcp.NewToolResultError("file parameter is required"), nil
	}

	source, err := os.ReadFile(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading %s: %v", file, err)), nil
	}

	result := s.loaderFor(s.options(args)).Process(string(source), file)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	file, ok := args["file"].(string)
	if !ok || file == "" {
		return mcp.NewToolResultError("file parameter is required"), nil
	}

	format := output.DefaultFormat
	if v, ok := args["format"].(string); ok && v != "" {
		parsed, err := output.ParseFormat(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		format = parsed
	}

	source, err := os.ReadFile(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading %s: %v", file, err)), nil
	}

	entries := s.loaderFor(s.options(args)).Entries(string(source), file)
	rendered, err := output.Entries(file, entries, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(rendered), nil
}

func (s *Server) handleScan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	dir, _ := args["dir"].(string)
	if dir == "" {
		dir = "."
	}
	write, _ := args["write"].(bool)

	var resultCache *cache.Cache
	if bxDir, err := config.FindConfigDir("."); err == nil {
		if c, err := cache.Open(bxDir); err == nil {
			resultCache = c
			defer c.Close()
		}
	}

	opts := s.options(args)
	summary, err := scan.Run(dir, scan.Options{
		Loader:      s.loaderFor(opts),
		BarrelNames: s.cfg.Scan.BarrelNames,
		Exclude:     exclude.NewMatcher(s.cfg.Scan.Exclude),
		Workers:     s.cfg.Scan.Workers,
		Cache:       resultCache,
		OptionsHash: scan.OptionsFingerprint(opts),
		Write:       write,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("processed %d barrel files: %d changed, %d cached, %d failed",
		summary.Processed, summary.Changed, summary.Cached, summary.Failed)
	for _, r := range summary.Results {
		if r.Changed {
			text += "\n  " + r.Path
		}
	}
	return mcp.NewToolResultText(text), nil
}
