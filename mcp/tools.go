package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lukman83/naverscrap/config"
	"github.com/lukman83/naverscrap/internal/platform"
	"github.com/lukman83/naverscrap/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type tools struct {
	opts Options
}

func registerTools(s *server.MCPServer, t *tools) {
	// search_products
	searchTool := mcp.NewTool("search_products",
		mcp.WithDescription("Search shopping listings by keyword; excluded and duplicate listings are dropped"),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Search keyword"),
		),
		mcp.WithString("exclude",
			mcp.Description("Comma separated substrings; listings whose name contains any are dropped"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Highest result offset to request (default 1000)"),
		),
	)
	s.AddTool(searchTool, t.handleSearchProducts)

	// export_report
	exportTool := mcp.NewTool("export_report",
		mcp.WithDescription("Search by keyword and save the listings as an .xlsx report; returns the saved path"),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Search keyword"),
		),
		mcp.WithString("exclude",
			mcp.Description("Comma separated substrings; listings whose name contains any are dropped"),
		),
		mcp.WithString("output",
			mcp.Description("Report file name (no directories); saved in the configured output directory, a _N suffix is added when it exists"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Highest result offset to request (default 1000)"),
		),
	)
	s.AddTool(exportTool, t.handleExportReport)

	// shipping_cost
	shippingTool := mcp.NewTool("shipping_cost",
		mcp.WithDescription("Read the shipping fee from a listing page: 0 = free, -1 = unknown"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Listing page URL"),
		),
	)
	s.AddTool(shippingTool, t.handleShippingCost)
}

// searchArgs reads the arguments shared by search_products and export_report.
func (t *tools) searchArgs(request mcp.CallToolRequest) (keyword string, opts platform.SearchOpts, exclude []string) {
	keyword = request.GetString("keyword", "")
	opts = platform.SearchOpts{
		PageSize:   t.opts.PageSize,
		MaxResults: request.GetInt("max_results", t.opts.MaxResults),
	}
	exclude = t.opts.Exclude
	if v := request.GetString("exclude", ""); v != "" {
		exclude = config.SplitList(v)
	}
	return keyword, opts, exclude
}

func (t *tools) handleSearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, opts, exclude := t.searchArgs(request)
	if keyword == "" {
		return mcp.NewToolResultError("keyword is required"), nil
	}

	searcher, err := platform.Get(t.opts.Platform)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("platform error: %v", err)), nil
	}

	products, err := searcher.Collect(ctx, keyword, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
	}

	data, _ := json.MarshalIndent(report.Clean(products, exclude), "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

// reportPath resolves a client-supplied report name against the configured
// output location. Clients pick a file name only, never a directory.
func (t *tools) reportPath(name string) (string, error) {
	if name == "" {
		return t.opts.OutputPathHint, nil
	}
	if filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("output must be a file name without directories, got %q", name)
	}
	if name == "." || name == ".." {
		return "", errors.New("output must name a file")
	}
	return filepath.Join(filepath.Dir(t.opts.OutputPathHint), name), nil
}

func (t *tools) handleExportReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, opts, exclude := t.searchArgs(request)
	if keyword == "" {
		return mcp.NewToolResultError("keyword is required"), nil
	}
	output, err := t.reportPath(request.GetString("output", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	searcher, err := platform.Get(t.opts.Platform)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("platform error: %v", err)), nil
	}

	products, err := searcher.Collect(ctx, keyword, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
	}
	if len(products) == 0 {
		return mcp.NewToolResultError("no products found or API error"), nil
	}

	// nothing to open on the server side
	exporter := &report.Exporter{Logger: t.opts.Logger}
	res, err := exporter.Export(products, output, exclude)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export error: %v", err)), nil
	}

	data, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (t *tools) handleShippingCost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := request.GetString("url", "")
	if url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	searcher, err := platform.Get(t.opts.Platform)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("platform error: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%d", searcher.ShippingCost(ctx, url))), nil
}
