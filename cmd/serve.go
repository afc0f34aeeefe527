package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/naverscrap/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := initPlatforms(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting NaverScrap MCP server on stdio...")

	if err := mcpserver.Serve(toolOptions()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

// toolOptions carries the configured run parameters into the MCP tools.
func toolOptions() mcpserver.Options {
	return mcpserver.Options{
		Platform:       cfg.DefaultPlatform,
		PageSize:       cfg.PageSize,
		MaxResults:     cfg.MaxResults,
		Exclude:        cfg.ExcludeSubstrings,
		OutputPathHint: cfg.OutputPathHint,
		Logger:         log,
	}
}
