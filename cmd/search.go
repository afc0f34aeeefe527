package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/lukman83/naverscrap/internal/report"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search a keyword and print the filtered listings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	addSearchFlags(searchCmd)
	searchCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	applySearchFlags(cmd)
	format, _ := cmd.Flags().GetString("format")

	keyword, err := keywordArg(args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := initPlatforms(); err != nil {
		return err
	}

	products, err := collect(cmd, keyword)
	if err != nil {
		return err
	}
	products = report.Clean(products, cfg.ExcludeSubstrings)

	switch format {
	case "table":
		printProductsTable(cmd.OutOrStdout(), products)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	default:
		return fmt.Errorf("unknown format %q (use json or table)", format)
	}
	return nil
}
