package cmd

import (
	"fmt"

	"github.com/lukman83/naverscrap/internal/opener"
	"github.com/lukman83/naverscrap/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [keyword]",
	Short: "Search a keyword and save the listings as an .xlsx report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

func init() {
	addSearchFlags(reportCmd)
	reportCmd.Flags().StringP("output", "o", "", "Report path; a _N suffix is added when it exists (default naver_products.xlsx)")
	reportCmd.Flags().Bool("no-open", false, "Do not open the report after saving")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	applySearchFlags(cmd)
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputPathHint = v
	}
	noOpen, _ := cmd.Flags().GetBool("no-open")

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
	if len(products) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No products found or API error.")
		return nil
	}

	exporter := &report.Exporter{Logger: log}
	if !noOpen {
		exporter.Opener = opener.New()
	}
	res, err := exporter.Export(products, cfg.OutputPathHint, cfg.ExcludeSubstrings)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d of %d products to %s (%d excluded, %d duplicates)\n",
		res.Rows, res.Collected, res.Path, res.Excluded, res.Duplicates)
	return nil
}
