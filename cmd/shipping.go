package cmd

import (
	"fmt"

	"github.com/lukman83/naverscrap/internal/naver"
	"github.com/lukman83/naverscrap/internal/platform"
	"github.com/spf13/cobra"
)

var shippingCmd = &cobra.Command{
	Use:   "shipping [listing-url]",
	Short: "Look up the shipping fee on a listing page",
	Long: "Fetch a listing page with a browser fingerprint and read its shipping fee. " +
		"Prints 0 for free shipping and -1 when the fee cannot be determined.",
	Args: cobra.ExactArgs(1),
	RunE: runShipping,
}

func init() {
	shippingCmd.Flags().String("selector", "", "CSS selector of the shipping fee element (default "+naver.DefaultShippingSelector+")")
	rootCmd.AddCommand(shippingCmd)
}

func runShipping(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetString("selector"); v != "" {
		cfg.ShippingSelector = v
	}
	if err := initPlatforms(); err != nil {
		return err
	}

	searcher, err := platform.Get(cfg.DefaultPlatform)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), searcher.ShippingCost(cmd.Context(), args[0]))
	return nil
}
