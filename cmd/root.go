package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/lukman83/naverscrap/config"
	"github.com/lukman83/naverscrap/internal/httputil"
	"github.com/lukman83/naverscrap/internal/logger"
	"github.com/lukman83/naverscrap/internal/models"
	"github.com/lukman83/naverscrap/internal/naver"
	"github.com/lukman83/naverscrap/internal/platform"
	"github.com/lukman83/naverscrap/internal/stealth"
	"github.com/lukman83/naverscrap/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "naverscrap",
	Short: "NaverScrap - shopping search to spreadsheet report",
	Long: "Search Naver Shopping for a keyword, drop excluded and duplicate listings, " +
		"and save the result as an .xlsx report with clickable links.",
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("platform", "naver", "Shopping platform to search")
	rootCmd.PersistentFlags().String("client-id", "", "Search API client id (default $NAVER_CLIENT_ID)")
	rootCmd.PersistentFlags().String("client-secret", "", "Search API client secret (default $NAVER_CLIENT_SECRET)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("delay-profile", "", "Listing page delay profile: cautious, normal, aggressive")
	rootCmd.PersistentFlags().Bool("respect-robots", true, "Respect robots.txt rules on listing pages")
	rootCmd.PersistentFlags().String("proxy-file", "", "Path to proxy list file for listing pages")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	flags := rootCmd.PersistentFlags()
	if v, _ := flags.GetString("platform"); flags.Changed("platform") {
		cfg.DefaultPlatform = v
	}
	if v, _ := flags.GetString("client-id"); v != "" {
		cfg.ClientID = v
	}
	if v, _ := flags.GetString("client-secret"); v != "" {
		cfg.ClientSecret = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("delay-profile"); v != "" {
		cfg.DelayProfile = v
	}
	if v, _ := flags.GetBool("respect-robots"); !v {
		cfg.RespectRobots = false
	}
	if v, _ := flags.GetString("proxy-file"); v != "" {
		cfg.ProxyFile = v
	}

	l, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed, logging disabled: %v\n", err)
		l = zap.NewNop()
	}
	log = l
}

// buildPageClient creates the stealth-wrapped HTTP client used for listing pages.
func buildPageClient() (*http.Client, error) {
	var proxies *stealth.ProxyRotator
	if cfg.ProxyFile != "" {
		urls, err := stealth.LoadProxyFile(cfg.ProxyFile)
		if err != nil {
			return nil, err
		}
		proxies = stealth.NewProxyRotator(urls)
	}

	transport := &stealth.StealthTransport{
		Base: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
		},
		Robots:      stealth.NewRobotsChecker(httputil.NewHTTPClient(nil), cfg.RespectRobots),
		Fingerprint: stealth.NewFingerprintPool(),
		Proxy:       proxies,
		Delay:       stealth.NewHumanDelay(stealth.DelayProfile(cfg.DelayProfile)),
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
	}
	return httputil.NewHTTPClient(transport), nil
}

// initPlatforms registers all available platform searchers.
func initPlatforms() error {
	pageClient, err := buildPageClient()
	if err != nil {
		return err
	}
	platform.Register("naver", naver.NewClient(naver.Options{
		ClientID:         cfg.ClientID,
		ClientSecret:     cfg.ClientSecret,
		APIClient:        httputil.NewHTTPClient(nil),
		PageClient:       pageClient,
		ShippingSelector: cfg.ShippingSelector,
		Logger:           log,
	}))
	return nil
}

// applySearchFlags copies the run-parameter flags that were set into cfg.
func applySearchFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if v, err := flags.GetInt("page-size"); err == nil && flags.Changed("page-size") {
		cfg.PageSize = v
	}
	if v, err := flags.GetInt("max-results"); err == nil && flags.Changed("max-results") {
		cfg.MaxResults = v
	}
	if v, err := flags.GetStringSlice("exclude"); err == nil && flags.Changed("exclude") {
		cfg.ExcludeSubstrings = v
	}
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page-size", config.MaxPageSize, "Listings requested per API call (1-100)")
	cmd.Flags().Int("max-results", 1000, "Highest result offset to request")
	cmd.Flags().StringSlice("exclude", nil, "Drop listings whose name contains any of these (comma separated or repeated)")
}

// keywordArg returns the positional keyword, falling back to the configured one.
func keywordArg(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Keyword != "" {
		return cfg.Keyword, nil
	}
	return "", fmt.Errorf("keyword is required (argument or $NAVERSCRAP_KEYWORD)")
}

// collect runs the searcher for keyword behind a spinner.
func collect(cmd *cobra.Command, keyword string) ([]models.Product, error) {
	searcher, err := platform.Get(cfg.DefaultPlatform)
	if err != nil {
		return nil, err
	}

	spin := ui.NewSpinner(cmd.ErrOrStderr())
	spin.Start(fmt.Sprintf("Searching '%s' on %s...", keyword, cfg.DefaultPlatform))
	ctx := platform.WithProgress(cmd.Context(), spin.Update)
	products, err := searcher.Collect(ctx, keyword, platform.SearchOpts{
		PageSize:   cfg.PageSize,
		MaxResults: cfg.MaxResults,
	})
	spin.Stop()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return products, nil
}
