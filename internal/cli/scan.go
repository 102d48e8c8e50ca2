package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arguslabs/argus/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	scanTimeout time.Duration
	userAgent   string
	maxBytes    int64
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Fetch a web page and analyze its visible text",
	Long: `Scan fetches a page (honoring robots.txt), strips it down to readable
text, extracts claims, and runs the same valuation as analyze.

Example:
  argus scan https://example.com/article
  argus scan https://example.com/article --tnorm product --json report.json
  argus scan https://example.com/article --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scanCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Engine flags
	scanCmd.Flags().StringVar(&tnormName, "tnorm", "min", "t-norm used by the valuation engine (min, product, lukasiewicz)")
	scanCmd.Flags().Float64Var(&sourceReliability, "source-reliability", 1.0, "reliability of the source in [0,1], recorded in the bundle")

	// HTTP flags
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "overall scan timeout")
	scanCmd.Flags().StringVar(&userAgent, "ua", "Argus/0.1 (+https://github.com/arguslabs/argus)", "HTTP User-Agent")
	scanCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	scanCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	scanCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	scanCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable bundle cache (force fresh analysis)")

	// LLM flags
	scanCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	scanCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.HTTP.Timeout = scanTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", url)
		fmt.Fprintf(os.Stderr, "T-norm: %s\n", cfg.Engine.TNorm)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", scanTimeout)
		fmt.Fprintln(os.Stderr)
	}

	analyzer, err := pipeline.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	bundle, err := analyzer.ScanURL(ctx, url)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", len(bundle.Claims))
		fmt.Fprintf(os.Stderr, "✓ Detected %d attacks\n", len(bundle.Attacks))
		if bundle.LLM != nil && bundle.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", bundle.LLM.Provider, bundle.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	jsonPath := outJSON
	if jsonPath == "" {
		jsonPath = filepath.Base(url) + ".analysis.json"
	}
	if err := analyzer.RenderReport(bundle, jsonPath, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
