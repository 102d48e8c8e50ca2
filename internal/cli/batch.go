package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/arguslabs/argus/internal/pipeline"
	"github.com/arguslabs/argus/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	requestsPS   float64
	burstSize    int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple files or URLs from a manifest in parallel",
	Long: `Batch reads a manifest (one file path or URL per line, # for comments)
and analyzes every entry concurrently. URL entries are fetched with
per-domain rate limiting; each entry gets its own JSON and Markdown report
in the output directory.

Example:
  argus batch sources.txt
  argus batch sources.txt --concurrency 8 --output-dir ./reports
  argus batch sources.txt --tnorm product --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./argus-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&requestsPS, "rps", 2, "max requests per second per domain for URL entries")
	batchCmd.Flags().IntVar(&burstSize, "burst", 5, "rate limiter burst size")

	// Engine flags
	batchCmd.Flags().StringVar(&tnormName, "tnorm", "min", "t-norm used by the valuation engine (min, product, lukasiewicz)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable bundle cache (force fresh analysis)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags for URL entries
	batchCmd.Flags().DurationVar(&scanTimeout, "scan-timeout", 30*time.Second, "timeout for individual URL fetches")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Argus/0.1 (+https://github.com/arguslabs/argus)", "HTTP User-Agent")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Argus Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", manifest)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  T-norm:       %s\n", tnormName)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.HTTP.Timeout = scanTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Concurrency.Workers = concurrency
	cfg.RateLimiting.RequestsPerSecond = requestsPS
	cfg.RateLimiting.BurstSize = burstSize

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	analyzer, err := pipeline.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(analyzer, concurrency, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	fmt.Fprintf(os.Stderr, "⚙️  Processing sources with %d workers...\n\n", concurrency)
	results, err := processor.ProcessFile(ctx, manifest)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	successCount := 0
	failureCount := 0
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Err)
			continue
		}
		successCount++

		slug := sanitizeFilename(result.Bundle.Subject)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Bundle, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Source, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Bundle, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Source, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (%d claims, %d attacks)\n", result.Bundle.Subject, len(result.Bundle.Claims), len(result.Bundle.Attacks))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d sources\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename makes a subject safe to use as a file name.
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "analysis"
	}
	return s
}
