package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/arguslabs/argus/internal/model"
	"github.com/arguslabs/argus/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON           string
	outMD             string
	tnormName         string
	maxSweeps         int
	sourceReliability float64
	claimsInput       bool
	noCache           bool
	noFooter          bool
	analyzeTimeout    time.Duration
	llmEnabled        bool
	llmProvider       string
	llmModel          string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a text file and compute claim valuations",
	Long: `Analyze extracts subject-verb-object claims from a text file, detects
attacks between conflicting claims, and resolves them into final belief
valuations with the chosen t-norm.

With --claims the input file is read as a JSON array of already-extracted
claims instead of raw text.

Example:
  argus analyze notes.txt
  argus analyze notes.txt --tnorm product --json out.json --md out.md
  argus analyze claims.json --claims --tnorm lukasiewicz`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: <input>.analysis.json)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Engine flags
	analyzeCmd.Flags().StringVar(&tnormName, "tnorm", "min", "t-norm used by the valuation engine (min, product, lukasiewicz)")
	analyzeCmd.Flags().IntVar(&maxSweeps, "max-sweeps", 0, "sweep cap before non-convergence is reported (0 = default)")
	analyzeCmd.Flags().Float64Var(&sourceReliability, "source-reliability", 1.0, "reliability of the source in [0,1], recorded in the bundle")

	// Input flags
	analyzeCmd.Flags().BoolVar(&claimsInput, "claims", false, "treat input as a JSON array of claims")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable bundle cache (force fresh analysis)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", time.Minute, "overall analysis timeout")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", input)
		fmt.Fprintf(os.Stderr, "T-norm: %s\n", cfg.Engine.TNorm)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	analyzer, err := pipeline.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	// --claims forces claim-array parsing regardless of extension.
	path := input
	if claimsInput && !strings.EqualFold(ext(input), ".json") {
		return fmt.Errorf("--claims requires a .json input file")
	}

	bundle, err := analyzer.AnalyzeFile(ctx, path)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", len(bundle.Claims))
		fmt.Fprintf(os.Stderr, "✓ Detected %d attacks\n", len(bundle.Attacks))
		fmt.Fprintln(os.Stderr)
	}

	jsonPath := outJSON
	if jsonPath == "" {
		jsonPath = strings.TrimSuffix(input, ext(input)) + ".analysis.json"
	}

	if err := analyzer.RenderReport(bundle, jsonPath, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	fmt.Printf("Analysis written to %s\n", jsonPath)
	return nil
}

// buildConfig assembles the effective configuration from defaults and flags,
// shared by analyze, scan and batch.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Engine.TNorm = tnormName
	cfg.Engine.MaxSweeps = maxSweeps
	cfg.Engine.SourceReliability = sourceReliability
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.StrictClaims = true // always enforce

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}
	return cfg, nil
}

func ext(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return path[idx:]
	}
	return ""
}
