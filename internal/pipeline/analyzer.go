// Package pipeline composes the analysis stages: extraction, assumption set
// construction, attack detection, valuation, and rendering.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arguslabs/argus/internal/cache"
	"github.com/arguslabs/argus/internal/extract"
	"github.com/arguslabs/argus/internal/fls"
	"github.com/arguslabs/argus/internal/fuzzy"
	"github.com/arguslabs/argus/internal/llm"
	"github.com/arguslabs/argus/internal/model"
)

// Analyzer orchestrates a complete analysis: claims in, valued bundle out.
// Each invocation owns its data, so concurrent callers are safe.
type Analyzer struct {
	fetcher    *Fetcher
	detector   *fls.Detector
	engine     *fls.Engine
	renderer   *Renderer
	bundles    cache.Cache     // nil when caching is disabled
	summarizer *llm.Summarizer // nil when the LLM summary is disabled
	config     *model.Config
}

// NewAnalyzer creates an analyzer from the configuration. An unknown t-norm
// selector is a configuration error.
func NewAnalyzer(cfg *model.Config) (*Analyzer, error) {
	tnorm, err := fuzzy.Parse(cfg.Engine.TNorm)
	if err != nil {
		return nil, err
	}

	var bundles cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".argus", "cache")
			}
		}
		if dir != "" {
			bundles = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		}
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Analyzer{
		fetcher:    NewFetcher(cfg.HTTP),
		detector:   fls.NewDetector(),
		engine:     fls.NewEngine(tnorm, cfg.Engine.MaxSweeps, cfg.Engine.Tolerance),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		bundles:    bundles,
		summarizer: summarizer,
		config:     cfg,
	}, nil
}

// AnalyzeClaims runs the valuation core over already-extracted claims:
// builder, detector, then the fixed-point engine. Claims are validated
// eagerly; a claim without subject or verb fails the whole analysis.
func (a *Analyzer) AnalyzeClaims(claims []model.Claim) (*model.AnalysisResult, error) {
	if claims == nil {
		claims = []model.Claim{}
	}
	for i, c := range claims {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("claim %d: %w", i, err)
		}
	}

	initial := fls.BuildAssumptions(claims)
	attacks := a.detector.Detect(initial)

	final := initial.Clone()
	if err := a.engine.Resolve(final, attacks); err != nil {
		return nil, err
	}

	return &model.AnalysisResult{
		Claims:  claims,
		Initial: initial,
		Attacks: attacks,
		Final:   final,
	}, nil
}

// AnalyzeText extracts claims from plain text and runs the core over them.
// With caching enabled, a bundle for the same text and t-norm is reused.
func (a *Analyzer) AnalyzeText(ctx context.Context, subject, source, text string) (*model.Bundle, error) {
	key := cache.BundleKey(text, a.config.Engine.TNorm)
	if a.bundles != nil {
		if data, found := a.bundles.Get(key); found {
			var b model.Bundle
			if err := json.Unmarshal(data, &b); err == nil {
				return &b, nil
			}
		}
	}

	claims := extract.ExtractClaims(text)
	result, err := a.AnalyzeClaims(claims)
	if err != nil {
		return nil, err
	}

	bundle := &model.Bundle{
		Subject:           subject,
		Source:            source,
		AnalyzedAt:        time.Now().UTC(),
		TNorm:             a.config.Engine.TNorm,
		SourceReliability: a.config.Engine.SourceReliability,
		AnalysisResult:    *result,
	}

	// Summary runs after valuation and never feeds back into it.
	if a.summarizer != nil && a.summarizer.IsEnabled() {
		summary, err := a.summarizer.GenerateSummary(ctx, bundle)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			bundle.LLM = summary
		}
	}

	if a.bundles != nil {
		if data, err := json.Marshal(bundle); err == nil {
			_ = a.bundles.Set(key, data, 0)
		}
	}
	return bundle, nil
}

// AnalyzeFile analyzes a local input. A .json file is read as an
// already-extracted claim array (the core input contract); anything else is
// treated as plain text.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*model.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	subject := subjectFromPath(path)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		var claims []model.Claim
		if err := json.Unmarshal(data, &claims); err != nil {
			return nil, fmt.Errorf("parse claims: %w", err)
		}
		return a.analyzeExtracted(ctx, subject, path, claims)
	}
	return a.AnalyzeText(ctx, subject, path, string(data))
}

// ScanURL fetches a page and analyzes its visible text.
func (a *Analyzer) ScanURL(ctx context.Context, rawURL string) (*model.Bundle, error) {
	fetched, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return a.AnalyzeText(ctx, fetched.Subject, fetched.FinalURL, fetched.Text)
}

// analyzeExtracted wraps AnalyzeClaims in a bundle for claim-array inputs,
// which bypass extraction and the text cache.
func (a *Analyzer) analyzeExtracted(ctx context.Context, subject, source string, claims []model.Claim) (*model.Bundle, error) {
	result, err := a.AnalyzeClaims(claims)
	if err != nil {
		return nil, err
	}

	bundle := &model.Bundle{
		Subject:           subject,
		Source:            source,
		AnalyzedAt:        time.Now().UTC(),
		TNorm:             a.config.Engine.TNorm,
		SourceReliability: a.config.Engine.SourceReliability,
		AnalysisResult:    *result,
	}
	if a.summarizer != nil && a.summarizer.IsEnabled() {
		if summary, err := a.summarizer.GenerateSummary(ctx, bundle); err == nil && summary != nil {
			bundle.LLM = summary
		}
	}
	return bundle, nil
}

// RenderReport writes the bundle to the requested outputs and prints the
// stdout summary.
func (a *Analyzer) RenderReport(bundle *model.Bundle, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := a.renderer.RenderJSON(bundle, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := a.renderer.RenderMarkdown(bundle, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if bundle.LLM != nil && bundle.LLM.Enabled && mdPath != "" {
		llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := a.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(bundle.LLM), llmPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM summary: %s\n", llmPath)
		}
	}

	a.renderer.RenderSummary(bundle)
	return nil
}

// subjectFromPath derives a subject from a file name.
func subjectFromPath(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return base
}
