package llm

import (
	"context"
	"fmt"
	"regexp"

	"github.com/arguslabs/argus/internal/model"
)

// claimIDPattern matches generated claim ids in summary text.
var claimIDPattern = regexp.MustCompile(`\bA\d+\b`)

// Summarizer drives a Provider and enforces the claim-id allowlist on its
// output.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer, or (nil, nil) when no provider is
// configured.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces an LLMSummary for the bundle. With strict claims
// enabled, references to ids outside the bundle are reported as warnings.
func (s *Summarizer) GenerateSummary(ctx context.Context, bundle *model.Bundle) (*model.LLMSummary, error) {
	claimIDs := make([]string, 0, bundle.Final.Len())
	for _, rec := range bundle.Final.Records {
		claimIDs = append(claimIDs, rec.ID)
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Bundle:    bundle,
		ClaimIDs:  claimIDs,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:      true,
		Provider:     s.provider.Name(),
		Model:        resp.Model,
		StrictClaims: s.config.StrictClaims,
		SummaryMD:    resp.Summary,
	}
	if s.config.StrictClaims {
		summary.Warnings = verifyClaimReferences(resp.Summary, bundle)
	}
	return summary, nil
}

// verifyClaimReferences flags ids mentioned in the summary that do not exist
// in the bundle.
func verifyClaimReferences(summary string, bundle *model.Bundle) []string {
	var warnings []string
	seen := make(map[string]bool)
	for _, id := range claimIDPattern.FindAllString(summary, -1) {
		if seen[id] {
			continue
		}
		seen[id] = true
		if bundle.Final.ByID(id) == nil {
			warnings = append(warnings, fmt.Sprintf("summary references unknown claim id %s", id))
		}
	}
	return warnings
}

// RenderSeparateMarkdown renders the summary for its standalone .llm.md
// file, clearly separated from the deterministic report.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	md := "# LLM Summary (informational)\n\n"
	md += fmt.Sprintf("Generated by %s/%s. This text is model output and does not affect valuations.\n\n", summary.Provider, summary.Model)
	md += summary.SummaryMD
	md += "\n"
	if len(summary.Warnings) > 0 {
		md += "\n## Warnings\n\n"
		for _, w := range summary.Warnings {
			md += "- " + w + "\n"
		}
	}
	return md
}
