// Package llm generates an optional natural-language summary of an analysis
// bundle. The summary is produced after valuation and never affects it.
package llm

import (
	"context"
	"fmt"

	"github.com/arguslabs/argus/internal/model"
)

// Provider is one summary backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a summary constrained to the bundle's claim ids.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks that the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for summary generation.
type SummarizeRequest struct {
	// Bundle is the analysis to summarize.
	Bundle *model.Bundle

	// ClaimIDs is the strict allowlist of ids the model may reference.
	ClaimIDs []string

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model is the provider-specific model name.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse is the provider output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	Provider     string // "openai", "ollama", "" = disabled
	Model        string
	APIKey       string
	BaseURL      string
	Timeout      int // seconds
	StrictClaims bool
	MaxTokens    int
}

// ConfigFromModel converts the model-level LLM configuration.
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:     cfg.Provider,
		Model:        cfg.Model,
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		Timeout:      cfg.Timeout,
		StrictClaims: cfg.StrictClaims,
		MaxTokens:    cfg.MaxTokens,
	}
}

// BuildPrompt constructs the default summary prompt. The model is told to
// describe how claims survive mutual attack, reference only listed ids, and
// never assert truth.
func BuildPrompt(bundle *model.Bundle, claimIDs []string) string {
	prompt := fmt.Sprintf(`You are summarizing an Argus analysis. Argus assigns each claim a belief
valuation in [0,1] describing how well it survives attack by conflicting
claims - it NEVER asserts what is true.

CRITICAL RULES:
1. You may ONLY reference claims by the ids listed here:
%s
2. Do not invent claims, ids, or external facts.
3. Describe valuations, not truth: "A0 retains full belief", "A1 collapsed
   under a strong attack from A0", "A2 and A3 weakened each other".
4. If no attacks were detected, say the claims are mutually consistent.

Analysis:
- Subject: %s
- T-norm: %s
- Claims: %d
- Attacks: %d
`, joinClaimIDs(bundle, claimIDs), bundle.Subject, bundle.TNorm, len(bundle.Claims), len(bundle.Attacks))

	for _, rec := range bundle.Final.Records {
		final := rec.Weight
		if rec.Final != nil {
			final = *rec.Final
		}
		prompt += fmt.Sprintf("- %s: %q (initial %.2f, final %.4f)\n", rec.ID, rec.Claim.String(), rec.Weight, final)
	}

	prompt += "\nProvide a 3-4 sentence summary of which claims held and which collapsed, and why."
	return prompt
}

func joinClaimIDs(bundle *model.Bundle, claimIDs []string) string {
	if len(claimIDs) == 0 {
		return "(no claims)"
	}
	result := ""
	for _, id := range claimIDs {
		line := id
		if rec := bundle.Final.ByID(id); rec != nil {
			line = fmt.Sprintf("%s: %s", id, rec.Claim.String())
		}
		result += "\n- " + line
	}
	return result
}
