package model

import "time"

// Bundle is the complete analysis artifact written by the renderer. It wraps
// the core AnalysisResult with host-level metadata: where the text came from,
// when it was analyzed, and which t-norm resolved the attack graph.
type Bundle struct {
	Subject           string    `json:"subject"`
	Source            string    `json:"source,omitempty"` // file path or URL
	AnalyzedAt        time.Time `json:"analyzed_at"`
	TNorm             string    `json:"tnorm"`
	SourceReliability float64   `json:"source_reliability"`

	AnalysisResult

	LLM *LLMSummary `json:"llm,omitempty"` // optional, never affects valuations
}

// LLMSummary contains an optional LLM-generated summary of the bundle.
// It is produced after valuation and never feeds back into it.
type LLMSummary struct {
	Enabled      bool     `json:"enabled"`
	Provider     string   `json:"provider,omitempty"`
	Model        string   `json:"model,omitempty"`
	StrictClaims bool     `json:"strict_claims"` // whether claim-id enforcement was enabled
	SummaryMD    string   `json:"summary_md,omitempty"`
	Warnings     []string `json:"warnings,omitempty"` // e.g. references to unknown claim ids
}
