package llm

import (
	"strings"
	"testing"

	"github.com/arguslabs/argus/internal/model"
)

func testBundle() *model.Bundle {
	set := model.NewAssumptionSet(2)
	one := 1.0
	zero := 0.0
	set.Add(model.Assumption{ID: "A0", Claim: model.Claim{Subject: "dog", Verb: "bark"}, Weight: 1.0, Final: &one})
	set.Add(model.Assumption{ID: "A1", Claim: model.Claim{Subject: "dog", Verb: "bark", Negated: true}, Weight: 1.0, Final: &zero})

	return &model.Bundle{
		Subject: "dog",
		TNorm:   "min",
		AnalysisResult: model.AnalysisResult{
			Claims: []model.Claim{
				{Subject: "dog", Verb: "bark"},
				{Subject: "dog", Verb: "bark", Negated: true},
			},
			Attacks: []model.Attack{
				{From: "A0", To: "A1", Strength: 1.0},
				{From: "A1", To: "A0", Strength: 1.0},
			},
			Final: set,
		},
	}
}

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p != nil {
		t.Errorf("empty provider name should disable, got %T", p)
	}
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "claude-in-a-box"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "unknown LLM provider") {
		t.Errorf("error = %v, want unknown-provider message", err)
	}
}

func TestNewProviderOpenAIRequiresKey(t *testing.T) {
	_, err := NewProvider(Config{Provider: "openai"})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewProviderOllama(t *testing.T) {
	p, err := NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p == nil || p.Name() != "ollama" {
		t.Errorf("provider = %v", p)
	}
}

func TestNewSummarizerDisabled(t *testing.T) {
	s, err := NewSummarizer(Config{})
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil summarizer when disabled, got %+v", s)
	}
	if s.IsEnabled() {
		t.Error("nil summarizer reports enabled")
	}
}

func TestBuildPrompt(t *testing.T) {
	bundle := testBundle()
	prompt := BuildPrompt(bundle, []string{"A0", "A1"})

	for _, want := range []string{
		"A0: dog bark",
		"A1: dog not bark",
		"T-norm: min",
		"final 1.0000",
		"final 0.0000",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.Contains(prompt, "NEVER asserts what is true") {
		t.Error("prompt missing the valuations-not-truth rule")
	}
}

func TestBuildPromptNoClaims(t *testing.T) {
	bundle := &model.Bundle{
		Subject:        "empty",
		TNorm:          "min",
		AnalysisResult: model.AnalysisResult{Final: model.NewAssumptionSet(0)},
	}
	prompt := BuildPrompt(bundle, nil)
	if !strings.Contains(prompt, "(no claims)") {
		t.Error("prompt missing the empty-claims marker")
	}
}

func TestVerifyClaimReferences(t *testing.T) {
	bundle := testBundle()

	warnings := verifyClaimReferences("A0 retained full belief while A1 collapsed.", bundle)
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	warnings = verifyClaimReferences("A0 held, but A7 and A9 were invented. A7 again.", bundle)
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2 (dedup repeated ids): %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if !strings.Contains(w, "unknown claim id") {
			t.Errorf("warning = %q", w)
		}
	}
}

func TestRenderSeparateMarkdown(t *testing.T) {
	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  "ollama",
		Model:     "llama3.2",
		SummaryMD: "A0 retained full belief.",
		Warnings:  []string{"summary references unknown claim id A7"},
	}

	md := RenderSeparateMarkdown(summary)
	for _, want := range []string{
		"# LLM Summary (informational)",
		"ollama/llama3.2",
		"A0 retained full belief.",
		"## Warnings",
		"A7",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
