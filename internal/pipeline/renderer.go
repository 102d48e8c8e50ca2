package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/arguslabs/argus/internal/model"
)

// Renderer writes analysis bundles as JSON and Markdown. Numeric formatting
// and file I/O live here, outside the core.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the bundle as indented JSON.
func (r *Renderer) RenderJSON(bundle *model.Bundle, path string) error {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(bundle *model.Bundle, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Argus Analysis: %s\n\n", bundle.Subject)
	if bundle.Source != "" {
		fmt.Fprintf(&b, "**Source:** %s\n\n", bundle.Source)
	}
	fmt.Fprintf(&b, "**Analyzed:** %s  \n", bundle.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**T-norm:** %s  \n", bundle.TNorm)
	fmt.Fprintf(&b, "**Source reliability:** %.2f\n\n", bundle.SourceReliability)

	b.WriteString("## Claims\n\n")
	if len(bundle.Claims) == 0 {
		b.WriteString("No claims extracted.\n\n")
	} else {
		b.WriteString("| ID | Claim | Negated | Initial | Final |\n")
		b.WriteString("|----|-------|---------|---------|-------|\n")
		for _, rec := range bundle.Final.Records {
			final := "-"
			if rec.Final != nil {
				final = fmt.Sprintf("%.4f", *rec.Final)
			}
			fmt.Fprintf(&b, "| %s | %s | %v | %.2f | %s |\n",
				rec.ID, rec.Claim.String(), rec.Claim.Negated, rec.Weight, final)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Attacks\n\n")
	if len(bundle.Attacks) == 0 {
		b.WriteString("No conflicts detected between claims.\n\n")
	} else {
		for _, atk := range bundle.Attacks {
			kind := "weak"
			if atk.Strength >= 1.0 {
				kind = "strong"
			}
			fmt.Fprintf(&b, "- %s → %s (%s, strength %.1f)\n", atk.From, atk.To, kind, atk.Strength)
		}
		b.WriteString("\n")
	}

	if collapsed := collapsedClaims(bundle); len(collapsed) > 0 {
		b.WriteString("## Notes\n\n")
		fmt.Fprintf(&b, "%d claim(s) lost more than half of their initial belief under attack: %s.\n\n",
			len(collapsed), strings.Join(collapsed, ", "))
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by Argus. Valuations describe how claims survive mutual attack, not truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderLLMMarkdown writes the separate LLM summary file.
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderSummary prints a short digest to stdout.
func (r *Renderer) RenderSummary(bundle *model.Bundle) {
	fmt.Printf("\n%s\n", bundle.Subject)
	fmt.Printf("  Claims:  %d\n", len(bundle.Claims))
	fmt.Printf("  Attacks: %d\n", len(bundle.Attacks))
	for _, rec := range bundle.Final.Records {
		if rec.Final == nil {
			continue
		}
		fmt.Printf("  %-4s %-40s %.4f\n", rec.ID, truncate(rec.Claim.String(), 40), *rec.Final)
	}
	fmt.Println()
}

// collapsedClaims lists ids whose final valuation dropped below half the
// initial weight.
func collapsedClaims(bundle *model.Bundle) []string {
	var ids []string
	for _, rec := range bundle.Final.Records {
		if rec.Final != nil && *rec.Final < rec.Weight/2 {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}

// truncate shortens s to n runes, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
