// Package extract is the host-side collaborator that turns raw text into
// normalized claims. The valuation core never sees text; it consumes the
// claim sequence produced here. The heuristics are deliberately shallow:
// no language detection, no models, no dependency parsing.
package extract

import (
	"strings"
	"unicode"

	"github.com/arguslabs/argus/internal/model"
)

// articles are skipped when locating the subject and object.
var articles = map[string]bool{
	"the": true, "a": true, "an": true, "this": true, "that": true,
}

// auxiliaries precede the main verb and are not claims themselves.
var auxiliaries = map[string]bool{
	"do": true, "does": true, "did": true,
	"is": true, "are": true, "was": true, "were": true,
	"will": true, "would": true, "shall": true,
	"can": true, "could": true, "should": true, "must": true,
	"may": true, "might": true,
	"has": true, "have": true, "had": true,
}

// negations flip the claim's negated flag.
var negations = map[string]bool{
	"not": true, "never": true, "cannot": true, "no": true,
}

// ExtractClaims parses plain text into subject-verb-object-negation claims,
// at most one claim per sentence. Sentences that do not yield both a subject
// and a verb are skipped, so the result may be empty.
func ExtractClaims(text string) []model.Claim {
	sentences := splitSentences(text)
	claims := make([]model.Claim, 0, len(sentences))
	for _, sentence := range sentences {
		if claim, ok := parseClaim(sentence); ok {
			claims = append(claims, claim)
		}
	}
	return claims
}

// splitSentences breaks text on sentence terminators. Fragments shorter than
// two words are dropped.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if len(strings.Fields(sentence)) >= 2 {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()

	return sentences
}

// parseClaim applies a first-token heuristic: the subject is the first
// non-article token, the verb is the first following token that is neither
// an auxiliary nor a negation, and the object is the next content token if
// one exists. Negation is detected from negation words and "n't" suffixes.
func parseClaim(sentence string) (model.Claim, bool) {
	tokens := tokenize(sentence)
	if len(tokens) < 2 {
		return model.Claim{}, false
	}

	pos := 0
	for pos < len(tokens) && articles[tokens[pos]] {
		pos++
	}
	if pos >= len(tokens) {
		return model.Claim{}, false
	}
	subject := tokens[pos]
	pos++

	negated := false
	sawAux := false
	verb := ""
	for pos < len(tokens) {
		tok := tokens[pos]
		pos++
		if strings.HasSuffix(tok, "n't") {
			negated = true
			sawAux = true
			continue
		}
		if negations[tok] {
			negated = true
			continue
		}
		if auxiliaries[tok] {
			sawAux = true
			continue
		}
		if articles[tok] {
			continue
		}
		verb = tok
		break
	}
	if verb == "" {
		return model.Claim{}, false
	}
	if !sawAux {
		// Without an auxiliary the verb carries the inflection itself.
		verb = normalizeVerb(verb)
	}

	claim := model.Claim{Subject: subject, Verb: verb, Negated: negated}
	for pos < len(tokens) {
		tok := tokens[pos]
		pos++
		if articles[tok] {
			continue
		}
		obj := tok
		claim.Object = &obj
		break
	}
	return claim, true
}

// normalizeVerb strips third-person singular inflection so "barks" and
// "does not bark" compare equal at detection time.
func normalizeVerb(v string) string {
	switch {
	case strings.HasSuffix(v, "ies") && len(v) > 3:
		return v[:len(v)-3] + "y"
	case hasESSuffix(v) && len(v) > 3:
		return v[:len(v)-2]
	case strings.HasSuffix(v, "s") && !strings.HasSuffix(v, "ss") && len(v) > 2:
		return v[:len(v)-1]
	default:
		return v
	}
}

func hasESSuffix(v string) bool {
	return strings.HasSuffix(v, "ches") ||
		strings.HasSuffix(v, "shes") ||
		strings.HasSuffix(v, "sses") ||
		strings.HasSuffix(v, "xes") ||
		strings.HasSuffix(v, "zes") ||
		strings.HasSuffix(v, "oes")
}

// tokenize lowercases and splits on whitespace, trimming punctuation but
// keeping in-word apostrophes so "doesn't" survives as one token.
func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
