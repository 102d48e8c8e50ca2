package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedClaim reports a claim missing a field the analyzer requires.
var ErrMalformedClaim = errors.New("malformed claim")

// Claim represents one normalized factual statement: a subject-verb-object
// tuple with a negation flag. Claims are supplied by the extraction layer (or
// directly as JSON) and are identified only by their position in the input.
type Claim struct {
	Subject string  `json:"subject"`
	Verb    string  `json:"verb"`
	Object  *string `json:"object"` // nil when the sentence has no object
	Negated bool    `json:"negated"`
}

// Validate checks that the claim carries the fields attack detection relies on.
func (c Claim) Validate() error {
	if strings.TrimSpace(c.Subject) == "" {
		return fmt.Errorf("%w: missing subject", ErrMalformedClaim)
	}
	if strings.TrimSpace(c.Verb) == "" {
		return fmt.Errorf("%w: missing verb", ErrMalformedClaim)
	}
	return nil
}

// String renders the claim in a compact human-readable form for reports.
func (c Claim) String() string {
	var b strings.Builder
	b.WriteString(c.Subject)
	b.WriteString(" ")
	if c.Negated {
		b.WriteString("not ")
	}
	b.WriteString(c.Verb)
	if c.Object != nil {
		b.WriteString(" ")
		b.WriteString(*c.Object)
	}
	return b.String()
}
