package extract

import (
	"testing"

	"github.com/arguslabs/argus/internal/model"
)

func TestExtractClaims(t *testing.T) {
	text := "The dog barks. The dog does not bark."
	claims := ExtractClaims(text)
	if len(claims) != 2 {
		t.Fatalf("got %d claims, want 2: %+v", len(claims), claims)
	}

	if claims[0].Subject != "dog" || claims[0].Verb != "bark" || claims[0].Negated {
		t.Errorf("claim 0 = %+v, want {dog bark false}", claims[0])
	}
	if claims[1].Subject != "dog" || claims[1].Verb != "bark" || !claims[1].Negated {
		t.Errorf("claim 1 = %+v, want {dog bark true}", claims[1])
	}
}

func TestExtractClaimsObject(t *testing.T) {
	claims := ExtractClaims("The cat chases the mouse.")
	if len(claims) != 1 {
		t.Fatalf("got %d claims, want 1", len(claims))
	}
	c := claims[0]
	if c.Subject != "cat" || c.Verb != "chase" {
		t.Errorf("claim = %+v, want subject cat, verb chase", c)
	}
	if c.Object == nil || *c.Object != "mouse" {
		t.Errorf("object = %v, want mouse", c.Object)
	}
}

func TestExtractClaimsContraction(t *testing.T) {
	claims := ExtractClaims("The engine doesn't start. Birds can't swim.")
	if len(claims) != 2 {
		t.Fatalf("got %d claims, want 2: %+v", len(claims), claims)
	}
	for i, c := range claims {
		if !c.Negated {
			t.Errorf("claim %d = %+v, want negated", i, c)
		}
	}
	if claims[0].Verb != "start" {
		t.Errorf("claim 0 verb = %q, want start (no re-normalization after auxiliary)", claims[0].Verb)
	}
	if claims[1].Subject != "birds" || claims[1].Verb != "swim" {
		t.Errorf("claim 1 = %+v, want {birds swim}", claims[1])
	}
}

func TestExtractClaimsNegationWords(t *testing.T) {
	tests := []struct {
		text    string
		negated bool
	}{
		{"The dog never barks.", true},
		{"The system is not stable.", true},
		{"The system is stable.", false},
		{"Users cannot login.", true},
	}
	for _, tt := range tests {
		claims := ExtractClaims(tt.text)
		if len(claims) != 1 {
			t.Errorf("%q: got %d claims, want 1", tt.text, len(claims))
			continue
		}
		if claims[0].Negated != tt.negated {
			t.Errorf("%q: negated = %v, want %v", tt.text, claims[0].Negated, tt.negated)
		}
	}
}

func TestExtractClaimsVerbNormalization(t *testing.T) {
	tests := []struct {
		text string
		verb string
	}{
		{"The dog barks loudly.", "bark"},
		{"The cat flies away.", "fly"},
		{"The clock watches everything.", "watch"},
		{"The player passes often.", "pass"},
		{"The light goes out.", "go"},
		{"The glass falls.", "fall"},
	}
	for _, tt := range tests {
		claims := ExtractClaims(tt.text)
		if len(claims) != 1 {
			t.Errorf("%q: got %d claims, want 1", tt.text, len(claims))
			continue
		}
		if claims[0].Verb != tt.verb {
			t.Errorf("%q: verb = %q, want %q", tt.text, claims[0].Verb, tt.verb)
		}
	}
}

func TestExtractClaimsSkipsFragments(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  "},
		{"single word sentences", "Hello. World. Yes."},
		{"subject only", "The dog."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := ExtractClaims(tt.text)
			if len(claims) != 0 {
				t.Errorf("got %d claims, want 0: %+v", len(claims), claims)
			}
		})
	}
}

func TestExtractClaimsMultipleSentences(t *testing.T) {
	text := "The sky is blue! Is the sea calm? The wind blows hard.\nThe sun shines."
	claims := ExtractClaims(text)
	if len(claims) != 4 {
		t.Fatalf("got %d claims, want 4: %+v", len(claims), claims)
	}
}

func TestExtractClaimsValidate(t *testing.T) {
	// Everything the extractor emits must pass core validation.
	claims := ExtractClaims("The dog barks. The cat does not sleep. Water boils at heat.")
	if len(claims) == 0 {
		t.Fatal("no claims extracted")
	}
	for i, c := range claims {
		if err := c.Validate(); err != nil {
			t.Errorf("claim %d (%+v): %v", i, c, err)
		}
	}
}

func TestParseClaimArticlesSkipped(t *testing.T) {
	claim, ok := parseClaim("A dog chases that ball")
	if !ok {
		t.Fatal("parseClaim failed")
	}
	want := model.Claim{Subject: "dog", Verb: "chase"}
	if claim.Subject != want.Subject || claim.Verb != want.Verb {
		t.Errorf("claim = %+v, want subject %q verb %q", claim, want.Subject, want.Verb)
	}
	if claim.Object == nil || *claim.Object != "ball" {
		t.Errorf("object = %v, want ball", claim.Object)
	}
}
