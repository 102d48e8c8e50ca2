package model

import (
	"errors"
	"testing"
)

func TestClaimValidate(t *testing.T) {
	tests := []struct {
		name    string
		claim   Claim
		wantErr bool
	}{
		{"complete", Claim{Subject: "dog", Verb: "bark"}, false},
		{"negated", Claim{Subject: "dog", Verb: "bark", Negated: true}, false},
		{"missing subject", Claim{Verb: "bark"}, true},
		{"missing verb", Claim{Subject: "dog"}, true},
		{"whitespace subject", Claim{Subject: "   ", Verb: "bark"}, true},
		{"whitespace verb", Claim{Subject: "dog", Verb: "\t"}, true},
		{"empty", Claim{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.claim.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedClaim) {
					t.Errorf("Validate() = %v, want ErrMalformedClaim", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestClaimString(t *testing.T) {
	ball := "ball"
	tests := []struct {
		claim Claim
		want  string
	}{
		{Claim{Subject: "dog", Verb: "bark"}, "dog bark"},
		{Claim{Subject: "dog", Verb: "bark", Negated: true}, "dog not bark"},
		{Claim{Subject: "dog", Verb: "chase", Object: &ball}, "dog chase ball"},
		{Claim{Subject: "dog", Verb: "chase", Object: &ball, Negated: true}, "dog not chase ball"},
	}
	for _, tt := range tests {
		if got := tt.claim.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
