// Package fls implements the fuzzy argumentation core: building the initial
// assumption set, detecting attack relations between claims, and resolving
// the attack graph into stable final valuations through a t-norm.
package fls

import (
	"fmt"

	"github.com/arguslabs/argus/internal/model"
)

// BuildAssumptions turns an ordered claim sequence into the identified,
// unit-weighted assumption set. Ids are derived from position ("A0", "A1",
// ...), so they are unique and stable for the lifetime of the analysis.
// Total function: an empty input yields an empty set.
func BuildAssumptions(claims []model.Claim) *model.AssumptionSet {
	set := model.NewAssumptionSet(len(claims))
	for i, claim := range claims {
		set.Add(model.Assumption{
			ID:     fmt.Sprintf("A%d", i),
			Claim:  claim,
			Weight: 1.0,
		})
	}
	return set
}
