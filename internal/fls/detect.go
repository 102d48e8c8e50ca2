package fls

import (
	"github.com/arguslabs/argus/internal/model"
)

// Attack strengths for the two contradiction rules.
const (
	StrongAttack = 1.0 // same subject and verb, differing negation
	WeakAttack   = 0.5 // same subject, differing verb
)

// Detector scans an assumption set for directed attack relations between
// claims. Both rules emit symmetric pairs, but the engine downstream accepts
// asymmetric graphs too.
type Detector struct{}

// NewDetector creates a new attack detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect walks every unordered pair (i, j) with i before j in assumption
// order and emits edges in discovery order. The output ordering is part of
// the contract: the engine sweeps edges in exactly this sequence.
//
// Same subject and verb with differing negation is a strong attack; same
// subject with a different verb is a weak attack. Identical claims (same
// subject, verb and negation) do not attack each other.
func (d *Detector) Detect(set *model.AssumptionSet) []model.Attack {
	attacks := make([]model.Attack, 0)
	recs := set.Records
	for i := 0; i < len(recs); i++ {
		for j := i + 1; j < len(recs); j++ {
			ci, cj := recs[i].Claim, recs[j].Claim
			if ci.Subject != cj.Subject {
				continue
			}
			if ci.Verb == cj.Verb {
				if ci.Negated != cj.Negated {
					attacks = append(attacks,
						model.Attack{From: recs[i].ID, To: recs[j].ID, Strength: StrongAttack},
						model.Attack{From: recs[j].ID, To: recs[i].ID, Strength: StrongAttack},
					)
				}
				continue
			}
			attacks = append(attacks,
				model.Attack{From: recs[i].ID, To: recs[j].ID, Strength: WeakAttack},
				model.Attack{From: recs[j].ID, To: recs[i].ID, Strength: WeakAttack},
			)
		}
	}
	return attacks
}
