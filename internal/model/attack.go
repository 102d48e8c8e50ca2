package model

// Attack is a directed edge between two assumptions: belief in From reduces
// belief in To by up to Strength. Immutable once emitted by the detector.
type Attack struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Strength float64 `json:"strength"` // in [0,1]
}

// AnalysisResult is the core output contract: the claims as given, the
// initial assumption set, the detected attack sequence in detector order,
// and the final assumption set with exactly one valuation per id.
type AnalysisResult struct {
	Claims  []Claim        `json:"claims"`
	Initial *AssumptionSet `json:"initial"`
	Attacks []Attack       `json:"attacks"`
	Final   *AssumptionSet `json:"final"`
}
