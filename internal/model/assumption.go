package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Assumption is one identified, weighted entry of the assumption set.
// Weight is fixed at 1.0 by the builder; Final is populated exactly once by
// the valuation engine and stays nil until then.
type Assumption struct {
	ID     string   `json:"-"`
	Claim  Claim    `json:"claim"`
	Weight float64  `json:"weight"`
	Final  *float64 `json:"final,omitempty"`
}

// AssumptionSet is an ordered arena of assumptions. Records keep insertion
// order (the original claim order) and ids resolve to arena indices, so the
// engine never walks a string-keyed map.
type AssumptionSet struct {
	Records []Assumption

	index map[string]int
}

// NewAssumptionSet creates an empty set sized for n records.
func NewAssumptionSet(n int) *AssumptionSet {
	return &AssumptionSet{
		Records: make([]Assumption, 0, n),
		index:   make(map[string]int, n),
	}
}

// Add appends a record. Ids are expected to be unique; a duplicate id is
// silently ignored so the set can never hold two records for one id.
func (s *AssumptionSet) Add(a Assumption) {
	if _, exists := s.index[a.ID]; exists {
		return
	}
	s.index[a.ID] = len(s.Records)
	s.Records = append(s.Records, a)
}

// Len returns the number of records.
func (s *AssumptionSet) Len() int {
	return len(s.Records)
}

// IndexOf resolves an id to its arena index.
func (s *AssumptionSet) IndexOf(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// ByID returns a pointer to the record for id, or nil if unknown.
func (s *AssumptionSet) ByID(id string) *Assumption {
	if i, ok := s.index[id]; ok {
		return &s.Records[i]
	}
	return nil
}

// Clone deep-copies the set, including Final values.
func (s *AssumptionSet) Clone() *AssumptionSet {
	out := NewAssumptionSet(len(s.Records))
	for _, rec := range s.Records {
		cp := rec
		if rec.Final != nil {
			v := *rec.Final
			cp.Final = &v
		}
		out.Add(cp)
	}
	return out
}

// MarshalJSON renders the set as an id-keyed object in insertion order.
func (s *AssumptionSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rec := range s.Records {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rec.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON rebuilds the set from an id-keyed object, restoring the
// original claim order from the numeric id suffix ("A0", "A1", ...).
func (s *AssumptionSet) UnmarshalJSON(data []byte) error {
	var raw map[string]Assumption
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("assumption set: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, oki := idOrdinal(ids[i])
		nj, okj := idOrdinal(ids[j])
		if oki && okj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})

	*s = *NewAssumptionSet(len(ids))
	for _, id := range ids {
		rec := raw[id]
		rec.ID = id
		s.Add(rec)
	}
	return nil
}

// idOrdinal parses the position out of a generated id.
func idOrdinal(id string) (int, bool) {
	trimmed := strings.TrimPrefix(id, "A")
	if trimmed == id {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return n, true
}
