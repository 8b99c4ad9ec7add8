package stat

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/revelaction/fgcrel/relation"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumInstances          int
	NumTokens             int
	TokensPerInstanceMean int
	NumCauses             int
	NumEffects            int
	NumPairs              int
	PairsPerType          map[string]int
	SpansPerInstanceDis   map[int]int

	// Skipped is nil when the relations dropped during conversion are not
	// known, as for splits read back from storage.
	Skipped map[relation.SkipReason]int
}

// NumSpans returns the number of cause and effect spans.
func (s Stats) NumSpans() int {
	return s.NumCauses + s.NumEffects
}

// NumSkipped returns the number of dropped relations.
func (s Stats) NumSkipped() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

// String returns a one line summary. Skips are left out when unknown.
func (s Stats) String() string {
	str := fmt.Sprintf("instances %d, tokens %d (%d per instance), spans %d (cause %d, effect %d), pairs %d [%s]",
		s.NumInstances, s.NumTokens, s.TokensPerInstanceMean,
		s.NumSpans(), s.NumCauses, s.NumEffects,
		s.NumPairs, joinCounts(s.PairsPerType))

	if s.Skipped == nil {
		return str
	}
	return str + fmt.Sprintf(", skipped %d [%s]", s.NumSkipped(), joinCounts(s.Skipped))
}

func joinCounts[K ~string](m map[K]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, m[K(k)]))
	}
	return strings.Join(parts, ", ")
}

// Get returns a snapshot; later calls to Aggregate or AddSkips do not change
// it.
func (h *Handler) Get() Stats {
	s := h.stats
	s.PairsPerType = maps.Clone(h.stats.PairsPerType)
	s.SpansPerInstanceDis = maps.Clone(h.stats.SpansPerInstanceDis)
	s.Skipped = maps.Clone(h.stats.Skipped)
	if s.NumInstances > 0 {
		s.TokensPerInstanceMean = s.NumTokens / s.NumInstances
	}
	return s
}

func NewHandler() *Handler {
	stats := Stats{
		PairsPerType:        map[string]int{},
		SpansPerInstanceDis: map[int]int{},
	}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Aggregate(inst relation.Instance) {
	h.stats.NumInstances++
	h.stats.NumTokens += len(inst.Tokens)
	h.stats.SpansPerInstanceDis[len(inst.Spans)]++

	for _, span := range inst.Spans {
		switch span.Type {
		case relation.KindCause:
			h.stats.NumCauses++
		case relation.KindEffect:
			h.stats.NumEffects++
		}
	}

	h.stats.NumPairs += len(inst.Pairs)
	for _, pair := range inst.Pairs {
		h.stats.PairsPerType[pair.Type]++
	}
}

// AddSkips counts dropped relations. Once called, even with no skips, the
// summary reports skips.
func (h *Handler) AddSkips(skips []relation.Skip) {
	if h.stats.Skipped == nil {
		h.stats.Skipped = map[relation.SkipReason]int{}
	}
	for _, s := range skips {
		h.stats.Skipped[s.Reason]++
	}
}
