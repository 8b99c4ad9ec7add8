// Package relation holds the generic span + relation schema and converts
// raw FGCR instances into it.
package relation

import (
	"github.com/revelaction/fgcrel/fgcr"
)

const (
	KindCause  = "cause"
	KindEffect = "effect"
)

// Instance is one converted example, one JSON line of the output. Field
// order is the output key order.
type Instance struct {
	Id     string     `json:"id"`
	Tokens []string   `json:"tokens"`
	Pairs  []SpanPair `json:"span_pair_list"`
	Spans  []Span     `json:"span_list"`
}

// Span is a cause or effect mention. Its index is its position in
// Instance.Spans.
type Span struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func (s Span) Offsets() fgcr.Offsets {
	return fgcr.Offsets{Start: s.Start, End: s.End}
}

// SpanPair links the cause span Head to the effect span Tail.
type SpanPair struct {
	Type string `json:"type"`
	Head int    `json:"head"`
	Tail int    `json:"tail"`
}

// Library is a converted split.
type Library []Instance

// Ids returns the instance ids in split order.
func (l Library) Ids() []string {
	ids := make([]string, 0, len(l))
	for _, inst := range l {
		ids = append(ids, inst.Id)
	}
	return ids
}

// Find returns the instance with the given id.
func (l Library) Find(id string) (Instance, bool) {
	for _, inst := range l {
		if inst.Id == id {
			return inst, true
		}
	}
	return Instance{}, false
}
