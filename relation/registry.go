package relation

import (
	"fmt"

	"github.com/revelaction/fgcrel/fgcr"
)

type entry struct {
	index int
	kind  string
}

// Registry assigns dense indices to spans in first seen order. Spans are
// keyed by their offsets; the kind of the first registration is kept.
// A Registry belongs to a single instance.
type Registry struct {
	entries map[fgcr.Offsets]entry
	order   []fgcr.Offsets
}

func NewRegistry() *Registry {
	return &Registry{entries: map[fgcr.Offsets]entry{}}
}

// Add registers all offsets with the given kind. Offsets already present are
// left untouched.
func (r *Registry) Add(offsets []fgcr.Offsets, kind string) {
	for _, o := range offsets {
		if _, ok := r.entries[o]; ok {
			continue
		}

		r.entries[o] = entry{index: len(r.order), kind: kind}
		r.order = append(r.order, o)
	}
}

// Index returns the index of the span at offsets.
func (r *Registry) Index(o fgcr.Offsets) (int, error) {
	e, ok := r.entries[o]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnregisteredSpan, o)
	}
	return e.index, nil
}

// Len returns the number of registered spans.
func (r *Registry) Len() int {
	return len(r.order)
}

// Spans returns the registered spans in index order.
func (r *Registry) Spans() []Span {
	spans := make([]Span, 0, len(r.order))
	for _, o := range r.order {
		spans = append(spans, Span{
			Type:  r.entries[o].kind,
			Start: o.Start,
			End:   o.End,
		})
	}
	return spans
}
