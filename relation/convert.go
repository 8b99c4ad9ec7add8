package relation

import (
	"errors"
	"fmt"

	"github.com/revelaction/fgcrel/fgcr"
	"github.com/revelaction/fgcrel/logger"
	"github.com/revelaction/fgcrel/token"
)

// ErrUnregisteredSpan is returned when a relation references offsets that
// the registration pass did not record.
var ErrUnregisteredSpan = errors.New("span not registered")

// SkipReason tells why a relation was dropped.
type SkipReason string

const (
	// SkipNToM is a relation with several causes and several effects. The
	// head/tail schema cannot express it.
	SkipNToM SkipReason = "n-to-m"

	// SkipMissingSide is a relation without causes or without effects.
	SkipMissingSide SkipReason = "missing-side"
)

// Skip describes a dropped relation.
type Skip struct {
	Id       string
	Position int
	Reason   SkipReason
	Type     string
	Causes   []fgcr.Offsets
	Effects  []fgcr.Offsets
}

// Converter converts raw instances. It holds no per instance state and may be
// shared between goroutines if its Tokenizer and Log can.
type Converter struct {
	Tokenizer token.Tokenizer
	Log       logger.Logger
}

// NewConverter returns a Converter with the Treebank tokenizer and a logger
// that discards skip warnings.
func NewConverter() *Converter {
	return &Converter{
		Tokenizer: token.NewTreebank(),
		Log:       logger.Discard(),
	}
}

// Convert converts raw into the span + relation schema. Unsupported relations
// are logged, returned as skips and left out of the result.
func (c *Converter) Convert(raw fgcr.Instance) (Instance, []Skip, error) {
	id := raw.Tid.String()

	reg := NewRegistry()
	for _, ld := range raw.LabelData {
		if isNToM(ld) {
			continue
		}
		reg.Add(ld.Reason, KindCause)
		reg.Add(ld.Result, KindEffect)
	}

	pairs := []SpanPair{}
	var skips []Skip
	for pos, ld := range raw.LabelData {
		if reason, ok := unsupported(ld); ok {
			skip := Skip{
				Id:       id,
				Position: pos,
				Reason:   reason,
				Type:     ld.Type,
				Causes:   ld.Reason,
				Effects:  ld.Result,
			}
			c.warn(skip)
			skips = append(skips, skip)
			continue
		}

		expanded, err := expand(reg, ld)
		if err != nil {
			return Instance{}, skips, fmt.Errorf("instance %s, relation %d: %w", id, pos, err)
		}
		pairs = append(pairs, expanded...)
	}

	return Instance{
		Id:     id,
		Tokens: c.Tokenizer.Tokenize(raw.Info),
		Pairs:  pairs,
		Spans:  reg.Spans(),
	}, skips, nil
}

func (c *Converter) warn(s Skip) {
	if c.Log == nil {
		return
	}

	msg := "Relation without cause or effect. Skipping."
	if s.Reason == SkipNToM {
		msg = "Relation with N to M cause/effects. Skipping."
	}
	c.Log.Warn(msg, "id", s.Id, "relation", s.Position, "reason", s.Causes, "result", s.Effects)
}

func isNToM(ld fgcr.LabelData) bool {
	return len(ld.Reason) > 1 && len(ld.Result) > 1
}

func unsupported(ld fgcr.LabelData) (SkipReason, bool) {
	if isNToM(ld) {
		return SkipNToM, true
	}
	if len(ld.Reason) == 0 || len(ld.Result) == 0 {
		return SkipMissingSide, true
	}
	return "", false
}

// expand turns a 1:1, N:1 (fan-in) or 1:N (fan-out) relation into span pairs,
// one per cause or effect, in element order.
func expand(reg *Registry, ld fgcr.LabelData) ([]SpanPair, error) {
	switch {
	case len(ld.Reason) > 1:
		tail, err := reg.Index(ld.Result[0])
		if err != nil {
			return nil, err
		}

		pairs := make([]SpanPair, 0, len(ld.Reason))
		for _, cause := range ld.Reason {
			head, err := reg.Index(cause)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, SpanPair{Type: ld.Type, Head: head, Tail: tail})
		}
		return pairs, nil

	case len(ld.Result) > 1:
		head, err := reg.Index(ld.Reason[0])
		if err != nil {
			return nil, err
		}

		pairs := make([]SpanPair, 0, len(ld.Result))
		for _, effect := range ld.Result {
			tail, err := reg.Index(effect)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, SpanPair{Type: ld.Type, Head: head, Tail: tail})
		}
		return pairs, nil

	default:
		head, err := reg.Index(ld.Reason[0])
		if err != nil {
			return nil, err
		}
		tail, err := reg.Index(ld.Result[0])
		if err != nil {
			return nil, err
		}
		return []SpanPair{{Type: ld.Type, Head: head, Tail: tail}}, nil
	}
}
