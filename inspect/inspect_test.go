package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/fgcrel/relation"
	"github.com/revelaction/fgcrel/render"
)

func newTestHandler(buf *bytes.Buffer) *Handler {
	lib := relation.Library{
		{
			Id:     "101",
			Tokens: []string{"Abc", "at", "Def", "."},
			Pairs:  []relation.SpanPair{{Type: "cause", Head: 0, Tail: 1}},
			Spans: []relation.Span{
				{Type: relation.KindCause, Start: 0, End: 3},
				{Type: relation.KindEffect, Start: 7, End: 10},
			},
		},
		{Id: "102", Tokens: []string{"x"}, Pairs: []relation.SpanPair{}, Spans: []relation.Span{}},
		{Id: "20", Tokens: []string{"y"}, Pairs: []relation.SpanPair{}, Spans: []relation.Span{}},
	}

	r := render.NewRenderer()
	r.W = buf
	r.HasColor = false

	h := NewHandler("dev", lib, map[string]string{"101": "Abc at Def."}, r)
	h.Out = buf
	return h
}

func TestEvalInstance(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf)

	require.NoError(t, h.Eval(" 101 "))
	assert.Equal(t, "✍  101 Abc at Def.\n   🔗 cause: \"Abc\" -> \"Def\"\n", buf.String())
}

func TestEvalJSON(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf)

	require.NoError(t, h.Eval("/json 102"))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"id\": \"102\""), buf.String())
}

func TestEvalStat(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf)

	require.NoError(t, h.Eval("/stat"))
	assert.Contains(t, buf.String(), "dev: instances 3, tokens 6")
}

func TestEvalErrors(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf)

	assert.NoError(t, h.Eval(""))
	assert.ErrorContains(t, h.Eval("999"), "instance 999 not found in dev")
	assert.ErrorContains(t, h.Eval("/json"), "no instance id")
	assert.ErrorContains(t, h.Eval("/nope"), "unknown command")
}

func TestSuggest(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf)

	texts := func(word string) []string {
		out := []string{}
		for _, s := range h.suggest(word) {
			out = append(out, s.Text)
		}
		return out
	}

	assert.Equal(t, []string{"101", "102"}, texts("10"))
	assert.Equal(t, []string{"20"}, texts("2"))
	assert.Equal(t, []string{"/json"}, texts("/j"))
	assert.Equal(t, []string{}, texts(""))
}
