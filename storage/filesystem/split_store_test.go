package filesystem

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/fgcrel/relation"
)

func testLibrary() relation.Library {
	return relation.Library{
		{
			Id:     "1",
			Tokens: []string{"Abc", "at", "Def", "."},
			Pairs:  []relation.SpanPair{{Type: "cause", Head: 0, Tail: 1}},
			Spans: []relation.Span{
				{Type: relation.KindCause, Start: 0, End: 3},
				{Type: relation.KindEffect, Start: 5, End: 8},
			},
		},
		{
			Id:     "2",
			Tokens: []string{"<", "&"},
			Pairs:  []relation.SpanPair{},
			Spans:  []relation.Span{},
		},
	}
}

func TestSplitStoreWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewSplitStore(fs, DefaultDir)

	require.NoError(t, store.Write(context.Background(), "dev", testLibrary()))

	content, err := afero.ReadFile(fs, "data/relation/fgcr/dev.jsonlines")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"id":"1","tokens":["Abc","at","Def","."],"span_pair_list":[{"type":"cause","head":0,"tail":1}],"span_list":[{"type":"cause","start":0,"end":3},{"type":"effect","start":5,"end":8}]}`, lines[0])
	assert.Equal(t, `{"id":"2","tokens":["<","&"],"span_pair_list":[],"span_list":[]}`, lines[1])

	exists, err := afero.Exists(fs, "data/relation/fgcr/dev.jsonlines.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSplitStoreRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewSplitStore(fs, "out")
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "train", testLibrary()))
	require.NoError(t, store.Write(ctx, "dev", relation.Library{}))
	require.NoError(t, afero.WriteFile(fs, "out/notes.txt", []byte("x"), 0644))

	splits, err := store.Splits()
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "train"}, splits)

	lib, err := store.Read(ctx, "train")
	require.NoError(t, err)
	assert.Equal(t, testLibrary(), lib)

	lib, err = store.Read(ctx, "dev")
	require.NoError(t, err)
	assert.Empty(t, lib)
}

func TestSplitStoreRewriteIsIdentical(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewSplitStore(fs, "out")
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "test", testLibrary()))
	first, err := afero.ReadFile(fs, store.Path("test"))
	require.NoError(t, err)

	require.NoError(t, store.Write(ctx, "test", testLibrary()))
	second, err := afero.ReadFile(fs, store.Path("test"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSplitStoreReadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewSplitStore(fs, "out")

	_, err := store.Read(context.Background(), "missing")
	assert.ErrorContains(t, err, "IO error")

	require.NoError(t, afero.WriteFile(fs, "out/bad.jsonlines", []byte("{\"id\":\"1\"}\n{oops\n"), 0644))
	_, err = store.Read(context.Background(), "bad")
	assert.ErrorContains(t, err, "line 2")
}

func TestSplitStoreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewSplitStore(afero.NewMemMapFs(), "out")
	assert.ErrorIs(t, store.Write(ctx, "dev", testLibrary()), context.Canceled)
}
