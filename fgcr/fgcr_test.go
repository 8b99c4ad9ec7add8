package fgcr

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const devSplit = `[
  {"tid": 1023, "info": "Abc at Def.", "labelData": [
    {"type": "cause", "reason": [[0, 3]], "result": [[5, 8]]}
  ]},
  {"tid": "x-7", "info": "", "labelData": []}
]`

func TestReadSplit(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/fgcr/event_dataset_dev.json", []byte(devSplit), 0o644))

	instances, err := ReadSplit(fs, DefaultDir, "dev")
	require.NoError(t, err)
	require.Len(t, instances, 2)

	assert.Equal(t, "1023", instances[0].Tid.String())
	assert.Equal(t, "Abc at Def.", instances[0].Info)
	require.Len(t, instances[0].LabelData, 1)
	assert.Equal(t, []Offsets{{Start: 0, End: 3}}, instances[0].LabelData[0].Reason)
	assert.Equal(t, []Offsets{{Start: 5, End: 8}}, instances[0].LabelData[0].Result)

	assert.Equal(t, "x-7", instances[1].Tid.String())
	assert.Empty(t, instances[1].LabelData)
}

func TestReadSplitMissingFile(t *testing.T) {
	_, err := ReadSplit(afero.NewMemMapFs(), DefaultDir, "train")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IO error")
}

func TestReadSplitMalformedOffsets(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `[{"tid": 1, "info": "a", "labelData": [{"type": "cause", "reason": [[0, 3, 4]], "result": [[5, 8]]}]}]`
	require.NoError(t, afero.WriteFile(fs, "in.json", []byte(data), 0o644))

	_, err := ReadFile(fs, "in.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 2 elements")
}

func TestIDLiteralNumber(t *testing.T) {
	var inst Instance
	require.NoError(t, json.Unmarshal([]byte(`{"tid": 12.5}`), &inst))
	assert.Equal(t, ID("12.5"), inst.Tid)

	err := json.Unmarshal([]byte(`{"tid": true}`), &inst)
	assert.Error(t, err)
}

func TestOffsetsMarshal(t *testing.T) {
	out, err := json.Marshal([]Offsets{{Start: 1, End: 4}})
	require.NoError(t, err)
	assert.Equal(t, `[[1,4]]`, string(out))
	assert.Equal(t, "[1, 4]", Offsets{Start: 1, End: 4}.String())
}

func TestFileNameAndTexts(t *testing.T) {
	assert.Equal(t, "event_dataset_test.json", FileName("test"))

	texts := Texts([]Instance{{Tid: "1", Info: "a"}, {Tid: "2", Info: "b"}})
	assert.Equal(t, map[string]string{"1": "a", "2": "b"}, texts)
}
