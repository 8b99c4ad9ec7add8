// Package fgcr holds the raw FGCR event dataset model and its split reader.
package fgcr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// DefaultDir is the folder where the FGCR event files are placed.
	DefaultDir = "data/fgcr"
)

// Splits are the dataset splits, in processing order.
var Splits = []string{"dev", "test", "train"}

// Instance is one annotated example of a split file.
type Instance struct {
	Tid       ID          `json:"tid"`
	Info      string      `json:"info"`
	LabelData []LabelData `json:"labelData"`
}

// LabelData is one annotated causal relation. Reason holds the cause
// mentions, Result the effect mentions.
type LabelData struct {
	Type   string    `json:"type"`
	Reason []Offsets `json:"reason"`
	Result []Offsets `json:"result"`
}

// Offsets is a half-open [start, end) character range in Instance.Info.
type Offsets struct {
	Start int
	End   int
}

func (o Offsets) String() string {
	return fmt.Sprintf("[%d, %d]", o.Start, o.End)
}

func (o Offsets) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{o.Start, o.End})
}

// UnmarshalJSON accepts only a two element integer array.
func (o *Offsets) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("offsets %s: %w", data, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("offsets %s: want 2 elements, got %d", data, len(pair))
	}

	o.Start, o.End = pair[0], pair[1]
	return nil
}

// ID is the instance identifier. The dataset stores it either as a number or
// as a string; String returns the literal number text or the string value.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("tid %s: not a number or string", data)
	}
	*id = ID(n.String())
	return nil
}

// FileName returns the FGCR file name of a split.
func FileName(split string) string {
	return fmt.Sprintf("event_dataset_%s.json", split)
}

// ReadSplit reads the split file from dir.
func ReadSplit(fs afero.Fs, dir, split string) ([]Instance, error) {
	return ReadFile(fs, filepath.Join(dir, FileName(split)))
}

// ReadFile reads a JSON array of instances.
func ReadFile(fs afero.Fs, p string) ([]Instance, error) {
	content, err := afero.ReadFile(fs, p)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	var instances []Instance
	if err := json.Unmarshal(content, &instances); err != nil {
		return nil, fmt.Errorf("JSON decoding error in %s: %w", p, err)
	}

	return instances, nil
}

// Texts maps each instance id to its raw text.
func Texts(instances []Instance) map[string]string {
	texts := make(map[string]string, len(instances))
	for _, inst := range instances {
		texts[inst.Tid.String()] = inst.Info
	}
	return texts
}
