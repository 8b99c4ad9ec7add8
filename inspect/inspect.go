package inspect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/fgcrel/relation"
	"github.com/revelaction/fgcrel/render"
	"github.com/revelaction/fgcrel/stat"
)

const (
	completionThreshold = 1

	// commandPrefix is the Character in the prompt that prefixes a command
	commandPrefix = "/"

	cmdJSON = "/json"
	cmdStat = "/stat"
)

var commands = []prompt.Suggest{
	{Text: cmdJSON, Description: "print an instance as JSON"},
	{Text: cmdStat, Description: "statistics of the split"},
}

// Handler browses a converted split.
type Handler struct {
	Split    string
	Library  relation.Library
	Texts    map[string]string
	Renderer *render.Renderer
	Out      io.Writer
}

// NewHandler returns a handler over lib. texts maps instance ids to the raw
// text and may be nil.
func NewHandler(split string, lib relation.Library, texts map[string]string, r *render.Renderer) *Handler {
	return &Handler{
		Split:    split,
		Library:  lib,
		Texts:    texts,
		Renderer: r,
		Out:      os.Stdout,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintf(h.Out, "📖 %s: %d instances\n", h.Split, len(h.Library))
	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("fgcrel inspect"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Out, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)
		if err := h.Eval(in); err != nil {
			fmt.Fprintf(h.Out, "❌ %s\n", err)
		}
	}
}

// Eval runs a single prompt line: an instance id, "/json <id>" or "/stat".
func (h *Handler) Eval(in string) error {
	in = strings.TrimSpace(in)

	switch {
	case in == "":
		return nil

	case in == cmdStat:
		hdl := stat.NewHandler()
		for _, inst := range h.Library {
			hdl.Aggregate(inst)
		}
		fmt.Fprintf(h.Out, "%s: %s\n", h.Split, hdl.Get())
		return nil

	case strings.HasPrefix(in, cmdJSON):
		inst, err := h.find(strings.TrimSpace(strings.TrimPrefix(in, cmdJSON)))
		if err != nil {
			return err
		}
		return render.NewJSONRenderer(h.Out).Render(inst)

	case strings.HasPrefix(in, commandPrefix):
		return fmt.Errorf("unknown command %s", in)
	}

	inst, err := h.find(in)
	if err != nil {
		return err
	}
	h.Renderer.Instance(inst, h.Texts[inst.Id])
	return nil
}

func (h *Handler) find(id string) (relation.Instance, error) {
	if id == "" {
		return relation.Instance{}, errors.New("no instance id given")
	}

	inst, ok := h.Library.Find(id)
	if !ok {
		return relation.Instance{}, fmt.Errorf("instance %s not found in %s", id, h.Split)
	}
	return inst, nil
}

func (h *Handler) completer(d prompt.Document) []prompt.Suggest {
	return h.suggest(d.GetWordBeforeCursor())
}

func (h *Handler) suggest(word string) []prompt.Suggest {
	if len(word) < completionThreshold {
		return []prompt.Suggest{}
	}

	if strings.HasPrefix(word, commandPrefix) {
		return prompt.FilterHasPrefix(commands, word, true)
	}

	s := []prompt.Suggest{}
	for _, id := range h.Library.Ids() {
		if strings.HasPrefix(id, word) {
			s = append(s, prompt.Suggest{Text: id})
		}
	}
	return s
}
