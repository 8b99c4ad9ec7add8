package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/fgcrel/relation"
)

const (
	FormatText   = "text"
	FormatTokens = "tokens"

	Defaultformat = FormatText
)

var (
	Red       = "\033[1;31m"
	Green     = "\033[1;32m"
	Magenta   = "\033[1;35m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
)

func SupportedFormats() []string {
	return []string{FormatText, FormatTokens}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines how the instance body is printed
	//
	// text: the raw text with cause and effect spans highlighted
	// tokens: the tokens separated by a space
	Format string
}

func NewRenderer() *Renderer {
	return &Renderer{W: os.Stdout, HasColor: true, HasPrefix: true, Format: Defaultformat}
}

// Instance prints inst followed by its relations. text is the raw text the
// span offsets refer to; when empty the tokens are printed instead and spans
// are shown by their offsets.
func (r *Renderer) Instance(inst relation.Instance, text string) {
	prefix := ""
	if r.HasPrefix {
		prefix = fmt.Sprintf("✍  %s ", r.color(Grey256, inst.Id))
	}

	var body string
	if r.Format == FormatText && text != "" {
		body = r.highlight([]rune(text), inst.Spans)
	} else {
		body = strings.Join(inst.Tokens, " ")
	}

	fmt.Fprintf(r.W, "%s%s\n", prefix, strings.ReplaceAll(body, "\n", " "))

	for _, pair := range inst.Pairs {
		fmt.Fprintf(r.W, "   🔗 %s: %s -> %s\n",
			r.color(Yellow256, pair.Type),
			r.spanString(inst, pair.Head, text),
			r.spanString(inst, pair.Tail, text))
	}
}

// highlight colors cause runes red and effect runes green. Runes inside both
// a cause and an effect span are magenta.
func (r *Renderer) highlight(text []rune, spans []relation.Span) string {
	if !r.HasColor {
		return string(text)
	}

	colors := make([]string, len(text))
	for _, span := range spans {
		c := Red
		if span.Type == relation.KindEffect {
			c = Green
		}

		start, end := clamp(span.Start, span.End, len(text))
		for i := start; i < end; i++ {
			if colors[i] != "" && colors[i] != c {
				colors[i] = Magenta
				continue
			}
			colors[i] = c
		}
	}

	var str strings.Builder
	current := ""
	for i, c := range text {
		if colors[i] != current {
			if current != "" {
				str.WriteString(Off)
			}
			str.WriteString(colors[i])
			current = colors[i]
		}
		str.WriteRune(c)
	}
	if current != "" {
		str.WriteString(Off)
	}

	return str.String()
}

func (r *Renderer) spanString(inst relation.Instance, idx int, text string) string {
	if idx < 0 || idx >= len(inst.Spans) {
		return fmt.Sprintf("#%d?", idx)
	}

	span := inst.Spans[idx]
	c := Red
	if span.Type == relation.KindEffect {
		c = Green
	}

	if text == "" {
		return r.color(c, span.Offsets().String())
	}

	return r.color(c, fmt.Sprintf("%q", SpanText(text, span)))
}

func (r *Renderer) color(c, s string) string {
	if !r.HasColor {
		return s
	}
	return c + s + Off
}

// SpanText returns the runes of text covered by span. Out of range offsets
// are clamped.
func SpanText(text string, span relation.Span) string {
	runes := []rune(text)
	start, end := clamp(span.Start, span.End, len(runes))
	return string(runes[start:end])
}

func clamp(start, end, n int) (int, int) {
	start = max(0, min(start, n))
	end = max(start, min(end, n))
	return start, end
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			switch i {
			case len(supported) - 1:
				r.Format = supported[0]
			default:
				r.Format = supported[i+1]
			}

			break
		}
	}
}

func (r *Renderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}
