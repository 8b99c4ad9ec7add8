package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreebankTokenize(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"Abc at Def.", []string{"Abc", "at", "Def", "."}},
		{`He said, "it's fine."`, []string{"He", "said", ",", "``", "it", "'s", "fine", ".", "''"}},
		{"Profits rose. Shares fell 3%.", []string{"Profits", "rose", ".", "Shares", "fell", "3", "%", "."}},
		{"Mr. Smith can't go.", []string{"Mr.", "Smith", "ca", "n't", "go", "."}},
		{"I cannot go", []string{"I", "can", "not", "go"}},
		{"(a) b -- c?", []string{"(", "a", ")", "b", "--", "c", "?"}},
		{"Sales, 1,000 units", []string{"Sales", ",", "1,000", "units"}},
		{"", []string{}},
		{" \n ", []string{}},
	}

	tk := NewTreebank()
	for _, c := range cases {
		assert.Equal(t, c.want, tk.Tokenize(c.text), c.text)
	}
}

func TestTreebankSentences(t *testing.T) {
	tk := NewTreebank()

	assert.Equal(t, []string{"Profits rose.", "Shares fell."}, tk.Sentences("Profits rose. Shares fell."))
	assert.Equal(t, []string{"Mr. Smith left."}, tk.Sentences("Mr. Smith left."))
	assert.Nil(t, tk.Sentences("  "))
}

func TestTreebankDeterministic(t *testing.T) {
	tk := NewTreebank()
	text := `He said, "it's fine." Profits rose 3%... Sales -- 1,000 units (approx.) can't stop.`

	want := tk.Tokenize(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, tk.Tokenize(text))
	}
}

func TestWhitespace(t *testing.T) {
	assert.Equal(t, []string{"a", "b.", "c"}, Whitespace{}.Tokenize(" a  b.\tc "))
}
