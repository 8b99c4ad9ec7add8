// Package token splits raw text into word tokens.
//
// The default tokenizer follows the Penn Treebank conventions (as produced by
// NLTK's word_tokenize), which is what the downstream relation extraction
// models were trained on.
package token

import (
	"strings"

	"github.com/jdkato/prose/tokenize"
)

// Tokenizer splits a text into an ordered, flat sequence of word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Whitespace splits on unicode white space only.
type Whitespace struct{}

func (Whitespace) Tokenize(text string) []string {
	return strings.Fields(text)
}

// Treebank splits text into sentences with the Punkt model and each sentence
// into Penn Treebank words, so sentence final periods become tokens of their
// own while abbreviations keep theirs.
type Treebank struct {
	sentences *tokenize.PunktSentenceTokenizer
	words     *tokenize.TreebankWordTokenizer
}

// NewTreebank returns the default tokenizer. Loading the Punkt model is not
// free; build one Treebank and share it.
func NewTreebank() *Treebank {
	return &Treebank{
		sentences: tokenize.NewPunktSentenceTokenizer(),
		words:     tokenize.NewTreebankWordTokenizer(),
	}
}

func (t *Treebank) Tokenize(text string) []string {
	tokens := []string{}
	for _, sentence := range t.Sentences(text) {
		for _, w := range t.words.Tokenize(sentence) {
			if w == "" {
				continue
			}
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// Sentences returns the trimmed, non empty sentences of text.
func (t *Treebank) Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	for _, s := range t.sentences.Tokenize(text) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sentences = append(sentences, s)
	}
	return sentences
}
