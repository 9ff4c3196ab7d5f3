package morph

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

type class int

const (
	classSymbol class = iota
	classSpace
	classDigit
	classLetter
	classHan
	classHiragana
	classKatakana
)

// ScriptTokenizer groups runs of characters of the same script into tokens.
// It stands in for a dictionary-based analyzer: every run is an unknown word.
// A single trailing line feed is left untokenized.
type ScriptTokenizer struct{}

// NewScriptTokenizer creates a new ScriptTokenizer.
func NewScriptTokenizer() (Tokenizer, error) {
	return &ScriptTokenizer{}, nil
}

type scriptToken struct {
	surface string
	base    string
	pos     []string
}

func (t *scriptToken) Surface() string        { return t.surface }
func (t *scriptToken) BaseForm() string       { return t.base }
func (t *scriptToken) PartOfSpeech() []string { return t.pos }

// Tokenize splits text into runs of same-script characters. Symbols are one token each.
func (s *ScriptTokenizer) Tokenize(text string) ([]Token, error) {
	text = strings.TrimSuffix(text, "\n")

	var tokens []Token
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		c := classify(r)
		start := i
		i += size

		if c != classSymbol {
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if !continues(c, r) {
					break
				}
				i += size
			}
		}

		surface := text[start:i]
		tokens = append(tokens, &scriptToken{
			surface: surface,
			base:    width.Fold.String(surface),
			pos:     partOfSpeech(c, surface),
		})
	}

	return tokens, nil
}

func classify(r rune) class {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsDigit(r):
		return classDigit
	case unicode.Is(unicode.Han, r):
		return classHan
	case unicode.Is(unicode.Hiragana, r):
		return classHiragana
	case unicode.Is(unicode.Katakana, r):
		return classKatakana
	case unicode.IsLetter(r):
		return classLetter
	}
	return classSymbol
}

// continues reports whether r extends a run of class c.
func continues(c class, r rune) bool {
	if r == 'ー' && (c == classHiragana || c == classKatakana) {
		return true
	}
	return classify(r) == c
}

func partOfSpeech(c class, surface string) []string {
	switch c {
	case classSpace:
		return []string{"記号", "空白", "*", "*"}
	case classDigit:
		return []string{"名詞", "数", "*", "*"}
	case classSymbol:
		switch surface {
		case "。", "．":
			return []string{"記号", "句点", "*", "*"}
		case "、", "，":
			return []string{"記号", "読点", "*", "*"}
		}
		return []string{"記号", "一般", "*", "*"}
	}
	return []string{"名詞", "一般", "*", "*"}
}
