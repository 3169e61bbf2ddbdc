package domain

import "sort"

// Token is a single input symbol.
type Token string

// Alphabet is the set of tokens a machine accepts.
// The zero value is an empty alphabet.
type Alphabet struct {
	tokens map[Token]struct{}
}

// NewAlphabet creates an alphabet from the given tokens. Duplicates collapse.
func NewAlphabet(tokens ...Token) Alphabet {
	set := make(map[Token]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return Alphabet{tokens: set}
}

// AlphabetOf creates an alphabet where each character of s is one token.
func AlphabetOf(s string) Alphabet {
	return NewAlphabet(Tokenize(s)...)
}

// Tokenize splits s into single-character tokens, preserving order.
func Tokenize(s string) []Token {
	tokens := make([]Token, 0, len(s))
	for _, r := range s {
		tokens = append(tokens, Token(r))
	}
	return tokens
}

// Contains reports whether t belongs to the alphabet.
func (a Alphabet) Contains(t Token) bool {
	_, ok := a.tokens[t]
	return ok
}

// Len returns the number of distinct tokens.
func (a Alphabet) Len() int {
	return len(a.tokens)
}

// Tokens returns the tokens in lexical order.
func (a Alphabet) Tokens() []Token {
	out := make([]Token, 0, len(a.tokens))
	for t := range a.tokens {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
