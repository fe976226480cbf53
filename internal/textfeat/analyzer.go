package textfeat

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/bbalet/stopwords"
)

// Tokens is an ordered token stream.
type Tokens []string

// TokenFunc transforms a token stream.
type TokenFunc func(Tokens) Tokens

// tokenPattern keeps runs of two or more word characters; single letters
// and punctuation never become features.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Tokenize splits s into word tokens without altering case.
func Tokenize(s string) Tokens {
	return tokenPattern.FindAllString(s, -1)
}

// Lower lowercases every token.
func Lower(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = strings.ToLower(t)
	}
	return ts
}

// stopCache memoises stop-word decisions; the stopwords package rebuilds
// its cleaned string on every call.
var stopCache sync.Map

func init() {
	// Numbers such as "2024" stay features.
	stopwords.DontStripDigits()
}

// IsStopWord reports whether tok is an English stop word, meaning the
// stopwords cleaner reduces it to nothing.
func IsStopWord(tok string) bool {
	if v, ok := stopCache.Load(tok); ok {
		return v.(bool)
	}
	stop := strings.TrimSpace(stopwords.CleanString(tok, "en", false)) == ""
	stopCache.Store(tok, stop)
	return stop
}

// RemoveStopWords drops English stop words, preserving order.
func RemoveStopWords(ts Tokens) Tokens {
	out := ts[:0]
	for _, t := range ts {
		if !IsStopWord(t) {
			out = append(out, t)
		}
	}
	return out
}

// NGrams constructs the n-grams of order n for the given token stream.
func NGrams(n int, toks Tokens) ([][]string, error) {
	if n < 1 || len(toks) < n {
		return nil, errors.New("not enough tokens for n-grams")
	}
	grams := make([][]string, 0, len(toks)-n+1)
	for i := 0; i+n <= len(toks); i++ {
		grams = append(grams, toks[i:i+n])
	}
	return grams, nil
}

// Analyzer turns raw text into the term stream counted by the vectorizer:
// tokenize, run the filter chain, then emit every n-gram from 1 to NGramMax.
type Analyzer struct {
	filters  []TokenFunc
	ngramMax int
}

// NewAnalyzer builds an analyzer emitting n-grams up to ngramMax over the
// tokens surviving funcs.
func NewAnalyzer(ngramMax int, funcs ...TokenFunc) *Analyzer {
	if ngramMax < 1 {
		ngramMax = 1
	}
	return &Analyzer{filters: funcs, ngramMax: ngramMax}
}

// DefaultAnalyzer lowercases, drops English stop words and emits unigrams
// and bigrams.
func DefaultAnalyzer() *Analyzer {
	return NewAnalyzer(2, Lower, RemoveStopWords)
}

// Analyze returns the terms of text in order of appearance. Bigram terms
// join their tokens with a single space.
func (a *Analyzer) Analyze(text string) []string {
	ts := Tokenize(text)
	for _, fn := range a.filters {
		ts = fn(ts)
	}

	terms := make([]string, 0, len(ts)*a.ngramMax)
	for n := 1; n <= a.ngramMax; n++ {
		grams, err := NGrams(n, ts)
		if err != nil {
			break
		}
		for _, g := range grams {
			terms = append(terms, strings.Join(g, " "))
		}
	}
	return terms
}
