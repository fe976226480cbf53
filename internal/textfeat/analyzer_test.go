package textfeat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want Tokens
	}{
		{"Pizza, volcano!", Tokens{"Pizza", "volcano"}},
		{"I'm a b", nil},
		{"snake_case words", Tokens{"snake_case", "words"}},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Tokenize(tt.in), "Tokenize(%q)", tt.in)
	}
}

func TestNGrams(t *testing.T) {
	grams, err := NGrams(2, Tokens{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"b", "c"}}, grams)

	_, err = NGrams(2, Tokens{"a"})
	assert.Error(t, err)

	_, err = NGrams(0, Tokens{"a"})
	assert.Error(t, err)
}

func TestStopWords(t *testing.T) {
	assert.True(t, IsStopWord("the"))
	assert.False(t, IsStopWord("volcano"))

	// cached path
	assert.True(t, IsStopWord("the"))
}

func TestNumbersAreNotStopWords(t *testing.T) {
	assert.False(t, IsStopWord("2024"))
	assert.Equal(t,
		[]string{"exams", "2024", "exams 2024"},
		DefaultAnalyzer().Analyze("exams in 2024"))
}

func TestAnalyzeOrder(t *testing.T) {
	a := DefaultAnalyzer()
	assert.Equal(t,
		[]string{"pizza", "volcano", "guitar", "pizza volcano", "volcano guitar"},
		a.Analyze("Pizza the VOLCANO guitar"))
}

func TestAnalyzeUnigramsOnly(t *testing.T) {
	a := NewAnalyzer(1, Lower)
	assert.Equal(t, []string{"the", "pizza"}, a.Analyze("The pizza"))
}
