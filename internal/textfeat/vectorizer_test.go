package textfeat

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func fitted(t *testing.T, cfg Config, corpus ...string) *Vectorizer {
	t.Helper()
	v := New(cfg)
	require.NoError(t, v.Fit(corpus))
	return v
}

func TestTransformBeforeFit(t *testing.T) {
	v := New(DefaultConfig())

	_, err := v.Transform([]string{"pizza"})
	var nf *ErrNotFitted
	require.True(t, errors.As(err, &nf), "want ErrNotFitted, got %v", err)

	_, err = v.TransformOne("pizza")
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 0, v.Dim())
}

func TestFitBuildsSortedUnigramsAndBigrams(t *testing.T) {
	v := fitted(t, DefaultConfig(), "pizza volcano", "guitar pizza")

	assert.Equal(t,
		[]string{"guitar", "guitar pizza", "pizza", "pizza volcano", "volcano"},
		v.Vocabulary())
	assert.Equal(t, 5, v.Dim())
}

func TestFitDropsStopWordsBeforeBigrams(t *testing.T) {
	v := fitted(t, DefaultConfig(), "the pizza")
	assert.Equal(t, []string{"pizza"}, v.Vocabulary())
}

func TestFitEmptyVocabulary(t *testing.T) {
	tests := []struct {
		name   string
		corpus []string
	}{
		{"no documents", nil},
		{"only stop words", []string{"the", "the the"}},
		{"only short tokens", []string{"a b c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(DefaultConfig()).Fit(tt.corpus)
			assert.ErrorIs(t, err, ErrEmptyVocabulary)
		})
	}
}

func TestMaxFeaturesKeepsMostFrequent(t *testing.T) {
	v := fitted(t, Config{MaxFeatures: 1, NGramMax: 2}, "pizza pizza pizza", "guitar")
	assert.Equal(t, []string{"pizza"}, v.Vocabulary())
}

func TestTransformWeights(t *testing.T) {
	v := fitted(t, DefaultConfig(), "pizza volcano", "pizza")

	vec, err := v.TransformOne("pizza volcano")
	require.NoError(t, err)

	vocab := v.Vocabulary()
	col := func(term string) int {
		for i, t := range vocab {
			if t == term {
				return i
			}
		}
		return -1
	}

	// pizza appears in every document (idf 1); volcano in half of them.
	ratio := vec.At(col("volcano")) / vec.At(col("pizza"))
	assert.InDelta(t, math.Log(3.0/2.0)+1, ratio, epsilon)
	assert.InDelta(t, 1.0, vec.Norm(), epsilon)
}

func TestTransformUnknownTextIsZeroVector(t *testing.T) {
	v := fitted(t, DefaultConfig(), "pizza volcano")

	vec, err := v.TransformOne("guitar thunder")
	require.NoError(t, err)
	assert.Equal(t, v.Dim(), vec.Dim)
	assert.Equal(t, 0, vec.NNZ())
	assert.Equal(t, make([]float64, v.Dim()), vec.Dense())
}

func TestTransformDeterministic(t *testing.T) {
	v := fitted(t, DefaultConfig(), "pizza volcano guitar", "thunder guitar", "volcano")

	a, err := v.Transform([]string{"guitar volcano pizza", "thunder"})
	require.NoError(t, err)
	b, err := v.Transform([]string{"guitar volcano pizza", "thunder"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	for _, vec := range a {
		assert.Equal(t, v.Dim(), vec.Dim)
	}
}

func TestMarshalRestoresTransform(t *testing.T) {
	v := fitted(t, DefaultConfig(), "pizza volcano", "guitar pizza", "thunder")

	data, err := v.MarshalBinary()
	require.NoError(t, err)

	var restored Vectorizer
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, v.Dim(), restored.Dim())

	want, _ := v.TransformOne("guitar pizza volcano")
	got, err := restored.TransformOne("guitar pizza volcano")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMarshalUnfitted(t *testing.T) {
	_, err := New(DefaultConfig()).MarshalBinary()
	var nf *ErrNotFitted
	assert.True(t, errors.As(err, &nf))
}
