package labels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitSortsDistinctLabels(t *testing.T) {
	c, err := Fit([]string{"Sad", "Happy", "Sad", "Angry", "Happy"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Angry", "Happy", "Sad"}, c.Classes())
	assert.Equal(t, 3, c.Len())

	for i, name := range c.Classes() {
		idx, err := c.Encode(name)
		require.NoError(t, err)
		assert.Equal(t, i, idx)

		back, err := c.Decode(idx)
		require.NoError(t, err)
		assert.Equal(t, name, back)
	}
}

func TestFitEmpty(t *testing.T) {
	_, err := Fit(nil)
	assert.ErrorIs(t, err, ErrNoLabels)
}

func TestEncodeUnknown(t *testing.T) {
	c, err := Fit([]string{"Happy"})
	require.NoError(t, err)

	_, err = c.Encode("happy")
	var unk *ErrUnknownLabel
	require.True(t, errors.As(err, &unk))
	assert.Equal(t, "happy", unk.Label)
}

func TestDecodeOutOfRange(t *testing.T) {
	c, err := Fit([]string{"Happy", "Sad"})
	require.NoError(t, err)

	_, err = c.Decode(2)
	assert.Error(t, err)
	_, err = c.Decode(-1)
	assert.Error(t, err)
}

func TestUnfittedCodec(t *testing.T) {
	var c Codec
	var nf *ErrNotFitted

	_, err := c.Encode("Happy")
	assert.True(t, errors.As(err, &nf))
	_, err = c.Decode(0)
	assert.True(t, errors.As(err, &nf))
}

func TestEncodeAll(t *testing.T) {
	c, err := Fit([]string{"Sad", "Happy"})
	require.NoError(t, err)

	idx, err := c.EncodeAll([]string{"Sad", "Happy", "Sad"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, idx)

	_, err = c.EncodeAll([]string{"Sad", "Angry"})
	assert.Error(t, err)
}

func TestUnmarshalRejectsUnsorted(t *testing.T) {
	bad := newCodec([]string{"Sad", "Happy"})
	data, err := bad.MarshalBinary()
	require.NoError(t, err)

	var c Codec
	assert.Error(t, c.UnmarshalBinary(data))
}
