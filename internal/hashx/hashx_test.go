package hashx

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum_KnownVector(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Sum(nil))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", Sum([]byte("abc")))
}

func TestSum_FormatIsLowercaseHex64(t *testing.T) {
	d := Sum([]byte("%PDF-1.4 hello"))
	require.Len(t, d, DigestSize)
	assert.Equal(t, strings.ToLower(d), d)
}

func TestSum_SingleByteMutationChangesDigest(t *testing.T) {
	data := bytes.Repeat([]byte("document-bytes "), 20)
	orig := Sum(data)

	for i := 0; i < len(data); i += 17 {
		mutated := bytes.Clone(data)
		mutated[i] ^= 0x01
		assert.NotEqual(t, orig, Sum(mutated), "mutation at %d", i)
	}
	assert.Equal(t, orig, Sum(bytes.Clone(data)))
}

func TestSumReader_MatchesSum(t *testing.T) {
	data := []byte("streamed content")
	got, err := SumReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Sum(data), got)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestSumReader_PropagatesError(t *testing.T) {
	_, err := SumReader(failingReader{})
	assert.EqualError(t, err, "disk gone")
}

func TestEqual(t *testing.T) {
	a := Sum([]byte("x"))
	assert.True(t, Equal(a, Sum([]byte("x"))))
	assert.False(t, Equal(a, Sum([]byte("y"))))
	assert.False(t, Equal(a, a[:10]))
}
