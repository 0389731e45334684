package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeZeroPadsEachByte(t *testing.T) {
	assert.Equal(t, "000f10ff", Encode([]byte{0x00, 0x0f, 0x10, 0xff}))
	assert.Equal(t, "", Encode(nil))
}

func TestDecodeCaseInsensitive(t *testing.T) {
	lower, err := Decode(EmptyDigest)
	require.NoError(t, err)
	upper, err := Decode(strings.ToUpper(EmptyDigest))
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
	assert.Len(t, lower, Size)
	assert.Equal(t, EmptyDigest, Encode(upper))
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, s := range []string{"abc", "zz", "0g"} {
		_, err := Decode(s)
		assert.Error(t, err, s)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(EmptyDigest))
	assert.False(t, Valid(strings.ToUpper(EmptyDigest)))
	assert.False(t, Valid(EmptyDigest[:63]))
	assert.False(t, Valid(""))
	assert.False(t, Valid("not a digest"))
}

func TestOCI(t *testing.T) {
	d := OCI(EmptyDigest)
	assert.Equal(t, "sha256:"+EmptyDigest, d.String())
	assert.Equal(t, EmptyDigest, d.Encoded())
	assert.Equal(t, Algorithm, d.Algorithm())
}
