package xmlcore

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, d Decoder, data []byte) ([]rune, []int) {
	t.Helper()
	src := bufio.NewReader(bytes.NewReader(data))
	var cps []rune
	var lens []int
	for {
		cp, n, ok, err := d.ReadCodepoint(src)
		require.NoError(t, err)
		if !ok {
			break
		}
		cps = append(cps, cp)
		lens = append(lens, n)
	}
	return cps, lens
}

func TestUTF8Decoder_ASCII(t *testing.T) {
	cps, lens := decodeAll(t, UTF8Decoder{}, []byte("hi"))
	assert.Equal(t, []rune{'h', 'i'}, cps)
	assert.Equal(t, []int{1, 1}, lens)
}

func TestUTF8Decoder_MultiByte(t *testing.T) {
	cps, lens := decodeAll(t, UTF8Decoder{}, []byte("é€𝄞"))
	assert.Equal(t, []rune{'é', '€', '𝄞'}, cps)
	assert.Equal(t, []int{2, 3, 4}, lens)
}

func TestUTF8Decoder_RejectsOverlong(t *testing.T) {
	src := bufio.NewReader(bytes.NewReader([]byte{0xC0, 0x80}))
	_, _, _, err := UTF8Decoder{}.ReadCodepoint(src)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestUTF8Decoder_RejectsSurrogate(t *testing.T) {
	src := bufio.NewReader(bytes.NewReader([]byte{0xED, 0xA0, 0x80}))
	_, _, _, err := UTF8Decoder{}.ReadCodepoint(src)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestUTF8Decoder_AdaptTo(t *testing.T) {
	assert.NoError(t, UTF8Decoder{}.AdaptTo("UTF-8"))
	assert.NoError(t, UTF8Decoder{}.AdaptTo("utf8"))
	assert.Error(t, UTF8Decoder{}.AdaptTo("UTF-16"))
}

func TestUTF16Decoder_BigEndian(t *testing.T) {
	data := []byte{0x00, 'h', 0x00, 'i'}
	cps, lens := decodeAll(t, UTF16Decoder{BigEndian: true}, data)
	assert.Equal(t, []rune{'h', 'i'}, cps)
	assert.Equal(t, []int{2, 2}, lens)
}

func TestUTF16Decoder_SurrogatePair(t *testing.T) {
	// U+1D11E (musical symbol G clef) as a big-endian surrogate pair.
	data := []byte{0xD8, 0x34, 0xDD, 0x1E}
	cps, lens := decodeAll(t, UTF16Decoder{BigEndian: true}, data)
	require.Len(t, cps, 1)
	assert.Equal(t, rune(0x1D11E), cps[0])
	assert.Equal(t, 4, lens[0])
}

func TestUTF16Decoder_UnpairedSurrogate(t *testing.T) {
	data := []byte{0xD8, 0x34, 0x00, 'x'}
	src := bufio.NewReader(bytes.NewReader(data))
	_, _, _, err := UTF16Decoder{BigEndian: true}.ReadCodepoint(src)
	assert.ErrorIs(t, err, ErrInvalidUTF16)
}

func TestDefaultDecoder_SniffsUTF16BE(t *testing.T) {
	data := append([]byte{0xFE, 0xFF}, 0x00, 'h', 0x00, 'i')
	d := &DefaultDecoder{}
	cps, _ := decodeAll(t, d, data)
	assert.Equal(t, []rune{0xFEFF, 'h', 'i'}, cps)
	assert.Equal(t, "utf-16be", d.Encoding())
}

func TestDefaultDecoder_SniffsUTF16LE(t *testing.T) {
	data := append([]byte{0xFF, 0xFE}, 'h', 0x00, 'i', 0x00)
	d := &DefaultDecoder{}
	cps, _ := decodeAll(t, d, data)
	assert.Equal(t, []rune{0xFEFF, 'h', 'i'}, cps)
	assert.Equal(t, "utf-16le", d.Encoding())
}

func TestDefaultDecoder_DefaultsToUTF8(t *testing.T) {
	d := &DefaultDecoder{}
	cps, _ := decodeAll(t, d, []byte("hi"))
	assert.Equal(t, []rune{'h', 'i'}, cps)
	assert.Equal(t, "utf-8", d.Encoding())
}

func TestDefaultDecoder_AdaptToBeforeDecoding(t *testing.T) {
	d := &DefaultDecoder{}
	assert.NoError(t, d.AdaptTo("UTF-8"))
	assert.Error(t, d.AdaptTo("shift_jis"))
}
