// Package seed converts 32-bit board seeds to and from human-shareable
// mnemonic phrases and expands them into deterministic generators, so a
// board can be reproduced by reading four words over voice chat.
package seed

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	mrand "math/rand/v2"
	"strings"

	"golang.org/x/crypto/chacha20"
)

// ErrInvalidSeed is returned when a phrase contains an unknown word or does
// not cover all 32 bits of the seed value.
var ErrInvalidSeed = errors.New("seed: invalid seed phrase")

const (
	valueBits = 32
	// keyFill pads the 28 key bytes not covered by the seed value.
	keyFill = 0xFD
)

var (
	wordBits    = bits.Len(uint(len(words))) - 1
	phraseWords = (valueBits + wordBits - 1) / wordBits
)

// Seed is a 32-bit value that fully determines a generated board.
type Seed uint32

// Random draws a fresh seed from the operating system's entropy source.
func Random() Seed {
	var b [4]byte
	_, _ = crand.Read(b[:])
	return Seed(binary.LittleEndian.Uint32(b[:]))
}

// Parse decodes a whitespace-separated mnemonic phrase produced by String.
// Each word contributes wordBits bits, least-significant group first.
func Parse(text string) (Seed, error) {
	parts := strings.Fields(text)
	if len(parts)*wordBits < valueBits {
		return 0, fmt.Errorf("%w: %d words cover only %d bits", ErrInvalidSeed, len(parts), len(parts)*wordBits)
	}

	var value uint32
	offset := 0
	for _, part := range parts {
		index, ok := wordIndex[part]
		if !ok {
			return 0, fmt.Errorf("%w: unknown word %q", ErrInvalidSeed, part)
		}
		if offset >= valueBits {
			return 0, fmt.Errorf("%w: phrase longer than %d words", ErrInvalidSeed, phraseWords)
		}
		value |= index << offset
		offset += wordBits
	}
	return Seed(value), nil
}

// String encodes the seed as a mnemonic phrase. Round-trip law:
// Parse(s.String()) == s for every value of s.
func (s Seed) String() string {
	mask := uint32(1)<<wordBits - 1
	parts := make([]string, 0, phraseWords)
	for offset := 0; offset < valueBits; offset += wordBits {
		parts = append(parts, words[(uint32(s)>>offset)&mask])
	}
	return strings.Join(parts, " ")
}

// RNG expands the seed into a deterministic generator: the seed's four bytes
// (little-endian) key a counter-mode stream cipher whose keystream drives the
// returned source. Equal seeds yield equal roll sequences across runs.
func (s Seed) RNG() *mrand.Rand {
	var key [chacha20.KeySize]byte
	for i := range key {
		key[i] = keyFill
	}
	binary.LittleEndian.PutUint32(key[:4], uint32(s))

	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key and nonce sizes are fixed above.
		panic(err)
	}
	return mrand.New(&streamSource{cipher: cipher})
}

// streamSource adapts a keystream to math/rand/v2.Source.
type streamSource struct {
	cipher *chacha20.Cipher
}

func (s *streamSource) Uint64() uint64 {
	var block [8]byte
	s.cipher.XORKeyStream(block[:], block[:])
	return binary.LittleEndian.Uint64(block[:])
}
