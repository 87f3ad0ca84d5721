package aes

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidKeySize is returned when a key is not 16, 24 or 32 bytes long.
var ErrInvalidKeySize = errors.New("invalid key size")

// roundsForKey maps the key length in 32-bit words (Nk) to the number of
// rounds (Nr = Nk + 6).
func roundsForKey(keyLen int) (int, error) {
	switch keyLen {
	case 16, 24, 32:
		return keyLen/4 + 6, nil
	default:
		return 0, fmt.Errorf("key must be 16, 24 or 32 bytes, got %d: %w", keyLen, ErrInvalidKeySize)
	}
}

// expandKey runs the AES key schedule and returns Nr+1 round keys of 16
// bytes each. The schedule is derived once per key and is read-only
// afterwards.
func expandKey(key []byte) ([][16]byte, error) {
	rounds, err := roundsForKey(len(key))
	if err != nil {
		return nil, err
	}

	nk := len(key) / 4
	words := make([]uint32, 4*(rounds+1))
	for i := 0; i < nk; i++ {
		words[i] = binary.BigEndian.Uint32(key[4*i:])
	}

	for i := nk; i < len(words); i++ {
		w := words[i-1]
		switch {
		case i%nk == 0:
			w = subWord(rotWord(w)) ^ uint32(rcon[i/nk])<<24
		case nk > 6 && i%nk == 4:
			// 256-bit keys substitute every fourth word without rotation.
			w = subWord(w)
		}
		words[i] = words[i-nk] ^ w
	}

	roundKeys := make([][16]byte, rounds+1)
	for r := range roundKeys {
		for c := 0; c < 4; c++ {
			binary.BigEndian.PutUint32(roundKeys[r][4*c:], words[4*r+c])
		}
	}
	return roundKeys, nil
}

// rotWord cyclically rotates the bytes of a word left by one position.
func rotWord(w uint32) uint32 {
	return w<<8 | w>>24
}

// subWord substitutes each byte of a word through the S-box.
func subWord(w uint32) uint32 {
	return uint32(sbox[w>>24])<<24 |
		uint32(sbox[w>>16&0xff])<<16 |
		uint32(sbox[w>>8&0xff])<<8 |
		uint32(sbox[w&0xff])
}
