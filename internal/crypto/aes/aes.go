// Package aes implements the AES block cipher (FIPS-197) from first
// principles: key schedule, round transforms and the GF(2^8) arithmetic
// behind MixColumns. It supports 128, 192 and 256 bit keys and operates on
// 16-byte blocks.
package aes

import (
	"fmt"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// Cipher is an AES block cipher with an expanded key schedule. It is
// immutable after construction and safe for concurrent use.
type Cipher struct {
	roundKeys [][16]byte
	rounds    int
}

// NewCipher expands the given 16/24/32-byte key into a round-key schedule.
func NewCipher(key []byte) (*Cipher, error) {
	roundKeys, err := expandKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to expand key: %w", err)
	}
	return &Cipher{
		roundKeys: roundKeys,
		rounds:    len(roundKeys) - 1,
	}, nil
}

// BlockSize returns the cipher block size in bytes.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Rounds returns the number of rounds (10, 12 or 14).
func (c *Cipher) Rounds() int {
	return c.rounds
}

// EncryptBlock encrypts exactly one 16-byte block from src into dst.
// dst and src may overlap.
func (c *Cipher) EncryptBlock(dst, src []byte) {
	_ = src[BlockSize-1]
	_ = dst[BlockSize-1]

	var state [BlockSize]byte
	copy(state[:], src)

	addRoundKey(&state, &c.roundKeys[0])
	for round := 1; round < c.rounds; round++ {
		subBytes(&state)
		shiftRows(&state)
		mixColumns(&state)
		addRoundKey(&state, &c.roundKeys[round])
	}
	// Final round omits MixColumns.
	subBytes(&state)
	shiftRows(&state)
	addRoundKey(&state, &c.roundKeys[c.rounds])

	copy(dst, state[:])
}

// DecryptBlock decrypts exactly one 16-byte block from src into dst.
// dst and src may overlap.
func (c *Cipher) DecryptBlock(dst, src []byte) {
	_ = src[BlockSize-1]
	_ = dst[BlockSize-1]

	var state [BlockSize]byte
	copy(state[:], src)

	addRoundKey(&state, &c.roundKeys[c.rounds])
	invShiftRows(&state)
	invSubBytes(&state)
	for round := c.rounds - 1; round > 0; round-- {
		addRoundKey(&state, &c.roundKeys[round])
		invMixColumns(&state)
		invShiftRows(&state)
		invSubBytes(&state)
	}
	addRoundKey(&state, &c.roundKeys[0])

	copy(dst, state[:])
}

// The state is a flat 16-byte array in column-major order: byte r of
// column c lives at index 4*c+r, matching FIPS-197.

func subBytes(state *[BlockSize]byte) {
	for i, b := range state {
		state[i] = sbox[b]
	}
}

func invSubBytes(state *[BlockSize]byte) {
	for i, b := range state {
		state[i] = invSbox[b]
	}
}

// shiftRows rotates row r left by r positions.
func shiftRows(state *[BlockSize]byte) {
	state[1], state[5], state[9], state[13] = state[5], state[9], state[13], state[1]
	state[2], state[6], state[10], state[14] = state[10], state[14], state[2], state[6]
	state[3], state[7], state[11], state[15] = state[15], state[3], state[7], state[11]
}

// invShiftRows rotates row r right by r positions.
func invShiftRows(state *[BlockSize]byte) {
	state[5], state[9], state[13], state[1] = state[1], state[5], state[9], state[13]
	state[10], state[14], state[2], state[6] = state[2], state[6], state[10], state[14]
	state[15], state[3], state[7], state[11] = state[3], state[7], state[11], state[15]
}

// mixColumns multiplies each column by the fixed matrix {02,03,01,01}.
func mixColumns(state *[BlockSize]byte) {
	for c := 0; c < BlockSize; c += 4 {
		s0, s1, s2, s3 := state[c], state[c+1], state[c+2], state[c+3]
		state[c] = xtime(s0) ^ xtime(s1) ^ s1 ^ s2 ^ s3
		state[c+1] = s0 ^ xtime(s1) ^ xtime(s2) ^ s2 ^ s3
		state[c+2] = s0 ^ s1 ^ xtime(s2) ^ xtime(s3) ^ s3
		state[c+3] = xtime(s0) ^ s0 ^ s1 ^ s2 ^ xtime(s3)
	}
}

// invMixColumns multiplies each column by the inverse matrix {0e,0b,0d,09}.
func invMixColumns(state *[BlockSize]byte) {
	for c := 0; c < BlockSize; c += 4 {
		s0, s1, s2, s3 := state[c], state[c+1], state[c+2], state[c+3]
		state[c] = gmul(0x0e, s0) ^ gmul(0x0b, s1) ^ gmul(0x0d, s2) ^ gmul(0x09, s3)
		state[c+1] = gmul(0x09, s0) ^ gmul(0x0e, s1) ^ gmul(0x0b, s2) ^ gmul(0x0d, s3)
		state[c+2] = gmul(0x0d, s0) ^ gmul(0x09, s1) ^ gmul(0x0e, s2) ^ gmul(0x0b, s3)
		state[c+3] = gmul(0x0b, s0) ^ gmul(0x0d, s1) ^ gmul(0x09, s2) ^ gmul(0x0e, s3)
	}
}

func addRoundKey(state, roundKey *[BlockSize]byte) {
	for i := range state {
		state[i] ^= roundKey[i]
	}
}
