package mocks

// MockBlockCipher is a hand-written test double for ports.BlockCipher.
// The default transform XORs a constant so that "encryption" is visible
// in the output and self-inverse.
type MockBlockCipher struct {
	BlockSizeFunc    func() int
	EncryptBlockFunc func(dst, src []byte)
	DecryptBlockFunc func(dst, src []byte)
}

func NewMockBlockCipher() *MockBlockCipher {
	xor := func(dst, src []byte) {
		for i := 0; i < 16; i++ {
			dst[i] = src[i] ^ 0x5a
		}
	}
	return &MockBlockCipher{
		BlockSizeFunc:    func() int { return 16 },
		EncryptBlockFunc: xor,
		DecryptBlockFunc: xor,
	}
}

func (m *MockBlockCipher) BlockSize() int {
	return m.BlockSizeFunc()
}

func (m *MockBlockCipher) EncryptBlock(dst, src []byte) {
	m.EncryptBlockFunc(dst, src)
}

func (m *MockBlockCipher) DecryptBlock(dst, src []byte) {
	m.DecryptBlockFunc(dst, src)
}
