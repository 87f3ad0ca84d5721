package padding

import (
	"bytes"
	"errors"
	"testing"
)

func TestPad_PKCS7(t *testing.T) {
	tests := []struct {
		name    string
		dataLen int
		wantPad int
	}{
		{name: "empty input", dataLen: 0, wantPad: 16},
		{name: "one byte", dataLen: 1, wantPad: 15},
		{name: "fifteen bytes", dataLen: 15, wantPad: 1},
		// An aligned input still grows by a full block.
		{name: "aligned input", dataLen: 16, wantPad: 16},
		{name: "two and a half blocks", dataLen: 40, wantPad: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte{0xaa}, tt.dataLen)
			padded, err := Pad(data, 16, PKCS7)
			if err != nil {
				t.Fatalf("Pad() error = %v", err)
			}
			if len(padded) != tt.dataLen+tt.wantPad {
				t.Fatalf("Pad() length = %d, want %d", len(padded), tt.dataLen+tt.wantPad)
			}
			for _, b := range padded[tt.dataLen:] {
				if b != byte(tt.wantPad) {
					t.Fatalf("pad byte = %#02x, want %#02x", b, tt.wantPad)
				}
			}

			back, err := Unpad(padded, 16, PKCS7)
			if err != nil {
				t.Fatalf("Unpad() error = %v", err)
			}
			if !bytes.Equal(back, data) {
				t.Errorf("Unpad() = %x, want %x", back, data)
			}
		})
	}
}

func TestUnpad_PKCS7_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "unaligned", data: bytes.Repeat([]byte{0x01}, 15)},
		{name: "claimed length zero", data: append(bytes.Repeat([]byte{0xaa}, 15), 0x00)},
		{name: "claimed length too large", data: append(bytes.Repeat([]byte{0xaa}, 15), 0x11)},
		{name: "inconsistent pad bytes", data: append(bytes.Repeat([]byte{0xaa}, 13), 0x02, 0x01, 0x03)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unpad(tt.data, 16, PKCS7); !errors.Is(err, ErrInvalidPadding) {
				t.Errorf("Unpad() error = %v, want ErrInvalidPadding", err)
			}
		})
	}
}

func TestPad_Zero(t *testing.T) {
	data := []byte("hello")
	padded, err := Pad(data, 16, Zero)
	if err != nil {
		t.Fatalf("Pad() error = %v", err)
	}
	if len(padded) != 16 {
		t.Fatalf("Pad() length = %d, want 16", len(padded))
	}
	for _, b := range padded[5:] {
		if b != 0 {
			t.Fatalf("pad byte = %#02x, want 0x00", b)
		}
	}

	back, err := Unpad(padded, 16, Zero)
	if err != nil {
		t.Fatalf("Unpad() error = %v", err)
	}
	if !bytes.Equal(back, data) {
		t.Errorf("Unpad() = %q, want %q", back, data)
	}

	// Aligned input is left alone.
	aligned := bytes.Repeat([]byte{0x01}, 32)
	padded, err = Pad(aligned, 16, Zero)
	if err != nil {
		t.Fatalf("Pad() error = %v", err)
	}
	if len(padded) != 32 {
		t.Errorf("Pad() length = %d, want 32", len(padded))
	}
}

// Zero padding is lossy: trailing data zeros are stripped with the pad.
func TestUnpad_Zero_Lossy(t *testing.T) {
	data := []byte{0x01, 0x02, 0x00}
	padded, err := Pad(data, 16, Zero)
	if err != nil {
		t.Fatalf("Pad() error = %v", err)
	}
	back, err := Unpad(padded, 16, Zero)
	if err != nil {
		t.Fatalf("Unpad() error = %v", err)
	}
	if !bytes.Equal(back, []byte{0x01, 0x02}) {
		t.Errorf("Unpad() = %x, expected the trailing data zero to be lost", back)
	}
}

func TestPad_None(t *testing.T) {
	aligned := bytes.Repeat([]byte{0x01}, 32)
	padded, err := Pad(aligned, 16, None)
	if err != nil {
		t.Fatalf("Pad() error = %v", err)
	}
	if !bytes.Equal(padded, aligned) {
		t.Error("Pad() altered aligned input")
	}

	if _, err := Pad(aligned[:17], 16, None); !errors.Is(err, ErrUnalignedData) {
		t.Errorf("Pad() error = %v, want ErrUnalignedData", err)
	}

	back, err := Unpad(aligned, 16, None)
	if err != nil {
		t.Fatalf("Unpad() error = %v", err)
	}
	if !bytes.Equal(back, aligned) {
		t.Error("Unpad() altered data")
	}
}

func TestParsePolicy(t *testing.T) {
	for _, want := range []Policy{PKCS7, Zero, None} {
		got, err := ParsePolicy(want.String())
		if err != nil {
			t.Fatalf("ParsePolicy(%q) error = %v", want.String(), err)
		}
		if got != want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", want.String(), got, want)
		}
	}
	if _, err := ParsePolicy("pkcs5"); err == nil {
		t.Error("ParsePolicy(\"pkcs5\") expected error")
	}
}
