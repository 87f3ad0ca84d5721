package chunking

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"
)

func randomData(size int) []byte {
	data := make([]byte, size)
	rand.Read(data)
	return data
}

func TestNewBlockReader(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		wantErr   bool
	}{
		{name: "default chunk size", chunkSize: DefaultChunkSize},
		{name: "minimum chunk size", chunkSize: MinChunkSize},
		{name: "maximum chunk size", chunkSize: MaxChunkSize},
		{name: "below minimum", chunkSize: MinChunkSize - 1, wantErr: true},
		{name: "above maximum", chunkSize: MaxChunkSize + 1, wantErr: true},
		{name: "not block aligned", chunkSize: 40, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBlockReader(bytes.NewReader(nil), tt.chunkSize)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewBlockReader() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBlockReader_Next(t *testing.T) {
	tests := []struct {
		name      string
		inputLen  int
		chunkSize int
		wantReads []int
	}{
		{name: "empty input", inputLen: 0, chunkSize: 64, wantReads: nil},
		{name: "exact chunk", inputLen: 64, chunkSize: 64, wantReads: []int{64}},
		{name: "short final chunk", inputLen: 100, chunkSize: 64, wantReads: []int{64, 36}},
		{name: "several chunks", inputLen: 200, chunkSize: 64, wantReads: []int{64, 64, 64, 8}},
		{name: "input shorter than chunk", inputLen: 5, chunkSize: 64, wantReads: []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := randomData(tt.inputLen)
			reader, err := NewBlockReader(bytes.NewReader(data), tt.chunkSize)
			if err != nil {
				t.Fatalf("NewBlockReader() error = %v", err)
			}

			var reads []int
			var got []byte
			buf := make([]byte, tt.chunkSize)
			for {
				n, err := reader.Next(buf)
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("Next() error = %v", err)
				}
				reads = append(reads, n)
				got = append(got, buf[:n]...)
			}

			if len(reads) != len(tt.wantReads) {
				t.Fatalf("Next() read sizes = %v, want %v", reads, tt.wantReads)
			}
			for i := range reads {
				if reads[i] != tt.wantReads[i] {
					t.Fatalf("Next() read sizes = %v, want %v", reads, tt.wantReads)
				}
			}
			if !bytes.Equal(got, data) {
				t.Error("reassembled data differs from input")
			}

			// The reader must stay at EOF once drained.
			if _, err := reader.Next(buf); err != io.EOF {
				t.Errorf("Next() after EOF error = %v, want io.EOF", err)
			}
		})
	}
}

// A reader that trickles bytes one at a time must still produce full
// chunks everywhere except the tail.
func TestBlockReader_SlowReader(t *testing.T) {
	data := randomData(150)
	reader, err := NewBlockReader(&oneByteReader{r: bytes.NewReader(data)}, 64)
	if err != nil {
		t.Fatalf("NewBlockReader() error = %v", err)
	}

	buf := make([]byte, 64)
	n, err := reader.Next(buf)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if n != 64 {
		t.Errorf("Next() = %d bytes, want a full chunk", n)
	}
}

type oneByteReader struct {
	r io.Reader
}

func (s *oneByteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return s.r.Read(p)
}
