package chunking

import (
	"fmt"
	"io"
)

const (
	// DefaultChunkSize is the number of bytes handed to the codec per read.
	// Must stay a multiple of the 16-byte cipher block.
	DefaultChunkSize = 64 * 1024
	MinChunkSize     = 16
	MaxChunkSize     = 8 * 1024 * 1024
)

// BlockReader reads fixed-size chunks from an underlying reader. Every
// chunk except the last is completely filled, so only the final chunk can
// carry a partial cipher block.
type BlockReader struct {
	reader    io.Reader
	chunkSize int
	done      bool
}

func NewBlockReader(reader io.Reader, chunkSize int) (*BlockReader, error) {
	if chunkSize < MinChunkSize || chunkSize > MaxChunkSize {
		return nil, fmt.Errorf("invalid chunk size: must be between %d and %d bytes", MinChunkSize, MaxChunkSize)
	}
	if chunkSize%16 != 0 {
		return nil, fmt.Errorf("invalid chunk size: %d is not a multiple of the block size", chunkSize)
	}

	return &BlockReader{
		reader:    reader,
		chunkSize: chunkSize,
	}, nil
}

// Next fills buf (len(buf) == chunk size) and returns the number of bytes
// read. It returns io.EOF only with n == 0; a short final chunk is
// delivered together with nil.
func (r *BlockReader) Next(buf []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	n, err := io.ReadFull(r.reader, buf[:r.chunkSize])
	switch err {
	case nil:
		return n, nil
	case io.ErrUnexpectedEOF:
		r.done = true
		return n, nil
	case io.EOF:
		r.done = true
		return 0, io.EOF
	default:
		return n, fmt.Errorf("failed to read chunk: %w", err)
	}
}

func (r *BlockReader) ChunkSize() int {
	return r.chunkSize
}
