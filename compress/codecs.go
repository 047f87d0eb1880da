package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"
)

// NoOpCodec stores the image verbatim. Use it for images that do not
// benefit from compression, such as encrypted bitstreams whose payloads
// are ciphertext.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// AppendCompressed appends the image unchanged.
func (NoOpCodec) AppendCompressed(dst, image []byte) ([]byte, error) {
	return append(dst, image...), nil
}

// Decompress returns the stored bytes after checking they already have
// the declared length. The returned slice shares the input's memory.
func (NoOpCodec) Decompress(data []byte, imageLen int) ([]byte, error) {
	if len(data) != imageLen {
		return nil, restoredSizeError(TypeNone, len(data), imageLen)
	}

	return data, nil
}

// S2Codec balances compression ratio and speed; a good default for
// image archives read back often.
type S2Codec struct{}

var _ Codec = S2Codec{}

// AppendCompressed compresses the image into the tail of dst. The S2
// encoder wants a destination of MaxEncodedLen up front, so dst is
// extended once and trimmed to the encoded size.
func (S2Codec) AppendCompressed(dst, image []byte) ([]byte, error) {
	head := len(dst)
	dst = append(dst, make([]byte, s2.MaxEncodedLen(len(image)))...)
	encoded := s2.Encode(dst[head:], image)

	return dst[:head+len(encoded)], nil
}

// Decompress restores the image into an exactly-sized buffer.
func (S2Codec) Decompress(data []byte, imageLen int) ([]byte, error) {
	image, err := s2.Decode(make([]byte, imageLen), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if len(image) != imageLen {
		return nil, restoredSizeError(TypeS2, len(image), imageLen)
	}

	return image, nil
}

// LZ4Codec favors decompression speed; use it when images are
// decompressed far more often than they are written.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// AppendCompressed compresses the image as a single LZ4 block into the
// tail of dst.
func (LZ4Codec) AppendCompressed(dst, image []byte) ([]byte, error) {
	head := len(dst)
	dst = append(dst, make([]byte, lz4.CompressBlockBound(len(image)))...)

	var compressor lz4.Compressor
	n, err := compressor.CompressBlock(image, dst[head:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(image) {
		// Incompressible input: with dst sized to CompressBlockBound the
		// block is still produced, but it is no smaller than the image.
		// The container always records the algorithm actually used, so
		// such an image is refused rather than stored as an LZ4 block.
		return nil, fmt.Errorf("lz4: image is incompressible, store it with TypeNone")
	}

	return dst[:head+n], nil
}

// Decompress restores the image into an exactly-sized buffer. An LZ4
// block does not record its decompressed size, but the container does,
// so no guesswork is needed here.
func (LZ4Codec) Decompress(data []byte, imageLen int) ([]byte, error) {
	image := make([]byte, imageLen)
	n, err := lz4.UncompressBlock(data, image)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != imageLen {
		return nil, restoredSizeError(TypeLZ4, n, imageLen)
	}

	return image, nil
}

// ZstdCodec gives the best ratio of the supported algorithms on fabric
// configuration data, at moderate speed. Prefer it for cold storage and
// transfer of image archives.
//
// Two backends exist: the default pure-Go klauspost implementation, and
// a cgo gozstd backend selected with the xbit_cgo_zstd build tag. Both
// append frames the other can read.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
