//go:build !xbit_cgo_zstd

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Zstd encoders and decoders allocate heavily on construction and are
// designed for reuse, so one of each is pooled and shared by all
// containers. The decoder's concurrency is pinned to one: images are
// decompressed whole and the container has no streaming mode.
var (
	zstdEncoderPool = sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderCRC(false), // the container records the image length itself
			)
			if err != nil {
				panic(fmt.Sprintf("zstd encoder options rejected: %v", err))
			}
			return encoder
		},
	}

	zstdDecoderPool = sync.Pool{
		New: func() any {
			decoder, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
				zstd.WithDecoderMaxMemory(1<<30),
			)
			if err != nil {
				panic(fmt.Sprintf("zstd decoder options rejected: %v", err))
			}
			return decoder
		},
	}
)

// AppendCompressed compresses the image into the tail of dst using the
// pooled encoder. EncodeAll appends natively, so the container header in
// dst is extended in place.
func (ZstdCodec) AppendCompressed(dst, image []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(image, dst), nil
}

// Decompress restores the image into a buffer sized from the container's
// declared length.
func (ZstdCodec) Decompress(data []byte, imageLen int) ([]byte, error) {
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	image, err := decoder.DecodeAll(data, make([]byte, 0, imageLen))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(image) != imageLen {
		return nil, restoredSizeError(TypeZstd, len(image), imageLen)
	}

	return image, nil
}
