//go:build xbit_cgo_zstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// AppendCompressed compresses the image into the tail of dst through the
// cgo zstd bindings, which append natively.
func (ZstdCodec) AppendCompressed(dst, image []byte) ([]byte, error) {
	return gozstd.CompressLevel(dst, image, 3), nil
}

// Decompress restores the image into a buffer sized from the container's
// declared length.
func (ZstdCodec) Decompress(data []byte, imageLen int) ([]byte, error) {
	image, err := gozstd.Decompress(make([]byte, 0, imageLen), data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(image) != imageLen {
		return nil, restoredSizeError(TypeZstd, len(image), imageLen)
	}

	return image, nil
}
