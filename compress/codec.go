// Package compress provides the compression codecs behind the bitstream
// image container.
//
// The container (see the root package's EncodeImage/DecodeImage) frames
// a compressed bitstream image with its algorithm and original length.
// The codec interface is shaped around that framing: compression appends
// directly after the container header, and decompression receives the
// recorded image length, so every codec verifies that the restored image
// has the declared size, and the codecs that decode into a new buffer
// allocate it exactly once (NoOpCodec returns the stored bytes without
// copying). Fabric
// configuration data is highly repetitive and compresses well; encrypted
// bitstreams do not, and are better stored with TypeNone.
package compress

import (
	"fmt"

	"github.com/fpgakit/xbit/errs"
)

// Type identifies a compression algorithm.
type Type uint8

const (
	TypeNone Type = 0x1 // TypeNone stores the image uncompressed.
	TypeZstd Type = 0x2 // TypeZstd uses Zstandard compression.
	TypeS2   Type = 0x3 // TypeS2 uses S2 compression.
	TypeLZ4  Type = 0x4 // TypeLZ4 uses LZ4 block compression.
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeZstd:
		return "Zstd"
	case TypeS2:
		return "S2"
	case TypeLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Codec compresses a complete bitstream image into a container buffer
// and restores it from one.
type Codec interface {
	// AppendCompressed appends the compressed form of image to dst
	// (typically the container header) and returns the extended slice.
	// The input image is not modified and not retained.
	AppendCompressed(dst, image []byte) ([]byte, error)

	// Decompress restores an image of exactly imageLen bytes from the
	// compressed data. It fails if the data is corrupted, was written by
	// a different algorithm, or does not restore to imageLen bytes.
	Decompress(data []byte, imageLen int) ([]byte, error)
}

var builtinCodecs = map[Type]Codec{
	TypeNone: NoOpCodec{},
	TypeZstd: ZstdCodec{},
	TypeS2:   S2Codec{},
	TypeLZ4:  LZ4Codec{},
}

// GetCodec retrieves the built-in Codec for the specified compression
// type.
func GetCodec(compressionType Type) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompressionType, compressionType)
}

// restoredSizeError reports an image that did not restore to the length
// the container declared.
func restoredSizeError(compressionType Type, got, want int) error {
	return fmt.Errorf("%w: %s image restored to %d bytes, container declares %d",
		errs.ErrSizeMismatch, compressionType, got, want)
}
