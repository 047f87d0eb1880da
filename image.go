package xbit

import (
	"bytes"
	"encoding/binary"

	"github.com/fpgakit/xbit/compress"
	"github.com/fpgakit/xbit/errs"
)

// Bitstream image container framing: a fixed magic, the compression
// algorithm, reserved padding, and the original image length, followed
// by the compressed image bytes.
const (
	imageHeaderSize = 12
)

// imageMagic identifies a compressed bitstream image container.
var imageMagic = []byte("XBC1")

// EncodeImage wraps a raw bitstream image in a compressed container.
//
// The container is an at-rest convenience for archiving and shipping
// images; the bitstream codec itself always consumes raw images. Use
// compress.TypeNone for incompressible (e.g. encrypted) images.
func EncodeImage(image []byte, compressionType compress.Type) ([]byte, error) {
	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	container := make([]byte, 0, imageHeaderSize+len(image))
	container = append(container, imageMagic...)
	container = append(container, byte(compressionType), 0, 0, 0)
	container = binary.BigEndian.AppendUint32(container, uint32(len(image)))

	return codec.AppendCompressed(container, image)
}

// DecodeImage unwraps a container produced by EncodeImage and returns
// the original image bytes. The codec restores into a buffer sized from
// the container's declared length and fails if the image does not
// restore to exactly that size.
func DecodeImage(container []byte) ([]byte, error) {
	if len(container) < imageHeaderSize || !bytes.Equal(container[:len(imageMagic)], imageMagic) {
		return nil, errs.ErrInvalidImageContainer
	}

	compressionType := compress.Type(container[4])
	imageLen := binary.BigEndian.Uint32(container[8:12])

	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(container[imageHeaderSize:], int(imageLen))
}

// IsImageContainer reports whether data starts with the container magic.
func IsImageContainer(data []byte) bool {
	return len(data) >= len(imageMagic) && bytes.Equal(data[:len(imageMagic)], imageMagic)
}
