// Package errs defines the sentinel errors returned by the xbit packages.
//
// All errors are fatal to the operation that produced them; callers match
// them with errors.Is. Call sites wrap these sentinels with fmt.Errorf and
// %w to attach byte offsets, register names and sizes.
package errs

import "errors"

// Bitstream framing errors.
var (
	// ErrSyncMarkerMissing indicates the sync word was not found in the input.
	ErrSyncMarkerMissing = errors.New("sync marker not present in bitstream data")
	// ErrTruncatedInput indicates the input ended before a complete structure.
	ErrTruncatedInput = errors.New("truncated bitstream data")
)

// Packet-stream errors.
var (
	// ErrUnknownRegister indicates a packet header addressed a register the
	// catalog has no format for.
	ErrUnknownRegister = errors.New("no register format for address")
	// ErrUnexpectedPacketType indicates a header type outside {0, 1, 2}.
	ErrUnexpectedPacketType = errors.New("unexpected packet type")
	// ErrUnexpectedType2 indicates a type-2 packet not immediately preceded
	// by a type-1 packet.
	ErrUnexpectedType2 = errors.New("unexpected type 2 packet")
	// ErrNoopWithPayload indicates a NOOP opcode with a non-zero word count.
	ErrNoopWithPayload = errors.New("NOOP packet with non-empty payload")
	// ErrSizeMismatch indicates a payload or block whose length does not
	// match the size the format requires.
	ErrSizeMismatch = errors.New("size mismatch")
)

// Device and FDRI errors.
var (
	// ErrMissingIDCode indicates an FDRI parse was attempted before the
	// device was identified on the context.
	ErrMissingIDCode = errors.New("device ID code not set on context")
	// ErrUnknownDevice indicates no FDRI layout exists for the device.
	ErrUnknownDevice = errors.New("no FDRI format for device")
)

// Analyzer and modifier errors.
var (
	// ErrAmbiguousRegisterPacket indicates an operation expecting exactly one
	// packet for a register found zero or several.
	ErrAmbiguousRegisterPacket = errors.New("expected exactly one packet for register")
	// ErrUnknownIOPin indicates the device layout has no entry for the pin.
	ErrUnknownIOPin = errors.New("no format information for IO pin")
	// ErrPinValueUnavailable indicates the pin entry has no value bytes for
	// the requested state.
	ErrPinValueUnavailable = errors.New("no value configured for pin state")
	// ErrPinPatchOutOfRange indicates a pin patch would write past the end
	// of the IO block.
	ErrPinPatchOutOfRange = errors.New("pin patch exceeds IO block size")
)

// Data-object errors.
var (
	// ErrNoCodec indicates no codec is registered for a data object's kind.
	ErrNoCodec = errors.New("no codec registered for model kind")
	// ErrModelMismatch indicates a codec received a model of the wrong type.
	ErrModelMismatch = errors.New("unexpected model type for codec")
)

// Catalog construction errors.
var (
	// ErrInvalidBitSize indicates register attribute widths that do not sum
	// to a multiple of 8 bits.
	ErrInvalidBitSize = errors.New("register attribute bit size not a multiple of 8")
	// ErrInvalidFormatConfig indicates malformed catalog input.
	ErrInvalidFormatConfig = errors.New("invalid format configuration")
	// ErrUnknownMajor indicates a logic-block layout referencing an
	// undefined major format name.
	ErrUnknownMajor = errors.New("no major format with name")
	// ErrInvalidHexValue indicates a hex-encoded catalog field that failed
	// to decode.
	ErrInvalidHexValue = errors.New("invalid hex value")
)

// Image container errors.
var (
	// ErrInvalidImageContainer indicates bytes that are not a valid
	// compressed bitstream image container.
	ErrInvalidImageContainer = errors.New("invalid bitstream image container")
	// ErrInvalidCompressionType indicates an unsupported compression type.
	ErrInvalidCompressionType = errors.New("invalid compression type")
)
