package section

import (
	"testing"

	"github.com/fpgakit/xbit/errs"
	"github.com/stretchr/testify/require"
)

func TestParsePacketHeader(t *testing.T) {
	header, err := ParsePacketHeader([]byte{0x30, 0xA1, 0x00, 0x00})
	require.NoError(t, err)
	require.Equal(t, uint8(1), header.Type)
	require.Equal(t, uint8(2), header.Opcode)
	require.Equal(t, uint8(5), header.RegisterAddress)
	require.Equal(t, uint8(1), header.WordCount)
}

func TestPacketHeader_Bytes(t *testing.T) {
	header := PacketHeader{Type: 1, Opcode: 2, RegisterAddress: 5, WordCount: 1}
	require.Equal(t, []byte{0x30, 0xA1}, header.Bytes())
}

func TestPacketHeader_Bijection(t *testing.T) {
	// The header codec must be a bijection over the full field space.
	for typ := uint8(0); typ < 1<<TypeBits; typ++ {
		for opcode := uint8(0); opcode < 1<<OpBits; opcode++ {
			for reg := uint8(0); reg < 1<<RegBits; reg++ {
				for wc := uint8(0); wc < 1<<WordBits; wc++ {
					original := PacketHeader{Type: typ, Opcode: opcode, RegisterAddress: reg, WordCount: wc}
					raw := original.Bytes()
					require.Len(t, raw, HeaderSize)

					parsed, err := ParsePacketHeader(raw)
					require.NoError(t, err)
					require.Equal(t, original, parsed)
				}
			}
		}
	}
}

func TestParsePacketHeader_Truncated(t *testing.T) {
	_, err := ParsePacketHeader([]byte{0x30})
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestParseLength(t *testing.T) {
	n, err := ParseLength([]byte{0x00, 0x00, 0x00, 0xBA})
	require.NoError(t, err)
	require.Equal(t, uint32(186), n)

	require.Equal(t, []byte{0x00, 0x00, 0x00, 0xBA}, LengthBytes(186))
}

func TestParseLength_Truncated(t *testing.T) {
	_, err := ParseLength([]byte{0x00, 0x00})
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestTypeName(t *testing.T) {
	for typ, want := range map[uint8]string{0: "NOOP", 1: "Type1", 2: "Type2"} {
		name, err := TypeName(typ)
		require.NoError(t, err)
		require.Equal(t, want, name)
	}

	_, err := TypeName(3)
	require.ErrorIs(t, err, errs.ErrUnexpectedPacketType)
}

func TestOpcodeName(t *testing.T) {
	for opcode, want := range map[uint8]string{0: "NOOP", 1: "READ", 2: "WRITE"} {
		name, err := OpcodeName(opcode)
		require.NoError(t, err)
		require.Equal(t, want, name)
	}

	_, err := OpcodeName(3)
	require.Error(t, err)
}
