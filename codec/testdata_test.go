package codec

import (
	"testing"

	"github.com/fpgakit/xbit/format"
	"github.com/fpgakit/xbit/object"
	"github.com/stretchr/testify/require"
)

// testCatalog builds a Spartan-6-flavored catalog covering the registers
// and the LX9 FDRI layout the wire fixtures use.
func testCatalog(t *testing.T) *format.Format {
	t.Helper()

	catalog, err := format.NewBuilder().
		AddRegisterFormats([]format.RegisterSchema{
			{
				Address: 0, Name: "Crc",
				Attributes: []format.AttributeSchema{{Name: "crc", BitSize: 32}},
			},
			{
				Address: 1, Name: "FarMaj",
				Attributes: []format.AttributeSchema{
					{Name: "block", BitSize: 8},
					{Name: "major", BitSize: 8},
					{Name: "minor", BitSize: 16},
				},
			},
			{
				Address: 33, Name: "FarMajExtended",
				Attributes: []format.AttributeSchema{
					{Name: "block", BitSize: 8},
					{Name: "major", BitSize: 8},
					{Name: "minor", BitSize: 16},
					{Name: "block_ext", BitSize: 8},
					{Name: "major_ext", BitSize: 8},
					{Name: "minor_ext", BitSize: 16},
				},
			},
			{
				// Fdri carries no short-form attributes; its configuration
				// arrives as a type-2 payload.
				Address: 2, Name: "Fdri", Description: "Frame data input",
			},
			{
				Address: 5, Name: "Cmd",
				Attributes: []format.AttributeSchema{
					{Name: "reserved", BitSize: 28},
					{Name: "command", BitSize: 4, Values: []format.ValueSchema{
						{Value: 13, Name: "DESYNC", Description: "Desynchronize the device"},
					}},
				},
			},
			{
				Address: 6, Name: "Idcode",
				Attributes: []format.AttributeSchema{
					{Name: "idcode", BitSize: 32, Values: []format.ValueSchema{
						{Value: 67113107, Name: "LX9"},
					}},
				},
			},
			{
				Address: 10, Name: "Ctl",
				Attributes: []format.AttributeSchema{
					{Name: "reserved1", BitSize: 22},
					{Name: "sbits", BitSize: 2},
					{Name: "persist", BitSize: 1},
					{Name: "dec", BitSize: 1},
					{Name: "reserved2", BitSize: 6},
				},
			},
		}).
		AddFdriMajorFormats([]format.MajorSchema{
			{Name: "clb", FrameSize: 40, FrameCount: 4},
		}).
		AddFdriFormats([]format.FdriSchema{
			{DeviceName: "LX9", LogicBlockSize: 640, BRAMBlockSize: 64, IOBlockSize: 32, CRCSize: 16},
		}).
		AddFdriLogicBlockFormats([]format.LogicBlockSchema{
			{DeviceName: "LX9", LogicBlockFormat: [][]string{{"clb", "clb"}, {"clb", "clb"}}},
		}).
		AddFdriIOBlockFormats([]format.IOBlockSchema{
			{DeviceName: "LX9", IOBlockFormat: []format.PinSchema{
				{PinName: "P134", Offset: 8, OnValue: "cafe", OffValue: "0000"},
			}},
		}).
		Build()
	require.NoError(t, err)

	return catalog
}

// testRegistry wires the stock codecs.
func testRegistry() *object.Registry {
	registry := object.NewRegistry()
	registry.Register(object.KindBitstream, BitstreamCodec{})
	registry.Register(object.KindPackets, PacketsCodec{})
	registry.Register(object.KindType1Payload, Type1Codec{})
	registry.Register(object.KindFdriPayload, FdriCodec{})
	registry.Register(object.KindLogicBlock, LogicBlockCodec{})
	registry.Register(object.KindLogicRow, LogicRowCodec{})
	registry.Register(object.KindLogicMajor, LogicMajorCodec{})

	return registry
}

func testContext(t *testing.T, data []byte) *object.Context {
	t.Helper()

	return object.NewContext(testCatalog(t), testRegistry(), data)
}

// testFdriPayload builds the 752-byte LX9 FDRI payload with a
// recognizable byte pattern.
func testFdriPayload() []byte {
	payload := make([]byte, 752)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	return payload
}

// testPacketsRegion assembles the full wire fixture:
//
//	NOOP-opcode packet, IDCODE write, CTL write, FarMaj write (the
//	type-1 lead-in), FDRI type-2 payload, Cmd DESYNC, opaque tail.
func testPacketsRegion(ctlPayload []byte) []byte {
	fdriPayload := testFdriPayload()

	var region []byte
	region = append(region, 0x20, 0x00)                          // type 1, NOOP opcode, Crc, 0 words
	region = append(region, 0x30, 0xC1, 0x04, 0x00, 0x10, 0x93) // Idcode write, LX9
	region = append(region, 0x31, 0x41)                          // Ctl write
	region = append(region, ctlPayload...)
	region = append(region, 0x30, 0x21, 0x01, 0x02, 0x00, 0x03) // FarMaj write, the type-2 lead-in
	region = append(region, 0x50, 0x40, 0x00, 0x00, 0x00, 0xBA) // Fdri type 2, N=186 (188 words)
	region = append(region, fdriPayload...)
	region = append(region, 0x30, 0xA1, 0x00, 0x00, 0x00, 0x0D) // Cmd DESYNC
	region = append(region, 0xDE, 0xAD, 0xBE, 0xEF)             // opaque tail

	return region
}

var (
	ctlPayloadPlain     = []byte{0x00, 0x00, 0x00, 0x00}
	ctlPayloadEncrypted = []byte{0x00, 0x00, 0x00, 0x40} // dec bit set
	testHeaderBytes     = []byte{0x00, 0x09, 0x0F, 0xF0, 0x0F, 0xF0, 0x0F, 0xF0}
	syncWordBytes       = []byte{0xAA, 0x99, 0x55, 0x66}
)

// testBitstream wraps a packets region in the vendor header and sync
// word.
func testBitstream(packetsRegion []byte) []byte {
	var raw []byte
	raw = append(raw, testHeaderBytes...)
	raw = append(raw, syncWordBytes...)
	raw = append(raw, packetsRegion...)

	return raw
}
