package modifier_test

import (
	"testing"

	"github.com/fpgakit/xbit"
	"github.com/fpgakit/xbit/errs"
	"github.com/fpgakit/xbit/format"
	"github.com/fpgakit/xbit/modifier"
	"github.com/fpgakit/xbit/object"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *format.Format {
	t.Helper()

	catalog, err := format.NewBuilder().
		AddRegisterFormats([]format.RegisterSchema{
			{
				Address: 2, Name: "Fdri",
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
				Address: 5, Name: "Cmd",
				Attributes: []format.AttributeSchema{
					{Name: "reserved", BitSize: 28},
					{Name: "command", BitSize: 4, Values: []format.ValueSchema{
						{Value: 13, Name: "DESYNC"},
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
				{PinName: "P133", Offset: 12, OnValue: "beef"},
				{PinName: "P999", Offset: 31, OnValue: "cafe", OffValue: "0000"},
			}},
		}).
		Build()
	require.NoError(t, err)

	return catalog
}

// payloadOffset is where the FDRI payload starts inside the test
// bitstream: vendor header, sync word, IDCODE write, FarMaj lead-in,
// type-2 header and length field.
const payloadOffset = 4 + 4 + 6 + 6 + 2 + 4

func testBitstream() []byte {
	payload := make([]byte, 752)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	var raw []byte
	raw = append(raw, 0x00, 0x01, 0x02, 0x03)             // vendor header
	raw = append(raw, 0xAA, 0x99, 0x55, 0x66)             // sync word
	raw = append(raw, 0x30, 0xC1, 0x04, 0x00, 0x10, 0x93) // Idcode write
	raw = append(raw, 0x30, 0x21, 0x01, 0x02, 0x00, 0x03) // FarMaj lead-in
	raw = append(raw, 0x50, 0x40, 0x00, 0x00, 0x00, 0xBA) // Fdri type 2, 188 words
	raw = append(raw, payload...)
	raw = append(raw, 0x30, 0xA1, 0x00, 0x00, 0x00, 0x0D) // Cmd DESYNC

	return raw
}

func testContext(t *testing.T) *object.Context {
	t.Helper()

	factory, err := xbit.NewFactory(testCatalog(t))
	require.NoError(t, err)
	ctx := factory.New(testBitstream())

	_, err = xbit.IdentifyDevice(ctx)
	require.NoError(t, err)

	return ctx
}

func TestPinModifier_Modify(t *testing.T) {
	ctx := testContext(t)

	require.NoError(t, modifier.NewPinModifier(ctx).Modify("P134", false))

	packed, err := xbit.Repack(ctx)
	require.NoError(t, err)

	// Exactly the two pin bytes changed; everything else round-trips.
	original := testBitstream()
	require.Len(t, packed, len(original))
	ioBlockStart := payloadOffset + 640 + 64
	pinOffset := ioBlockStart + 8
	want := append([]byte{}, original...)
	want[pinOffset] = 0x00
	want[pinOffset+1] = 0x00
	require.Equal(t, want, packed)
}

func TestPinModifier_ModifyOn(t *testing.T) {
	ctx := testContext(t)

	require.NoError(t, modifier.NewPinModifier(ctx).Modify("P134", true))

	packed, err := xbit.Repack(ctx)
	require.NoError(t, err)

	pinOffset := payloadOffset + 640 + 64 + 8
	require.Equal(t, byte(0xCA), packed[pinOffset])
	require.Equal(t, byte(0xFE), packed[pinOffset+1])
}

func TestPinModifier_MissingIDCode(t *testing.T) {
	factory, err := xbit.NewFactory(testCatalog(t))
	require.NoError(t, err)
	ctx := factory.New(testBitstream())

	err = modifier.NewPinModifier(ctx).Modify("P134", false)
	require.ErrorIs(t, err, errs.ErrMissingIDCode)
}

func TestPinModifier_UnknownDevice(t *testing.T) {
	factory, err := xbit.NewFactory(testCatalog(t))
	require.NoError(t, err)
	ctx := factory.New(testBitstream())
	ctx.SetIDCode("LX45T")

	err = modifier.NewPinModifier(ctx).Modify("P134", false)
	require.ErrorIs(t, err, errs.ErrUnknownDevice)
}

func TestPinModifier_UnknownPin(t *testing.T) {
	ctx := testContext(t)

	err := modifier.NewPinModifier(ctx).Modify("P1", false)
	require.ErrorIs(t, err, errs.ErrUnknownIOPin)
}

func TestPinModifier_ValueUnavailable(t *testing.T) {
	ctx := testContext(t)

	// P133 defines no off value.
	err := modifier.NewPinModifier(ctx).Modify("P133", false)
	require.ErrorIs(t, err, errs.ErrPinValueUnavailable)
}

func TestPinModifier_PatchOutOfRange(t *testing.T) {
	ctx := testContext(t)

	// P999 writes two bytes at offset 31 of a 32-byte block.
	err := modifier.NewPinModifier(ctx).Modify("P999", true)
	require.ErrorIs(t, err, errs.ErrPinPatchOutOfRange)
}
