package codec

import (
	"testing"

	"github.com/fpgakit/xbit/errs"
	"github.com/fpgakit/xbit/model"
	"github.com/fpgakit/xbit/object"
	"github.com/stretchr/testify/require"
)

func unpackFdri(t *testing.T) (*object.DataObject, *model.FdriPayload) {
	t.Helper()

	ctx := testContext(t, nil)
	ctx.SetIDCode("LX9")
	obj := object.NewPacked(ctx, testFdriPayload(), object.KindFdriPayload, nil)
	m, err := obj.Unpack()
	require.NoError(t, err)

	return obj, m.(*model.FdriPayload)
}

func TestFdriCodec_Unpack(t *testing.T) {
	_, payload := unpackFdri(t)

	require.Len(t, payload.LogicBlock().Bytes(), 640)
	require.Len(t, payload.RAMBlock().Bytes(), 64)
	require.Len(t, payload.IOBlock().Bytes(), 32)
	require.Len(t, payload.CRC().Bytes(), 16)

	// RAM, IO and CRC stay opaque.
	require.False(t, payload.RAMBlock().IsConvertible())
	require.False(t, payload.IOBlock().IsConvertible())
	require.False(t, payload.CRC().IsConvertible())

	// The blocks slice the payload in order.
	raw := testFdriPayload()
	require.Equal(t, raw[:640], payload.LogicBlock().Bytes())
	require.Equal(t, raw[640:704], payload.RAMBlock().Bytes())
	require.Equal(t, raw[704:736], payload.IOBlock().Bytes())
	require.Equal(t, raw[736:], payload.CRC().Bytes())
}

func TestFdriCodec_LogicHierarchy(t *testing.T) {
	_, payload := unpackFdri(t)

	logicModel, err := payload.LogicBlock().Unpack()
	require.NoError(t, err)
	logic := logicModel.(*model.LogicBlock)
	require.Len(t, logic.Rows(), 2)

	rowModel, err := logic.Rows()[0].Unpack()
	require.NoError(t, err)
	row := rowModel.(*model.LogicRow)
	require.Len(t, row.Majors(), 2)

	majorModel, err := row.Majors()[1].Unpack()
	require.NoError(t, err)
	major := majorModel.(*model.LogicMajor)
	require.Len(t, major.Frames(), 4)

	// Frames are opaque 40-byte slices.
	frame := major.Frames()[0]
	require.False(t, frame.IsConvertible())
	require.Len(t, frame.Bytes(), 40)
	require.Equal(t, testFdriPayload()[160:200], frame.Bytes())
}

func TestFdriCodec_RoundTrip(t *testing.T) {
	obj, payload := unpackFdri(t)

	// Descend the whole logic hierarchy, then repack: byte identity must
	// hold with every level unpacked.
	require.NoError(t, payload.LogicBlock().UnpackAll())

	packed, err := obj.Pack()
	require.NoError(t, err)
	require.Equal(t, testFdriPayload(), packed)

	reencoded, err := FdriCodec{}.Pack(nil, payload)
	require.NoError(t, err)
	require.Equal(t, testFdriPayload(), reencoded)
}

func TestFdriCodec_MissingIDCode(t *testing.T) {
	ctx := testContext(t, nil)
	obj := object.NewPacked(ctx, testFdriPayload(), object.KindFdriPayload, nil)
	_, err := obj.Unpack()
	require.ErrorIs(t, err, errs.ErrMissingIDCode)
}

func TestFdriCodec_UnknownDevice(t *testing.T) {
	ctx := testContext(t, nil)
	ctx.SetIDCode("LX45T")
	obj := object.NewPacked(ctx, testFdriPayload(), object.KindFdriPayload, nil)
	_, err := obj.Unpack()
	require.ErrorIs(t, err, errs.ErrUnknownDevice)
}

func TestFdriCodec_SizeMismatch(t *testing.T) {
	ctx := testContext(t, nil)
	ctx.SetIDCode("LX9")
	obj := object.NewPacked(ctx, testFdriPayload()[:700], object.KindFdriPayload, nil)
	_, err := obj.Unpack()
	require.ErrorIs(t, err, errs.ErrSizeMismatch)
}

func TestFdriCodec_IOBlockPatch(t *testing.T) {
	obj, payload := unpackFdri(t)

	ioBytes := payload.IOBlock().Bytes()
	patched := make([]byte, len(ioBytes))
	copy(patched, ioBytes)
	patched[8] = 0xCA
	patched[9] = 0xFE
	payload.IOBlock().SetBytes(patched)

	_, err := obj.Synchronize()
	require.NoError(t, err)

	repacked, err := obj.Pack()
	require.NoError(t, err)

	want := testFdriPayload()
	want[704+8] = 0xCA
	want[704+9] = 0xFE
	require.Equal(t, want, repacked)
}
