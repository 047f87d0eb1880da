package codec

import (
	"fmt"

	"github.com/fpgakit/xbit/errs"
	"github.com/fpgakit/xbit/format"
	"github.com/fpgakit/xbit/internal/pool"
	"github.com/fpgakit/xbit/model"
	"github.com/fpgakit/xbit/object"
)

// fdriFormatFor resolves the FDRI layout for the device identified on
// the context. FDRI decoding is impossible before device identification,
// which is why callers run the device analyzer first.
func fdriFormatFor(ctx *object.Context) (*format.FdriFormat, error) {
	idCode := ctx.IDCode()
	if idCode == "" {
		return nil, errs.ErrMissingIDCode
	}
	fdriFormat := ctx.Format().FdriByDevice(idCode)
	if fdriFormat == nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownDevice, idCode)
	}

	return fdriFormat, nil
}

// packChildren concatenates the packed bytes of a model's children.
func packChildren(m object.Model) ([]byte, error) {
	buf := pool.GetImageBuffer()
	defer pool.PutImageBuffer(buf)

	for _, child := range m.Children() {
		raw, err := child.Pack()
		if err != nil {
			return nil, err
		}
		buf.MustWrite(raw)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// FdriCodec splits an FDRI payload into the logic block, the block RAM
// region, the IO block and the CRC tail, per the device layout.
//
// The blocks stay packed: the logic block decodes further on demand, the
// others remain opaque byte ranges. The CRC is never recomputed when the
// payload is re-packed.
type FdriCodec struct{}

var _ object.Codec = FdriCodec{}

// Unpack splits the payload into its four blocks.
func (FdriCodec) Unpack(ctx *object.Context, data []byte, _ any) (object.Model, error) {
	fdriFormat, err := fdriFormatFor(ctx)
	if err != nil {
		return nil, err
	}

	expected := fdriFormat.PayloadSize()
	if len(data) != expected {
		return nil, fmt.Errorf("%w: FDRI payload for %s expects %d bytes, got %d",
			errs.ErrSizeMismatch, fdriFormat.DeviceName, expected, len(data))
	}

	logicEnd := fdriFormat.LogicBlockSize
	ramEnd := logicEnd + fdriFormat.RAMBlockSize
	ioEnd := ramEnd + fdriFormat.IOBlockSize

	return model.NewFdriPayload(
		object.NewPacked(ctx, data[:logicEnd], object.KindLogicBlock, nil),
		object.NewPacked(ctx, data[logicEnd:ramEnd], object.KindRAMBlock, nil),
		object.NewPacked(ctx, data[ramEnd:ioEnd], object.KindIOBlock, nil),
		object.NewPacked(ctx, data[ioEnd:], object.KindCRC, nil),
	), nil
}

// Pack concatenates the four blocks.
func (FdriCodec) Pack(_ *object.Context, m object.Model) ([]byte, error) {
	if _, ok := m.(*model.FdriPayload); !ok {
		return nil, fmt.Errorf("%w: %T for FDRI payload", errs.ErrModelMismatch, m)
	}

	return packChildren(m)
}

// LogicBlockCodec splits the FDRI logic block into rows per the device
// layout.
type LogicBlockCodec struct{}

var _ object.Codec = LogicBlockCodec{}

// Unpack splits the logic block into rows.
func (LogicBlockCodec) Unpack(ctx *object.Context, data []byte, _ any) (object.Model, error) {
	fdriFormat, err := fdriFormatFor(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]*object.DataObject, 0, len(fdriFormat.LogicBlockFormat))
	pos := 0
	for _, rowFormat := range fdriFormat.LogicBlockFormat {
		rowSize := 0
		for _, majorFormat := range rowFormat {
			rowSize += majorFormat.Size()
		}
		if len(data)-pos < rowSize {
			return nil, fmt.Errorf("%w: logic block row expects %d bytes, have %d",
				errs.ErrSizeMismatch, rowSize, len(data)-pos)
		}
		rows = append(rows, object.NewPacked(ctx, data[pos:pos+rowSize], object.KindLogicRow, rowFormat))
		pos += rowSize
	}
	if pos != len(data) {
		return nil, fmt.Errorf("%w: logic block expects %d bytes, got %d", errs.ErrSizeMismatch, pos, len(data))
	}

	return model.NewLogicBlock(rows), nil
}

// Pack concatenates the rows.
func (LogicBlockCodec) Pack(_ *object.Context, m object.Model) ([]byte, error) {
	if _, ok := m.(*model.LogicBlock); !ok {
		return nil, fmt.Errorf("%w: %T for logic block", errs.ErrModelMismatch, m)
	}

	return packChildren(m)
}

// LogicRowCodec splits one logic row into majors. The row's major
// formats travel as the object's decode argument.
type LogicRowCodec struct{}

var _ object.Codec = LogicRowCodec{}

// Unpack splits the row into majors.
func (LogicRowCodec) Unpack(ctx *object.Context, data []byte, args any) (object.Model, error) {
	rowFormat, ok := args.([]*format.MajorFormat)
	if !ok {
		return nil, fmt.Errorf("%w: logic row requires its major formats", errs.ErrModelMismatch)
	}

	majors := make([]*object.DataObject, 0, len(rowFormat))
	pos := 0
	for _, majorFormat := range rowFormat {
		majorSize := majorFormat.Size()
		if len(data)-pos < majorSize {
			return nil, fmt.Errorf("%w: major %s expects %d bytes, have %d",
				errs.ErrSizeMismatch, majorFormat.Name, majorSize, len(data)-pos)
		}
		majors = append(majors, object.NewPacked(ctx, data[pos:pos+majorSize], object.KindLogicMajor, majorFormat))
		pos += majorSize
	}
	if pos != len(data) {
		return nil, fmt.Errorf("%w: logic row expects %d bytes, got %d", errs.ErrSizeMismatch, pos, len(data))
	}

	return model.NewLogicRow(majors), nil
}

// Pack concatenates the majors.
func (LogicRowCodec) Pack(_ *object.Context, m object.Model) ([]byte, error) {
	if _, ok := m.(*model.LogicRow); !ok {
		return nil, fmt.Errorf("%w: %T for logic row", errs.ErrModelMismatch, m)
	}

	return packChildren(m)
}

// LogicMajorCodec splits one major into its fixed-size frames. The major
// format travels as the object's decode argument; frames stay opaque.
type LogicMajorCodec struct{}

var _ object.Codec = LogicMajorCodec{}

// Unpack splits the major into frames.
func (LogicMajorCodec) Unpack(ctx *object.Context, data []byte, args any) (object.Model, error) {
	majorFormat, ok := args.(*format.MajorFormat)
	if !ok || majorFormat == nil {
		return nil, fmt.Errorf("%w: logic major requires its major format", errs.ErrModelMismatch)
	}
	if len(data) != majorFormat.Size() {
		return nil, fmt.Errorf("%w: major %s expects %d bytes, got %d",
			errs.ErrSizeMismatch, majorFormat.Name, majorFormat.Size(), len(data))
	}

	frames := make([]*object.DataObject, 0, majorFormat.FrameCount)
	pos := 0
	for i := 0; i < majorFormat.FrameCount; i++ {
		frames = append(frames, object.NewPacked(ctx, data[pos:pos+majorFormat.FrameSize], object.KindLogicFrame, nil))
		pos += majorFormat.FrameSize
	}

	return model.NewLogicMajor(frames), nil
}

// Pack concatenates the frames.
func (LogicMajorCodec) Pack(_ *object.Context, m object.Model) ([]byte, error) {
	if _, ok := m.(*model.LogicMajor); !ok {
		return nil, fmt.Errorf("%w: %T for logic major", errs.ErrModelMismatch, m)
	}

	return packChildren(m)
}
