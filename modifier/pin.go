// Package modifier implements byte-level mutations of a parsed bitstream
// tree.
//
// The only modifier is the IO-pin patch: it splices catalog-defined
// bytes into the FDRI IO block at the pin's offset. The patch is a raw
// byte edit; the IO block model stays opaque and the embedded CRC is not
// recomputed, so a patched bitstream carries a checksum that no longer
// matches its content.
package modifier

import (
	"fmt"

	"github.com/fpgakit/xbit/errs"
	"github.com/fpgakit/xbit/model"
	"github.com/fpgakit/xbit/object"
)

// PinModifier patches IO-pin configuration bytes inside the FDRI IO
// block.
type PinModifier struct {
	ctx *object.Context
}

// NewPinModifier creates a pin modifier over the context.
func NewPinModifier(ctx *object.Context) *PinModifier {
	return &PinModifier{ctx: ctx}
}

// Modify pulls the named pin high (on=true) or low (on=false).
//
// The device must already be identified on the context (run the device
// analyzer first). The patched IO block is marked dirty; Synchronize on
// the root propagates the change into the packed bitstream.
func (m *PinModifier) Modify(pinName string, on bool) error {
	idCode := m.ctx.IDCode()
	if idCode == "" {
		return errs.ErrMissingIDCode
	}
	fdriFormat := m.ctx.Format().FdriByDevice(idCode)
	if fdriFormat == nil {
		return fmt.Errorf("%w: %s", errs.ErrUnknownDevice, idCode)
	}

	pin := fdriFormat.Pin(pinName)
	if pin == nil {
		return fmt.Errorf("%w: %s", errs.ErrUnknownIOPin, pinName)
	}
	value := pin.Value(on)
	if value == nil {
		return fmt.Errorf("%w: pin %s, on=%t", errs.ErrPinValueUnavailable, pinName, on)
	}

	ioBlock, err := m.fdriIOBlock()
	if err != nil {
		return err
	}
	ioBytes := ioBlock.Bytes()
	if pin.Offset+len(value) > len(ioBytes) {
		return fmt.Errorf("%w: pin %s writes %d bytes at offset %#x but the IO block holds only %d bytes",
			errs.ErrPinPatchOutOfRange, pinName, len(value), pin.Offset, len(ioBytes))
	}

	patched := make([]byte, len(ioBytes))
	copy(patched, ioBytes)
	copy(patched[pin.Offset:], value)
	ioBlock.SetBytes(patched)

	return nil
}

// fdriIOBlock locates the single FDRI packet and returns its IO block
// object.
func (m *PinModifier) fdriIOBlock() (*object.DataObject, error) {
	root, err := m.ctx.Bitstream().Unpack()
	if err != nil {
		return nil, err
	}
	bs, ok := root.(*model.Bitstream)
	if !ok {
		return nil, fmt.Errorf("%w: %T for bitstream", errs.ErrModelMismatch, root)
	}

	packets := bs.PacketsByRegisterName("Fdri")
	if len(packets) != 1 {
		return nil, fmt.Errorf("%w: Fdri, found %d", errs.ErrAmbiguousRegisterPacket, len(packets))
	}
	payloadObj := packets[0].Payload()
	if payloadObj == nil {
		return nil, fmt.Errorf("%w: Fdri packet has no payload", errs.ErrModelMismatch)
	}

	payloadModel, err := payloadObj.Unpack()
	if err != nil {
		return nil, err
	}
	payload, ok := payloadModel.(*model.FdriPayload)
	if !ok {
		return nil, fmt.Errorf("%w: %T for FDRI payload", errs.ErrModelMismatch, payloadModel)
	}

	return payload.IOBlock(), nil
}
