// Package analyzer implements read-only consumers of a parsed bitstream
// tree: device identification from the IDCODE register and encryption
// detection from the control register.
package analyzer

import (
	"fmt"

	"github.com/fpgakit/xbit/errs"
	"github.com/fpgakit/xbit/model"
	"github.com/fpgakit/xbit/object"
)

// DeviceAnalyzer identifies the target device from the bitstream's
// single Idcode register packet and caches the result on the context.
type DeviceAnalyzer struct {
	ctx *object.Context
}

// NewDeviceAnalyzer creates a device analyzer over the context.
func NewDeviceAnalyzer(ctx *object.Context) *DeviceAnalyzer {
	return &DeviceAnalyzer{ctx: ctx}
}

// Analyze returns the device name decoded from the IDCODE value (e.g.
// "LX9"). The result is cached on the context so FDRI decoding and pin
// modification can resolve the device layout.
func (a *DeviceAnalyzer) Analyze() (string, error) {
	if idCode := a.ctx.IDCode(); idCode != "" {
		return idCode, nil
	}

	bs, err := unpackBitstream(a.ctx)
	if err != nil {
		return "", err
	}

	packets := bs.PacketsByRegisterName("Idcode")
	if len(packets) != 1 {
		return "", fmt.Errorf("%w: Idcode, found %d", errs.ErrAmbiguousRegisterPacket, len(packets))
	}

	payload, err := unpackType1Payload(packets[0])
	if err != nil {
		return "", err
	}
	idAttr := payload.Attribute("idcode")
	if idAttr == nil {
		return "", fmt.Errorf("%w: Idcode payload has no idcode attribute", errs.ErrModelMismatch)
	}
	deviceName := idAttr.ValueName()
	if deviceName == "" {
		return "", fmt.Errorf("%w: %#x", errs.ErrUnknownDevice, idAttr.Value())
	}

	a.ctx.SetIDCode(deviceName)

	return deviceName, nil
}

// unpackBitstream unpacks the root object into its bitstream model.
func unpackBitstream(ctx *object.Context) (*model.Bitstream, error) {
	m, err := ctx.Bitstream().Unpack()
	if err != nil {
		return nil, err
	}
	bs, ok := m.(*model.Bitstream)
	if !ok {
		return nil, fmt.Errorf("%w: %T for bitstream", errs.ErrModelMismatch, m)
	}

	return bs, nil
}

// unpackType1Payload unpacks a packet's payload as a register write body.
func unpackType1Payload(packet *model.Packet) (*model.Type1Payload, error) {
	payloadObj := packet.Payload()
	if payloadObj == nil {
		return nil, fmt.Errorf("%w: packet has no payload", errs.ErrModelMismatch)
	}
	m, err := payloadObj.Unpack()
	if err != nil {
		return nil, err
	}
	payload, ok := m.(*model.Type1Payload)
	if !ok {
		return nil, fmt.Errorf("%w: %T for register payload", errs.ErrModelMismatch, m)
	}

	return payload, nil
}
