package codec

import (
	"fmt"

	"github.com/fpgakit/xbit/errs"
	"github.com/fpgakit/xbit/format"
	"github.com/fpgakit/xbit/internal/pool"
	"github.com/fpgakit/xbit/model"
	"github.com/fpgakit/xbit/object"
	"github.com/fpgakit/xbit/section"
)

// fdriPayloadMin is the smallest type-2 payload routed to the FDRI codec.
// Shorter Fdri payloads stay opaque; see DESIGN.md for the LX45T quirk
// behind the threshold.
const fdriPayloadMin = 500

// PacketsCodec parses and serializes the packet region: the packet
// sequence up to DESYNC plus the opaque tail after it.
//
// Parsing is stateful: a type-2 packet is only accepted immediately
// after a type-1 packet, and a Cmd DESYNC write terminates the stream.
type PacketsCodec struct{}

var _ object.Codec = PacketsCodec{}

// Unpack parses the packet sequence.
//
// Each packet object is created unpacked over its original bytes with a
// decoded header whose fields carry display names (packet type, opcode,
// register name). Payloads stay packed: type-1 payloads under their
// register format, type-2 payloads as opaque bytes, FDRI payloads under
// the FDRI codec. The one exception is a Cmd payload, which is decoded
// here to detect DESYNC.
func (c PacketsCodec) Unpack(ctx *object.Context, data []byte, _ any) (object.Model, error) {
	var items []*object.DataObject

	pos := 0
	previousType := uint8(0)
	for pos < len(data) {
		headerStart := pos
		header, err := section.ParsePacketHeader(data[pos:])
		if err != nil {
			return nil, fmt.Errorf("packet header at offset %d: %w", headerStart, err)
		}
		headerRaw := data[pos : pos+section.HeaderSize]
		pos += section.HeaderSize

		registerFormat, err := registerFormatFor(ctx, header)
		if err != nil {
			return nil, fmt.Errorf("packet at offset %d: %w", headerStart, err)
		}

		var payloadSizeObj, payloadObj *object.DataObject
		done := false
		switch header.Type {
		case 0:
			// NOOP packets carry neither a size field nor a payload.
		case 1:
			payloadObj, done, err = c.unpackType1Payload(ctx, data, &pos, header, registerFormat)
		case 2:
			if previousType != 1 {
				err = fmt.Errorf("%w: after a packet of type %d", errs.ErrUnexpectedType2, previousType)
				break
			}
			payloadSizeObj, payloadObj, err = c.unpackType2Payload(ctx, data, &pos, registerFormat)
		default:
			err = fmt.Errorf("%w: %d", errs.ErrUnexpectedPacketType, header.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("packet at offset %d: %w", headerStart, err)
		}
		previousType = header.Type

		headerObj, err := c.decorateHeader(ctx, header, registerFormat, headerRaw)
		if err != nil {
			return nil, fmt.Errorf("packet at offset %d: %w", headerStart, err)
		}

		items = append(items, object.NewUnpacked(
			ctx,
			model.NewPacket(headerObj, payloadSizeObj, payloadObj),
			data[headerStart:pos],
			object.KindPacket,
		))

		if done {
			// DESYNC ends the configuration stream; whatever follows is
			// preserved verbatim.
			items = append(items, object.NewPacked(ctx, data[pos:], object.KindPacketsTail, nil))
			break
		}
	}

	return model.NewPackets(items), nil
}

// unpackType1Payload reads a short-form payload and reports whether it
// was a Cmd DESYNC write.
func (c PacketsCodec) unpackType1Payload(
	ctx *object.Context,
	data []byte,
	pos *int,
	header section.PacketHeader,
	registerFormat *format.RegisterFormat,
) (*object.DataObject, bool, error) {
	if header.WordCount == 0 {
		return nil, false, nil
	}
	if header.Opcode == 0 {
		return nil, false, errs.ErrNoopWithPayload
	}

	payloadLen := int(header.WordCount) * section.WordSize
	if len(data)-*pos < payloadLen {
		return nil, false, fmt.Errorf("%w: type 1 payload needs %d bytes, have %d",
			errs.ErrTruncatedInput, payloadLen, len(data)-*pos)
	}
	payloadData := data[*pos : *pos+payloadLen]
	*pos += payloadLen

	payload := object.NewPacked(ctx, payloadData, object.KindType1Payload, registerFormat)
	if registerFormat.Name != "Cmd" {
		return payload, false, nil
	}

	// A Cmd write may carry DESYNC, which terminates the stream.
	payloadModel, err := payload.Unpack()
	if err != nil {
		return nil, false, err
	}
	t1, ok := payloadModel.(*model.Type1Payload)
	if !ok {
		return nil, false, fmt.Errorf("%w: %T for Cmd payload", errs.ErrModelMismatch, payloadModel)
	}
	command := t1.Attribute("command")
	done := command != nil && command.ValueName() == "DESYNC"

	return payload, done, nil
}

// unpackType2Payload reads the 32-bit length field and the long-form
// payload that follows it. The wire length N encodes N+2 words of
// payload.
func (c PacketsCodec) unpackType2Payload(
	ctx *object.Context,
	data []byte,
	pos *int,
	registerFormat *format.RegisterFormat,
) (*object.DataObject, *object.DataObject, error) {
	wordCount, err := section.ParseLength(data[*pos:])
	if err != nil {
		return nil, nil, err
	}
	lengthRaw := data[*pos : *pos+section.LengthSize]
	*pos += section.LengthSize

	payloadSizeObj := object.NewUnpacked(
		ctx,
		model.NewValue(uint64(wordCount), "", "", section.LengthSize*8),
		lengthRaw,
		object.KindValue,
	)

	payloadLen := (int(wordCount) + 2) * section.WordSize
	if len(data)-*pos < payloadLen {
		return nil, nil, fmt.Errorf("%w: type 2 payload needs %d bytes, have %d",
			errs.ErrTruncatedInput, payloadLen, len(data)-*pos)
	}
	payloadData := data[*pos : *pos+payloadLen]
	*pos += payloadLen

	if registerFormat.Name != "Fdri" || len(payloadData) < fdriPayloadMin {
		return payloadSizeObj, object.NewPacked(ctx, payloadData, object.KindType2Payload, registerFormat), nil
	}

	return payloadSizeObj, object.NewPacked(ctx, payloadData, object.KindFdriPayload, nil), nil
}

// decorateHeader builds the unpacked header object whose field values
// carry display names.
func (c PacketsCodec) decorateHeader(
	ctx *object.Context,
	header section.PacketHeader,
	registerFormat *format.RegisterFormat,
	headerRaw []byte,
) (*object.DataObject, error) {
	typeName, err := section.TypeName(header.Type)
	if err != nil {
		return nil, err
	}
	opcodeName, err := section.OpcodeName(header.Opcode)
	if err != nil {
		return nil, err
	}

	headerModel := model.NewPacketHeader(
		object.NewUnpacked(ctx, model.NewValue(uint64(header.Type), typeName, "", section.TypeBits), nil, object.KindValue),
		object.NewUnpacked(ctx, model.NewValue(uint64(header.Opcode), opcodeName, "", section.OpBits), nil, object.KindValue),
		object.NewUnpacked(ctx, model.NewValue(uint64(header.RegisterAddress), registerFormat.Name, registerFormat.Description, section.RegBits), nil, object.KindValue),
		object.NewUnpacked(ctx, model.NewValue(uint64(header.WordCount), "", "", section.WordBits), nil, object.KindValue),
	)

	return object.NewUnpacked(ctx, headerModel, headerRaw, object.KindPacketHeader), nil
}

// Pack serializes the packet sequence.
//
// Items that are still fully packed (the DESYNC tail, or packets forced
// packed through SetBytes) are emitted verbatim. Unpacked packets are
// re-encoded from their models: type-1 headers recompute the word count
// from the payload length, type-2 packets emit a zero word count and the
// payload length in the separate 32-bit field.
func (c PacketsCodec) Pack(ctx *object.Context, m object.Model) ([]byte, error) {
	packets, ok := m.(*model.Packets)
	if !ok {
		return nil, fmt.Errorf("%w: %T for packet region", errs.ErrModelMismatch, m)
	}

	buf := pool.GetPacketBuffer()
	defer pool.PutPacketBuffer(buf)

	for i, item := range packets.Items() {
		if !item.IsUnpacked() {
			raw, err := item.Pack()
			if err != nil {
				return nil, err
			}
			buf.MustWrite(raw)

			continue
		}

		packet, ok := item.Model().(*model.Packet)
		if !ok {
			return nil, fmt.Errorf("%w: %T for packet %d", errs.ErrModelMismatch, item.Model(), i)
		}
		if err := c.packPacket(ctx, buf, packet, i); err != nil {
			return nil, err
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func (c PacketsCodec) packPacket(ctx *object.Context, buf *pool.ByteBuffer, packet *model.Packet, index int) error {
	header := packet.HeaderModel()
	if header == nil {
		return fmt.Errorf("%w: packet %d has no decoded header", errs.ErrModelMismatch, index)
	}

	var payloadRaw []byte
	if packet.Payload() != nil {
		var err error
		payloadRaw, err = packet.Payload().Pack()
		if err != nil {
			return err
		}
	}

	packetType := header.TypeValue()
	opcode := header.OpcodeValue()
	registerAddress := header.RegisterAddressValue()

	switch packetType {
	case 0, 1:
		wireHeader := section.PacketHeader{
			Type:            uint8(packetType),
			Opcode:          uint8(opcode),
			RegisterAddress: uint8(registerAddress),
			WordCount:       uint8(len(payloadRaw) / section.WordSize),
		}
		buf.MustWrite(wireHeader.Bytes())
		if opcode != 0 {
			registerFormat, err := registerFormatFor(ctx, wireHeader)
			if err != nil {
				return fmt.Errorf("packet %d: %w", index, err)
			}
			if len(payloadRaw) != registerFormat.Size {
				return fmt.Errorf("%w: payload size %d does not match the expected payload size %d for register %s",
					errs.ErrSizeMismatch, len(payloadRaw), registerFormat.Size, registerFormat.Name)
			}
			buf.MustWrite(payloadRaw)
		}
	case 2:
		wireHeader := section.PacketHeader{
			Type:            uint8(packetType),
			Opcode:          uint8(opcode),
			RegisterAddress: uint8(registerAddress),
			WordCount:       0,
		}
		buf.MustWrite(wireHeader.Bytes())
		buf.MustWrite(section.LengthBytes(uint32(len(payloadRaw)/section.WordSize - 2)))
		buf.MustWrite(payloadRaw)
	default:
		return fmt.Errorf("%w: %d in packet %d", errs.ErrUnexpectedPacketType, packetType, index)
	}

	return nil
}

// registerFormatFor resolves the register format for a header, applying
// the FarMaj extended-payload rule.
func registerFormatFor(ctx *object.Context, header section.PacketHeader) (*format.RegisterFormat, error) {
	registerFormat := ctx.Format().RegisterByAddress(header.RegisterAddress)
	if registerFormat != nil && registerFormat.Name == "FarMaj" && header.WordCount > 1 {
		registerFormat = ctx.Format().RegisterByName("FarMajExtended")
	}
	if registerFormat == nil {
		return nil, fmt.Errorf("%w: %#x", errs.ErrUnknownRegister, header.RegisterAddress)
	}

	return registerFormat, nil
}
