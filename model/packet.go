package model

import "github.com/fpgakit/xbit/object"

// PacketHeader is the decoded 16-bit packet header. Its four fields are
// Value objects carrying display decorations: the type and opcode names,
// the register name resolved from the catalog, and the word count.
type PacketHeader struct {
	object.ModelBase

	typ             *object.DataObject
	opcode          *object.DataObject
	registerAddress *object.DataObject
	wordCount       *object.DataObject
}

// NewPacketHeader creates a header model over its four field objects.
func NewPacketHeader(typ, opcode, registerAddress, wordCount *object.DataObject) *PacketHeader {
	return &PacketHeader{
		typ:             typ,
		opcode:          opcode,
		registerAddress: registerAddress,
		wordCount:       wordCount,
	}
}

// Children implements object.Model.
func (h *PacketHeader) Children() []*object.DataObject {
	return []*object.DataObject{h.typ, h.opcode, h.registerAddress, h.wordCount}
}

// Type returns the packet type field (0 NOOP, 1, 2).
func (h *PacketHeader) Type() *object.DataObject {
	return h.typ
}

// Opcode returns the opcode field (0 NOOP, 1 READ, 2 WRITE).
func (h *PacketHeader) Opcode() *object.DataObject {
	return h.opcode
}

// RegisterAddress returns the 6-bit register address field.
func (h *PacketHeader) RegisterAddress() *object.DataObject {
	return h.registerAddress
}

// WordCount returns the 5-bit word count field.
func (h *PacketHeader) WordCount() *object.DataObject {
	return h.wordCount
}

// TypeValue returns the raw packet type.
func (h *PacketHeader) TypeValue() uint64 {
	return fieldValue(h.typ)
}

// OpcodeValue returns the raw opcode.
func (h *PacketHeader) OpcodeValue() uint64 {
	return fieldValue(h.opcode)
}

// RegisterAddressValue returns the raw register address.
func (h *PacketHeader) RegisterAddressValue() uint64 {
	return fieldValue(h.registerAddress)
}

// RegisterName returns the catalog name of the addressed register.
func (h *PacketHeader) RegisterName() string {
	if h.registerAddress == nil {
		return ""
	}
	if v, ok := h.registerAddress.Model().(*Value); ok {
		return v.ValueName()
	}

	return ""
}

// WordCountValue returns the raw word count.
func (h *PacketHeader) WordCountValue() uint64 {
	return fieldValue(h.wordCount)
}

// SetType replaces the packet type field.
func (h *PacketHeader) SetType(typ *object.DataObject) {
	h.typ = typ
	h.MarkDirty()
}

// SetOpcode replaces the opcode field.
func (h *PacketHeader) SetOpcode(opcode *object.DataObject) {
	h.opcode = opcode
	h.MarkDirty()
}

// SetRegisterAddress replaces the register address field.
func (h *PacketHeader) SetRegisterAddress(registerAddress *object.DataObject) {
	h.registerAddress = registerAddress
	h.MarkDirty()
}

// SetWordCount replaces the word count field.
func (h *PacketHeader) SetWordCount(wordCount *object.DataObject) {
	h.wordCount = wordCount
	h.MarkDirty()
}

func fieldValue(obj *object.DataObject) uint64 {
	if obj == nil {
		return 0
	}
	if v, ok := obj.Model().(*Value); ok {
		return v.Value()
	}

	return 0
}

// Packet is one configuration packet: a header, an optional payload-size
// field (type-2 only) and an optional payload.
type Packet struct {
	object.ModelBase

	header      *object.DataObject
	payloadSize *object.DataObject
	payload     *object.DataObject
}

// NewPacket creates a packet model. payloadSize and payload may be nil
// for NOOP and zero-word packets.
func NewPacket(header, payloadSize, payload *object.DataObject) *Packet {
	return &Packet{
		header:      header,
		payloadSize: payloadSize,
		payload:     payload,
	}
}

// Children implements object.Model.
func (p *Packet) Children() []*object.DataObject {
	return []*object.DataObject{p.header, p.payloadSize, p.payload}
}

// Header returns the packet header object.
func (p *Packet) Header() *object.DataObject {
	return p.header
}

// HeaderModel returns the unpacked header model.
func (p *Packet) HeaderModel() *PacketHeader {
	if h, ok := p.header.Model().(*PacketHeader); ok {
		return h
	}

	return nil
}

// PayloadSize returns the type-2 payload length field object, or nil.
func (p *Packet) PayloadSize() *object.DataObject {
	return p.payloadSize
}

// Payload returns the payload object, or nil for packets without one.
func (p *Packet) Payload() *object.DataObject {
	return p.payload
}

// SetHeader replaces the header object.
func (p *Packet) SetHeader(header *object.DataObject) {
	p.header = header
	p.MarkDirty()
}

// SetPayload replaces the payload object.
func (p *Packet) SetPayload(payload *object.DataObject) {
	p.payload = payload
	p.MarkDirty()
}

// Packets is the ordered packet sequence. Items are Packet objects except
// for an optional trailing opaque PacketsTail object holding the bytes
// after DESYNC.
type Packets struct {
	object.ModelBase

	items []*object.DataObject
}

// NewPackets creates the packet sequence model.
func NewPackets(items []*object.DataObject) *Packets {
	return &Packets{items: items}
}

// Children implements object.Model.
func (p *Packets) Children() []*object.DataObject {
	return p.items
}

// Items returns the sequence's data objects in wire order.
func (p *Packets) Items() []*object.DataObject {
	return p.items
}

// SetItems replaces the sequence.
func (p *Packets) SetItems(items []*object.DataObject) {
	p.items = items
	p.MarkDirty()
}
