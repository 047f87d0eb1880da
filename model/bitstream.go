package model

import (
	"github.com/fpgakit/xbit/internal/hash"
	"github.com/fpgakit/xbit/object"
)

// Bitstream is the root model: the opaque vendor header, the sync marker
// and the packet region, plus an eager register-name index over the
// parsed packets used by analyzers and modifiers.
type Bitstream struct {
	object.ModelBase

	header     *object.DataObject
	syncMarker *object.DataObject
	packets    *object.DataObject

	packetsByRegister map[uint64][]*Packet
}

// NewBitstream creates the root model over its three children. The
// register index starts empty; the bitstream codec fills it while walking
// the freshly parsed packets.
func NewBitstream(header, syncMarker, packets *object.DataObject) *Bitstream {
	return &Bitstream{
		header:            header,
		syncMarker:        syncMarker,
		packets:           packets,
		packetsByRegister: make(map[uint64][]*Packet),
	}
}

// Children implements object.Model.
func (b *Bitstream) Children() []*object.DataObject {
	return []*object.DataObject{b.header, b.syncMarker, b.packets}
}

// Header returns the opaque vendor header object.
func (b *Bitstream) Header() *object.DataObject {
	return b.header
}

// SyncMarker returns the sync word object.
func (b *Bitstream) SyncMarker() *object.DataObject {
	return b.syncMarker
}

// Packets returns the packet region object.
func (b *Bitstream) Packets() *object.DataObject {
	return b.packets
}

// IndexPacket records a parsed packet under its register name.
func (b *Bitstream) IndexPacket(registerName string, packet *Packet) {
	id := hash.ID(registerName)
	b.packetsByRegister[id] = append(b.packetsByRegister[id], packet)
}

// PacketsByRegisterName returns the parsed packets addressing the named
// register, in wire order. Returns nil for registers with no packets.
func (b *Bitstream) PacketsByRegisterName(registerName string) []*Packet {
	return b.packetsByRegister[hash.ID(registerName)]
}

// SetHeader replaces the vendor header object.
func (b *Bitstream) SetHeader(header *object.DataObject) {
	b.header = header
	b.MarkDirty()
}

// SetPackets replaces the packet region object. The register index is not
// rebuilt; callers substituting the packet region re-parse through the
// codec.
func (b *Bitstream) SetPackets(packets *object.DataObject) {
	b.packets = packets
	b.MarkDirty()
}
