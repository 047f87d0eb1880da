package object

// Kind identifies what a packed data object's bytes decode into. The
// codec registry dispatches on it.
type Kind uint8

const (
	KindUnknown         Kind = iota
	KindBitstream            // root bitstream: header, sync marker, packets
	KindBitstreamHeader      // opaque vendor header before the sync word
	KindSyncMarker           // the sync word itself
	KindPackets              // the packet region
	KindPacket               // one configuration packet
	KindPacketHeader         // decoded 16-bit packet header
	KindValue                // a single decoded value (header field, attribute)
	KindType1Payload         // register write body, decoded by register format
	KindType2Payload         // opaque type-2 payload
	KindFdriPayload          // FDRI payload: logic, RAM, IO blocks and CRC tail
	KindLogicBlock           // FDRI logic block (rows)
	KindLogicRow             // one row of majors
	KindLogicMajor           // one major column of frames
	KindLogicFrame           // one opaque configuration frame
	KindRAMBlock             // opaque block RAM region
	KindIOBlock              // opaque IO configuration block
	KindCRC                  // opaque checksum tail
	KindPacketsTail          // opaque bytes after DESYNC
)

func (k Kind) String() string {
	switch k {
	case KindBitstream:
		return "Bitstream"
	case KindBitstreamHeader:
		return "BitstreamHeader"
	case KindSyncMarker:
		return "SyncMarker"
	case KindPackets:
		return "Packets"
	case KindPacket:
		return "Packet"
	case KindPacketHeader:
		return "PacketHeader"
	case KindValue:
		return "Value"
	case KindType1Payload:
		return "Type1Payload"
	case KindType2Payload:
		return "Type2Payload"
	case KindFdriPayload:
		return "FdriPayload"
	case KindLogicBlock:
		return "LogicBlock"
	case KindLogicRow:
		return "LogicRow"
	case KindLogicMajor:
		return "LogicMajor"
	case KindLogicFrame:
		return "LogicFrame"
	case KindRAMBlock:
		return "RAMBlock"
	case KindIOBlock:
		return "IOBlock"
	case KindCRC:
		return "CRC"
	case KindPacketsTail:
		return "PacketsTail"
	default:
		return "Unknown"
	}
}
