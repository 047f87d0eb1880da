package model

import (
	"testing"

	"github.com/fpgakit/xbit/object"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	v := NewValue(13, "DESYNC", "Desynchronize the device", 4)
	require.Equal(t, uint64(13), v.Value())
	require.Equal(t, "DESYNC", v.ValueName())
	require.Equal(t, "Desynchronize the device", v.Description())
	require.Equal(t, 4, v.BitSize())
	require.Nil(t, v.Children())
	require.False(t, v.Dirty())
}

func TestValue_SetValueDropsDecorations(t *testing.T) {
	v := NewValue(13, "DESYNC", "desc", 4)
	v.SetValue(7)

	require.Equal(t, uint64(7), v.Value())
	require.Empty(t, v.ValueName())
	require.Empty(t, v.Description())
	require.True(t, v.Dirty())

	v.ClearDirty()
	require.False(t, v.Dirty())
}

func TestPacketHeader_Fields(t *testing.T) {
	typ := object.NewUnpacked(nil, NewValue(1, "Type1", "", 3), nil, object.KindValue)
	opcode := object.NewUnpacked(nil, NewValue(2, "WRITE", "", 2), nil, object.KindValue)
	register := object.NewUnpacked(nil, NewValue(5, "Cmd", "", 6), nil, object.KindValue)
	wordCount := object.NewUnpacked(nil, NewValue(1, "", "", 5), nil, object.KindValue)

	header := NewPacketHeader(typ, opcode, register, wordCount)
	require.Equal(t, uint64(1), header.TypeValue())
	require.Equal(t, uint64(2), header.OpcodeValue())
	require.Equal(t, uint64(5), header.RegisterAddressValue())
	require.Equal(t, "Cmd", header.RegisterName())
	require.Equal(t, uint64(1), header.WordCountValue())
	require.Len(t, header.Children(), 4)

	header.SetWordCount(object.NewUnpacked(nil, NewValue(2, "", "", 5), nil, object.KindValue))
	require.True(t, header.Dirty())
	require.Equal(t, uint64(2), header.WordCountValue())
}

func TestPacket_NilChildren(t *testing.T) {
	header := object.NewUnpacked(nil, NewPacketHeader(nil, nil, nil, nil), nil, object.KindPacketHeader)
	packet := NewPacket(header, nil, nil)

	require.Len(t, packet.Children(), 3)
	require.Nil(t, packet.PayloadSize())
	require.Nil(t, packet.Payload())
}

func TestBitstream_Index(t *testing.T) {
	bs := NewBitstream(nil, nil, nil)
	first := NewPacket(nil, nil, nil)
	second := NewPacket(nil, nil, nil)

	bs.IndexPacket("Idcode", first)
	bs.IndexPacket("Ctl", second)
	bs.IndexPacket("Ctl", first)

	require.Equal(t, []*Packet{first}, bs.PacketsByRegisterName("Idcode"))
	require.Equal(t, []*Packet{second, first}, bs.PacketsByRegisterName("Ctl"))
	require.Nil(t, bs.PacketsByRegisterName("Fdri"))
}

func TestType1Payload_Lookup(t *testing.T) {
	attr := object.NewUnpacked(nil, NewValue(1, "", "", 1), nil, object.KindValue)
	payload := NewType1Payload(nil, []string{"dec"}, map[string]*object.DataObject{"dec": attr})

	require.Same(t, attr, payload.Get("dec"))
	require.Equal(t, uint64(1), payload.Attribute("dec").Value())
	require.Nil(t, payload.Get("nonesuch"))
	require.Nil(t, payload.Attribute("nonesuch"))
	require.Len(t, payload.Children(), 1)
}
