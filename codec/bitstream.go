// Package codec implements the bitstream codecs: the header/sync/packets
// splitter, the stateful packet-stream parser and serializer, the
// register-format-driven type-1 payload codec and the per-device FDRI
// payload codec.
//
// Each codec implements object.Codec and is installed in the context's
// registry under the model kind it decodes. Registering a different
// codec for a kind substitutes behavior for the whole tree.
package codec

import (
	"bytes"
	"fmt"

	"github.com/fpgakit/xbit/errs"
	"github.com/fpgakit/xbit/model"
	"github.com/fpgakit/xbit/object"
	"github.com/fpgakit/xbit/section"
)

// BitstreamCodec splits a raw bitstream into the opaque vendor header,
// the sync marker and the packet region, and joins them back.
type BitstreamCodec struct{}

var _ object.Codec = BitstreamCodec{}

// Unpack locates the sync word and wraps the three regions in packed
// data objects. The packet region is unpacked immediately to build the
// register-name index on the bitstream model; deeper payloads stay
// packed.
func (BitstreamCodec) Unpack(ctx *object.Context, data []byte, _ any) (object.Model, error) {
	syncWord := ctx.Format().SyncWord()
	syncIndex := bytes.Index(data, syncWord)
	if syncIndex < 0 {
		return nil, errs.ErrSyncMarkerMissing
	}

	packetsStart := syncIndex + len(syncWord)
	if len(data)-packetsStart < section.WordSize {
		return nil, fmt.Errorf("%w: expected at least one word of configuration data after the sync marker",
			errs.ErrTruncatedInput)
	}

	bs := model.NewBitstream(
		object.NewPacked(ctx, data[:syncIndex], object.KindBitstreamHeader, nil),
		object.NewPacked(ctx, data[syncIndex:packetsStart], object.KindSyncMarker, nil),
		object.NewPacked(ctx, data[packetsStart:], object.KindPackets, nil),
	)

	if err := indexPackets(ctx, bs); err != nil {
		return nil, err
	}

	return bs, nil
}

// indexPackets eagerly parses the packet region and records each packet
// under its register name for the analyzers and modifiers.
func indexPackets(ctx *object.Context, bs *model.Bitstream) error {
	packetsModel, err := bs.Packets().Unpack()
	if err != nil {
		return err
	}
	packets, ok := packetsModel.(*model.Packets)
	if !ok {
		return fmt.Errorf("%w: %T for packet region", errs.ErrModelMismatch, packetsModel)
	}

	for _, item := range packets.Items() {
		if !item.IsUnpacked() {
			// The opaque tail after DESYNC has no model to index.
			continue
		}
		packet, ok := item.Model().(*model.Packet)
		if !ok {
			continue
		}
		header := packet.HeaderModel()
		if header == nil {
			continue
		}
		bs.IndexPacket(header.RegisterName(), packet)
	}

	return nil
}

// Pack concatenates the vendor header, the catalog sync word and the
// packet region.
func (BitstreamCodec) Pack(ctx *object.Context, m object.Model) ([]byte, error) {
	bs, ok := m.(*model.Bitstream)
	if !ok {
		return nil, fmt.Errorf("%w: %T for bitstream", errs.ErrModelMismatch, m)
	}

	header, err := bs.Header().Pack()
	if err != nil {
		return nil, err
	}
	packets, err := bs.Packets().Pack()
	if err != nil {
		return nil, err
	}

	syncWord := ctx.Format().SyncWord()
	out := make([]byte, 0, len(header)+len(syncWord)+len(packets))
	out = append(out, header...)
	out = append(out, syncWord...)
	out = append(out, packets...)

	return out, nil
}
