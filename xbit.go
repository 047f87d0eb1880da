// Package xbit parses, inspects, mutates and re-emits Xilinx FPGA
// configuration bitstreams.
//
// A bitstream is an opaque vendor header, a fixed sync marker, and a
// sequence of configuration packets writing values into hardware
// registers. The codec maps the raw bytes onto a lazy data-object tree
// whose shape is dictated by an external format catalog (register
// layouts, per-device FDRI layouts, IO-pin offsets); untouched regions
// of the tree re-pack byte-identically, so parse followed by pack always
// reproduces the input.
//
// # Basic Usage
//
// Build a catalog through format.Builder, create a factory, and parse:
//
//	catalog, _ := builder.Build()
//	factory, _ := xbit.NewFactory(catalog)
//	ctx := factory.New(rawBitstream)
//
//	device, _ := xbit.IdentifyDevice(ctx) // e.g. "LX9"
//	encrypted, _ := xbit.DetectEncryption(ctx)
//
//	_ = xbit.SetPin(ctx, "P134", false)
//	patched, _ := xbit.Repack(ctx)
//
// # Laziness
//
// Parsing decodes the packet sequence eagerly (to index packets by
// register name) but leaves payloads packed: register write bodies and
// the FDRI fabric blocks stay raw byte slices until accessed. Cmd
// register bodies are the exception; they are decoded during parsing to
// detect DESYNC. FDRI
// decoding requires the device identity, so run IdentifyDevice (or the
// device analyzer) before descending into FDRI payloads.
//
// # CRC
//
// The checksum embedded in the FDRI tail is never recomputed. Mutations
// such as pin patches therefore produce bitstreams whose embedded CRC no
// longer matches their content; devices configured to verify it will
// reject such images.
//
// # Encrypted bitstreams
//
// Encryption is detected via the control register's dec bit. The FDRI
// payload of an encrypted bitstream is ciphertext; do not descend into
// it.
package xbit

import (
	"github.com/fpgakit/xbit/analyzer"
	"github.com/fpgakit/xbit/codec"
	"github.com/fpgakit/xbit/errs"
	"github.com/fpgakit/xbit/format"
	"github.com/fpgakit/xbit/internal/options"
	"github.com/fpgakit/xbit/model"
	"github.com/fpgakit/xbit/modifier"
	"github.com/fpgakit/xbit/object"
)

// Option configures a Factory.
type Option = options.Option[*Factory]

// Factory creates contexts over bitstream bytes, sharing one catalog and
// one codec registry template.
type Factory struct {
	format   *format.Format
	registry *object.Registry
}

// NewFactory creates a context factory over the catalog.
//
// The factory starts with the default codec registry; options can
// substitute or remove codecs:
//
//	factory, err := xbit.NewFactory(catalog,
//	    xbit.WithCodec(object.KindPackets, customPacketsCodec),
//	)
func NewFactory(f *format.Format, opts ...Option) (*Factory, error) {
	factory := &Factory{
		format:   f,
		registry: defaultRegistry(),
	}
	if err := options.Apply(factory, opts...); err != nil {
		return nil, err
	}

	return factory, nil
}

// WithCodec registers codec for kind, replacing the default entry.
func WithCodec(kind object.Kind, c object.Codec) Option {
	return options.NoError(func(f *Factory) {
		f.registry.Register(kind, c)
	})
}

// WithoutDefaultCodecs clears the default registry. Subsequent WithCodec
// options build the registry from scratch.
func WithoutDefaultCodecs() Option {
	return options.NoError(func(f *Factory) {
		f.registry = object.NewRegistry()
	})
}

// New creates a context over raw bitstream bytes. Each context receives
// its own copy of the registry, so per-context codec substitution never
// affects other contexts.
func (f *Factory) New(data []byte) *object.Context {
	return object.NewContext(f.format, f.registry.Clone(), data)
}

// defaultRegistry builds the stock codec registry.
func defaultRegistry() *object.Registry {
	registry := object.NewRegistry()
	registry.Register(object.KindBitstream, codec.BitstreamCodec{})
	registry.Register(object.KindPackets, codec.PacketsCodec{})
	registry.Register(object.KindType1Payload, codec.Type1Codec{})
	registry.Register(object.KindFdriPayload, codec.FdriCodec{})
	registry.Register(object.KindLogicBlock, codec.LogicBlockCodec{})
	registry.Register(object.KindLogicRow, codec.LogicRowCodec{})
	registry.Register(object.KindLogicMajor, codec.LogicMajorCodec{})

	return registry
}

// Parse unpacks the context's bitstream and returns the root model.
func Parse(ctx *object.Context) (*model.Bitstream, error) {
	m, err := ctx.Bitstream().Unpack()
	if err != nil {
		return nil, err
	}
	bs, ok := m.(*model.Bitstream)
	if !ok {
		return nil, errs.ErrModelMismatch
	}

	return bs, nil
}

// IdentifyDevice returns the device name decoded from the bitstream's
// IDCODE register and caches it on the context.
func IdentifyDevice(ctx *object.Context) (string, error) {
	return analyzer.NewDeviceAnalyzer(ctx).Analyze()
}

// DetectEncryption reports whether the bitstream carries encrypted
// configuration data.
func DetectEncryption(ctx *object.Context) (bool, error) {
	return analyzer.NewEncryptionAnalyzer(ctx).Analyze()
}

// SetPin pulls the named IO pin high or low by patching the FDRI IO
// block. The device must be identified first; see IdentifyDevice.
func SetPin(ctx *object.Context, pinName string, on bool) error {
	return modifier.NewPinModifier(ctx).Modify(pinName, on)
}

// Repack synchronizes dirty subtrees and returns the packed bitstream
// bytes. For an untouched tree the result is byte-identical to the
// parsed input.
func Repack(ctx *object.Context) ([]byte, error) {
	root := ctx.Bitstream()
	if _, err := root.Synchronize(); err != nil {
		return nil, err
	}

	return root.Pack()
}
