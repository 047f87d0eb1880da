package object

import (
	"github.com/fpgakit/xbit/format"
)

// Context is the shared lookup capability carried by every data object:
// the format catalog, the codec registry, and the mutable device identity
// discovered by the device analyzer.
//
// A Context owns one bitstream tree. It is not safe for concurrent
// mutation.
type Context struct {
	format    *format.Format
	registry  *Registry
	idCode    string
	bitstream *DataObject
}

// NewContext creates a context over the raw bitstream bytes. The root
// data object starts out packed; Unpack it to parse.
func NewContext(f *format.Format, registry *Registry, data []byte) *Context {
	ctx := &Context{
		format:   f,
		registry: registry,
	}
	ctx.bitstream = NewPacked(ctx, data, KindBitstream, nil)

	return ctx
}

// Format returns the format catalog.
func (c *Context) Format() *format.Format {
	return c.format
}

// Bitstream returns the root data object wrapping the bitstream.
func (c *Context) Bitstream() *DataObject {
	return c.bitstream
}

// Codec returns the codec registered for kind, or nil.
func (c *Context) Codec(kind Kind) Codec {
	return c.registry.Codec(kind)
}

// RegisterCodec installs a codec for kind on this context's registry.
func (c *Context) RegisterCodec(kind Kind, codec Codec) {
	c.registry.Register(kind, codec)
}

// IDCode returns the device name identified from the bitstream's IDCODE
// register, or "" while the device is unidentified.
func (c *Context) IDCode() string {
	return c.idCode
}

// SetIDCode records the identified device name. The device analyzer calls
// this; the FDRI codec and the pin modifier require it to be set.
func (c *Context) SetIDCode(idCode string) {
	c.idCode = idCode
}
