// Package object implements the lazy data-object tree at the core of the
// bitstream codec.
//
// Every node of a parsed bitstream is wrapped in a DataObject that is
// either packed (raw bytes plus the kind they decode into) or unpacked (a
// live model plus cached bytes). Unpacking is on demand and idempotent;
// packing an untouched node returns its original bytes verbatim, so a
// freshly parsed tree always round-trips byte-identically.
package object

import (
	"fmt"

	"github.com/fpgakit/xbit/errs"
)

// DataObject is the uniform lazy wrapper around a tree node.
type DataObject struct {
	ctx   *Context
	kind  Kind
	args  any
	data  []byte
	model Model
	dirty bool
}

// NewPacked creates a packed data object over raw bytes. args carries
// decode arguments for the kind's codec (e.g. a register format) and may
// be nil.
func NewPacked(ctx *Context, data []byte, kind Kind, args any) *DataObject {
	return &DataObject{ctx: ctx, kind: kind, args: args, data: data}
}

// NewUnpacked creates a data object that starts out unpacked, holding a
// live model. data caches the bytes the model was decoded from and may be
// nil for synthetic nodes whose bytes only exist inside a parent's
// encoding.
func NewUnpacked(ctx *Context, model Model, data []byte, kind Kind) *DataObject {
	return &DataObject{ctx: ctx, kind: kind, data: data, model: model}
}

// Kind returns the object's model kind.
func (o *DataObject) Kind() Kind {
	return o.kind
}

// Args returns the decode arguments the object was created with.
func (o *DataObject) Args() any {
	return o.args
}

// Context returns the shared lookup context.
func (o *DataObject) Context() *Context {
	return o.ctx
}

// Bytes returns the object's current raw bytes without re-encoding. For a
// dirty subtree the bytes are stale until Synchronize or Pack runs.
func (o *DataObject) Bytes() []byte {
	return o.data
}

// IsUnpacked reports whether the object holds a live model.
func (o *DataObject) IsUnpacked() bool {
	return o.model != nil
}

// IsConvertible reports whether a codec is registered for the object's
// kind, i.e. whether Unpack can succeed.
func (o *DataObject) IsConvertible() bool {
	return o.ctx.Codec(o.kind) != nil
}

// Model returns the live model, or nil while the object is packed.
func (o *DataObject) Model() Model {
	return o.model
}

// Unpack decodes the object's bytes into a model, transitioning it to the
// unpacked state. If the object is already unpacked the cached model is
// returned unchanged.
func (o *DataObject) Unpack() (Model, error) {
	if o.model != nil {
		return o.model, nil
	}

	codec := o.ctx.Codec(o.kind)
	if codec == nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrNoCodec, o.kind)
	}

	model, err := codec.Unpack(o.ctx, o.data, o.args)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", o.kind, err)
	}
	o.model = model

	return model, nil
}

// UnpackAll recursively unpacks the object and every convertible
// descendant. Unconvertible nodes stay packed.
func (o *DataObject) UnpackAll() error {
	if o.model == nil {
		if !o.IsConvertible() {
			return nil
		}
		if _, err := o.Unpack(); err != nil {
			return err
		}
	}

	for _, child := range o.model.Children() {
		if child == nil {
			continue
		}
		if err := child.UnpackAll(); err != nil {
			return err
		}
	}

	return nil
}

// Pack returns the object's wire bytes.
//
// Packed objects return their stored bytes. Unpacked objects whose model
// is untouched return the cached bytes verbatim, preserving vendor
// encodings. A dirty model is re-encoded through the kind's codec; nodes
// without a codec of their own are re-encoded by their parent's codec and
// return their cached bytes here.
func (o *DataObject) Pack() ([]byte, error) {
	if o.model == nil {
		return o.data, nil
	}
	if !o.dirty && !o.model.Dirty() && o.data != nil {
		return o.data, nil
	}

	codec := o.ctx.Codec(o.kind)
	if codec == nil {
		return o.data, nil
	}

	data, err := codec.Pack(o.ctx, o.model)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", o.kind, err)
	}
	o.data = data
	o.dirty = false
	o.model.ClearDirty()

	return data, nil
}

// SetBytes forces the object into the packed state with new bytes,
// discarding any model. The object is marked dirty so the next
// Synchronize re-packs its ancestors.
func (o *DataObject) SetBytes(data []byte) {
	o.data = data
	o.model = nil
	o.dirty = true
}

// Synchronize recursively re-packs dirty subtrees so that Pack on this
// object yields bytes consistent with every descendant. It reports
// whether anything below (or at) this object had changed.
func (o *DataObject) Synchronize() (bool, error) {
	changed := o.dirty

	if o.model != nil {
		if o.model.Dirty() {
			changed = true
		}
		for _, child := range o.model.Children() {
			if child == nil {
				continue
			}
			childChanged, err := child.Synchronize()
			if err != nil {
				return false, err
			}
			if childChanged {
				changed = true
			}
		}

		if changed {
			if codec := o.ctx.Codec(o.kind); codec != nil {
				data, err := codec.Pack(o.ctx, o.model)
				if err != nil {
					return false, fmt.Errorf("synchronize %s: %w", o.kind, err)
				}
				o.data = data
			} else {
				// No codec of its own: the parent's codec re-encodes this
				// node from its model, so the cache must not be trusted.
				o.data = nil
			}
			o.model.ClearDirty()
		}
	}

	o.dirty = false

	return changed, nil
}
