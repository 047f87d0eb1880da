package model

import (
	"github.com/fpgakit/xbit/format"
	"github.com/fpgakit/xbit/object"
)

// Type1Payload is a decoded register write body: an ordered mapping of
// lowercased attribute names to Value objects, in the wire order the
// register format defines. The format reference supplies display names
// and the attribute order for re-encoding.
type Type1Payload struct {
	object.ModelBase

	registerFormat *format.RegisterFormat
	names          []string
	attrs          map[string]*object.DataObject
}

// NewType1Payload creates a payload model. names must be the lowercased
// attribute names in wire order and attrs must contain one object per
// name.
func NewType1Payload(registerFormat *format.RegisterFormat, names []string, attrs map[string]*object.DataObject) *Type1Payload {
	return &Type1Payload{
		registerFormat: registerFormat,
		names:          names,
		attrs:          attrs,
	}
}

// Children implements object.Model; attributes appear in wire order.
func (t *Type1Payload) Children() []*object.DataObject {
	children := make([]*object.DataObject, 0, len(t.names))
	for _, name := range t.names {
		children = append(children, t.attrs[name])
	}

	return children
}

// RegisterFormat returns the register format the payload was decoded
// with.
func (t *Type1Payload) RegisterFormat() *format.RegisterFormat {
	return t.registerFormat
}

// AttributeNames returns the lowercased attribute names in wire order.
func (t *Type1Payload) AttributeNames() []string {
	return t.names
}

// Get returns the attribute object for the lowercased name, or nil.
func (t *Type1Payload) Get(name string) *object.DataObject {
	return t.attrs[name]
}

// Attribute returns the decoded Value model for the lowercased name, or
// nil if the attribute does not exist.
func (t *Type1Payload) Attribute(name string) *Value {
	obj := t.attrs[name]
	if obj == nil {
		return nil
	}
	if v, ok := obj.Model().(*Value); ok {
		return v
	}

	return nil
}
