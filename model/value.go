// Package model defines the tree models a parsed bitstream decodes into:
// the root bitstream, the packet sequence, packet headers, register
// payloads and the FDRI block hierarchy. Every model lives inside an
// object.DataObject and reports mutations through the embedded dirty
// flag so Synchronize can re-pack exactly the touched subtrees.
package model

import "github.com/fpgakit/xbit/object"

// Value is a single decoded integer: a packet header field or a register
// payload attribute. It optionally carries the symbolic name and
// description the catalog documents for the raw value, and the field's
// width in bits.
type Value struct {
	object.ModelBase

	value       uint64
	valueName   string
	description string
	bitSize     int
}

// NewValue creates a value with its display decorations.
func NewValue(value uint64, valueName, description string, bitSize int) *Value {
	return &Value{
		value:       value,
		valueName:   valueName,
		description: description,
		bitSize:     bitSize,
	}
}

// Children implements object.Model; a value is a leaf.
func (v *Value) Children() []*object.DataObject {
	return nil
}

// Value returns the raw integer value.
func (v *Value) Value() uint64 {
	return v.value
}

// ValueName returns the symbolic name documented for the current value,
// or "" if the value is undocumented.
func (v *Value) ValueName() string {
	return v.valueName
}

// Description returns the documentation for the current value.
func (v *Value) Description() string {
	return v.description
}

// BitSize returns the field width in bits, or 0 when unknown.
func (v *Value) BitSize() int {
	return v.bitSize
}

// SetValue replaces the raw value and drops the now-stale decorations.
func (v *Value) SetValue(value uint64) {
	v.value = value
	v.valueName = ""
	v.description = ""
	v.MarkDirty()
}
