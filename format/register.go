package format

import (
	"fmt"

	"github.com/fpgakit/xbit/errs"
)

// ValueDoc documents one enumerated value of a register attribute.
type ValueDoc struct {
	// Value is the raw attribute value being documented.
	Value uint64
	// Name is the symbolic name for the value (e.g. "DESYNC").
	Name string
	// Description explains the effect of the value.
	Description string
}

// AttributeFormat defines the format and documentation of one bit-field
// of a register payload.
type AttributeFormat struct {
	// Name is the attribute name as it appears in the catalog.
	Name string
	// BitSize is the width of the attribute in bits.
	BitSize int
	// Description documents the attribute.
	Description string

	docByValue map[uint64]*ValueDoc
}

// NewAttributeFormat creates an attribute format with the given value
// documentation.
func NewAttributeFormat(name string, bitSize int, description string, values []ValueDoc) *AttributeFormat {
	af := &AttributeFormat{
		Name:        name,
		BitSize:     bitSize,
		Description: description,
		docByValue:  make(map[uint64]*ValueDoc, len(values)),
	}
	for i := range values {
		af.docByValue[values[i].Value] = &values[i]
	}

	return af
}

// ValueDoc returns the documentation for the given attribute value, or nil
// if the value is undocumented.
func (af *AttributeFormat) ValueDoc(value uint64) *ValueDoc {
	return af.docByValue[value]
}

// RegisterFormat defines the format and documentation of a configuration
// register addressed by packet headers.
//
// Attributes are listed in wire order: the first attribute occupies the
// most-significant bits of the payload.
type RegisterFormat struct {
	// Address is the 6-bit register address carried in packet headers.
	Address uint8
	// Name is the register name (e.g. "Fdri", "Cmd").
	Name string
	// Description documents the register.
	Description string
	// Attributes are the payload bit-fields in wire order.
	Attributes []*AttributeFormat
	// Size is the total payload size in bytes, precomputed from the
	// attribute bit widths.
	Size int
}

// NewRegisterFormat creates a register format and precomputes its payload
// size. The attribute bit widths must sum to a multiple of 8.
func NewRegisterFormat(address uint8, name, description string, attributes []*AttributeFormat) (*RegisterFormat, error) {
	bitSize := 0
	for _, attr := range attributes {
		bitSize += attr.BitSize
	}
	if bitSize%8 != 0 {
		return nil, fmt.Errorf("%w: register %s has %d bits", errs.ErrInvalidBitSize, name, bitSize)
	}

	return &RegisterFormat{
		Address:     address,
		Name:        name,
		Description: description,
		Attributes:  attributes,
		Size:        bitSize / 8,
	}, nil
}
