package codec

import (
	"fmt"
	"strings"

	"github.com/fpgakit/xbit/errs"
	"github.com/fpgakit/xbit/format"
	"github.com/fpgakit/xbit/internal/bitfield"
	"github.com/fpgakit/xbit/model"
	"github.com/fpgakit/xbit/object"
)

// Type1Codec decodes register write bodies using the register format the
// payload object carries as its decode argument.
//
// The payload is a big-endian bit string: the first attribute of the
// format occupies the most-significant bits. Decoding yields an ordered
// mapping of lowercased attribute names to values, each annotated with
// the catalog's value documentation when present.
type Type1Codec struct{}

var _ object.Codec = Type1Codec{}

// Unpack decodes a register payload.
func (Type1Codec) Unpack(ctx *object.Context, data []byte, args any) (object.Model, error) {
	registerFormat, ok := args.(*format.RegisterFormat)
	if !ok || registerFormat == nil {
		return nil, fmt.Errorf("%w: type 1 payload requires a register format", errs.ErrModelMismatch)
	}
	if len(data) != registerFormat.Size {
		return nil, fmt.Errorf("%w: register %s expects %d bytes of config data, got %d",
			errs.ErrSizeMismatch, registerFormat.Name, registerFormat.Size, len(data))
	}

	reader := bitfield.NewReader(data)
	names := make([]string, 0, len(registerFormat.Attributes))
	attrs := make(map[string]*object.DataObject, len(registerFormat.Attributes))
	for _, attrFormat := range registerFormat.Attributes {
		value, err := reader.Read(attrFormat.BitSize)
		if err != nil {
			return nil, fmt.Errorf("register %s attribute %s: %w", registerFormat.Name, attrFormat.Name, err)
		}

		valueName := ""
		valueDescription := ""
		if doc := attrFormat.ValueDoc(value); doc != nil {
			valueName = doc.Name
			valueDescription = doc.Description
		}

		name := strings.ToLower(attrFormat.Name)
		names = append(names, name)
		attrs[name] = object.NewUnpacked(
			ctx,
			model.NewValue(value, valueName, valueDescription, attrFormat.BitSize),
			nil,
			object.KindValue,
		)
	}

	return model.NewType1Payload(registerFormat, names, attrs), nil
}

// Pack re-encodes a register payload from its attribute values, in the
// wire order the register format defines.
func (Type1Codec) Pack(_ *object.Context, m object.Model) ([]byte, error) {
	payload, ok := m.(*model.Type1Payload)
	if !ok {
		return nil, fmt.Errorf("%w: %T for type 1 payload", errs.ErrModelMismatch, m)
	}

	registerFormat := payload.RegisterFormat()
	writer := bitfield.NewWriter(registerFormat.Size)
	for _, attrFormat := range registerFormat.Attributes {
		name := strings.ToLower(attrFormat.Name)
		attr := payload.Attribute(name)
		if attr == nil {
			return nil, fmt.Errorf("%w: payload for register %s is missing attribute %s",
				errs.ErrModelMismatch, registerFormat.Name, name)
		}
		if err := writer.Write(attr.Value(), attrFormat.BitSize); err != nil {
			return nil, fmt.Errorf("register %s attribute %s: %w", registerFormat.Name, name, err)
		}
	}

	return writer.Bytes(), nil
}
