package format

import (
	"encoding/hex"
	"fmt"

	"github.com/fpgakit/xbit/errs"
)

// Builder accumulates catalog schema documents and assembles them into an
// immutable Format.
//
// The zero value is not usable; create builders with NewBuilder. Add the
// loaded schema fragments in any order, then call Build once:
//
//	builder := format.NewBuilder()
//	builder.AddRegisterFormats(registers)
//	builder.AddFdriMajorFormats(majors)
//	builder.AddFdriFormats(fdriFormats)
//	builder.AddFdriLogicBlockFormats(logicBlocks)
//	builder.AddFdriIOBlockFormats(ioBlocks)
//	catalog, err := builder.Build()
type Builder struct {
	registers      []RegisterSchema
	majorFormats   []MajorSchema
	fdriFormats    []FdriSchema
	logicFormats   []LogicBlockSchema
	ioFormats      []IOBlockSchema
	visualizerConf any
	syncWordHex    string
}

// NewBuilder creates an empty catalog builder with the default sync word.
func NewBuilder() *Builder {
	return &Builder{syncWordHex: DefaultSyncWordHex}
}

// AddRegisterFormats appends register format documents.
func (b *Builder) AddRegisterFormats(registers []RegisterSchema) *Builder {
	b.registers = append(b.registers, registers...)
	return b
}

// AddFdriMajorFormats appends major format documents.
func (b *Builder) AddFdriMajorFormats(majors []MajorSchema) *Builder {
	b.majorFormats = append(b.majorFormats, majors...)
	return b
}

// AddFdriFormats appends per-device FDRI size documents.
func (b *Builder) AddFdriFormats(fdriFormats []FdriSchema) *Builder {
	b.fdriFormats = append(b.fdriFormats, fdriFormats...)
	return b
}

// AddFdriLogicBlockFormats appends per-device logic block layouts.
func (b *Builder) AddFdriLogicBlockFormats(logicFormats []LogicBlockSchema) *Builder {
	b.logicFormats = append(b.logicFormats, logicFormats...)
	return b
}

// AddFdriIOBlockFormats appends per-device IO pin tables.
func (b *Builder) AddFdriIOBlockFormats(ioFormats []IOBlockSchema) *Builder {
	b.ioFormats = append(b.ioFormats, ioFormats...)
	return b
}

// SetVisualizerConfig stores the opaque visualizer configuration.
func (b *Builder) SetVisualizerConfig(conf any) *Builder {
	b.visualizerConf = conf
	return b
}

// SetSyncWord overrides the default sync word with a hex string.
func (b *Builder) SetSyncWord(syncWordHex string) *Builder {
	b.syncWordHex = syncWordHex
	return b
}

// Build assembles the accumulated documents into a Format.
func (b *Builder) Build() (*Format, error) {
	syncWord, err := hex.DecodeString(b.syncWordHex)
	if err != nil {
		return nil, fmt.Errorf("%w: sync word %q: %v", errs.ErrInvalidHexValue, b.syncWordHex, err)
	}

	registers := make([]*RegisterFormat, 0, len(b.registers))
	for _, reg := range b.registers {
		attrs := make([]*AttributeFormat, 0, len(reg.Attributes))
		for _, attr := range reg.Attributes {
			values := make([]ValueDoc, 0, len(attr.Values))
			for _, v := range attr.Values {
				values = append(values, ValueDoc{Value: v.Value, Name: v.Name, Description: v.Description})
			}
			attrs = append(attrs, NewAttributeFormat(attr.Name, attr.BitSize, attr.Description, values))
		}
		rf, err := NewRegisterFormat(reg.Address, reg.Name, reg.Description, attrs)
		if err != nil {
			return nil, err
		}
		registers = append(registers, rf)
	}

	majorsByName := make(map[string]*MajorFormat, len(b.majorFormats))
	for _, major := range b.majorFormats {
		majorsByName[major.Name] = &MajorFormat{
			Name:              major.Name,
			FrameSize:         major.FrameSize,
			FrameCount:        major.FrameCount,
			FrameDescriptions: major.FrameDescriptions,
		}
	}

	logicByDevice := make(map[string][][]string, len(b.logicFormats))
	for _, lf := range b.logicFormats {
		logicByDevice[lf.DeviceName] = lf.LogicBlockFormat
	}
	ioByDevice := make(map[string][]PinSchema, len(b.ioFormats))
	for _, iof := range b.ioFormats {
		ioByDevice[iof.DeviceName] = iof.IOBlockFormat
	}

	fdriFormats := make([]*FdriFormat, 0, len(b.fdriFormats))
	for _, fs := range b.fdriFormats {
		logicFormat, err := b.buildLogicBlockFormat(fs.DeviceName, logicByDevice[fs.DeviceName], majorsByName)
		if err != nil {
			return nil, err
		}
		pins, err := b.buildPins(fs.DeviceName, ioByDevice[fs.DeviceName])
		if err != nil {
			return nil, err
		}
		fdriFormats = append(fdriFormats, NewFdriFormat(
			fs.DeviceName,
			fs.LogicBlockSize,
			fs.BRAMBlockSize,
			fs.IOBlockSize,
			fs.CRCSize,
			logicFormat,
			pins,
		))
	}

	return NewFormat(registers, fdriFormats, b.visualizerConf, syncWord), nil
}

func (b *Builder) buildLogicBlockFormat(
	deviceName string,
	rows [][]string,
	majorsByName map[string]*MajorFormat,
) ([][]*MajorFormat, error) {
	if rows == nil {
		return nil, nil
	}

	logicFormat := make([][]*MajorFormat, 0, len(rows))
	for _, row := range rows {
		rowFormat := make([]*MajorFormat, 0, len(row))
		for _, majorName := range row {
			major, ok := majorsByName[majorName]
			if !ok {
				return nil, fmt.Errorf("%w: %q in logic block format for %s", errs.ErrUnknownMajor, majorName, deviceName)
			}
			rowFormat = append(rowFormat, major)
		}
		logicFormat = append(logicFormat, rowFormat)
	}

	return logicFormat, nil
}

func (b *Builder) buildPins(deviceName string, pins []PinSchema) ([]*PinFormat, error) {
	if pins == nil {
		return nil, nil
	}

	built := make([]*PinFormat, 0, len(pins))
	for _, pin := range pins {
		onValue, err := decodePinValue(pin.OnValue)
		if err != nil {
			return nil, fmt.Errorf("%w: on_value for pin %s of %s: %v", errs.ErrInvalidHexValue, pin.PinName, deviceName, err)
		}
		offValue, err := decodePinValue(pin.OffValue)
		if err != nil {
			return nil, fmt.Errorf("%w: off_value for pin %s of %s: %v", errs.ErrInvalidHexValue, pin.PinName, deviceName, err)
		}
		built = append(built, &PinFormat{
			Name:     pin.PinName,
			Offset:   pin.Offset,
			OnValue:  onValue,
			OffValue: offValue,
		})
	}

	return built, nil
}

// decodePinValue decodes an optional hex string; "" means the state is
// not configured and decodes to nil.
func decodePinValue(hexValue string) ([]byte, error) {
	if hexValue == "" {
		return nil, nil
	}

	return hex.DecodeString(hexValue)
}
