package format

// MajorFormat defines the frame layout of one major column of the logic
// block.
type MajorFormat struct {
	// Name identifies the major type (e.g. "clb", "iob", "bram").
	Name string
	// FrameSize is the size of one frame in bytes.
	FrameSize int
	// FrameCount is the number of frames making up the major.
	FrameCount int
	// FrameDescriptions optionally documents individual frames. Shorter
	// lists leave trailing frames undescribed.
	FrameDescriptions []string
}

// Size returns the total size of the major in bytes.
func (mf *MajorFormat) Size() int {
	return mf.FrameSize * mf.FrameCount
}

// FrameDescription returns the description for the frame at index, or ""
// if none is recorded.
func (mf *MajorFormat) FrameDescription(index int) string {
	if index < 0 || index >= len(mf.FrameDescriptions) {
		return ""
	}

	return mf.FrameDescriptions[index]
}

// PinFormat defines the IO-block patch site for one named pin.
type PinFormat struct {
	// Name is the pin name (e.g. "P134").
	Name string
	// Offset is the byte offset of the pin configuration in the IO block.
	Offset int
	// OnValue holds the bytes that pull the pin high; nil when the catalog
	// defines no on state.
	OnValue []byte
	// OffValue holds the bytes that pull the pin low; nil when the catalog
	// defines no off state.
	OffValue []byte
}

// Value returns the patch bytes for the requested state, or nil if the
// catalog does not define that state.
func (pf *PinFormat) Value(on bool) []byte {
	if on {
		return pf.OnValue
	}

	return pf.OffValue
}

// FdriFormat defines the FDRI payload layout for one device.
//
// The payload is four consecutive blocks: logic, RAM, IO and the CRC
// tail. The logic block subdivides into rows of majors; the outer slice
// of LogicBlockFormat is rows, the inner slice is the majors of a row.
type FdriFormat struct {
	// DeviceName names the FPGA this layout applies to (e.g. "LX9").
	DeviceName string
	// LogicBlockSize is the size of the logic block in bytes.
	LogicBlockSize int
	// RAMBlockSize is the size of the block RAM region in bytes.
	RAMBlockSize int
	// IOBlockSize is the size of the IO configuration block in bytes.
	IOBlockSize int
	// CRCSize is the size of the checksum tail in bytes.
	CRCSize int
	// LogicBlockFormat is the row-major matrix of major formats.
	LogicBlockFormat [][]*MajorFormat

	pinByName map[string]*PinFormat
}

// NewFdriFormat creates an FDRI format with the given pin table. pins may
// be nil for devices without an IO-block description.
func NewFdriFormat(
	deviceName string,
	logicBlockSize, ramBlockSize, ioBlockSize, crcSize int,
	logicBlockFormat [][]*MajorFormat,
	pins []*PinFormat,
) *FdriFormat {
	ff := &FdriFormat{
		DeviceName:       deviceName,
		LogicBlockSize:   logicBlockSize,
		RAMBlockSize:     ramBlockSize,
		IOBlockSize:      ioBlockSize,
		CRCSize:          crcSize,
		LogicBlockFormat: logicBlockFormat,
		pinByName:        make(map[string]*PinFormat, len(pins)),
	}
	for _, pin := range pins {
		ff.pinByName[pin.Name] = pin
	}

	return ff
}

// PayloadSize returns the expected total FDRI payload size in bytes.
func (ff *FdriFormat) PayloadSize() int {
	return ff.LogicBlockSize + ff.RAMBlockSize + ff.IOBlockSize + ff.CRCSize
}

// Pin returns the pin format for the given pin name, or nil if the device
// layout does not describe the pin.
func (ff *FdriFormat) Pin(name string) *PinFormat {
	return ff.pinByName[name]
}
