// Package format holds the in-memory catalog describing the bitstream
// wire format: register layouts, per-device FDRI layouts and the sync
// word. The catalog is immutable once built and is shared read-only by
// every codec through the context.
//
// The catalog is populated from externally loaded configuration (see
// schema.go for the wire schema and Builder for assembly); this package
// performs no file or network I/O.
package format

import (
	"github.com/fpgakit/xbit/internal/hash"
)

// DefaultSyncWordHex is the default sync word separating the opaque
// bitstream header from the packet region.
const DefaultSyncWordHex = "AA995566"

// Format is the immutable catalog of register and FDRI formats consulted
// by the codecs.
type Format struct {
	syncWord       []byte
	regByAddress   map[uint8]*RegisterFormat
	regByName      map[uint64]*RegisterFormat
	fdriByDevice   map[uint64]*FdriFormat
	visualizerConf any
}

// NewFormat assembles a catalog from built register and FDRI formats.
// Most callers use Builder instead.
func NewFormat(registers []*RegisterFormat, fdriFormats []*FdriFormat, visualizerConf any, syncWord []byte) *Format {
	f := &Format{
		syncWord:       syncWord,
		regByAddress:   make(map[uint8]*RegisterFormat, len(registers)),
		regByName:      make(map[uint64]*RegisterFormat, len(registers)),
		fdriByDevice:   make(map[uint64]*FdriFormat, len(fdriFormats)),
		visualizerConf: visualizerConf,
	}
	for _, reg := range registers {
		f.regByAddress[reg.Address] = reg
		f.regByName[hash.ID(reg.Name)] = reg
	}
	for _, ff := range fdriFormats {
		f.fdriByDevice[hash.ID(ff.DeviceName)] = ff
	}

	return f
}

// SyncWord returns the sync word bytes. The returned slice must not be
// modified.
func (f *Format) SyncWord() []byte {
	return f.syncWord
}

// RegisterByAddress looks up a register format by its 6-bit address.
// Returns nil if the catalog has no format for the address.
func (f *Format) RegisterByAddress(address uint8) *RegisterFormat {
	return f.regByAddress[address]
}

// RegisterByName looks up a register format by name.
// Returns nil if the catalog has no register with the name.
func (f *Format) RegisterByName(name string) *RegisterFormat {
	return f.regByName[hash.ID(name)]
}

// FdriByDevice looks up the FDRI payload layout for a device name.
// Returns nil if the catalog has no layout for the device.
func (f *Format) FdriByDevice(deviceName string) *FdriFormat {
	return f.fdriByDevice[hash.ID(deviceName)]
}

// VisualizerConfig returns the opaque visualizer configuration carried by
// the catalog for external frontends.
func (f *Format) VisualizerConfig() any {
	return f.visualizerConf
}
