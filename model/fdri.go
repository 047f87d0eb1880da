package model

import "github.com/fpgakit/xbit/object"

// FdriPayload is a decomposed FDRI type-2 payload: the logic block, the
// block RAM region, the IO configuration block and the checksum tail.
//
// The RAM, IO and CRC objects stay opaque; the IO block supports direct
// byte patching through SetBytes (see the modifier package). The checksum
// in the tail is never recomputed on repack, so byte-level edits leave
// the embedded CRC stale.
type FdriPayload struct {
	object.ModelBase

	logicBlock *object.DataObject
	ramBlock   *object.DataObject
	ioBlock    *object.DataObject
	crc        *object.DataObject
}

// NewFdriPayload creates the payload model over its four blocks.
func NewFdriPayload(logicBlock, ramBlock, ioBlock, crc *object.DataObject) *FdriPayload {
	return &FdriPayload{
		logicBlock: logicBlock,
		ramBlock:   ramBlock,
		ioBlock:    ioBlock,
		crc:        crc,
	}
}

// Children implements object.Model.
func (f *FdriPayload) Children() []*object.DataObject {
	return []*object.DataObject{f.logicBlock, f.ramBlock, f.ioBlock, f.crc}
}

// LogicBlock returns the logic block object.
func (f *FdriPayload) LogicBlock() *object.DataObject {
	return f.logicBlock
}

// RAMBlock returns the opaque block RAM object.
func (f *FdriPayload) RAMBlock() *object.DataObject {
	return f.ramBlock
}

// IOBlock returns the opaque IO configuration object.
func (f *FdriPayload) IOBlock() *object.DataObject {
	return f.ioBlock
}

// CRC returns the opaque checksum tail object.
func (f *FdriPayload) CRC() *object.DataObject {
	return f.crc
}

// SetLogicBlock replaces the logic block object.
func (f *FdriPayload) SetLogicBlock(logicBlock *object.DataObject) {
	f.logicBlock = logicBlock
	f.MarkDirty()
}

// SetRAMBlock replaces the RAM block object.
func (f *FdriPayload) SetRAMBlock(ramBlock *object.DataObject) {
	f.ramBlock = ramBlock
	f.MarkDirty()
}

// SetIOBlock replaces the IO block object.
func (f *FdriPayload) SetIOBlock(ioBlock *object.DataObject) {
	f.ioBlock = ioBlock
	f.MarkDirty()
}

// SetCRC replaces the checksum tail object.
func (f *FdriPayload) SetCRC(crc *object.DataObject) {
	f.crc = crc
	f.MarkDirty()
}

// LogicBlock is the device fabric configuration: an ordered sequence of
// rows.
type LogicBlock struct {
	object.ModelBase

	rows []*object.DataObject
}

// NewLogicBlock creates a logic block over its rows.
func NewLogicBlock(rows []*object.DataObject) *LogicBlock {
	return &LogicBlock{rows: rows}
}

// Children implements object.Model.
func (l *LogicBlock) Children() []*object.DataObject {
	return l.rows
}

// Rows returns the row objects in wire order.
func (l *LogicBlock) Rows() []*object.DataObject {
	return l.rows
}

// LogicRow is one row of major columns.
type LogicRow struct {
	object.ModelBase

	majors []*object.DataObject
}

// NewLogicRow creates a row over its majors.
func NewLogicRow(majors []*object.DataObject) *LogicRow {
	return &LogicRow{majors: majors}
}

// Children implements object.Model.
func (l *LogicRow) Children() []*object.DataObject {
	return l.majors
}

// Majors returns the major objects in wire order.
func (l *LogicRow) Majors() []*object.DataObject {
	return l.majors
}

// LogicMajor is one major column: an ordered sequence of opaque frames.
type LogicMajor struct {
	object.ModelBase

	frames []*object.DataObject
}

// NewLogicMajor creates a major over its frames.
func NewLogicMajor(frames []*object.DataObject) *LogicMajor {
	return &LogicMajor{frames: frames}
}

// Children implements object.Model.
func (l *LogicMajor) Children() []*object.DataObject {
	return l.frames
}

// Frames returns the frame objects in wire order.
func (l *LogicMajor) Frames() []*object.DataObject {
	return l.frames
}
