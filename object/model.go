package object

// Model is a live, decoded tree node held by an unpacked DataObject.
//
// Children returns the child data objects the model owns, in wire order;
// Synchronize walks them to propagate dirtiness bottom-up. Leaf models
// return nil.
type Model interface {
	// Children returns the model's child data objects in wire order.
	Children() []*DataObject
	// Dirty reports whether a mutator has been invoked on the model since
	// it was decoded or last packed.
	Dirty() bool
	// ClearDirty resets the dirty flag after the owning object re-packs.
	ClearDirty()
}

// ModelBase carries the dirty flag shared by all model implementations.
// Model types embed it and call MarkDirty from their mutators.
type ModelBase struct {
	dirty bool
}

// Dirty reports whether the model has unpacked-but-unwritten mutations.
func (mb *ModelBase) Dirty() bool {
	return mb.dirty
}

// MarkDirty records that a mutator changed the model.
func (mb *ModelBase) MarkDirty() {
	mb.dirty = true
}

// ClearDirty resets the dirty flag.
func (mb *ModelBase) ClearDirty() {
	mb.dirty = false
}
