// Package overlay provides the per-render-context pop-up layer that floats
// toasts, dialogs and other transient UI above a window's content.
package overlay

import (
	"slices"
	"sync/atomic"
)

// Node is something that can be placed on an overlay layer.
type Node interface {
	// OverlayAttached is called after the node is added to l.
	OverlayAttached(l *Layer)
	// OverlayDetached is called after the node is removed from its layer,
	// including when the whole layer is disposed.
	OverlayDetached()
}

// Manager is the overlay/pop-up manager of one render context.
type Manager interface {
	// AddOverlay places node at the top of the stack.
	// Panics if node is already on this manager.
	AddOverlay(node Node, modal, exclusive bool)
	// RemoveOverlay removes node. No-op if node is not present.
	RemoveOverlay(node Node)
	// Contains reports whether node is on this manager.
	Contains(node Node) bool
}

// nextEntryID is an atomic counter for unique entry IDs.
var nextEntryID uint64

// Entry is one node on a layer together with its placement flags.
type Entry struct {
	Node Node
	// Modal entries block input to everything below them.
	Modal bool
	// Exclusive entries replace any other exclusive entry on the layer.
	Exclusive bool

	id uint64
}

// ID returns the entry's unique, stable identifier.
func (e Entry) ID() uint64 { return e.id }

// Layer is the in-memory Manager used by render contexts in this module.
// Entries are kept bottom to top. It must be used from the UI thread.
type Layer struct {
	entries  []*Entry
	disposed bool
}

var _ Manager = (*Layer)(nil)

// NewLayer creates an empty overlay layer.
func NewLayer() *Layer {
	return &Layer{}
}

// AddOverlay places node at the top of the layer.
func (l *Layer) AddOverlay(node Node, modal, exclusive bool) {
	if node == nil {
		panic("overlay: nil node")
	}
	if l.disposed {
		panic("overlay: layer disposed")
	}
	if l.indexOf(node) >= 0 {
		panic("overlay: node already added")
	}
	if exclusive {
		for _, e := range slices.Clone(l.entries) {
			if e.Exclusive {
				l.RemoveOverlay(e.Node)
			}
		}
	}
	l.entries = append(l.entries, &Entry{
		Node:      node,
		Modal:     modal,
		Exclusive: exclusive,
		id:        atomic.AddUint64(&nextEntryID, 1),
	})
	node.OverlayAttached(l)
}

// RemoveOverlay removes node from the layer and notifies it.
func (l *Layer) RemoveOverlay(node Node) {
	i := l.indexOf(node)
	if i < 0 {
		return
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	node.OverlayDetached()
}

// Contains reports whether node is on the layer.
func (l *Layer) Contains(node Node) bool {
	return l.indexOf(node) >= 0
}

// Entries returns a copy of the layer's entries, bottom to top.
func (l *Layer) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = *e
	}
	return out
}

// Len returns the number of entries.
func (l *Layer) Len() int {
	return len(l.entries)
}

// HasModal reports whether any modal entry is present.
func (l *Layer) HasModal() bool {
	return slices.ContainsFunc(l.entries, func(e *Entry) bool { return e.Modal })
}

// Dispose removes every entry, top first, and rejects further additions.
func (l *Layer) Dispose() {
	if l.disposed {
		return
	}
	l.disposed = true
	for len(l.entries) > 0 {
		l.RemoveOverlay(l.entries[len(l.entries)-1].Node)
	}
}

// IsDisposed reports whether Dispose has been called.
func (l *Layer) IsDisposed() bool {
	return l.disposed
}

func (l *Layer) indexOf(node Node) int {
	return slices.IndexFunc(l.entries, func(e *Entry) bool { return e.Node == node })
}
