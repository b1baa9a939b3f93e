package overlay

import "testing"

type recordingNode struct {
	name     string
	layer    *Layer
	events   *[]string
	onDetach func()
}

func (n *recordingNode) OverlayAttached(l *Layer) {
	n.layer = l
	*n.events = append(*n.events, "attach "+n.name)
}

func (n *recordingNode) OverlayDetached() {
	n.layer = nil
	*n.events = append(*n.events, "detach "+n.name)
	if n.onDetach != nil {
		n.onDetach()
	}
}

func newNodes(events *[]string, names ...string) []*recordingNode {
	nodes := make([]*recordingNode, len(names))
	for i, name := range names {
		nodes[i] = &recordingNode{name: name, events: events}
	}
	return nodes
}

// TestLayer_UniqueIDs verifies that each entry gets its own ID.
func TestLayer_UniqueIDs(t *testing.T) {
	var events []string
	nodes := newNodes(&events, "a", "b")
	l := NewLayer()
	l.AddOverlay(nodes[0], false, false)
	l.AddOverlay(nodes[1], false, false)

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID() == 0 || entries[1].ID() == 0 {
		t.Error("entries should have non-zero IDs")
	}
	if entries[0].ID() == entries[1].ID() {
		t.Error("entries should have different IDs")
	}
}

// TestLayer_AddRemove verifies attach and detach notifications.
func TestLayer_AddRemove(t *testing.T) {
	var events []string
	nodes := newNodes(&events, "a", "b")
	l := NewLayer()

	l.AddOverlay(nodes[0], false, false)
	l.AddOverlay(nodes[1], true, false)
	if nodes[0].layer != l {
		t.Error("node should know its layer")
	}
	if !l.Contains(nodes[1]) || !l.HasModal() {
		t.Error("expected modal node b on layer")
	}

	l.RemoveOverlay(nodes[1])
	l.RemoveOverlay(nodes[1])

	want := []string{"attach a", "attach b", "detach b"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
	if l.HasModal() {
		t.Error("modal flag should go with its entry")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

// TestLayer_ExclusiveReplaces verifies that an exclusive entry evicts the previous one.
func TestLayer_ExclusiveReplaces(t *testing.T) {
	var events []string
	nodes := newNodes(&events, "plain", "first", "second")
	l := NewLayer()

	l.AddOverlay(nodes[0], false, false)
	l.AddOverlay(nodes[1], false, true)
	l.AddOverlay(nodes[2], false, true)

	if l.Contains(nodes[1]) {
		t.Error("first exclusive entry should have been removed")
	}
	if !l.Contains(nodes[0]) || !l.Contains(nodes[2]) {
		t.Error("plain and second entries should remain")
	}
}

// TestLayer_DuplicatePanics verifies that adding a node twice panics.
func TestLayer_DuplicatePanics(t *testing.T) {
	var events []string
	node := newNodes(&events, "a")[0]
	l := NewLayer()
	l.AddOverlay(node, false, false)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate add")
		}
	}()
	l.AddOverlay(node, false, false)
}

// TestLayer_DisposeDetachesTopFirst verifies dispose order and that the
// layer rejects additions from a detach hook.
func TestLayer_DisposeDetachesTopFirst(t *testing.T) {
	var events []string
	nodes := newNodes(&events, "a", "b", "c")
	l := NewLayer()
	for _, n := range nodes {
		l.AddOverlay(n, false, false)
	}
	events = nil

	var hookPanicked bool
	nodes[2].onDetach = func() {
		defer func() { hookPanicked = recover() != nil }()
		l.AddOverlay(&recordingNode{name: "late", events: &events}, false, false)
	}

	l.Dispose()
	l.Dispose()

	want := []string{"detach c", "detach b", "detach a"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
	if !hookPanicked {
		t.Error("adding to a disposed layer should panic")
	}
	if !l.IsDisposed() || l.Len() != 0 {
		t.Error("layer should be empty and disposed")
	}
}
