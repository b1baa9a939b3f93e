package toast

// ContainerRegistry maps each render context to the single container that
// holds its toasts. Containers are created on first use and forgotten when
// they leave their overlay layer; toasts still inside are closed at once.
type ContainerRegistry struct {
	factory    ContainerFactory
	containers map[RenderContext]Container
}

// NewContainerRegistry creates a registry. A nil factory means NewStackContainer.
func NewContainerRegistry(factory ContainerFactory) *ContainerRegistry {
	if factory == nil {
		factory = NewStackContainer
	}
	return &ContainerRegistry{
		factory:    factory,
		containers: make(map[RenderContext]Container),
	}
}

// SetFactory replaces the factory used for contexts without a container yet.
func (r *ContainerRegistry) SetFactory(factory ContainerFactory) {
	if factory == nil {
		factory = NewStackContainer
	}
	r.factory = factory
}

// Container returns the container for rc, creating it and adding it to rc's
// overlay layer if needed. It fails with ErrContextClosed if rc's overlay
// manager reports that it has been disposed.
func (r *ContainerRegistry) Container(rc RenderContext) (Container, error) {
	if rc == nil {
		return nil, ErrNoRenderContext
	}
	if c, ok := r.containers[rc]; ok {
		return c, nil
	}
	m := rc.Overlays()
	if d, ok := m.(interface{ IsDisposed() bool }); ok && d.IsDisposed() {
		return nil, ErrContextClosed
	}
	c := r.factory()
	r.containers[rc] = c

	var unsubscribe func()
	unsubscribe = c.OnRemoved(func() {
		unsubscribe()
		if r.containers[rc] == c {
			delete(r.containers, rc)
		}
		for _, t := range c.Toasts() {
			t.abandon()
		}
	})
	m.AddOverlay(c, false, false)
	return c, nil
}

// Lookup returns rc's container without creating one.
func (r *ContainerRegistry) Lookup(rc RenderContext) (Container, bool) {
	c, ok := r.containers[rc]
	return c, ok
}

// Len returns the number of live containers.
func (r *ContainerRegistry) Len() int {
	return len(r.containers)
}
