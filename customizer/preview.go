package customizer

import (
	"sort"
	"sync"

	"board-customizer/models"
)

// SceneListener receives the rebuilt scene after every store change
type SceneListener func(models.Scene)

// CameraControls tracks the meshes the camera is not allowed to pass through
type CameraControls struct {
	colliderMeshes []string
}

// RegisterCollider registers the collider once; later calls are no-ops returning false
func (c *CameraControls) RegisterCollider(name string) bool {
	if len(c.colliderMeshes) > 0 {
		return false
	}
	c.colliderMeshes = []string{name}
	return true
}

// ColliderMeshes returns the registered colliders
func (c *CameraControls) ColliderMeshes() []string {
	out := make([]string, len(c.colliderMeshes))
	copy(out, c.colliderMeshes)
	return out
}

// Preview observes a Store and keeps the 3D scene description in sync with it
type Preview struct {
	doc      *models.BoardCustomizer
	textures TextureResolver

	mu        sync.Mutex
	selection models.Selection
	framing   *models.CameraDirective
	controls  CameraControls
	scene     models.Scene
	listeners map[int]SceneListener
	nextID    int

	unsubscribe func()
}

// NewPreview builds the initial scene and subscribes to the store
// The initial scene carries no framing directive
func NewPreview(store *Store, doc *models.BoardCustomizer, textures TextureResolver) *Preview {
	p := &Preview{
		doc:       doc,
		textures:  textures,
		selection: store.Selection(),
		listeners: make(map[int]SceneListener),
	}
	p.scene = p.buildLocked()
	p.unsubscribe = store.Subscribe(p.onChange)
	return p
}

func (p *Preview) onChange(change Change) {
	p.mu.Lock()
	p.selection = change.Selection
	if d, ok := Framing(change.Category); ok {
		p.framing = &d
	}
	p.scene = p.buildLocked()
	scene := p.scene
	listeners := p.listenersLocked()
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(scene)
	}
}

// OnCameraStart registers the invisible floor collider on the first camera drag
// Returns true only for the call that performed the registration
func (p *Preview) OnCameraStart() bool {
	p.mu.Lock()
	if !p.controls.RegisterCollider(FloorColliderName) {
		p.mu.Unlock()
		return false
	}
	p.scene = p.buildLocked()
	scene := p.scene
	listeners := p.listenersLocked()
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(scene)
	}
	return true
}

// Scene returns the current scene description
func (p *Preview) Scene() models.Scene {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scene
}

// LastDirective returns the directive issued for the most recent change
func (p *Preview) LastDirective() (models.CameraDirective, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.framing == nil {
		return models.CameraDirective{}, false
	}
	return *p.framing, true
}

// OnUpdate registers a scene listener and returns a function that removes it
func (p *Preview) OnUpdate(fn SceneListener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Close detaches the preview from its store
func (p *Preview) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
}

func (p *Preview) buildLocked() models.Scene {
	var framing *models.CameraDirective
	if p.framing != nil {
		d := *p.framing
		framing = &d
	}
	return BuildScene(SceneInput{
		Doc:            p.doc,
		Selection:      p.selection,
		Textures:       p.textures,
		ColliderMeshes: p.controls.ColliderMeshes(),
		Framing:        framing,
	})
}

func (p *Preview) listenersLocked() []SceneListener {
	ids := make([]int, 0, len(p.listeners))
	for id := range p.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]SceneListener, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.listeners[id])
	}
	return out
}
