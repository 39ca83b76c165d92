package decal

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/decal/internal/parallel"
)

// Registry tracks meshes and owns projectors, and drives the per-frame
// projection: reset dirty meshes, run every projector over them in
// registration order, clear their dirty flags.
//
// Meshes are registered by pointer and stay owned by the host. Projectors
// are created by the registry, attached to its scene and detached again by
// DestroyProjector or Close.
//
// Update is meant to be called from one goroutine per frame. The mesh and
// projector lists are snapshotted at the start of Update, so adding or
// removing entries while an update runs only affects the next one.
type Registry struct {
	mu         sync.Mutex
	scene      Scene
	meshes     []*Mesh
	projectors []*Projector

	policy          ConflictPolicy
	trackTransforms bool
	pool            *parallel.WorkerPool
	logger          *slog.Logger

	stats  Stats
	closed bool
}

// NewRegistry creates a registry. scene may be nil when projectors do not
// need to be attached to a host scene.
func NewRegistry(scene Scene, opts ...RegistryOption) *Registry {
	o := defaultRegistryOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		scene:           scene,
		policy:          o.policy,
		trackTransforms: o.trackTransforms,
		logger:          o.logger,
	}
	if o.workers > 1 {
		r.pool = parallel.NewWorkerPool(o.workers)
	}
	return r
}

// log returns the registry logger, falling back to the package logger.
func (r *Registry) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// ConflictPolicy returns the policy used for overlapping claims.
func (r *Registry) ConflictPolicy() ConflictPolicy { return r.policy }

// AddMesh starts tracking a mesh. Adding a tracked mesh again is a no-op.
//
// A zeroed claim mask is allocated when the mesh has none, and the mesh is
// marked dirty so the next update projects onto it.
func (r *Registry) AddMesh(mesh *Mesh) error {
	if mesh == nil {
		return ErrNilMesh
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if slices.Contains(r.meshes, mesh) {
		return nil
	}

	if mesh.Positions == nil {
		return fmt.Errorf("add mesh %q: %w", mesh.Name, ErrMissingPositions)
	}
	if len(mesh.Positions)%3 != 0 {
		return fmt.Errorf("add mesh %q: %w: %d position floats", mesh.Name, ErrBufferSize, len(mesh.Positions))
	}
	mesh.ensureMask()
	if len(mesh.Mask) != mesh.maskLen() {
		return fmt.Errorf("add mesh %q: %w: mask has %d entries, want %d",
			mesh.Name, ErrBufferSize, len(mesh.Mask), mesh.maskLen())
	}

	mesh.dirty = true
	r.meshes = append(r.meshes, mesh)
	return nil
}

// RemoveMesh stops tracking a mesh. Its buffers are left as they are.
// Removing an untracked mesh is a no-op.
func (r *Registry) RemoveMesh(mesh *Mesh) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := slices.Index(r.meshes, mesh); i >= 0 {
		r.meshes = slices.Delete(r.meshes, i, i+1)
	}
}

// Meshes returns the tracked meshes in registration order.
func (r *Registry) Meshes() []*Mesh {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.meshes)
}

// CreateProjector creates a projector, registers it after the existing
// ones and attaches it (and its frustum helper, if debug is on) to the
// scene. Position and orient it through its Node before the next update.
func (r *Registry) CreateProjector(opts ...ProjectorOption) (*Projector, error) {
	p, err := NewProjector(opts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	r.projectors = append(r.projectors, p)
	r.attach(p)

	r.log().Info("decal: projector created",
		"name", p.Name(),
		"fov", p.fov,
		"aspect", p.aspect,
		"debug", p.debug)
	return p, nil
}

// DestroyProjector unregisters a projector and detaches it from the scene.
// Destroying an untracked projector is a no-op.
func (r *Registry) DestroyProjector(p *Projector) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.Index(r.projectors, p)
	if i < 0 {
		return
	}
	r.projectors = slices.Delete(r.projectors, i, i+1)
	r.detach(p)

	r.log().Info("decal: projector destroyed", "name", p.Name())
}

// Projectors returns the projectors in registration order.
func (r *Registry) Projectors() []*Projector {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.projectors)
}

func (r *Registry) attach(p *Projector) {
	if r.scene == nil {
		return
	}
	r.scene.Add(p)
	if p.helper != nil {
		r.scene.Add(p.helper)
	}
}

func (r *Registry) detach(p *Projector) {
	if r.scene == nil {
		return
	}
	if p.helper != nil {
		r.scene.Remove(p.helper)
	}
	r.scene.Remove(p)
}

// Invalidate marks every tracked mesh dirty. Call it after moving or
// reconfiguring a projector: projector movement does not dirty meshes on
// its own. Invalidate may run concurrently with Update; meshes it marks
// while an update is in flight are re-projected by the next update.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.meshes {
		m.dirty = true
	}
}

// Stats returns the statistics of the last update.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// pass is one projector's contribution to an update.
type pass struct {
	projector      *Projector
	viewProjection Matrix
}

// meshResult collects what happened to one pending mesh.
type meshResult struct {
	stats  PassStats
	passes int
	err    error
}

// Update projects every projector onto every dirty mesh.
//
// For each tracked mesh that is dirty, or every mesh when force is true,
// the UV buffer and claim mask are zeroed; then each projector runs over
// the mesh in registration order with its view-projection composed with
// the mesh's world matrix. Meshes that are neither dirty nor forced keep
// their previous UVs and mask.
//
// Dirty flags are consumed under the registry lock when the pending set is
// chosen, so an Invalidate that races with a running update is kept for
// the next one.
//
// A mesh whose buffers are invalid is left untouched and stays dirty; its
// error is returned joined with any others after the remaining meshes have
// been processed. A projector whose transform cannot be inverted is
// skipped for this update.
func (r *Registry) Update(force bool) (Stats, error) {
	start := time.Now()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return Stats{}, ErrClosed
	}
	meshes := slices.Clone(r.meshes)
	projectors := slices.Clone(r.projectors)
	policy, track, pool := r.policy, r.trackTransforms, r.pool
	r.mu.Unlock()

	var errs []error

	passes := make([]pass, 0, len(projectors))
	for _, p := range projectors {
		vp, err := p.ViewProjection()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		passes = append(passes, pass{projector: p, viewProjection: vp})
	}

	// World transforms call back into host code; read them unlocked.
	worlds := make([]Matrix, len(meshes))
	for i, m := range meshes {
		worlds[i] = m.world()
	}

	stats := Stats{Meshes: len(meshes), Projectors: len(passes)}

	type pendingMesh struct {
		mesh  *Mesh
		world Matrix
	}
	pending := make([]pendingMesh, 0, len(meshes))

	r.mu.Lock()
	for i, m := range meshes {
		if track && m.projected && worlds[i] != m.lastWorld {
			m.dirty = true
		}
		if force || m.dirty {
			m.dirty = false
			pending = append(pending, pendingMesh{mesh: m, world: worlds[i]})
		} else {
			stats.Clean++
		}
	}
	r.mu.Unlock()

	results := make([]meshResult, len(pending))
	work := make([]func(), len(pending))
	for i, pm := range pending {
		work[i] = func() {
			results[i] = projectMesh(pm.mesh, pm.world, passes, policy)
		}
	}
	if pool != nil && len(work) > 1 {
		pool.ExecuteAll(work)
	} else {
		for _, fn := range work {
			fn()
		}
	}

	r.mu.Lock()
	for i, res := range results {
		m := pending[i].mesh
		if res.err != nil {
			m.dirty = true
			stats.Failed++
			errs = append(errs, fmt.Errorf("mesh %q: %w", m.Name, res.err))
			continue
		}
		stats.Reset++
		stats.Passes += res.passes
		stats.Totals.Add(res.stats)
		m.lastWorld = pending[i].world
		m.projected = true
	}
	stats.Duration = time.Since(start)
	r.stats = stats
	r.mu.Unlock()

	for i, res := range results {
		if res.err != nil {
			r.log().Warn("decal: mesh not projected", "mesh", pending[i].mesh.Name, "err", res.err)
		}
	}
	r.log().Debug("decal: update", "force", force, "stats", stats)
	return stats, errors.Join(errs...)
}

// projectMesh resets one mesh and runs every pass over it in order.
// Nothing is written when the mesh buffers are invalid.
func projectMesh(m *Mesh, world Matrix, passes []pass, policy ConflictPolicy) meshResult {
	var res meshResult
	if err := m.validate(); err != nil {
		res.err = err
		return res
	}

	m.reset()
	for _, ps := range passes {
		combined := ps.viewProjection.Multiply(world)
		st, err := Project(m, combined, ps.projector.mapping, policy)
		if err != nil {
			res.err = err
			return res
		}
		res.stats.Add(st)
		res.passes++
	}
	return res
}

// Close detaches every projector from the scene and stops the worker
// pool. Meshes are forgotten but not modified. Close is idempotent; other
// methods return ErrClosed afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true

	for _, p := range r.projectors {
		r.detach(p)
	}
	r.projectors = nil
	r.meshes = nil

	if r.pool != nil {
		r.pool.Close()
		r.pool = nil
	}
}
