package decal

import (
	"fmt"
	"math"
)

// Rect is a sub-rectangle of UV output space with a top-left origin:
// Top=0 is the top edge of the texture and Bottom=1 the bottom edge.
type Rect struct {
	Left, Right, Top, Bottom float64
}

// UnitRect returns the whole output space.
func UnitRect() Rect {
	return Rect{Left: 0, Right: 1, Top: 0, Bottom: 1}
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Mapping holds the per-projector parameters the projection engine needs
// to turn normalized device coordinates into output UVs.
type Mapping struct {
	Rect     Rect
	FlipX    bool
	Overscan float64
}

// DefaultMapping writes into the whole output space with the default overscan.
func DefaultMapping() Mapping {
	return Mapping{Rect: UnitRect(), Overscan: DefaultOverscan}
}

// Inside reports whether a point in normalized device coordinates lies in
// the visible volume. X and Y are tested against the overscan bound; Z is
// tested against [-1, 1] exactly since it encodes the near and far planes.
// Points on a boundary are outside.
func (m Mapping) Inside(ndc Vec3) bool {
	b := m.Overscan
	return ndc.X > -b && ndc.X < b &&
		ndc.Y > -b && ndc.Y < b &&
		ndc.Z > -1 && ndc.Z < 1
}

// UV maps normalized device x/y to output UV space. NDC [-1, 1] becomes
// [0, 1] with V flipped for a top-left texture origin, then the result is
// placed into the output rectangle.
func (m Mapping) UV(ndc Vec3) Vec2 {
	u := ndc.X*0.5 + 0.5
	v := 1 - (ndc.Y*0.5 + 0.5)

	u = u*m.Rect.Width() + m.Rect.Left
	v = 1 - (v*m.Rect.Height() + m.Rect.Top)

	if m.FlipX {
		u = 1 - u
	}
	return Vec2{X: u, Y: v}
}

// Projector is a virtual slide projector: a perspective frustum with its
// own transform node and an output rectangle in UV space.
//
// The projector does not own meshes. Position and orient it through Node;
// the registry reads the node's world transform on every update.
type Projector struct {
	node    *Node
	fov     float64
	aspect  float64
	near    float64
	far     float64
	mapping Mapping
	debug   bool

	projection Matrix
	helper     *FrustumHelper
}

// NewProjector creates a projector. Invalid configuration fails here and
// is never clamped.
//
// The effective aspect ratio is the base aspect scaled by the output
// rectangle's width/height, so that a projector writing into half of an
// atlas keeps square texels.
func NewProjector(opts ...ProjectorOption) (*Projector, error) {
	o := defaultProjectorOptions()
	for _, opt := range opts {
		opt(&o)
	}

	rect := Rect{Left: o.left, Right: o.right, Top: o.top, Bottom: o.bottom}
	if !(rect.Width() > 0) || !(rect.Height() > 0) {
		return nil, fmt.Errorf("%w: width=%g height=%g", ErrDegenerateRect, rect.Width(), rect.Height())
	}
	if !(o.fov > 0 && o.fov < 180) {
		return nil, fmt.Errorf("%w: fov %g out of (0, 180)", ErrInvalidFrustum, o.fov)
	}
	if !(o.aspect > 0) || math.IsInf(o.aspect, 0) {
		return nil, fmt.Errorf("%w: aspect %g", ErrInvalidFrustum, o.aspect)
	}
	if !(o.near > 0) || !(o.far > o.near) || math.IsInf(o.far, 0) {
		return nil, fmt.Errorf("%w: near=%g far=%g", ErrInvalidFrustum, o.near, o.far)
	}
	if !(o.overscan >= 1) || math.IsInf(o.overscan, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidOverscan, o.overscan)
	}

	p := &Projector{
		node:   NewNode(o.name),
		fov:    o.fov,
		aspect: o.aspect * rect.Width() / rect.Height(),
		near:   o.near,
		far:    o.far,
		mapping: Mapping{
			Rect:     rect,
			FlipX:    o.flipX,
			Overscan: o.overscan,
		},
		debug: o.debug,
	}
	p.projection = Perspective(p.fov, p.aspect, p.near, p.far)

	if p.debug {
		p.helper = newFrustumHelper(p)
	}
	return p, nil
}

// Name returns the projector name.
func (p *Projector) Name() string { return p.node.Name() }

// Node returns the projector's transform node.
func (p *Projector) Node() *Node { return p.node }

// FOV returns the vertical field of view in degrees.
func (p *Projector) FOV() float64 { return p.fov }

// Aspect returns the effective aspect ratio.
func (p *Projector) Aspect() float64 { return p.aspect }

// Near returns the near clipping distance.
func (p *Projector) Near() float64 { return p.near }

// Far returns the far clipping distance.
func (p *Projector) Far() float64 { return p.far }

// Rect returns the output rectangle.
func (p *Projector) Rect() Rect { return p.mapping.Rect }

// Mapping returns the NDC to UV mapping used by the projection engine.
func (p *Projector) Mapping() Mapping { return p.mapping }

// Debug reports whether the projector was created with a frustum helper.
func (p *Projector) Debug() bool { return p.debug }

// Helper returns the frustum helper, or nil if debug is off.
func (p *Projector) Helper() *FrustumHelper { return p.helper }

// Projection returns the perspective projection matrix.
func (p *Projector) Projection() Matrix { return p.projection }

// DeriveViewProjection composes the projection with the inverse of the
// given world transform.
func (p *Projector) DeriveViewProjection(world Matrix) (Matrix, error) {
	view, ok := world.Invert()
	if !ok {
		return Matrix{}, fmt.Errorf("projector %q: %w", p.Name(), ErrSingularTransform)
	}
	return p.projection.Multiply(view), nil
}

// ViewProjection refreshes the node's world transform and derives the
// view-projection matrix from it.
func (p *Projector) ViewProjection() (Matrix, error) {
	return p.DeriveViewProjection(ensureWorld(p.node))
}
