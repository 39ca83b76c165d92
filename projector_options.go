package decal

// ProjectorOption configures a Projector during creation.
// Use functional options to customize the frustum and output rectangle.
//
// Example:
//
//	// Default 30° projector writing into the whole texture
//	p, err := decal.NewProjector()
//
//	// Narrow projector writing into the right half of a shared atlas
//	p, err := decal.NewProjector(decal.WithFOV(10), decal.WithLeft(0.5))
type ProjectorOption func(*projectorOptions)

// projectorOptions holds optional configuration for Projector creation.
type projectorOptions struct {
	name     string
	fov      float64
	aspect   float64
	near     float64
	far      float64
	left     float64
	right    float64
	top      float64
	bottom   float64
	flipX    bool
	debug    bool
	overscan float64
}

// Projector defaults.
const (
	DefaultFOV      = 30.0
	DefaultAspect   = 1.0
	DefaultNear     = 0.5
	DefaultFar      = 3.0
	DefaultOverscan = 1.2
)

// defaultProjectorOptions returns the default projector options.
func defaultProjectorOptions() projectorOptions {
	return projectorOptions{
		fov:      DefaultFOV,
		aspect:   DefaultAspect,
		near:     DefaultNear,
		far:      DefaultFar,
		left:     0,
		right:    1,
		top:      0,
		bottom:   1,
		overscan: DefaultOverscan,
	}
}

// WithName sets the projector name used in logs and for its node.
func WithName(name string) ProjectorOption {
	return func(o *projectorOptions) {
		o.name = name
	}
}

// WithFOV sets the vertical field of view in degrees.
func WithFOV(degrees float64) ProjectorOption {
	return func(o *projectorOptions) {
		o.fov = degrees
	}
}

// WithAspect sets the base aspect ratio (width / height), usually the
// aspect of the decal texture. It is scaled by the output rectangle's
// aspect at construction.
func WithAspect(aspect float64) ProjectorOption {
	return func(o *projectorOptions) {
		o.aspect = aspect
	}
}

// WithNear sets the near clipping distance.
func WithNear(near float64) ProjectorOption {
	return func(o *projectorOptions) {
		o.near = near
	}
}

// WithFar sets the far clipping distance.
func WithFar(far float64) ProjectorOption {
	return func(o *projectorOptions) {
		o.far = far
	}
}

// WithLeft sets the left edge of the output rectangle.
func WithLeft(left float64) ProjectorOption {
	return func(o *projectorOptions) {
		o.left = left
	}
}

// WithRight sets the right edge of the output rectangle.
func WithRight(right float64) ProjectorOption {
	return func(o *projectorOptions) {
		o.right = right
	}
}

// WithTop sets the top edge of the output rectangle (0 is the top of the texture).
func WithTop(top float64) ProjectorOption {
	return func(o *projectorOptions) {
		o.top = top
	}
}

// WithBottom sets the bottom edge of the output rectangle.
func WithBottom(bottom float64) ProjectorOption {
	return func(o *projectorOptions) {
		o.bottom = bottom
	}
}

// WithRect sets all four edges of the output rectangle.
func WithRect(r Rect) ProjectorOption {
	return func(o *projectorOptions) {
		o.left, o.right, o.top, o.bottom = r.Left, r.Right, r.Top, r.Bottom
	}
}

// WithFlipX mirrors the output horizontally (u' = 1 - u').
func WithFlipX(flip bool) ProjectorOption {
	return func(o *projectorOptions) {
		o.flipX = flip
	}
}

// WithDebug attaches a frustum helper that visualizes the projector.
func WithDebug(debug bool) ProjectorOption {
	return func(o *projectorOptions) {
		o.debug = debug
	}
}

// WithOverscan sets the NDC bound used for the x/y visibility test.
// Values slightly above 1 avoid hard seams at the frustum edges.
func WithOverscan(bound float64) ProjectorOption {
	return func(o *projectorOptions) {
		o.overscan = bound
	}
}
