package decal

import "errors"

// Configuration errors, returned at construction time.
var (
	// ErrDegenerateRect is returned when a projector's output rectangle has
	// zero or negative width or height.
	ErrDegenerateRect = errors.New("decal: degenerate output rectangle")

	// ErrInvalidFrustum is returned for a field of view outside (0, 180),
	// a non-positive aspect ratio, or near/far planes with near <= 0 or far <= near.
	ErrInvalidFrustum = errors.New("decal: invalid frustum")

	// ErrInvalidOverscan is returned when the overscan bound is below 1.
	ErrInvalidOverscan = errors.New("decal: overscan must be >= 1")

	// ErrSingularTransform is returned when a projector's world transform
	// cannot be inverted into a view matrix.
	ErrSingularTransform = errors.New("decal: singular world transform")
)

// Usage errors, returned when a mesh does not carry the buffers a
// projection pass needs. Nothing is written when one of these is returned.
var (
	// ErrNilMesh is returned when a nil mesh is passed.
	ErrNilMesh = errors.New("decal: nil mesh")

	// ErrMissingPositions is returned when a mesh has no position buffer.
	ErrMissingPositions = errors.New("decal: mesh has no position buffer")

	// ErrMissingUVs is returned when a mesh has no UV buffer.
	ErrMissingUVs = errors.New("decal: mesh has no uv buffer")

	// ErrMissingMask is returned when a mesh has no claim mask buffer.
	ErrMissingMask = errors.New("decal: mesh has no claim mask buffer")

	// ErrBufferSize is returned when buffer lengths disagree with the vertex
	// or face count.
	ErrBufferSize = errors.New("decal: buffer size mismatch")

	// ErrFaceIndex is returned when a face references a vertex that does not exist.
	ErrFaceIndex = errors.New("decal: face index out of range")
)

// ErrClosed is returned by registry operations after Close.
var ErrClosed = errors.New("decal: registry closed")
