package decal

import "fmt"

// Face is a triangle given as three vertex indices.
type Face [3]uint32

// Layout identifies how a mesh stores its texture coordinates.
type Layout int

const (
	// LayoutVertex stores one UV pair and one mask value per vertex in flat buffers.
	LayoutVertex Layout = iota

	// LayoutFace stores three UVs per triangle (legacy indexed geometry)
	// and one mask value per face.
	LayoutFace
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutVertex:
		return "vertex"
	case LayoutFace:
		return "face"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// Mesh is the geometry a projector paints onto.
//
// The buffers are owned by the host application. A registry keeps a
// pointer to the mesh and rewrites UVs and Mask in place during Update;
// it never copies or reallocates Positions. Hosts must not mutate the
// buffers while an update is running.
type Mesh struct {
	// Name identifies the mesh in logs.
	Name string

	// Positions holds xyz triples, one per vertex.
	Positions []float32

	// UVs holds uv pairs, one per vertex (LayoutVertex).
	UVs []float32

	// Mask holds the claim mask: 0 unclaimed, 1 claimed. One entry per
	// vertex for LayoutVertex, one per face for LayoutFace. AddMesh
	// allocates it when nil.
	Mask []float32

	// Indices optionally lists triangles over the flat buffers. It is only
	// used by the coverage preview; nil means consecutive vertex triples.
	Indices []uint32

	// Faces and FaceUVs describe legacy indexed geometry. A mesh whose
	// FaceUVs is non-nil uses LayoutFace.
	Faces   []Face
	FaceUVs [][3]Vec2

	// Transform supplies the mesh world matrix. Nil means identity.
	Transform Transformer

	dirty       bool
	needsUpload bool

	// world matrix used by the last successful projection
	lastWorld Matrix
	projected bool
}

// NewMesh creates a mesh over flat position and uv buffers.
// The mesh starts dirty.
func NewMesh(name string, positions, uvs []float32) *Mesh {
	return &Mesh{
		Name:      name,
		Positions: positions,
		UVs:       uvs,
		dirty:     true,
	}
}

// Layout reports whether the mesh uses flat or per-face UVs.
func (m *Mesh) Layout() Layout {
	if m.FaceUVs != nil {
		return LayoutFace
	}
	return LayoutVertex
}

// VertexCount returns the number of vertices in the position buffer.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// FaceCount returns the number of legacy faces.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// maskLen is the mask length the layout requires.
func (m *Mesh) maskLen() int {
	if m.Layout() == LayoutFace {
		return len(m.Faces)
	}
	return m.VertexCount()
}

// Dirty reports whether the projected UVs are stale.
func (m *Mesh) Dirty() bool { return m.dirty }

// MarkDirty flags the mesh for reset and re-projection on the next update.
// Call it after changing the geometry or the transform hierarchy above it.
func (m *Mesh) MarkDirty() { m.dirty = true }

// SetPositions replaces the position buffer and marks the mesh dirty.
func (m *Mesh) SetPositions(positions []float32) {
	m.Positions = positions
	m.dirty = true
}

// NeedsUpload reports whether an update rewrote the UV or mask buffers
// since the last MarkUploaded. Renderers re-upload the buffers when true.
func (m *Mesh) NeedsUpload() bool { return m.needsUpload }

// MarkUploaded acknowledges that the renderer consumed the buffers.
func (m *Mesh) MarkUploaded() { m.needsUpload = false }

// world returns the freshly computed world matrix.
func (m *Mesh) world() Matrix {
	return ensureWorld(m.Transform)
}

// ensureMask allocates a zeroed mask sized for the layout when absent.
func (m *Mesh) ensureMask() {
	if m.Mask == nil {
		m.Mask = make([]float32, m.maskLen())
	}
}

// reset zeroes the UVs and the claim mask.
func (m *Mesh) reset() {
	if m.Layout() == LayoutFace {
		for i := range m.FaceUVs {
			m.FaceUVs[i] = [3]Vec2{}
		}
	} else {
		clear(m.UVs)
	}
	clear(m.Mask)
	m.needsUpload = true
}

// validate checks that every buffer a projection pass reads or writes is
// present and consistently sized.
func (m *Mesh) validate() error {
	if m.Positions == nil {
		return ErrMissingPositions
	}
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d position floats is not a multiple of 3", ErrBufferSize, len(m.Positions))
	}

	if m.Layout() == LayoutFace {
		return validateFaces(m.Positions, m.Faces, m.FaceUVs, m.Mask)
	}
	return validateVertices(m.Positions, m.UVs, m.Mask)
}

func validateVertices(positions, uvs, mask []float32) error {
	if positions == nil {
		return ErrMissingPositions
	}
	if uvs == nil {
		return ErrMissingUVs
	}
	if mask == nil {
		return ErrMissingMask
	}
	n := len(positions) / 3
	if len(positions)%3 != 0 || len(uvs) != n*2 || len(mask) != n {
		return fmt.Errorf("%w: positions=%d uvs=%d mask=%d", ErrBufferSize, len(positions), len(uvs), len(mask))
	}
	return nil
}

func validateFaces(positions []float32, faces []Face, faceUVs [][3]Vec2, mask []float32) error {
	if positions == nil {
		return ErrMissingPositions
	}
	if faceUVs == nil {
		return ErrMissingUVs
	}
	if mask == nil {
		return ErrMissingMask
	}
	if len(faceUVs) != len(faces) || len(mask) != len(faces) {
		return fmt.Errorf("%w: faces=%d face uvs=%d mask=%d", ErrBufferSize, len(faces), len(faceUVs), len(mask))
	}
	// #nosec G115 -- vertex counts of in-memory buffers fit in uint32
	n := uint32(len(positions) / 3)
	for i, f := range faces {
		for _, idx := range f {
			if idx >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrFaceIndex, i, idx, n)
			}
		}
	}
	return nil
}
