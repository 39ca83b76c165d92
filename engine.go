package decal

import "fmt"

// ConflictPolicy decides which projector keeps a vertex that several
// projectors claim within one update.
type ConflictPolicy int

const (
	// LastClaimWins lets every projector overwrite earlier claims, so the
	// projector registered last keeps the vertex.
	LastClaimWins ConflictPolicy = iota

	// FirstClaimWins skips vertices that are already claimed, so the
	// projector registered first keeps the vertex.
	FirstClaimWins
)

// String returns the policy name.
func (p ConflictPolicy) String() string {
	switch p {
	case LastClaimWins:
		return "last-claim-wins"
	case FirstClaimWins:
		return "first-claim-wins"
	default:
		return fmt.Sprintf("ConflictPolicy(%d)", int(p))
	}
}

// PassStats counts what one projector did to one mesh. For face layouts
// the counts are per face.
type PassStats struct {
	Visited        int // elements examined
	Claimed        int // elements written and marked
	AlreadyClaimed int // skipped by FirstClaimWins
	Outside        int // failed the visibility test
	Degenerate     int // W == 0 or non-finite after the perspective divide
}

// Add accumulates o into s.
func (s *PassStats) Add(o PassStats) {
	s.Visited += o.Visited
	s.Claimed += o.Claimed
	s.AlreadyClaimed += o.AlreadyClaimed
	s.Outside += o.Outside
	s.Degenerate += o.Degenerate
}

// Project runs one projector pass over a mesh, dispatching on its layout.
// combined is the projector's view-projection multiplied by the mesh's
// world matrix.
//
// Project only reads its arguments: it can be called for many meshes and
// projectors concurrently as long as no two calls share a mesh.
func Project(mesh *Mesh, combined Matrix, m Mapping, policy ConflictPolicy) (PassStats, error) {
	if mesh == nil {
		return PassStats{}, ErrNilMesh
	}
	if mesh.Layout() == LayoutFace {
		return ProjectFaces(mesh.Positions, mesh.Faces, mesh.FaceUVs, mesh.Mask, combined, m, policy)
	}
	return ProjectVertices(mesh.Positions, mesh.UVs, mesh.Mask, combined, m, policy)
}

// ProjectVertices projects flat per-vertex buffers. For every vertex inside
// the frustum it writes the mapped UV pair and sets the mask entry to 1.
// Vertices outside keep their UV and mask values.
//
// The buffers are validated before anything is written.
func ProjectVertices(positions, uvs, mask []float32, combined Matrix, m Mapping, policy ConflictPolicy) (PassStats, error) {
	var stats PassStats
	if err := validateVertices(positions, uvs, mask); err != nil {
		return stats, err
	}

	n := len(positions) / 3
	for i := 0; i < n; i++ {
		stats.Visited++

		if policy == FirstClaimWins && mask[i] != 0 {
			stats.AlreadyClaimed++
			continue
		}

		p := Vec4{
			X: float64(positions[i*3]),
			Y: float64(positions[i*3+1]),
			Z: float64(positions[i*3+2]),
			W: 1,
		}
		ndc, ok := combined.Transform(p).Divide()
		if !ok {
			stats.Degenerate++
			continue
		}
		if !m.Inside(ndc) {
			stats.Outside++
			continue
		}

		uv := m.UV(ndc)
		uvs[i*2] = float32(uv.X)
		uvs[i*2+1] = float32(uv.Y)
		mask[i] = 1
		stats.Claimed++
	}
	return stats, nil
}

// ProjectFaces projects legacy per-face UVs. A face is claimed when any of
// its three corners is inside the frustum; all three corner UVs are then
// written, including corners outside. The visibility test uses no
// overscan. A face with a corner on the projector's eye plane is treated
// as degenerate and left untouched.
func ProjectFaces(positions []float32, faces []Face, faceUVs [][3]Vec2, faceMask []float32, combined Matrix, m Mapping, policy ConflictPolicy) (PassStats, error) {
	var stats PassStats
	if err := validateFaces(positions, faces, faceUVs, faceMask); err != nil {
		return stats, err
	}

	test := m
	test.Overscan = 1

	for i, f := range faces {
		stats.Visited++

		if policy == FirstClaimWins && faceMask[i] != 0 {
			stats.AlreadyClaimed++
			continue
		}

		var ndc [3]Vec3
		degenerate, inside := false, false
		for j, idx := range f {
			p := Vec4{
				X: float64(positions[idx*3]),
				Y: float64(positions[idx*3+1]),
				Z: float64(positions[idx*3+2]),
				W: 1,
			}
			v, ok := combined.Transform(p).Divide()
			if !ok {
				degenerate = true
				break
			}
			ndc[j] = v
			inside = inside || test.Inside(v)
		}

		switch {
		case degenerate:
			stats.Degenerate++
		case !inside:
			stats.Outside++
		default:
			for j := range ndc {
				faceUVs[i][j] = m.UV(ndc[j])
			}
			faceMask[i] = 1
			stats.Claimed++
		}
	}
	return stats, nil
}
