package decal

// NewPlane creates a flat grid mesh in the XZ plane at y=0, centered on
// the origin and spanning width along X and depth along Z. The grid has
// (segX+1)*(segZ+1) vertices, row by row from -Z to +Z, and a triangle
// index list. Segment counts below 1 are treated as 1.
//
// UVs are allocated and zeroed; the claim mask is left to AddMesh.
func NewPlane(name string, width, depth float64, segX, segZ int) *Mesh {
	positions, indices := planeGrid(width, depth, segX, segZ)
	m := NewMesh(name, positions, make([]float32, len(positions)/3*2))
	m.Indices = indices
	return m
}

// NewFacePlane creates the same grid as NewPlane with legacy per-face UVs.
func NewFacePlane(name string, width, depth float64, segX, segZ int) *Mesh {
	positions, indices := planeGrid(width, depth, segX, segZ)
	faces := make([]Face, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		faces = append(faces, Face{indices[i], indices[i+1], indices[i+2]})
	}

	m := NewMesh(name, positions, nil)
	m.Faces = faces
	m.FaceUVs = make([][3]Vec2, len(faces))
	return m
}

func planeGrid(width, depth float64, segX, segZ int) ([]float32, []uint32) {
	segX = max(segX, 1)
	segZ = max(segZ, 1)
	cols, rows := segX+1, segZ+1

	positions := make([]float32, 0, cols*rows*3)
	for iz := 0; iz < rows; iz++ {
		z := -depth/2 + depth*float64(iz)/float64(segZ)
		for ix := 0; ix < cols; ix++ {
			x := -width/2 + width*float64(ix)/float64(segX)
			positions = append(positions, float32(x), 0, float32(z))
		}
	}

	indices := make([]uint32, 0, segX*segZ*6)
	for iz := 0; iz < segZ; iz++ {
		for ix := 0; ix < segX; ix++ {
			// #nosec G115 -- grid sizes are small
			a := uint32(iz*cols + ix)
			b := a + 1
			c := a + uint32(cols) // #nosec G115
			d := c + 1
			indices = append(indices, a, c, b, b, c, d)
		}
	}
	return positions, indices
}
