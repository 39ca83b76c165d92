package decal

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

// RenderCoverage draws the claimed triangles of a mesh in UV space.
//
// The result shows which part of the decal atlas ends up on the mesh:
// every triangle whose corners are all claimed is filled with c at its UV
// position. V grows upwards as in texture sampling, so image row 0 is V=1.
// Triangles come from Indices (or consecutive vertex triples) for
// LayoutVertex meshes and from Faces for LayoutFace meshes.
func RenderCoverage(mesh *Mesh, width, height int, c color.Color) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := DrawCoverage(dst, mesh, c); err != nil {
		return nil, err
	}
	return dst, nil
}

// DrawCoverage draws the claimed triangles of a mesh over dst.
func DrawCoverage(dst draw.Image, mesh *Mesh, c color.Color) error {
	if mesh == nil {
		return ErrNilMesh
	}
	if err := mesh.validate(); err != nil {
		return err
	}

	b := dst.Bounds()
	if b.Empty() {
		return nil
	}
	w, h := float32(b.Dx()), float32(b.Dy())

	r := vector.NewRasterizer(b.Dx(), b.Dy())
	tri := func(a, b2, c2 Vec2) {
		r.MoveTo(float32(a.X)*w, (1-float32(a.Y))*h)
		r.LineTo(float32(b2.X)*w, (1-float32(b2.Y))*h)
		r.LineTo(float32(c2.X)*w, (1-float32(c2.Y))*h)
		r.ClosePath()
	}

	if mesh.Layout() == LayoutFace {
		for i, uvs := range mesh.FaceUVs {
			if mesh.Mask[i] != 0 {
				tri(uvs[0], uvs[1], uvs[2])
			}
		}
	} else {
		uv := func(i uint32) Vec2 {
			return Vec2{X: float64(mesh.UVs[i*2]), Y: float64(mesh.UVs[i*2+1])}
		}
		claimed := func(i uint32) bool { return mesh.Mask[i] != 0 }

		forEachTriangle(mesh, func(a, b2, c2 uint32) {
			if claimed(a) && claimed(b2) && claimed(c2) {
				tri(uv(a), uv(b2), uv(c2))
			}
		})
	}

	r.Draw(dst, b, image.NewUniform(c), image.Point{})
	return nil
}

// forEachTriangle calls fn for every in-range triangle of a flat mesh.
func forEachTriangle(mesh *Mesh, fn func(a, b, c uint32)) {
	// #nosec G115 -- vertex counts of in-memory buffers fit in uint32
	n := uint32(mesh.VertexCount())

	if mesh.Indices == nil {
		for i := uint32(0); i+2 < n; i += 3 {
			fn(i, i+1, i+2)
		}
		return
	}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		if a < n && b < n && c < n {
			fn(a, b, c)
		}
	}
}
