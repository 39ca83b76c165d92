package decal

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestMesh_Layout(t *testing.T) {
	tests := []struct {
		name string
		mesh *Mesh
		want Layout
	}{
		{"flat", NewPlane("flat", 1, 1, 1, 1), LayoutVertex},
		{"faces", NewFacePlane("faces", 1, 1, 1, 1), LayoutFace},
		{"empty", &Mesh{}, LayoutVertex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.Layout(); got != tt.want {
				t.Errorf("Layout() = %v, want %v", got, tt.want)
			}
		})
	}

	if LayoutVertex.String() != "vertex" || LayoutFace.String() != "face" || Layout(5).String() != "Layout(5)" {
		t.Error("unexpected Layout names")
	}
}

func TestNewPlane(t *testing.T) {
	m := NewPlane("ground", 2, 2, 2, 2)

	if m.VertexCount() != 9 {
		t.Fatalf("VertexCount() = %d, want 9", m.VertexCount())
	}
	if len(m.UVs) != 18 || len(m.Indices) != 24 {
		t.Errorf("len(UVs)=%d len(Indices)=%d, want 18 and 24", len(m.UVs), len(m.Indices))
	}
	if m.Mask != nil {
		t.Error("NewPlane allocated a mask")
	}
	if !m.Dirty() {
		t.Error("new mesh is not dirty")
	}

	vertex := func(i int) Vec3 {
		return V3(float64(m.Positions[i*3]), float64(m.Positions[i*3+1]), float64(m.Positions[i*3+2]))
	}
	checks := []struct {
		index int
		want  Vec3
	}{
		{0, V3(-1, 0, -1)},
		{2, V3(1, 0, -1)},
		{4, V3(0, 0, 0)},
		{5, V3(1, 0, 0)},
		{8, V3(1, 0, 1)},
	}
	for _, c := range checks {
		if got := vertex(c.index); !got.Approx(c.want, 1e-6) {
			t.Errorf("vertex %d = %v, want %v", c.index, got, c.want)
		}
	}

	for i, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("Indices[%d] = %d out of range", i, idx)
		}
	}
}

func TestNewPlane_ClampsSegments(t *testing.T) {
	m := NewPlane("tiny", 1, 1, 0, -3)
	if m.VertexCount() != 4 || len(m.Indices) != 6 {
		t.Errorf("got %d vertices and %d indices, want 4 and 6", m.VertexCount(), len(m.Indices))
	}
}

func TestNewFacePlane(t *testing.T) {
	m := NewFacePlane("legacy", 2, 2, 2, 2)

	if m.FaceCount() != 8 || len(m.FaceUVs) != 8 {
		t.Fatalf("FaceCount()=%d len(FaceUVs)=%d, want 8", m.FaceCount(), len(m.FaceUVs))
	}
	if m.UVs != nil {
		t.Error("face plane has a flat uv buffer")
	}
	if m.Faces[1] != (Face{1, 3, 4}) {
		t.Errorf("Faces[1] = %v, want [1 3 4]", m.Faces[1])
	}
}

func TestMesh_Reset(t *testing.T) {
	t.Run("vertex", func(t *testing.T) {
		m := NewPlane("ground", 1, 1, 1, 1)
		m.ensureMask()
		for i := range m.UVs {
			m.UVs[i] = 0.5
		}
		m.Mask[2] = 1

		m.reset()
		for i, v := range m.UVs {
			if v != 0 {
				t.Fatalf("UVs[%d] = %v after reset", i, v)
			}
		}
		if m.Mask[2] != 0 {
			t.Error("mask not cleared")
		}
		if !m.NeedsUpload() {
			t.Error("reset mesh does not need upload")
		}
	})

	t.Run("face", func(t *testing.T) {
		m := NewFacePlane("legacy", 1, 1, 1, 1)
		m.ensureMask()
		m.FaceUVs[1] = [3]Vec2{V2(1, 1), V2(1, 0), V2(0, 1)}
		m.Mask[1] = 1

		m.reset()
		if m.FaceUVs[1] != ([3]Vec2{}) || m.Mask[1] != 0 {
			t.Errorf("face not cleared: uvs=%v mask=%v", m.FaceUVs[1], m.Mask[1])
		}
	})
}

func TestMesh_DirtyFlags(t *testing.T) {
	m := &Mesh{Name: "manual"}
	if m.Dirty() {
		t.Fatal("zero mesh is dirty")
	}
	m.MarkDirty()
	if !m.Dirty() {
		t.Fatal("MarkDirty() had no effect")
	}

	m.dirty = false
	m.SetPositions(make([]float32, 3))
	if !m.Dirty() || m.VertexCount() != 1 {
		t.Error("SetPositions() did not mark the mesh dirty")
	}
}

func TestMesh_VertexLayouts(t *testing.T) {
	layouts := NewPlane("ground", 1, 1, 1, 1).VertexLayouts()
	if len(layouts) != 3 {
		t.Fatalf("len(VertexLayouts()) = %d, want 3", len(layouts))
	}

	tests := []struct {
		name     string
		stride   uint64
		format   gputypes.VertexFormat
		location uint32
	}{
		{"position", 12, gputypes.VertexFormatFloat32x3, PositionLocation},
		{"uv", 8, gputypes.VertexFormatFloat32x2, UVLocation},
		{"mask", 4, gputypes.VertexFormatFloat32, MaskLocation},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layouts[i]
			if l.ArrayStride != tt.stride || l.StepMode != gputypes.VertexStepModeVertex {
				t.Errorf("stride=%d step=%v, want %d per-vertex", l.ArrayStride, l.StepMode, tt.stride)
			}
			if len(l.Attributes) != 1 {
				t.Fatalf("len(Attributes) = %d, want 1", len(l.Attributes))
			}
			a := l.Attributes[0]
			if a.Format != tt.format || a.ShaderLocation != tt.location || a.Offset != 0 {
				t.Errorf("attribute = %+v", a)
			}
		})
	}

	if NewFacePlane("legacy", 1, 1, 1, 1).VertexLayouts() != nil {
		t.Error("face mesh returned vertex layouts")
	}
}
