package decal

import "github.com/gogpu/gputypes"

// Shader locations of the buffers a decal material reads.
const (
	PositionLocation = 0
	UVLocation       = 1
	MaskLocation     = 2
)

// Strides of the flat vertex buffers in bytes.
const (
	positionStride = 12 // 3 x float32
	uvStride       = 8  // 2 x float32
	maskStride     = 4  // 1 x float32
)

// VertexLayouts describes the mesh buffers as three non-interleaved vertex
// buffers, in the order position, uv, mask. A renderer binds them at
// PositionLocation, UVLocation and MaskLocation and re-uploads the uv and
// mask buffers whenever NeedsUpload reports true.
//
// Only LayoutVertex meshes map onto vertex buffers; legacy face meshes
// return nil.
func (m *Mesh) VertexLayouts() []gputypes.VertexBufferLayout {
	if m.Layout() != LayoutVertex {
		return nil
	}
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: positionStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: PositionLocation},
			},
		},
		{
			ArrayStride: uvStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: UVLocation},
			},
		},
		{
			ArrayStride: maskStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32, Offset: 0, ShaderLocation: MaskLocation},
			},
		},
	}
}
