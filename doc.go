// Package decal projects decal images onto 3D meshes by computing texture
// coordinates from virtual projectors.
//
// # Overview
//
// A Projector works like a slide projector: it has a perspective frustum
// and paints whatever surface falls inside it. decal does not render
// anything. For every vertex of every mesh it decides whether the vertex
// is inside a projector's frustum and, if so, writes the texture
// coordinate the projector maps it to and marks the vertex as claimed.
// A renderer then samples the decal texture with those UVs wherever the
// claim mask is set.
//
// # Quick Start
//
//	import "github.com/gogpu/decal"
//
//	reg := decal.NewRegistry(nil)
//	defer reg.Close()
//
//	plane := decal.NewPlane("ground", 2, 2, 16, 16)
//	if err := reg.AddMesh(plane); err != nil {
//	    return err
//	}
//
//	p, err := reg.CreateProjector(decal.WithFOV(20))
//	if err != nil {
//	    return err
//	}
//	p.Node().SetPosition(0, 2, 0)
//	p.Node().LookAt(decal.V3(0, 0, 0))
//
//	stats, err := reg.Update(false)
//
// # Output rectangles
//
// Several projectors can share one texture atlas. Each writes into its own
// output rectangle (WithLeft, WithRight, WithTop, WithBottom), and its
// aspect ratio is scaled by the rectangle's aspect so the projected image
// is not stretched.
//
// # Dirty tracking
//
// The registry only re-projects meshes that are dirty: newly added meshes,
// meshes marked with Mesh.MarkDirty, and (with transform tracking) meshes
// whose world matrix changed. Projector movement is not tracked; call
// Update(true) or Registry.Invalidate after moving a projector.
//
// # Conflicts
//
// When projectors overlap, WithConflictPolicy selects whether the first
// or the last projector in registration order keeps a vertex.
//
// # Architecture
//
// The library is organized into:
//   - Math: Vec2, Vec3, Vec4, Matrix (column-major 4x4)
//   - Scene: Node, Transformer, Scene, Object
//   - Geometry: Mesh (vertex and legacy face layouts), NewPlane
//   - Projection: Projector, Mapping, Project, ProjectVertices, ProjectFaces
//   - Orchestration: Registry, Stats
//   - Debugging: FrustumHelper, RenderCoverage
package decal
