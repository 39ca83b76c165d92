package decal

// FrustumHelper visualizes a projector's frustum. It is created for
// projectors built with WithDebug and attached to the host scene next to
// the projector. Its node is a child of the projector node, so it follows
// the projector without further bookkeeping.
type FrustumHelper struct {
	node      *Node
	projector *Projector
}

func newFrustumHelper(p *Projector) *FrustumHelper {
	h := &FrustumHelper{
		node:      NewNode(p.Name() + "/frustum"),
		projector: p,
	}
	h.node.SetParent(p.node)
	return h
}

// Node returns the helper's transform node.
func (h *FrustumHelper) Node() *Node { return h.node }

// Projector returns the projector the helper visualizes.
func (h *FrustumHelper) Projector() *Projector { return h.projector }

// frustumEdges indexes Corners: four near edges, four far edges and four
// edges joining them.
var frustumEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Corners returns the frustum corners in world space: the near plane
// (bottom-left, bottom-right, top-right, top-left) followed by the far
// plane in the same order.
func (h *FrustumHelper) Corners() ([8]Vec3, error) {
	var corners [8]Vec3

	vp, err := h.projector.ViewProjection()
	if err != nil {
		return corners, err
	}
	inv, ok := vp.Invert()
	if !ok {
		return corners, ErrSingularTransform
	}

	ndc := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for i, z := range [2]float64{-1, 1} {
		for j, c := range ndc {
			corners[i*4+j] = inv.TransformPoint(V3(c[0], c[1], z))
		}
	}
	return corners, nil
}

// Segments returns the frustum wireframe as world-space line segments,
// plus four lines from the projector's eye to the near corners.
func (h *FrustumHelper) Segments() ([][2]Vec3, error) {
	corners, err := h.Corners()
	if err != nil {
		return nil, err
	}

	eye := h.projector.node.WorldMatrix().Position()
	segs := make([][2]Vec3, 0, len(frustumEdges)+4)
	for _, e := range frustumEdges {
		segs = append(segs, [2]Vec3{corners[e[0]], corners[e[1]]})
	}
	for i := 0; i < 4; i++ {
		segs = append(segs, [2]Vec3{eye, corners[i]})
	}
	return segs, nil
}
