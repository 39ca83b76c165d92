package decal

import "slices"

// Object is anything the registry attaches to a host scene: projectors and
// their frustum helpers.
type Object interface {
	Node() *Node
}

// Scene is the host scene graph. The registry calls Add when it creates a
// projector (and its helper, when debug is on) and Remove when it destroys
// one. These are the only calls made back into the host.
type Scene interface {
	Add(obj Object)
	Remove(obj Object)
}

// Group is a minimal Scene that keeps attached objects in insertion order.
// It is useful for tests and tools that have no scene graph of their own.
type Group struct {
	objects []Object
}

// Add appends obj if it is not already attached.
func (g *Group) Add(obj Object) {
	if obj == nil || slices.Contains(g.objects, obj) {
		return
	}
	g.objects = append(g.objects, obj)
}

// Remove detaches obj. Unknown objects are ignored.
func (g *Group) Remove(obj Object) {
	if i := slices.Index(g.objects, obj); i >= 0 {
		g.objects = slices.Delete(g.objects, i, i+1)
	}
}

// Objects returns the attached objects.
func (g *Group) Objects() []Object {
	return slices.Clone(g.objects)
}

// Len returns the number of attached objects.
func (g *Group) Len() int { return len(g.objects) }
