// Package scene keeps the meshes the viewer draws each frame and owns their
// GPU-side lifetime.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/trackribbon/internal/engine/mesh"
	"github.com/Faultbox/trackribbon/pkg/math"
)

// Handle identifies a mesh added to a scene. The zero Handle is never issued.
type Handle uint32

// Material prepares the pipeline state for drawing a mesh.
type Material interface {
	Use(view, projection math.Mat4)
}

// Resource is an uploaded mesh.
type Resource interface {
	Draw()
	Release()
}

// Backend uploads meshes to the GPU.
type Backend interface {
	Upload(m mesh.Mesh) (Resource, error)
}

type object struct {
	resource Resource
	material Material
	bounds   mesh.Bounds
	hidden   bool
}

// Scene is an ordered set of (mesh, material) pairs.
type Scene struct {
	backend Backend
	log     *zap.Logger

	next    Handle
	objects map[Handle]*object
	order   []Handle
}

// New creates an empty scene. A nil logger discards output.
func New(backend Backend, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		backend: backend,
		log:     log,
		objects: make(map[Handle]*object),
	}
}

// Add validates and uploads m, drawing it with mat from the next frame on.
func (s *Scene) Add(m mesh.Mesh, mat Material) (Handle, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	res, err := s.backend.Upload(m)
	if err != nil {
		return 0, err
	}

	s.next++
	h := s.next
	s.objects[h] = &object{resource: res, material: mat, bounds: m.Bounds()}
	s.order = append(s.order, h)

	s.log.Debug("mesh added",
		zap.Uint32("handle", uint32(h)),
		zap.Stringer("mode", m.Mode),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("primitives", m.PrimitiveCount()))
	return h, nil
}

// Item is a mesh and the material to draw it with.
type Item struct {
	Mesh     mesh.Mesh
	Material Material
}

// Replace swaps every mesh in the scene for items and returns their handles
// in order. All items are validated and uploaded before anything is
// released; on error the scene is left unchanged.
func (s *Scene) Replace(items []Item) ([]Handle, error) {
	for i, it := range items {
		if err := it.Mesh.Validate(); err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
	}

	staged := make([]*object, 0, len(items))
	for i, it := range items {
		res, err := s.backend.Upload(it.Mesh)
		if err != nil {
			for _, obj := range staged {
				obj.resource.Release()
			}
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		staged = append(staged, &object{resource: res, material: it.Material, bounds: it.Mesh.Bounds()})
	}

	s.Clear()
	handles := make([]Handle, len(staged))
	for i, obj := range staged {
		s.next++
		handles[i] = s.next
		s.objects[s.next] = obj
		s.order = append(s.order, s.next)
	}

	s.log.Debug("scene replaced", zap.Int("meshes", len(handles)))
	return handles, nil
}

// Remove releases the mesh behind h. Removing an unknown or already removed
// handle does nothing and returns false.
func (s *Scene) Remove(h Handle) bool {
	obj, ok := s.objects[h]
	if !ok {
		return false
	}
	obj.resource.Release()
	delete(s.objects, h)

	for i, oh := range s.order {
		if oh == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear releases every mesh.
func (s *Scene) Clear() {
	n := len(s.order)
	for _, h := range s.order {
		s.objects[h].resource.Release()
	}
	clear(s.objects)
	s.order = s.order[:0]
	if n > 0 {
		s.log.Debug("scene cleared", zap.Int("meshes", n))
	}
}

// Len returns the number of meshes in the scene.
func (s *Scene) Len() int {
	return len(s.order)
}

// Contains reports whether h is still in the scene.
func (s *Scene) Contains(h Handle) bool {
	_, ok := s.objects[h]
	return ok
}

// SetVisible shows or hides a mesh without releasing it.
func (s *Scene) SetVisible(h Handle, visible bool) {
	if obj, ok := s.objects[h]; ok {
		obj.hidden = !visible
	}
}

// Bounds returns the box around all visible meshes.
func (s *Scene) Bounds() (mesh.Bounds, bool) {
	var b mesh.Bounds
	found := false
	for _, h := range s.order {
		obj := s.objects[h]
		if obj.hidden {
			continue
		}
		if !found {
			b, found = obj.bounds, true
			continue
		}
		b = b.Union(obj.bounds)
	}
	return b, found
}

// Draw renders visible meshes in insertion order.
func (s *Scene) Draw(view, projection math.Mat4) {
	for _, h := range s.order {
		obj := s.objects[h]
		if obj.hidden {
			continue
		}
		obj.material.Use(view, projection)
		obj.resource.Draw()
	}
}
