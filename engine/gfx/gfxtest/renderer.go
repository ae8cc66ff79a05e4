// Package gfxtest provides a recording core.Renderer for tests that exercise widgets
// without a GPU.
package gfxtest

import (
	"fmt"
	"image"

	"github.com/hubastard/trellis/engine/core"
)

type handle uint32

func (h handle) ID() uint32 { return uint32(h) }

type Texture struct {
	handle
	Desc   core.TextureDesc
	Pixels []byte
}

func (t *Texture) Size() (int, int) { return t.Desc.Width, t.Desc.Height }

type Mesh struct {
	handle
	Vertices []float32
	Indices  []uint32
	Layout   core.VertexLayout
	Updates  int
}

// TextureWrite is one UpdateTexture call.
type TextureWrite struct {
	Texture core.Texture
	Region  image.Rectangle
}

// Renderer records every call. Event order across textures, meshes and draws is kept in Log.
type Renderer struct {
	Width, Height int
	Pipelines     []core.PipelineDesc
	Textures      []*Texture
	Meshes        []*Mesh
	Writes        []TextureWrite
	Draws         []core.DrawCmd
	Log           []string

	// FailUpdates makes UpdateMesh and UpdateTexture fail.
	FailUpdates bool

	next handle
}

func New() *Renderer { return &Renderer{} }

func (r *Renderer) id() handle {
	r.next++
	return r.next
}

func (r *Renderer) Init() error     { return nil }
func (r *Renderer) Resize(w, h int) { r.Width, r.Height = w, h }
func (r *Renderer) Clear(_, _, _, _ float32) {}
func (r *Renderer) Shutdown()                {}

func (r *Renderer) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	r.Pipelines = append(r.Pipelines, desc)
	return r.id(), nil
}

func (r *Renderer) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("gfxtest: bad texture size %dx%d", desc.Width, desc.Height)
	}
	pix := make([]byte, desc.Width*desc.Height*desc.Format.BytesPerPixel())
	copy(pix, desc.Pixels)
	t := &Texture{handle: r.id(), Desc: desc, Pixels: pix}
	r.Textures = append(r.Textures, t)
	r.Log = append(r.Log, fmt.Sprintf("texture %d create", t.ID()))
	return t, nil
}

func (r *Renderer) UpdateTexture(tex core.Texture, region image.Rectangle, pixels []byte) error {
	if r.FailUpdates {
		return fmt.Errorf("gfxtest: texture update refused")
	}
	t, ok := tex.(*Texture)
	if !ok {
		return fmt.Errorf("gfxtest: foreign texture %T", tex)
	}
	bpp := t.Desc.Format.BytesPerPixel()
	if !region.In(image.Rect(0, 0, t.Desc.Width, t.Desc.Height)) {
		return fmt.Errorf("gfxtest: region %v outside texture", region)
	}
	if len(pixels) != region.Dx()*region.Dy()*bpp {
		return fmt.Errorf("gfxtest: %d bytes for region %v", len(pixels), region)
	}
	row := region.Dx() * bpp
	for y := 0; y < region.Dy(); y++ {
		dst := ((region.Min.Y+y)*t.Desc.Width + region.Min.X) * bpp
		copy(t.Pixels[dst:dst+row], pixels[y*row:(y+1)*row])
	}
	r.Writes = append(r.Writes, TextureWrite{Texture: tex, Region: region})
	r.Log = append(r.Log, fmt.Sprintf("texture %d write %v", t.ID(), region))
	return nil
}

func (r *Renderer) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	m := &Mesh{
		handle:   r.id(),
		Vertices: append([]float32(nil), desc.Vertices...),
		Indices:  append([]uint32(nil), desc.Indices...),
		Layout:   desc.Layout,
	}
	r.Meshes = append(r.Meshes, m)
	return m, nil
}

func (r *Renderer) UpdateMesh(mesh core.Mesh, vertices []float32, indices []uint32) error {
	if r.FailUpdates {
		return fmt.Errorf("gfxtest: mesh update refused")
	}
	m, ok := mesh.(*Mesh)
	if !ok {
		return fmt.Errorf("gfxtest: foreign mesh %T", mesh)
	}
	m.Vertices = append(m.Vertices[:0], vertices...)
	m.Indices = append(m.Indices[:0], indices...)
	m.Updates++
	r.Log = append(r.Log, fmt.Sprintf("mesh %d update", m.ID()))
	return nil
}

func (r *Renderer) Draw(cmd core.DrawCmd) {
	r.Draws = append(r.Draws, cmd)
	r.Log = append(r.Log, fmt.Sprintf("draw mesh %d", cmd.Mesh.ID()))
}

// ResetLog forgets recorded writes, draws and log lines but keeps resources.
func (r *Renderer) ResetLog() {
	r.Writes = nil
	r.Draws = nil
	r.Log = nil
}
