package core

import "image"

// Renderer is the GPU resource provider. Widgets only see it through gfx.Context.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	// UpdateTexture writes pixels into region only; pixels are tightly packed rows.
	UpdateTexture(tex Texture, region image.Rectangle, pixels []byte) error
	CreateMesh(desc MeshDesc) (Mesh, error)
	// UpdateMesh overwrites the whole mesh, growing its buffers when needed.
	UpdateMesh(mesh Mesh, vertices []float32, indices []uint32) error
	Draw(cmd DrawCmd)
}

// Opaque GPU handles.
type (
	Pipeline interface{ ID() uint32 }
	Texture  interface {
		ID() uint32
		Size() (w, h int)
	}
	Mesh interface{ ID() uint32 }
)

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
	TextureR8
)

// BytesPerPixel reports the texel size of f.
func (f TextureFormat) BytesPerPixel() int {
	if f == TextureR8 {
		return 1
	}
	return 4
}

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte // may be nil: allocated zeroed
	MinFilter     string // "nearest" | "linear"
	MagFilter     string
	WrapU, WrapV  string // "clamp" | "repeat"
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int
	Type     AttribType
	Offset   int // bytes
}

type VertexLayout struct {
	Stride     int // bytes
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32 // nil for non-indexed meshes
	Layout   VertexLayout
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

// DrawCmd draws Count vertices (or indices when Indexed) of Mesh through Pipe.
type DrawCmd struct {
	Pipe     Pipeline
	Mesh     Mesh
	Count    int
	Indexed  bool
	Samplers map[string]Texture
}
