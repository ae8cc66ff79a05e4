package gfx

import (
	"fmt"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
)

type Shape interface {
	Transformable
	Drawable

	// SetFillColor fills all vertices with color.
	SetFillColor(color colors.Color)

	// Point returns the position of point index, relative to the shape's position.
	Point(index int) geom.Vec2

	// PointCount returns the number of points of the shape.
	PointCount() int
}

// RectangleShape is a positioned, sized, single-color quad. Every mutation rewrites all
// four vertices and overwrites the vertex buffer.
type RectangleShape struct {
	ctx      *Context
	mesh     core.Mesh
	color    colors.Color
	vertices [4]Vertex
	position geom.Vec2
	size     geom.Vec2
	scratch  []float32
}

func NewRectangleShape(ctx *Context, size geom.Vec2) (*RectangleShape, error) {
	s := &RectangleShape{
		ctx:     ctx,
		color:   colors.White,
		size:    size,
		scratch: make([]float32, 0, 4*VertexStride),
	}
	for i := range s.vertices {
		s.vertices[i] = Vertex{Color: s.color.RGB(), TexCoords: untextured}
	}

	var err error
	ctx.With(func(d Device) {
		s.mesh, err = d.Renderer.CreateMesh(core.MeshDesc{
			Vertices: AppendVertices(nil, s.vertices[:]),
			Indices:  QuadIndices,
			Layout:   VertexLayout,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("rectangle mesh: %w", err)
	}
	s.sync()
	return s, nil
}

func (s *RectangleShape) Bounds() geom.Rect       { return geom.RectFrom(s.position, s.size) }
func (s *RectangleShape) Size() geom.Vec2         { return s.size }
func (s *RectangleShape) Position() geom.Vec2     { return s.position }
func (s *RectangleShape) FillColor() colors.Color { return s.color }
func (s *RectangleShape) Vertices() [4]Vertex     { return s.vertices }
func (s *RectangleShape) PointCount() int         { return 4 }

func (s *RectangleShape) SetSize(size geom.Vec2) {
	s.size = size
	s.sync()
}

func (s *RectangleShape) SetPosition(pos geom.Vec2) {
	s.position = pos
	s.sync()
}

func (s *RectangleShape) SetFillColor(color colors.Color) {
	s.color = color
	s.sync()
}

func (s *RectangleShape) Point(index int) geom.Vec2 {
	switch index {
	case 1:
		return geom.V2(0, s.size.Y)
	case 2:
		return s.size
	case 3:
		return geom.V2(s.size.X, 0)
	default:
		return geom.Vec2{}
	}
}

func (s *RectangleShape) Draw(p *Pass) {
	p.Draw(core.DrawCmd{
		Pipe:    s.ctx.ShapePipeline(),
		Mesh:    s.mesh,
		Count:   len(QuadIndices),
		Indexed: true,
	})
}

func (s *RectangleShape) sync() {
	s.ctx.With(func(d Device) {
		for i := range s.vertices {
			p := s.position.Add(s.Point(i))
			s.vertices[i].Position = geom.PixelsToClip(p, d.Width, d.Height).Array()
			s.vertices[i].Color = s.color.RGB()
		}
		s.scratch = AppendVertices(s.scratch[:0], s.vertices[:])
		if err := d.Renderer.UpdateMesh(s.mesh, s.scratch, QuadIndices); err != nil {
			core.Logger().Warn("rectangle: vertex upload failed", "err", err)
		}
	})
}
