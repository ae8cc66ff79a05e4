package gfx

import "github.com/hubastard/trellis/engine/core"

// Vertex: clip-space position, rgb color, uv. Untextured geometry uses uv (-1,-1).
type Vertex struct {
	Position  [2]float32
	Color     [3]float32
	TexCoords [2]float32
}

// VertexStride is the number of float32s per vertex.
const VertexStride = 7

var VertexLayout = core.VertexLayout{
	Stride: VertexStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 3, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 5 * 4}, // uv
	},
}

// QuadIndices draws a 4-vertex quad as two CCW triangles.
var QuadIndices = []uint32{0, 1, 3, 1, 2, 3}

var untextured = [2]float32{-1, -1}

// AppendVertices flattens vs onto dst in VertexLayout order.
func AppendVertices(dst []float32, vs []Vertex) []float32 {
	for _, v := range vs {
		dst = append(dst,
			v.Position[0], v.Position[1],
			v.Color[0], v.Color[1], v.Color[2],
			v.TexCoords[0], v.TexCoords[1],
		)
	}
	return dst
}
