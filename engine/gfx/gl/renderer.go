package glbackend

import (
	"fmt"
	"image"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/trellis/engine/core"
)

type pipelineGL struct {
	program uint32
	blend   bool
	depth   bool
	samp    map[string]int32 // uniform locations, filled lazily
}

func (p *pipelineGL) ID() uint32 { return p.program }

type textureGL struct {
	name          uint32
	width, height int
	format        core.TextureFormat
}

func (t *textureGL) ID() uint32       { return t.name }
func (t *textureGL) Size() (int, int) { return t.width, t.height }

type meshGL struct {
	vao, vbo, ebo uint32
	vboBytes      int
	eboBytes      int
}

func (m *meshGL) ID() uint32 { return m.vao }

// RendererGL implements core.Renderer on OpenGL 3.3 core.
type RendererGL struct {
	win       core.Window
	pipelines []*pipelineGL
	textures  []*textureGL
	meshes    []*meshGL
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	// Glyph rows are tightly packed single bytes.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	return nil
}

func (r *RendererGL) Shutdown() {
	for _, m := range r.meshes {
		gl.DeleteBuffers(1, &m.vbo)
		if m.ebo != 0 {
			gl.DeleteBuffers(1, &m.ebo)
		}
		gl.DeleteVertexArrays(1, &m.vao)
	}
	for _, t := range r.textures {
		gl.DeleteTextures(1, &t.name)
	}
	for _, p := range r.pipelines {
		gl.DeleteProgram(p.program)
	}
	r.meshes, r.textures, r.pipelines = nil, nil, nil
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	p := &pipelineGL{program: prog, blend: desc.Blend, depth: desc.DepthTest, samp: map[string]int32{}}
	r.pipelines = append(r.pipelines, p)
	return p, nil
}

func glFormat(f core.TextureFormat) (internal int32, format uint32) {
	if f == core.TextureR8 {
		return gl.R8, gl.RED
	}
	return gl.RGBA8, gl.RGBA
}

func glFilter(s string) int32 {
	if s == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func glWrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("texture size %dx%d", desc.Width, desc.Height)
	}
	t := &textureGL{width: desc.Width, height: desc.Height, format: desc.Format}
	gl.GenTextures(1, &t.name)
	gl.BindTexture(gl.TEXTURE_2D, t.name)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(desc.WrapV))

	pix := desc.Pixels
	if pix == nil {
		pix = make([]byte, desc.Width*desc.Height*desc.Format.BytesPerPixel())
	}
	internal, format := glFormat(desc.Format)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.textures = append(r.textures, t)
	return t, nil
}

func (r *RendererGL) UpdateTexture(tex core.Texture, region image.Rectangle, pixels []byte) error {
	t, ok := tex.(*textureGL)
	if !ok {
		return fmt.Errorf("update texture: foreign handle %T", tex)
	}
	if region.Empty() {
		return nil
	}
	if len(pixels) < region.Dx()*region.Dy()*t.format.BytesPerPixel() {
		return fmt.Errorf("update texture: %d bytes for region %v", len(pixels), region)
	}
	_, format := glFormat(t.format)
	gl.BindTexture(gl.TEXTURE_2D, t.name)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0,
		int32(region.Min.X), int32(region.Min.Y), int32(region.Dx()), int32(region.Dy()),
		format, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	m := &meshGL{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	m.vboBytes = uploadBuffer(gl.ARRAY_BUFFER, 0, len(desc.Vertices)*4, ptrF32(desc.Vertices))

	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(uint32(a.Location))
		gl.VertexAttribPointerWithOffset(uint32(a.Location), int32(a.Size), gl.FLOAT, false, int32(desc.Layout.Stride), uintptr(a.Offset))
	}

	if desc.Indices != nil {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		m.eboBytes = uploadBuffer(gl.ELEMENT_ARRAY_BUFFER, 0, len(desc.Indices)*4, ptrU32(desc.Indices))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.meshes = append(r.meshes, m)
	return m, nil
}

func (r *RendererGL) UpdateMesh(mesh core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := mesh.(*meshGL)
	if !ok {
		return fmt.Errorf("update mesh: foreign handle %T", mesh)
	}
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	m.vboBytes = uploadBuffer(gl.ARRAY_BUFFER, m.vboBytes, len(vertices)*4, ptrF32(vertices))
	if m.ebo != 0 && indices != nil {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		m.eboBytes = uploadBuffer(gl.ELEMENT_ARRAY_BUFFER, m.eboBytes, len(indices)*4, ptrU32(indices))
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p, ok := cmd.Pipe.(*pipelineGL)
	if !ok || cmd.Count == 0 {
		return
	}
	m, ok := cmd.Mesh.(*meshGL)
	if !ok {
		return
	}

	gl.UseProgram(p.program)
	if p.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	if p.depth {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	unit := int32(0)
	for name, tex := range cmd.Samplers {
		t, ok := tex.(*textureGL)
		if !ok {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.name)
		gl.Uniform1i(p.uniform(name), unit)
		unit++
	}

	gl.BindVertexArray(m.vao)
	if cmd.Indexed {
		gl.DrawElements(gl.TRIANGLES, int32(cmd.Count), gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(cmd.Count))
	}
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (p *pipelineGL) uniform(name string) int32 {
	if loc, ok := p.samp[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.samp[name] = loc
	return loc
}

// uploadBuffer overwrites the bound buffer, reallocating when size outgrows have.
func uploadBuffer(target uint32, have, size int, data unsafe.Pointer) int {
	if size == 0 {
		return have
	}
	if size > have {
		gl.BufferData(target, size, data, gl.DYNAMIC_DRAW)
		return size
	}
	gl.BufferSubData(target, 0, size, data)
	return have
}

func ptrF32(s []float32) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return gl.Ptr(s)
}

func ptrU32(s []uint32) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return gl.Ptr(s)
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
