// Package renderer draws viewer scenes with OpenGL and owns the GPU objects
// behind resource handles.
package renderer

import (
	"fmt"
	"image"
	"sort"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/birbbrains/arenaview/internal/engine/camera"
	"github.com/birbbrains/arenaview/internal/engine/geometry"
	"github.com/birbbrains/arenaview/internal/engine/resource"
	"github.com/birbbrains/arenaview/internal/engine/scene"
	"github.com/birbbrains/arenaview/internal/engine/shader"
	"github.com/birbbrains/arenaview/internal/logger"
)

type glGeometry struct {
	vao, vbo, ebo uint32
	count         int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	width, height int

	// Programs
	lambert *shader.Program
	sprite  *shader.Program

	// Shared unit quad for sprites
	quadVAO uint32
	quadVBO uint32

	// Objects behind handles
	next       uint32
	geometries map[uint32]glGeometry
	materials  map[uint32]resource.Material
	textures   map[uint32]uint32

	log *zap.Logger
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		geometries: make(map[uint32]glGeometry),
		materials:  make(map[uint32]resource.Material),
		textures:   make(map[uint32]uint32),
		log:        logger.Named("renderer"),
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var err error
	if r.lambert, err = shader.Load(shader.LambertVertex, shader.LambertFragment); err != nil {
		return nil, fmt.Errorf("lambert program: %w", err)
	}
	if r.sprite, err = shader.Load(shader.SpriteVertex, shader.SpriteFragment); err != nil {
		r.lambert.Delete()
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	r.createQuad()
	r.Resize(width, height)
	return r, nil
}

func (r *Renderer) createQuad() {
	corners := []float32{
		-0.5, -0.5,
		0.5, -0.5,
		0.5, 0.5,
		-0.5, -0.5,
		0.5, 0.5,
		-0.5, 0.5,
	}
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(corners)*4, unsafe.Pointer(&corners[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Close frees the programs and any object still alive.
func (r *Renderer) Close() {
	r.log.Info("closing renderer",
		zap.Int("geometries", len(r.geometries)),
		zap.Int("textures", len(r.textures)))
	for id := range r.geometries {
		r.Release(resource.Handle{Kind: resource.KindGeometry, ID: id})
	}
	for id := range r.textures {
		r.Release(resource.Handle{Kind: resource.KindTexture, ID: id})
	}
	clear(r.materials)
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	r.lambert.Delete()
	r.sprite.Delete()
}

// CreateGeometry uploads a mesh as interleaved position/normal data.
func (r *Renderer) CreateGeometry(m *geometry.Mesh) (resource.Handle, error) {
	if len(m.Positions) == 0 || len(m.Indices) == 0 {
		return resource.Handle{}, fmt.Errorf("empty mesh")
	}
	data := m.Interleaved()
	var g glGeometry
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	g.count = int32(len(m.Indices))

	h := r.handle(resource.KindGeometry)
	r.geometries[h.ID] = g
	return h, nil
}

// CreateMaterial registers a material. Materials are uniforms only, so
// nothing is allocated on the GPU.
func (r *Renderer) CreateMaterial(m resource.Material) (resource.Handle, error) {
	h := r.handle(resource.KindMaterial)
	r.materials[h.ID] = m
	return h, nil
}

// CreateTexture uploads an RGBA image with nearest filtering.
func (r *Renderer) CreateTexture(img *image.RGBA) (resource.Handle, error) {
	b := img.Bounds()
	if b.Empty() {
		return resource.Handle{}, fmt.Errorf("empty texture")
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	h := r.handle(resource.KindTexture)
	r.textures[h.ID] = tex
	return h, nil
}

func (r *Renderer) handle(k resource.Kind) resource.Handle {
	r.next++
	return resource.Handle{Kind: k, ID: r.next}
}

// Release frees the object behind a handle. Unknown handles are logged
// and ignored.
func (r *Renderer) Release(h resource.Handle) {
	switch h.Kind {
	case resource.KindGeometry:
		g, ok := r.geometries[h.ID]
		if !ok {
			break
		}
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		delete(r.geometries, h.ID)
		return
	case resource.KindMaterial:
		if _, ok := r.materials[h.ID]; !ok {
			break
		}
		delete(r.materials, h.ID)
		return
	case resource.KindTexture:
		tex, ok := r.textures[h.ID]
		if !ok {
			break
		}
		gl.DeleteTextures(1, &tex)
		delete(r.textures, h.ID)
		return
	}
	r.log.Warn("release of unknown handle", zap.Stringer("kind", h.Kind), zap.Uint32("id", h.ID))
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Clear fills the frame with a flat color. Used while no map is shown.
func (r *Renderer) Clear(background mgl32.Vec3) {
	gl.ClearColor(background[0], background[1], background[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	pixels = make([]byte, r.width*r.height*4)
	if len(pixels) == 0 {
		return nil, 0, 0
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, r.width, r.height
}

// Render draws a scene from the camera: opaque meshes, then translucent
// meshes back to front, then sprites.
func (r *Renderer) Render(s *scene.Scene, cam *camera.CornerCamera) {
	r.Clear(s.Background)

	viewProj := cam.ViewProjection()
	ambient, lightDir, lightColor := lighting(s)

	r.lambert.Use()
	r.lambert.SetMat4("uViewProj", viewProj)
	r.lambert.SetVec3("uAmbient", ambient)
	r.lambert.SetVec3("uLightDir", lightDir)
	r.lambert.SetVec3("uLightColor", lightColor)

	var translucent []*scene.Mesh
	for _, m := range s.Meshes() {
		if m.Transparent {
			translucent = append(translucent, m)
			continue
		}
		r.drawMesh(m)
	}

	if len(translucent) > 0 {
		eye := cam.Position()
		sort.Slice(translucent, func(i, j int) bool {
			return translucent[i].Position.Sub(eye).Len() > translucent[j].Position.Sub(eye).Len()
		})
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
		for _, m := range translucent {
			r.drawMesh(m)
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	r.drawSprites(s.Sprites(), cam, viewProj)
}

func (r *Renderer) drawMesh(m *scene.Mesh) {
	g, ok := r.geometries[m.Geometry.ID]
	if !ok {
		return
	}
	mat := r.materials[m.Material.ID]
	r.lambert.SetVec3("uOffset", m.Position)
	r.lambert.SetVec3("uColor", mat.Color)
	r.lambert.SetFloat("uOpacity", mat.Opacity)
	r.lambert.SetBool("uLit", mat.Lit)
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawSprites(sprites []*scene.Sprite, cam *camera.CornerCamera, viewProj mgl32.Mat4) {
	if len(sprites) == 0 {
		return
	}
	// Camera right and up are the first two rows of the view matrix.
	view := cam.ViewMatrix()
	right := mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}
	up := mgl32.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}

	gl.Enable(gl.BLEND)
	r.sprite.Use()
	r.sprite.SetMat4("uViewProj", viewProj)
	r.sprite.SetVec3("uRight", right)
	r.sprite.SetVec3("uUp", up)
	r.sprite.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.quadVAO)
	for _, sp := range sprites {
		tex, ok := r.textures[sp.Texture.ID]
		if !ok {
			continue
		}
		gl.BindTexture(gl.TEXTURE_2D, tex)
		r.sprite.SetVec3("uCenter", sp.Position)
		r.sprite.SetVec2("uScale", sp.Scale)
		r.sprite.SetBool("uFlipX", sp.FlipX)
		r.sprite.SetVec3("uTint", sp.Tint)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.BLEND)
}

// lighting folds the scene lights into one ambient term and one directional light.
func lighting(s *scene.Scene) (ambient, dir, color mgl32.Vec3) {
	dir = mgl32.Vec3{0, 1, 0}
	for _, l := range s.Lights {
		switch l.Kind {
		case scene.Ambient:
			ambient = ambient.Add(l.Color.Mul(l.Intensity))
		case scene.Directional:
			if l.Position.Len() > 0 {
				dir = l.Position.Normalize()
			}
			color = color.Add(l.Color.Mul(l.Intensity))
		}
	}
	return ambient, dir, color
}
