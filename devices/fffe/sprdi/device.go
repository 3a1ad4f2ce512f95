// Package sprdi implements the OpenGL presenter for the monochrome display.
package sprdi

import (
	"sync"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

// Default colors as 0xRRGGBB.
const (
	DefaultForeground = 0xe8e8e8
	DefaultBackground = 0x101010
)

// Device defines all internal doodads for the display.
//
// The interpreter draws into a back buffer. Present publishes it as the
// front buffer, which Draw uploads and renders on the GL thread.
type Device struct {
	m           sync.Mutex
	back        devices.Bitmap
	front       devices.Bitmap
	colors      [2 * 4]float32 // Background and foreground RGBA.
	shader      uint32
	vao         uint32
	vbo         uint32
	screenTex   uint32
	colorsDirty bool
	frontDirty  bool
	initialized bool
}

var (
	_ devices.Device  = &Device{}
	_ devices.Display = &Device{}
)

// New creates a new device.
func New() *Device {
	var d Device
	d.SetColors(DefaultForeground, DefaultBackground)
	return &d
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.BuiltinID(devices.SerialDisplay)
}

// SetColors sets the foreground and background colors, given as 0xRRGGBB.
func (d *Device) SetColors(fg, bg int) {
	d.m.Lock()
	rgb2f(bg, d.colors[0:4])
	rgb2f(fg, d.colors[4:8])
	d.colorsDirty = true
	d.m.Unlock()
}

// Clear unsets all pixels in the back buffer.
func (d *Device) Clear() {
	d.back.Clear()
}

// SetPixel sets or unsets a pixel in the back buffer.
func (d *Device) SetPixel(x, y int, on bool) {
	d.back.SetPixel(x, y, on)
}

// Pixel returns the state of a pixel in the back buffer.
func (d *Device) Pixel(x, y int) bool {
	return d.back.Pixel(x, y)
}

// Present publishes the back buffer for the next Draw call.
func (d *Device) Present() {
	d.m.Lock()
	if d.front != d.back {
		d.front = d.back
		d.frontDirty = true
	}
	d.m.Unlock()
}

// Frame returns a copy of the most recently presented frame.
func (d *Device) Frame() devices.Bitmap {
	d.m.Lock()
	defer d.m.Unlock()
	return d.front
}

// Startup initializes device resources.
// This requires a current OpenGL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	d.screenTex = makeTexture()

	d.m.Lock()
	d.colorsDirty = true
	d.frontDirty = true
	d.initialized = true
	d.m.Unlock()
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.screenTex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Draw renders the most recently presented frame.
// It must be called from the thread owning the GL context.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)
	d.sync()

	gl.BindVertexArray(d.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.screenTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// sync uploads the front buffer and colors if they changed.
func (d *Device) sync() {
	d.m.Lock()
	defer d.m.Unlock()

	if d.colorsDirty {
		colors := gl.GetUniformLocation(d.shader, glStr("colors"))
		gl.Uniform4fv(colors, 2, &d.colors[0])
		d.colorsDirty = false
	}

	if d.frontDirty {
		uploadTexture(d.screenTex, gl.R8, devices.DisplayWidth, devices.DisplayHeight, gl.RED, gl.UNSIGNED_BYTE, d.front[:])
		d.frontDirty = false
	}
}

// rgb2f sets p to the RGBA representation of the 0xRRGGBB color in n.
func rgb2f(n int, p []float32) {
	p[0] = float32((n>>16)&0xff) / 255
	p[1] = float32((n>>8)&0xff) / 255
	p[2] = float32(n&0xff) / 255
	p[3] = 1
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
