package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/fffe/kp16"
	"github.com/hexaflex/chip8/devices/fffe/sprdi"
	"github.com/hexaflex/chip8/vm"
)

// App defines application context for the OpenGL front end.
type App struct {
	config       *Config        // Application configuration.
	window       *glfw.Window   // OpenGL/GLFW context.
	ctrl         *vm.Controller // VM with program to be run.
	display      *sprdi.Device  // Display peripheral.
	keypad       *kp16.Device   // Keypad peripheral.
	devices      devices.Map    // All peripherals with managed resources.
	titleUpdated time.Time      // Value used to periodically update window title.
	lastRendered time.Time      // Last time a frame was rendered.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	return &App{config: config}
}

// Run runs the application and does not return until it is finished
// or an error occurred.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	a.display = sprdi.New()
	a.keypad = kp16.New(a.window)
	audio := newAudio(a.config)

	a.devices.Connect(a.display)
	a.devices.Connect(a.keypad)
	a.devices.Connect(audio)

	if err := a.devices.Startup(); err != nil {
		return err
	}

	a.ctrl = newController(a.config, a.display, a.keypad, audio)
	if a.config.Debug {
		a.ctrl.CPU().SetTrace(newTracer(os.Stdout))
	}

	printHelp()
	if err := loadProgram(a.ctrl, a.config.Program); err != nil {
		return err
	}

	a.ctrl.Start()

	for {
		glfw.PollEvents()
		a.keypad.Update()

		if !a.keypad.Active() {
			return nil
		}

		if err := a.mainLoop(); err != nil {
			return err
		}
	}
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() error {
	now := time.Now()

	if err := a.ctrl.Update(now); err != nil {
		if a.config.Debug {
			dumpState(a.ctrl)
		}
		return err
	}

	// Periodically render display contents.
	if now.Sub(a.lastRendered) >= time.Second/60 {
		a.lastRendered = now
		gl.Clear(gl.COLOR_BUFFER_BIT)
		a.display.Draw()
		a.window.SwapBuffers()
	} else {
		time.Sleep(time.Millisecond / 2)
	}

	// Periodically update the window title to show the current cpu clock frequency.
	if now.Sub(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = now
		a.window.SetTitle(a.title())
	}

	return nil
}

func (a *App) title() string {
	status := "paused"
	if a.ctrl.Running() {
		status = prettyFrequency(a.ctrl.Frequency())
	}
	return fmt.Sprintf("%s %s - %s - %s", AppName, AppVersion, filepath.Base(a.config.Program), status)
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	if a.ctrl != nil {
		a.ctrl.Stop()
	}

	if err := a.devices.Shutdown(); err != nil {
		log.Println(err)
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press || a.ctrl == nil {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF5:
		if err = loadProgram(a.ctrl, a.config.Program); err == nil {
			a.ctrl.Start()
		}
	}

	if err != nil {
		log.Println(err)
	}
}

func (a *App) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	gl.Viewport(fitViewport(width, height))
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := devices.DisplayWidth * a.config.ScaleFactor
	height := devices.DisplayHeight * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)
	a.window.SetFramebufferSizeCallback(a.framebufferSizeCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.window.Destroy()
		a.window = nil
		glfw.Terminate()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)
	gl.Viewport(fitViewport(a.window.GetFramebufferSize()))
	return nil
}

// fitViewport returns the largest area with the display's aspect ratio
// which fits in a framebuffer of the given size, centered.
func fitViewport(width, height int) (x, y, w, h int32) {
	w, h = int32(width), int32(height)

	if width*devices.DisplayHeight > height*devices.DisplayWidth {
		w = int32(height * devices.DisplayWidth / devices.DisplayHeight)
		x = (int32(width) - w) / 2
	} else {
		h = int32(width * devices.DisplayHeight / devices.DisplayWidth)
		y = (int32(height) - h) / 2
	}

	return x, y, w, h
}

// printHelp writes a short overview of supported shortcut keys.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("keypad:\n")
	for _, row := range devices.KeyboardRows {
		sb.WriteString("  " + strings.Join(strings.Split(row, ""), " ") + "\n")
	}
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the emulator.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the cpu.")
	log.Println(sb.String())
}
