package game

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func RunDesktop() {
	runtime.LockOSThread()

	if os.Getenv("GRIDLOCK_DEBUG") != "" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	// Seed from environment or clock.
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("GRIDLOCK_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	sim := NewSimulation(seed)
	input := NewInput()

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		switch sim.State {
		case StateMenu:
			if input.JustPressed(window, glfw.KeySpace) {
				sim.Start()
			}

		case StatePlaying:
			if input.JustPressed(window, glfw.KeySpace) {
				sim.TogglePause()
			}
			if input.JustClicked(window, glfw.MouseButtonLeft) {
				mx, my := CursorWorldPos(window)
				sim.ClickAt(mx, my)
			}
			if input.JustClicked(window, glfw.MouseButtonRight) {
				mx, my := CursorWorldPos(window)
				sim.ReleaseAt(mx, my)
			}
			sim.Tick(dt)

		case StatePaused:
			if input.JustPressed(window, glfw.KeySpace) {
				sim.TogglePause()
			}

		case StateGameOver:
			if input.JustPressed(window, glfw.KeyR) {
				sim.Restart()
			}
		}

		rend.BeginFrame(fbW, fbH)
		if sim.State != StateMenu {
			RenderScene(rend, sim)
		}
		rend.FlushQuads()
		RenderHUD(rend, sim)
		rend.FlushText()

		window.SwapBuffers()
	}
}
