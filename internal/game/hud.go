package game

import (
	"fmt"
	"strings"
)

// RenderScene draws the intersection, vehicles, and signals as colored quads.
func RenderScene(r *Renderer, sim *Simulation) {
	cx := float64(ScreenWidth) / 2
	cy := float64(ScreenHeight) / 2

	// Streets.
	r.DrawRect(0, cy-StreetWidth/2, ScreenWidth, StreetWidth, Palette.Asphalt, 1)
	r.DrawRect(cx-StreetWidth/2, 0, StreetWidth, ScreenHeight, Palette.Asphalt, 1)

	// Dashed center lines, broken inside the intersection.
	for x := 10.0; x < ScreenWidth; x += 40 {
		if x > cx-IntersectionSize/2 && x < cx+IntersectionSize/2 {
			continue
		}
		r.DrawRect(x, cy-2, 20, 4, Palette.LaneMark, 1)
	}
	for y := 10.0; y < ScreenHeight; y += 40 {
		if y > cy-IntersectionSize/2 && y < cy+IntersectionSize/2 {
			continue
		}
		r.DrawRect(cx-2, y, 4, 20, Palette.LaneMark, 1)
	}

	// Stop lines, one per approach.
	half := float64(StreetWidth) / 2
	r.DrawRect(cx-StopLineDistance-4, cy-half, 4, StreetWidth, Palette.StopLine, 1) // eastbound
	r.DrawRect(cx+StopLineDistance, cy-half, 4, StreetWidth, Palette.StopLine, 1)   // westbound
	r.DrawRect(cx-half, cy-StopLineDistance-4, StreetWidth, 4, Palette.StopLine, 1) // southbound
	r.DrawRect(cx-half, cy+StopLineDistance, StreetWidth, 4, Palette.StopLine, 1)   // northbound

	// Vehicles. Long axis follows travel direction.
	for _, v := range sim.Vehicles {
		p := v.Class.Params()
		w, h := p.Length, p.Width
		if !v.Dir.Horizontal() {
			w, h = h, w
		}
		r.DrawRectCentered(v.X, v.Y, w, h, vehicleColor(v), 1)
		if p.Priority {
			// Light bar.
			bw, bh := w*0.4, h*0.3
			r.DrawRectCentered(v.X, v.Y, bw, bh, Palette.Override, 1)
		}
	}

	// Crash debris.
	for i := range sim.Particles.P {
		p := &sim.Particles.P[i]
		r.DrawRectCentered(p.X, p.Y, p.Size, p.Size, p.Col, p.Alpha())
	}

	// Signals.
	for _, s := range sim.Signals.Signals {
		drawSignal(r, s)
	}
}

func drawSignal(r *Renderer, s *TrafficSignal) {
	const boxW, boxH = 26, 66
	r.DrawRectCentered(s.X, s.Y, boxW, boxH, Palette.SignalBox, 1)

	lamp := func(idx int, on bool, col RGB) {
		c := Palette.LampOff
		if on {
			c = col
		}
		ly := s.Y - boxH/2 + 12 + float64(idx)*20
		r.DrawRectCentered(s.X, ly, 14, 14, c, 1)
	}
	lamp(0, s.Phase == PhaseRed, Palette.LampRed)
	lamp(1, s.Phase == PhaseYellow, Palette.LampYellow)
	lamp(2, s.Phase == PhaseGreen, Palette.LampGreen)

	if s.ManualOverride {
		r.DrawRectCentered(s.X, s.Y+boxH/2+8, 18, 5, Palette.Override, 1)
	}
}

// RenderHUD draws the text overlay for the current session state.
func RenderHUD(r *Renderer, sim *Simulation) {
	white := Palette.HUDText
	dim := Palette.HUDDim
	green := Palette.Good
	red := Palette.Bad
	yellow := Palette.Warn

	w := ScreenWidth
	h := ScreenHeight

	switch sim.State {
	case StateMenu:
		title := "GRIDLOCK"
		titleScale := float32(4.0)
		r.DrawString(title, w/2-TextWidth(title, titleScale)/2, h/2-120, titleScale, green)

		msg := "Press SPACE to Start"
		r.DrawString(msg, w/2-TextWidth(msg, 1.2)/2, h/2-20, 1.2, white)

		for i, hint := range []string{
			"Left click a signal to take control and cycle it",
			"Right click to hand it back to the timer",
			"Keep traffic moving. Dont let them crash.",
		} {
			r.DrawString(hint, w/2-TextWidth(hint, 0.8)/2, h/2+30+i*22, 0.8, dim)
		}

	case StatePlaying, StatePaused:
		s := float32(1.0)
		st := sim.Stats

		r.DrawString(fmt.Sprintf("Score: %d", st.Score), 8, 8, s, white)
		r.DrawString(fmt.Sprintf("Level: %d", st.Level), 8, 28, s, white)

		livesStr := "Lives: " + strings.Repeat("*", st.Lives)
		livesCol := green
		if st.Lives <= 2 {
			livesCol = red
		}
		r.DrawString(livesStr, 8, 48, s, livesCol)

		passedStr := fmt.Sprintf("Passed: %d", st.VehiclesPassed)
		r.DrawString(passedStr, w-TextWidth(passedStr, s)-8, 8, s, white)
		crashStr := fmt.Sprintf("Crashes: %d", st.Collisions)
		r.DrawString(crashStr, w-TextWidth(crashStr, s)-8, 28, s, dim)

		// Active power-up timers, bottom center.
		py := h - 30
		if st.PowerUpTime > 0 {
			msg := fmt.Sprintf("SLOW TIME %.1fs", st.PowerUpTime)
			r.DrawString(msg, w/2-TextWidth(msg, 0.9)/2, py, 0.9, yellow)
			py -= 22
		}
		if st.MultiplierTime > 0 {
			msg := fmt.Sprintf("SCORE X%.0f %.1fs", st.ScoreMul, st.MultiplierTime)
			r.DrawString(msg, w/2-TextWidth(msg, 0.9)/2, py, 0.9, green)
		}

		// Notifications stack under the top bar, fading over their last second.
		ny := 90
		for _, n := range sim.Pipeline.Notifications {
			remain := n.Duration - n.Age
			alpha := float32(1.0)
			if remain < 1.0 {
				alpha = float32(remain)
			}
			msg := n.Message
			r.DrawStringAlpha(msg, w/2-TextWidth(msg, 1.0)/2, ny, 1.0, severityColor(n.Severity), alpha)
			ny += 24
		}

		if sim.State == StatePaused {
			msg := "PAUSED"
			r.DrawString(msg, w/2-TextWidth(msg, 2.5)/2, h/2-40, 2.5, yellow)
			sub := "Press SPACE to resume"
			r.DrawString(sub, w/2-TextWidth(sub, 0.9)/2, h/2+10, 0.9, dim)
		}

	case StateGameOver:
		msg := "GAME OVER"
		r.DrawString(msg, w/2-TextWidth(msg, 3.0)/2, h/2-100, 3.0, red)

		st := sim.Stats
		lines := []string{
			fmt.Sprintf("Final score: %d", st.Score),
			fmt.Sprintf("Level reached: %d", st.Level),
			fmt.Sprintf("Vehicles passed: %d", st.VehiclesPassed),
			fmt.Sprintf("Collisions: %d", st.Collisions),
		}
		for i, line := range lines {
			r.DrawString(line, w/2-TextWidth(line, 1.0)/2, h/2-20+i*24, 1.0, white)
		}

		sub := "Press R to restart"
		r.DrawString(sub, w/2-TextWidth(sub, 1.0)/2, h/2+100, 1.0, green)
	}
}
