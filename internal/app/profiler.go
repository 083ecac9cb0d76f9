package app

import "time"

// Profiler keeps the timings of the last frame and running averages.
type Profiler struct {
	Frame  time.Duration // whole iteration, pacing excluded
	Render time.Duration // clear + scene render + swap

	frames    int
	frameSum  time.Duration
	renderSum time.Duration
}

// Record stores one frame's timings.
func (p *Profiler) Record(frame, render time.Duration) {
	p.Frame = frame
	p.Render = render
	p.frames++
	p.frameSum += frame
	p.renderSum += render
}

// Frames returns the number of frames recorded since the last Reset.
func (p *Profiler) Frames() int { return p.frames }

// Average returns mean frame and render time since the last Reset.
func (p *Profiler) Average() (frame, render time.Duration) {
	if p.frames == 0 {
		return 0, 0
	}
	n := time.Duration(p.frames)
	return p.frameSum / n, p.renderSum / n
}

// Reset clears all timings.
func (p *Profiler) Reset() {
	*p = Profiler{}
}

// frameBudget is the minimum duration of one frame at targetFPS, or zero
// when pacing is disabled.
func frameBudget(targetFPS int) time.Duration {
	if targetFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(targetFPS)
}

// pacing returns how long to sleep after a frame that took elapsed.
func pacing(elapsed, budget time.Duration) time.Duration {
	if budget == 0 || elapsed >= budget {
		return 0
	}
	return budget - elapsed
}
