package state

import "time"

// Playback manages the route playback clock. Times are scenario minutes;
// at speed 1.0 one scenario minute plays per wall-clock second.
type Playback struct {
	CurrentTime float64
	MaxTime     float64
	Speed       float64
	Playing     bool
	lastUpdate  time.Time
}

// NewPlayback creates a paused playback clock spanning [0, maxTime].
func NewPlayback(maxTime float64) *Playback {
	return &Playback{
		MaxTime:    maxTime,
		Speed:      1.0,
		lastUpdate: time.Now(),
	}
}

// TogglePlay toggles playback, restarting from zero when already at the end.
func (p *Playback) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

// Pause stops the clock.
func (p *Playback) Pause() {
	p.Playing = false
}

// Reset rewinds to the start and pauses.
func (p *Playback) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves the clock by the wall time elapsed since the last frame.
func (p *Playback) Advance() {
	if !p.Playing {
		return
	}

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now

	p.CurrentTime += elapsed * p.Speed
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime jumps to a point on the timeline.
func (p *Playback) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// StepForward pauses and advances by 1% of the timeline.
func (p *Playback) StepForward() {
	p.Pause()
	p.SetTime(p.CurrentTime + p.step())
}

// StepBack pauses and rewinds by 1% of the timeline.
func (p *Playback) StepBack() {
	p.Pause()
	p.SetTime(p.CurrentTime - p.step())
}

func (p *Playback) step() float64 {
	step := p.MaxTime / 100
	if step < 0.1 {
		step = 0.1
	}
	return step
}

// SetSpeed sets the playback speed multiplier, clamped to [0.1, 10].
func (p *Playback) SetSpeed(speed float64) {
	if speed < 0.1 {
		speed = 0.1
	}
	if speed > 10 {
		speed = 10
	}
	p.Speed = speed
}

// Progress returns playback position as a 0-1 fraction.
func (p *Playback) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
