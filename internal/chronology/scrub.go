package chronology

import (
	"math"
	"sync"
	"time"

	"github.com/tartampluch/go-agestack/internal/config"
)

// ScrubPlayer drives a continuous playback position over a chronologically
// sorted photo sequence. It is the one stateful component of the engine:
// every mutation (tick, start, stop, manual seek) runs under the same lock
// so a timer tick and a scrub gesture can never race on the index.
//
// OnIndexChange, when set, fires with the new index while the lock is held;
// keep the callback cheap. Rate limiting of downstream feedback (haptics,
// sounds) is the caller's concern.
type ScrubPlayer struct {
	mu sync.Mutex

	length   int
	position float64
	index    int
	speed    int
	playing  bool

	OnIndexChange func(index int)
}

// NewScrubPlayer creates a player over a sequence of the given length.
func NewScrubPlayer(length int) *ScrubPlayer {
	if length < 0 {
		length = 0
	}
	return &ScrubPlayer{length: length, speed: config.SpeedMin}
}

// Start transitions to Playing. Starting from the last index first rewinds
// to the beginning, so replay from the end is a single tap.
func (p *ScrubPlayer) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.length <= 1 {
		return
	}
	if p.index >= p.length-1 {
		p.position = 0
		p.setIndexLocked(0)
	}
	p.playing = true
}

// Stop transitions to Stopped and snaps the position back to the current
// index, dropping fractional progress. A manual scrub that follows always
// starts from what the user last saw.
func (p *ScrubPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playing = false
	p.position = float64(p.index)
}

// Tick advances playback by the elapsed wall-clock duration. It is a no-op
// while stopped. Reaching the end clamps to the last index and stops.
func (p *ScrubPlayer) Tick(elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing || p.length <= 1 {
		return
	}

	p.position += elapsed.Seconds() * float64(p.speed) / config.SecondsPerItem
	last := float64(p.length - 1)
	if p.position >= last {
		p.position = last
		p.playing = false
	}
	p.setIndexLocked(int(math.Floor(p.position)))
}

// Seek sets the position directly, clamped to the sequence bounds, and
// updates the index immediately. It does not change the playing state.
func (p *ScrubPlayer) Seek(position float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.length == 0 {
		return
	}
	last := float64(p.length - 1)
	if position < 0 {
		position = 0
	}
	if position > last {
		position = last
	}
	p.position = position
	p.setIndexLocked(int(math.Floor(position)))
}

// CycleSpeed advances the speed multiplier 1x -> 2x -> 3x and wraps back to
// 1x. It returns the new multiplier.
func (p *ScrubPlayer) CycleSpeed() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.speed++
	if p.speed > config.SpeedMax {
		p.speed = config.SpeedMin
	}
	return p.speed
}

// Index returns the current discrete photo index.
func (p *ScrubPlayer) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Position returns the continuous playback position.
func (p *ScrubPlayer) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// Speed returns the current speed multiplier.
func (p *ScrubPlayer) Speed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// Playing reports whether playback is running.
func (p *ScrubPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *ScrubPlayer) setIndexLocked(index int) {
	if index == p.index {
		return
	}
	p.index = index
	if p.OnIndexChange != nil {
		p.OnIndexChange(index)
	}
}
