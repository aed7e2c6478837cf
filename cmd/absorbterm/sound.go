package main

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// sounds plays short tones for game events. Audio is optional; every
// method is a no-op until init succeeds.
type sounds struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	ready bool
}

func newSounds() *sounds {
	return &sounds{mixer: &beep.Mixer{}}
}

func (s *sounds) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.ready = true
	return nil
}

func (s *sounds) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.ready = false
}

func (s *sounds) tone(freq float64, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(beep.Take(sampleRate.N(d), sine))
	speaker.Unlock()
}

func (s *sounds) ateFood()  { s.tone(880, 30*time.Millisecond) }
func (s *sounds) ateBot()   { s.tone(523, 120*time.Millisecond) }
func (s *sounds) defeated() { s.tone(110, 600*time.Millisecond) }
func (s *sounds) bought()   { s.tone(1320, 80*time.Millisecond) }
