package audio

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"snake-arcade/game"
	"snake-arcade/game/manager"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager turns game signals into sound effects and runs the
// background music. Without an audio device every call is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	rng         Roller
	logger      *log.Logger
	initialized bool
}

func NewSoundManager(logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		rng:    manager.NewRand(0),
		logger: logger,
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()
	sm.music = nil
	sm.initialized = false
}

// Play starts the effect for a signal.
func (sm *SoundManager) Play(kind game.SignalKind) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	tones := Recipe(kind, sm.rng)
	if len(tones) == 0 {
		return
	}
	speaker.Lock()
	sm.mixer.Add(Render(tones, sampleRate))
	speaker.Unlock()
}

// StartMusic loops the melody until StopMusic. Calling it while the music
// plays does nothing.
func (sm *SoundManager) StartMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if sm.music != nil {
		sm.music.Paused = false
		return
	}
	sm.music = &beep.Ctrl{Streamer: newLoop(func() beep.Streamer { return Render(Melody(), sampleRate) })}
	sm.mixer.Add(sm.music)
}

func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.music == nil {
		return
	}
	speaker.Lock()
	sm.music.Paused = true
	speaker.Unlock()
}

// Handle routes one signal. soundOn gates effects; music follows the music
// signal regardless.
func (sm *SoundManager) Handle(sig game.Signal, soundOn bool) {
	if sig.Kind == game.SignalMusic {
		sm.logger.Printf("music on=%v", sig.On)
		if sig.On {
			sm.StartMusic()
		} else {
			sm.StopMusic()
		}
		return
	}
	if soundOn {
		sm.Play(sig.Kind)
	}
}

// Consume handles signals until ctx ends or the channel closes.
func (sm *SoundManager) Consume(ctx context.Context, signals <-chan game.Signal, soundOn func() bool) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			sm.Handle(sig, soundOn())
		}
	}
}
