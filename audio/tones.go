package audio

import (
	"time"

	"snake-arcade/game"
)

const ms = time.Millisecond

// Roller supplies the jitter used by the sparkle and bubble effects.
type Roller interface {
	Float64() float64
}

// Recipe returns the tones for a signal, or nil when the signal is silent.
func Recipe(kind game.SignalKind, rng Roller) []Tone {
	switch kind {
	case game.SignalEat:
		return []Tone{
			{Freq: 440, Duration: 100 * ms, Wave: WaveSine, Volume: 0.1},
			{Freq: 550, Delay: 50 * ms, Duration: 100 * ms, Wave: WaveSine, Volume: 0.1},
		}
	case game.SignalButton:
		return []Tone{{Freq: 800, Duration: 80 * ms, Wave: WaveSquare, Volume: 0.08}}
	case game.SignalPause:
		return []Tone{{Freq: 600, Duration: 150 * ms, Wave: WaveTriangle, Volume: 0.1}}
	case game.SignalResume:
		return []Tone{
			{Freq: 600, Duration: 100 * ms, Wave: WaveTriangle, Volume: 0.1},
			{Freq: 800, Delay: 100 * ms, Duration: 100 * ms, Wave: WaveTriangle, Volume: 0.1},
		}
	case game.SignalSpeedBoost:
		return []Tone{
			{Freq: 523, Duration: 100 * ms, Wave: WaveSquare, Volume: 0.15},
			{Freq: 659, Delay: 50 * ms, Duration: 100 * ms, Wave: WaveSquare, Volume: 0.15},
			{Freq: 784, Delay: 100 * ms, Duration: 100 * ms, Wave: WaveSquare, Volume: 0.15},
			{Freq: 1047, Delay: 150 * ms, Duration: 200 * ms, Wave: WaveSquare, Volume: 0.15},
		}
	case game.SignalGameOver:
		return []Tone{
			{Freq: 440, Duration: 300 * ms, Wave: WaveSaw, Volume: 0.2},
			{Freq: 370, Delay: 150 * ms, Duration: 300 * ms, Wave: WaveSaw, Volume: 0.2},
			{Freq: 294, Delay: 300 * ms, Duration: 300 * ms, Wave: WaveSaw, Volume: 0.2},
			{Freq: 220, Delay: 450 * ms, Duration: 500 * ms, Wave: WaveSaw, Volume: 0.2},
		}
	case game.SignalBonus:
		tones := make([]Tone, 5)
		for i := range tones {
			tones[i] = Tone{
				Freq:     800 + rng.Float64()*400,
				Delay:    time.Duration(i) * 30 * ms,
				Duration: 100 * ms,
				Wave:     WaveSine,
				Volume:   0.1,
			}
		}
		return tones
	case game.SignalFreeze:
		return []Tone{
			{Freq: 1200, Duration: 150 * ms, Wave: WaveTriangle, Volume: 0.12},
			{Freq: 1000, Delay: 75 * ms, Duration: 150 * ms, Wave: WaveTriangle, Volume: 0.12},
			{Freq: 800, Delay: 150 * ms, Duration: 200 * ms, Wave: WaveTriangle, Volume: 0.12},
		}
	case game.SignalPoison:
		tones := make([]Tone, 3)
		for i := range tones {
			tones[i] = Tone{
				Freq:     150 + rng.Float64()*100,
				Delay:    time.Duration(i) * 100 * ms,
				Duration: 200 * ms,
				Wave:     WaveSaw,
				Volume:   0.08,
			}
		}
		return tones
	case game.SignalNewGame:
		return []Tone{
			{Freq: 523, Duration: 100 * ms, Wave: WaveSine, Volume: 0.1},
			{Freq: 659, Delay: 100 * ms, Duration: 100 * ms, Wave: WaveSine, Volume: 0.1},
			{Freq: 784, Delay: 200 * ms, Duration: 200 * ms, Wave: WaveSine, Volume: 0.1},
		}
	}
	return nil
}

// Melody is one pass of the background tune, played back to back.
func Melody() []Tone {
	notes := []struct {
		freq float64
		dur  time.Duration
	}{
		{523, 400 * ms}, // C5
		{587, 400 * ms}, // D5
		{659, 400 * ms}, // E5
		{523, 400 * ms},
		{659, 400 * ms},
		{523, 400 * ms},
		{587, 800 * ms},
	}
	tones := make([]Tone, 0, len(notes))
	var at time.Duration
	for _, n := range notes {
		tones = append(tones, Tone{Freq: n.freq, Delay: at, Duration: n.dur, Wave: WaveTriangle, Volume: 0.03})
		at += n.dur
	}
	return tones
}
