package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveSaw
)

// oscillator generates a raw wave for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps up over attack and fades out over release
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linear gain vol onto beep's log2 volume.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Tone is one note of an effect: a wave that starts Delay after the effect
// is triggered.
type Tone struct {
	Freq     float64
	Delay    time.Duration
	Duration time.Duration
	Wave     WaveType
	Volume   float64
}

const toneAttack = 10 * time.Millisecond

// streamer renders the tone, including its leading silence.
func (t Tone) streamer(rate beep.SampleRate) beep.Streamer {
	release := t.Duration - toneAttack
	if release < 0 {
		release = 0
	}
	osc := NewOscillator(t.Freq, t.Duration, t.Wave, rate)
	shaped := newVolume(NewEnvelope(osc, t.Duration, toneAttack, release, rate), t.Volume)
	if t.Delay <= 0 {
		return shaped
	}
	return beep.Seq(beep.Silence(rate.N(t.Delay)), shaped)
}

// Render mixes a set of tones into one streamer.
func Render(tones []Tone, rate beep.SampleRate) beep.Streamer {
	streams := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		streams = append(streams, t.streamer(rate))
	}
	return beep.Mix(streams...)
}

// Length is when the last tone of the effect finishes.
func Length(tones []Tone) time.Duration {
	var end time.Duration
	for _, t := range tones {
		end = max(end, t.Delay+t.Duration)
	}
	return end
}

// loop replays a freshly built streamer every time the previous one ends.
type loop struct {
	build func() beep.Streamer
	cur   beep.Streamer
}

func newLoop(build func() beep.Streamer) *loop {
	return &loop{build: build, cur: build()}
}

func (l *loop) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		got, more := l.cur.Stream(samples[n:])
		n += got
		if !more {
			l.cur = l.build()
			if got == 0 && n == 0 {
				// guard against an empty melody
				break
			}
		}
	}
	return n, true
}

func (l *loop) Err() error { return nil }
