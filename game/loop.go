package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"snake-arcade/game/types"
)

var (
	// ErrLoopStopped is returned by commands posted after Run has exited.
	ErrLoopStopped = errors.New("game loop stopped")
	// ErrUnknownAction is returned by Dispatch for an unrecognised action.
	ErrUnknownAction = errors.New("unknown action")
)

// Pilot steers the snake when autopilot is on.
type Pilot interface {
	Choose(s Snapshot) types.Direction
	Observe(prev, next Snapshot)
}

// LoopConfig tunes the actor. Zero periods use the game defaults.
type LoopConfig struct {
	Pilot          Pilot
	Autopilot      bool
	Logger         *log.Logger
	DecayPeriod    time.Duration
	SurprisePeriod time.Duration
}

type command struct {
	fn    func(*Game)
	reply chan struct{}
}

// trigger is one of the three timers owned by the loop.
type trigger struct {
	timer *time.Timer
	armed bool
}

func newTrigger() *trigger {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return &trigger{timer: t}
}

func (t *trigger) arm(d time.Duration) {
	if t.armed {
		return
	}
	t.timer.Reset(d)
	t.armed = true
}

// stop cancels the timer and drains a fire that was not received yet.
func (t *trigger) stop() {
	if !t.timer.Stop() {
		select {
		case <-t.timer.C:
		default:
		}
	}
	t.armed = false
}

// Loop owns a Game and is the only goroutine that mutates it. Movement,
// effect decay, surprise events and collaborator commands are all handled
// in one select.
type Loop struct {
	game   *Game
	logger *log.Logger
	cmds   chan command
	done   chan struct{}
	once   sync.Once

	pilot     Pilot
	autopilot bool

	decayPeriod    time.Duration
	surprisePeriod time.Duration
	move           *trigger
	decay          *trigger
	surprise       *trigger

	current atomic.Pointer[Snapshot]

	subsMu  sync.Mutex
	subs    map[int]chan Signal
	nextSub int
	extra   SignalSink
}

func NewLoop(opts Options, cfg LoopConfig) *Loop {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	if cfg.DecayPeriod <= 0 {
		cfg.DecayPeriod = types.DecayPeriodMs * time.Millisecond
	}
	if cfg.SurprisePeriod <= 0 {
		cfg.SurprisePeriod = types.SurprisePeriodMs * time.Millisecond
	}

	l := &Loop{
		logger:         cfg.Logger,
		cmds:           make(chan command),
		done:           make(chan struct{}),
		pilot:          cfg.Pilot,
		autopilot:      cfg.Autopilot && cfg.Pilot != nil,
		decayPeriod:    cfg.DecayPeriod,
		surprisePeriod: cfg.SurprisePeriod,
		move:           newTrigger(),
		decay:          newTrigger(),
		surprise:       newTrigger(),
		subs:           make(map[int]chan Signal),
		extra:          opts.Sink,
	}
	opts.Sink = SinkFunc(l.broadcast)
	l.game = NewGame(opts)
	l.publish()
	return l
}

// Run starts a fresh run and processes triggers until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	defer l.stopAll()

	l.game.StartGame()
	l.sync()
	l.publish()
	l.logger.Printf("run %s started", l.game.RunID())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd := <-l.cmds:
			cmd.fn(l.game)
			l.sync()
			l.publish()
			close(cmd.reply)

		case <-l.move.timer.C:
			l.move.armed = false
			l.step()

		case <-l.decay.timer.C:
			l.decay.armed = false
			l.game.DecayEffects()
			l.sync()
			l.publish()

		case <-l.surprise.timer.C:
			l.surprise.armed = false
			l.game.EffectTick()
			l.sync()
			l.publish()
		}
	}
}

// step runs one movement tick, consulting the pilot first.
func (l *Loop) step() {
	prev := l.Snapshot()
	if l.autopilot {
		l.game.RequestDirection(l.pilot.Choose(prev).ToPoint())
	}

	if _, err := l.game.Tick(); err != nil {
		l.logger.Panicf("fatal tick in run %s: %v", l.game.RunID(), err)
	}
	l.sync()
	l.publish()

	next := l.Snapshot()
	if l.autopilot {
		l.pilot.Observe(prev, next)
	}
	if next.GameOver {
		l.logger.Printf("run %s over: score %d after %d ticks", next.RunID, next.Score, next.Ticks)
	}
}

// sync arms or cancels each trigger to match the run state. Pause keeps
// only the decay timer. Game over keeps none.
func (l *Loop) sync() {
	over, paused := l.game.GameOver(), l.game.Paused()

	if over || paused {
		l.move.stop()
		l.surprise.stop()
	} else {
		l.move.arm(l.game.Interval())
		l.surprise.arm(l.surprisePeriod)
	}
	if over {
		l.decay.stop()
	} else {
		l.decay.arm(l.decayPeriod)
	}
}

func (l *Loop) stopAll() {
	l.move.stop()
	l.decay.stop()
	l.surprise.stop()
}

func (l *Loop) publish() {
	s := l.game.Snapshot()
	s.Autopilot = l.autopilot
	l.current.Store(&s)
}

// broadcast runs on the loop goroutine. Slow subscribers miss signals.
func (l *Loop) broadcast(s Signal) {
	if l.extra != nil {
		l.extra.Emit(s)
	}
	l.subsMu.Lock()
	defer l.subsMu.Unlock()
	for _, ch := range l.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribe returns a buffered signal channel and a function that cancels
// the subscription.
func (l *Loop) Subscribe(buffer int) (<-chan Signal, func()) {
	ch := make(chan Signal, buffer)
	l.subsMu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch
	l.subsMu.Unlock()

	return ch, func() {
		l.subsMu.Lock()
		defer l.subsMu.Unlock()
		if _, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(ch)
		}
	}
}

// Snapshot returns the state published after the last mutation. Safe from
// any goroutine.
func (l *Loop) Snapshot() Snapshot {
	return *l.current.Load()
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// do posts fn to the loop and waits until it has run.
func (l *Loop) do(fn func(*Game)) error {
	cmd := command{fn: fn, reply: make(chan struct{})}
	select {
	case l.cmds <- cmd:
	case <-l.done:
		return ErrLoopStopped
	}
	select {
	case <-cmd.reply:
		return nil
	case <-l.done:
		return ErrLoopStopped
	}
}

// StartGame cancels all pending triggers before the new run is built.
func (l *Loop) StartGame() error {
	return l.do(func(g *Game) {
		l.stopAll()
		g.StartGame()
		l.logger.Printf("run %s started", g.RunID())
	})
}

func (l *Loop) ResetGame() error {
	return l.StartGame()
}

func (l *Loop) PauseGame() (paused bool, err error) {
	err = l.do(func(g *Game) { paused = g.PauseGame() })
	return paused, err
}

func (l *Loop) ToggleSetting(which types.Setting) (value bool, err error) {
	if doErr := l.do(func(g *Game) { value, err = g.ToggleSetting(which) }); doErr != nil {
		return false, doErr
	}
	return value, err
}

func (l *Loop) RequestDirection(dir types.Point) (accepted bool, err error) {
	err = l.do(func(g *Game) { accepted = g.RequestDirection(dir) })
	return accepted, err
}

// SetAutopilot hands steering to the pilot. Without a pilot it stays off.
func (l *Loop) SetAutopilot(on bool) error {
	return l.do(func(*Game) { l.autopilot = on && l.pilot != nil })
}

func (l *Loop) ToggleAutopilot() (on bool, err error) {
	err = l.do(func(*Game) {
		l.autopilot = !l.autopilot && l.pilot != nil
		on = l.autopilot
	})
	return on, err
}

// Dispatch runs a text action: a direction name, pause, start, reset,
// autopilot or toggle:<setting>.
func (l *Loop) Dispatch(action string) error {
	switch action {
	case "up", "down", "left", "right":
		d, err := types.ParseDirection(action)
		if err != nil {
			return err
		}
		_, err = l.RequestDirection(d.ToPoint())
		return err
	case "pause":
		_, err := l.PauseGame()
		return err
	case "start":
		return l.StartGame()
	case "reset":
		return l.ResetGame()
	case "autopilot":
		_, err := l.ToggleAutopilot()
		return err
	}

	if name, ok := strings.CutPrefix(action, "toggle:"); ok {
		which, err := types.ParseSetting(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownAction, err)
		}
		_, err = l.ToggleSetting(which)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}
