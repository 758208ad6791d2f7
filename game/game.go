package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

// Options configures a Game. Zero values pick the defaults.
type Options struct {
	Grid       types.Grid
	Settings   types.Settings
	PlayerName string
	Seed       uint64
	Rand       manager.Roller
	Positions  manager.PositionSource
	Sink       SignalSink
	Now        func() time.Time
}

// Game is the simulation engine. It is passive and not safe for concurrent
// use: Loop serializes every call onto a single goroutine.
type Game struct {
	grid       types.Grid
	settings   types.Settings
	playerName string
	now        func() time.Time
	sink       SignalSink

	spawner   *manager.SpawnManager
	collision *manager.CollisionManager
	effects   *manager.EffectClock
	input     *manager.InputController

	state *RunState
}

func NewGame(opts Options) *Game {
	if opts.Grid.Width <= 0 || opts.Grid.Height <= 0 {
		opts.Grid = types.DefaultGrid
	}
	if opts.Rand == nil {
		opts.Rand = manager.NewRand(opts.Seed)
	}
	if opts.Positions == nil {
		opts.Positions = manager.NewRandomPositionSource(opts.Grid, opts.Rand)
	}
	if opts.Sink == nil {
		opts.Sink = discardSink{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PlayerName == "" {
		opts.PlayerName = "Player"
	}

	spawner := manager.NewSpawnManager(opts.Positions, opts.Rand)
	g := &Game{
		grid:       opts.Grid,
		settings:   opts.Settings,
		playerName: opts.PlayerName,
		now:        opts.Now,
		sink:       opts.Sink,
		spawner:    spawner,
		collision:  manager.NewCollisionManager(opts.Grid),
		effects:    manager.NewEffectClock(spawner),
		input:      manager.NewInputController(),
	}
	g.state = g.newRun()
	return g
}

func (g *Game) newRun() *RunState {
	rs := newRunState(g.now())
	rs.Foods = []entity.Food{g.spawner.GenerateFood(g.settings)}
	rs.Obstacles = g.spawner.GenerateObstacles(g.settings)
	return rs
}

func (g *Game) emit(s Signal) {
	g.sink.Emit(s)
}

// StartGame discards the current run and begins a new one.
func (g *Game) StartGame() {
	g.input.Reset()
	g.state = g.newRun()
	g.emit(Signal{Kind: SignalNewGame})
}

// ResetGame is StartGame under another name.
func (g *Game) ResetGame() {
	g.StartGame()
}

// PauseGame toggles pause and returns the new paused state. A finished run
// cannot be paused.
func (g *Game) PauseGame() bool {
	if g.state.GameOver {
		return g.state.Paused
	}
	g.state.Paused = !g.state.Paused
	if g.state.Paused {
		g.emit(Signal{Kind: SignalPause})
	} else {
		g.emit(Signal{Kind: SignalResume})
	}
	return g.state.Paused
}

// ToggleSetting flips one setting and returns its new value. Obstacle and
// power-up changes apply from the next spawn onwards.
func (g *Game) ToggleSetting(which types.Setting) (bool, error) {
	value, ok := g.settings.Toggle(which)
	if !ok {
		return false, fmt.Errorf("toggle %v: unknown setting", which)
	}
	g.emit(Signal{Kind: SignalButton})
	if which == types.Music {
		g.emit(Signal{Kind: SignalMusic, On: value})
	}
	return value, nil
}

// RequestDirection buffers a turn for the next tick. It returns false when
// the request was ignored.
func (g *Game) RequestDirection(dir types.Point) bool {
	if g.state.GameOver || g.state.Paused {
		return false
	}
	return g.input.Request(g.state.Direction, dir)
}

// Tick advances the run by one movement step and returns the delay until
// the next one. Ticking a paused run is a no-op.
func (g *Game) Tick() (time.Duration, error) {
	rs := g.state
	if rs.GameOver {
		return 0, ErrGameOver
	}
	if rs.Paused {
		return rs.EffectiveInterval(), nil
	}

	dir := g.input.Take(rs.Direction)
	head := rs.Snake.GetHead().Add(dir)

	if hit := g.collision.Classify(head, rs.Snake.Body, rs.Obstacles, rs.Events); hit != manager.NoCollision {
		g.endRun(hit)
		return 0, nil
	}

	rs.Direction = dir
	rs.Ticks++
	rs.Snake.Move(head)

	if i := g.collision.FoodAt(head, rs.Foods); i >= 0 {
		g.consume(rs.Foods[i].Kind)
		rs.Foods = g.spawner.ReplaceFood(rs.Foods, i, g.settings)
		rs.Interval = max(types.MinInterval, rs.Interval-types.IntervalStep)
	} else {
		rs.Snake.RemoveTail()
	}

	if i := g.collision.BonusEventAt(head, rs.Events); i >= 0 {
		rs.Score += types.BonusEventScore
		rs.Events = append(rs.Events[:i], rs.Events[i+1:]...)
		g.emit(Signal{Kind: SignalBonus})
	}

	if err := rs.Check(g.grid); err != nil {
		return 0, fmt.Errorf("tick %d: %w", rs.Ticks, err)
	}
	return rs.EffectiveInterval(), nil
}

// consume applies a food rule. The head has already been pushed, so growth
// means keeping the tail.
func (g *Game) consume(kind entity.FoodKind) {
	rs := g.state
	switch kind {
	case entity.Normal:
		rs.Score += types.NormalScore
		g.emit(Signal{Kind: SignalEat})
	case entity.Bonus:
		rs.Score += types.BonusScore
		rs.Effects.SpeedBoost = types.SpeedBoostTicks
		g.emit(Signal{Kind: SignalSpeedBoost})
	case entity.Freeze:
		rs.Effects.Freeze = types.FreezeTicks
		g.emit(Signal{Kind: SignalFreeze})
	case entity.Poison:
		rs.Score = max(0, rs.Score-types.PoisonPenalty)
		// undo the push, then shrink by one more
		rs.Snake.RemoveTail()
		rs.Snake.RemoveTail()
		g.emit(Signal{Kind: SignalPoison})
	}
}

func (g *Game) endRun(hit manager.Collision) {
	rs := g.state
	rs.GameOver = true
	rs.Paused = false
	g.input.Reset()

	signal := Signal{Kind: SignalGameOver, Collision: hit}
	if rs.Score > 0 {
		signal.Record = &ScoreRecord{
			ID:        uuid.New(),
			RunID:     rs.ID,
			Name:      g.playerName,
			Score:     rs.Score,
			Timestamp: g.now(),
		}
	}
	g.emit(signal)
}

// DecayEffects runs on every decay tick, including while paused.
func (g *Game) DecayEffects() {
	if g.state.GameOver {
		return
	}
	g.effects.Decay(&g.state.Effects)
}

// EffectTick runs on every surprise tick while the run is live.
func (g *Game) EffectTick() {
	if g.state.GameOver || g.state.Paused {
		return
	}
	g.state.Events = g.effects.Advance(g.state.Events)
}

// Interval is the delay until the next movement tick.
func (g *Game) Interval() time.Duration { return g.state.EffectiveInterval() }

func (g *Game) Snake() []types.Point { return g.state.Snake.Clone() }

func (g *Game) Foods() []entity.Food { return append([]entity.Food(nil), g.state.Foods...) }

func (g *Game) Obstacles() []types.Point { return append([]types.Point(nil), g.state.Obstacles...) }

func (g *Game) Events() []entity.SurpriseEvent {
	return append([]entity.SurpriseEvent(nil), g.state.Events...)
}

func (g *Game) Score() int { return g.state.Score }

func (g *Game) GameOver() bool { return g.state.GameOver }

func (g *Game) Paused() bool { return g.state.Paused }

func (g *Game) Direction() types.Point { return g.state.Direction }

func (g *Game) Settings() types.Settings { return g.settings }

func (g *Game) Grid() types.Grid { return g.grid }

func (g *Game) RunID() string { return g.state.ID.String() }

// Snapshot copies the live run for readers outside the loop goroutine.
func (g *Game) Snapshot() Snapshot {
	return g.state.snapshot(g.settings, g.grid)
}
