package game

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"snake-arcade/game/types"
)

func startLoop(t *testing.T, cfg LoopConfig) (*Loop, context.CancelFunc) {
	t.Helper()
	l := NewLoop(Options{
		Rand:      &scriptedRoller{},
		Positions: &scriptedPositions{points: []types.Point{{X: 0, Y: 19}}},
	}, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})
	return l, cancel
}

func waitFor(t *testing.T, ch <-chan Signal, kind SignalKind, timeout time.Duration) Signal {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case s := <-ch:
			if s.Kind == kind {
				return s
			}
		case <-deadline:
			t.Fatalf("no %v signal within %v", kind, timeout)
		}
	}
}

func TestLoopRunsUntilCollision(t *testing.T) {
	l, _ := startLoop(t, LoopConfig{})
	signals, cancelSub := l.Subscribe(64)
	defer cancelSub()

	accepted, err := l.RequestDirection(types.UP.ToPoint())
	if err != nil || !accepted {
		t.Fatalf("RequestDirection = %v, %v", accepted, err)
	}

	sig := waitFor(t, signals, SignalGameOver, 5*time.Second)
	if sig.Collision.String() != "wall" {
		t.Errorf("collision = %v", sig.Collision)
	}

	snap := l.Snapshot()
	if !snap.GameOver || snap.Head() != (types.Point{X: 10, Y: 0}) {
		t.Fatalf("snapshot = %+v", snap)
	}

	time.Sleep(400 * time.Millisecond)
	if l.Snapshot().Ticks != snap.Ticks {
		t.Error("movement continued after game over")
	}
}

func TestLoopStartAfterGameOver(t *testing.T) {
	l, _ := startLoop(t, LoopConfig{})
	signals, cancelSub := l.Subscribe(64)
	defer cancelSub()

	l.RequestDirection(types.UP.ToPoint())
	waitFor(t, signals, SignalGameOver, 5*time.Second)
	oldRun := l.Snapshot().RunID

	if err := l.StartGame(); err != nil {
		t.Fatal(err)
	}
	snap := l.Snapshot()
	if snap.GameOver || snap.RunID == oldRun || snap.Head() != types.StartPosition {
		t.Fatalf("new run not started: %+v", snap)
	}

	deadline := time.Now().Add(2 * time.Second)
	for l.Snapshot().Ticks == 0 {
		if time.Now().After(deadline) {
			t.Fatal("new run never ticked")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestLoopDispatch(t *testing.T) {
	l, _ := startLoop(t, LoopConfig{})

	if err := l.Dispatch("toggle:obstacles"); err != nil {
		t.Fatal(err)
	}
	if !l.Snapshot().Settings.Obstacles {
		t.Error("obstacles not toggled")
	}

	if err := l.Dispatch("pause"); err != nil {
		t.Fatal(err)
	}
	paused := l.Snapshot()
	if !paused.Paused {
		t.Fatal("not paused")
	}
	time.Sleep(350 * time.Millisecond)
	if l.Snapshot().Ticks != paused.Ticks {
		t.Error("snake moved while paused")
	}

	for _, bad := range []string{"jump", "toggle:turbo"} {
		if err := l.Dispatch(bad); !errors.Is(err, ErrUnknownAction) {
			t.Errorf("Dispatch(%q) = %v, want ErrUnknownAction", bad, err)
		}
	}
}

func TestLoopDecaysWhilePaused(t *testing.T) {
	l, _ := startLoop(t, LoopConfig{DecayPeriod: 5 * time.Millisecond})
	if err := l.do(func(g *Game) { g.state.Effects.Freeze = 10 }); err != nil {
		t.Fatal(err)
	}
	l.PauseGame()

	deadline := time.Now().Add(2 * time.Second)
	for l.Snapshot().Effects.Freeze > 0 {
		if time.Now().After(deadline) {
			t.Fatal("freeze counter did not decay while paused")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type countingPilot struct {
	chosen   atomic.Int32
	observed atomic.Int32
}

func (p *countingPilot) Choose(s Snapshot) types.Direction {
	p.chosen.Add(1)
	return types.DOWN
}

func (p *countingPilot) Observe(prev, next Snapshot) {
	p.observed.Add(1)
}

func TestLoopAutopilot(t *testing.T) {
	pilot := &countingPilot{}
	l, _ := startLoop(t, LoopConfig{Pilot: pilot})

	if l.Snapshot().Autopilot {
		t.Fatal("autopilot on without being asked")
	}
	if err := l.Dispatch("autopilot"); err != nil {
		t.Fatal(err)
	}
	if !l.Snapshot().Autopilot {
		t.Fatal("autopilot not enabled")
	}

	deadline := time.Now().Add(2 * time.Second)
	for pilot.observed.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("pilot never consulted")
		}
		time.Sleep(20 * time.Millisecond)
	}
	if l.Snapshot().Direction != types.DOWN.ToPoint() {
		t.Errorf("direction = %v, want down", l.Snapshot().Direction)
	}
}

func TestLoopStopped(t *testing.T) {
	l, cancel := startLoop(t, LoopConfig{})
	cancel()
	<-l.Done()

	if err := l.StartGame(); !errors.Is(err, ErrLoopStopped) {
		t.Fatalf("err = %v, want ErrLoopStopped", err)
	}
}
