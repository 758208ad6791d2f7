package game

import (
	"encoding/json"
	"strings"
	"testing"

	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

func TestActionForRune(t *testing.T) {
	cases := map[rune]string{
		'w': "up",
		'S': "down",
		' ': "pause",
		'r': "reset",
		'p': "toggle:powerUps",
		'c': "toggle:darkMode",
		't': "toggle:classicMode",
		'g': "autopilot",
	}
	for r, want := range cases {
		if got, ok := ActionForRune(r); !ok || got != want {
			t.Errorf("ActionForRune(%q) = %q, %v; want %q", r, got, ok, want)
		}
	}
	if _, ok := ActionForRune('z'); ok {
		t.Error("z should be unbound")
	}
}

// Every bound action must be accepted by Dispatch's parser.
func TestKeymapActionsParse(t *testing.T) {
	for r, action := range runeActions {
		name, isToggle := strings.CutPrefix(action, "toggle:")
		if !isToggle {
			continue
		}
		if _, err := types.ParseSetting(name); err != nil {
			t.Errorf("key %q: %v", r, err)
		}
	}
}

func TestSnapshotJSONDecodes(t *testing.T) {
	g, _ := newTestGame(types.Settings{PowerUps: true}, &scriptedRoller{}, types.Point{X: 3, Y: 3})
	snap := g.Snapshot()
	snap.Foods = append(snap.Foods, entity.Food{Pos: types.Point{X: 1, Y: 2}, Kind: entity.Poison})
	snap.Events = []entity.SurpriseEvent{{Pos: types.Point{X: 4, Y: 4}, Kind: entity.Trap, Remaining: 3}}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if back.Foods[len(back.Foods)-1].Kind != entity.Poison || back.Events[0].Kind != entity.Trap {
		t.Errorf("kinds lost: %+v %+v", back.Foods, back.Events)
	}

	sig := Signal{Kind: SignalGameOver, Collision: manager.TrapCollision}
	data, _ = json.Marshal(sig)
	var sigBack Signal
	if err := json.Unmarshal(data, &sigBack); err != nil || sigBack != sig {
		t.Errorf("signal round trip = %+v, %v (%s)", sigBack, err, data)
	}
}
