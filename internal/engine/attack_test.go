package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/ericogr/siegebot/internal/game"
	"pgregory.net/rapid"
)

func currentOpponent(t *testing.T, e *Engine, playerID string) game.Opponent {
	t.Helper()
	s, ok := e.Session(playerID)
	if !ok {
		t.Fatalf("no session for %s", playerID)
	}
	o, ok := s.Opponent()
	if !ok {
		t.Fatalf("session has no current opponent")
	}
	return *o
}

func TestAttackPreconditions(t *testing.T) {
	e := newTestEngine(0.5)
	p := newPlayer("Recruit")

	if _, err := e.Attack(p, "Sword", t0); !errors.Is(err, ErrNoActiveEncounter) {
		t.Fatalf("expected ErrNoActiveEncounter, got %v", err)
	}
	mustStart(t, e, p, game.KindRaid, t0)
	before := currentOpponent(t, e, p.PlayerID)

	cases := []struct {
		name   string
		weapon string
		inv    game.Inventory
		want   error
	}{
		{"empty inventory", "Sword", game.Inventory{}, ErrNoWeapon},
		{"no weapon named", "  ", p.Inventory, ErrChooseWeapon},
		{"not owned", "Axe", p.Inventory, ErrItemNotOwned},
		{"not a weapon", "potion", p.Inventory, ErrNotAWeapon},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := p.Clone()
			q.Inventory = tc.inv
			if _, err := e.Attack(q, tc.weapon, t0); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if after := currentOpponent(t, e, p.PlayerID); after != before {
		t.Fatalf("failed attacks changed the opponent: %+v -> %+v", before, after)
	}
	if _, seen := e.actions.Last(p.PlayerID); seen {
		t.Fatalf("failed attacks must not record an action time")
	}
}

func TestAttackCorruptIndexDropsSession(t *testing.T) {
	store := NewMemorySessionStore()
	e := New(testCatalog(), WithRand(&stubRand{roll: 0.5}), WithSessionStore(store))
	p := newPlayer("Recruit")
	store.Put(&Session{ID: "s1", PlayerID: p.PlayerID, Kind: game.KindSiege, Current: 3})

	if _, err := e.Attack(p, "Sword", t0); !errors.Is(err, ErrNoOpponents) {
		t.Fatalf("expected ErrNoOpponents, got %v", err)
	}
	if _, ok := store.Get(p.PlayerID); ok {
		t.Fatalf("corrupt session should be dropped")
	}
}

func TestAttackTimingWindow(t *testing.T) {
	cases := []struct {
		name     string
		delta    time.Duration
		outcome  Outcome
		oppLoses int
	}{
		{"too fast", time.Second, OutcomePenalized, 0},
		{"too slow", 20 * time.Second, OutcomePenalized, 0},
		{"in window", 5 * time.Second, OutcomeHit, 1},
		{"lower bound", 3 * time.Second, OutcomeHit, 1},
		{"upper bound", 15 * time.Second, OutcomeHit, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(0.5)
			p := newPlayer("Recruit")
			mustStart(t, e, p, game.KindRaid, t0)

			// First attack of a session skips the window.
			res, err := e.Attack(p, "Stick", t0)
			if err != nil || res.Outcome != OutcomeHit {
				t.Fatalf("first attack: %v %+v", err, res)
			}
			oppBefore := currentOpponent(t, e, p.PlayerID)
			healthBefore := p.Health

			res, err = e.Attack(p, "Stick", t0.Add(tc.delta))
			if err != nil {
				t.Fatalf("attack: %v", err)
			}
			if res.Outcome != tc.outcome {
				t.Fatalf("expected %s, got %s", tc.outcome, res.Outcome)
			}
			oppAfter := currentOpponent(t, e, p.PlayerID)
			if lost := oppBefore.HitPoints - oppAfter.HitPoints; lost != tc.oppLoses {
				t.Fatalf("opponent lost %d hp, want %d", lost, tc.oppLoses)
			}
			if healthBefore-p.Health != oppBefore.Damage {
				t.Fatalf("player should take %d, took %d", oppBefore.Damage, healthBefore-p.Health)
			}
			last, _ := e.actions.Last(p.PlayerID)
			if !last.Equal(t0.Add(tc.delta)) {
				t.Fatalf("action time not updated: %v", last)
			}
		})
	}
}

func TestPenaltyDeathSkipsDeductions(t *testing.T) {
	e := newTestEngine(0.5)
	p := newPlayer("Recruit")
	mustStart(t, e, p, game.KindRaid, t0)
	if _, err := e.Attack(p, "Stick", t0); err != nil {
		t.Fatalf("attack: %v", err)
	}
	p.Health = 3
	p.Experience = 40
	p.Coffers = 40

	res, err := e.Attack(p, "Stick", t0.Add(time.Second))
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if res.Outcome != OutcomePenaltyDeath {
		t.Fatalf("expected penalty death, got %s", res.Outcome)
	}
	if p.Health != 0 || p.Experience != 40 || p.Coffers != 40 {
		t.Fatalf("penalty death must not deduct: %+v", p)
	}
	if _, ok := e.Session(p.PlayerID); ok {
		t.Fatalf("session should be deleted")
	}
}

func TestCounterAttackDefeat(t *testing.T) {
	e := newTestEngine(0.5)
	p := newPlayer("Recruit")
	mustStart(t, e, p, game.KindRaid, t0)
	p.Health = 10
	p.Shield = 0
	p.Experience = 3
	p.Coffers = 50

	res, err := e.Attack(p, "Stick", t0)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if res.Outcome != OutcomeDefeat {
		t.Fatalf("expected defeat, got %s", res.Outcome)
	}
	if p.Experience != 0 || p.Coffers != 40 || p.Health != 0 {
		t.Fatalf("unexpected profile after defeat: xp=%d coffers=%d hp=%d", p.Experience, p.Coffers, p.Health)
	}
	if p.Raids != 0 {
		t.Fatalf("defeat must not count the raid")
	}
	if _, ok := e.Session(p.PlayerID); ok {
		t.Fatalf("session should be deleted")
	}
	if res.Lines[len(res.Lines)-2].Text != "The raid failed." {
		t.Fatalf("expected raid defeat narrative, got %+v", res.Lines)
	}
}

func TestShieldAbsorbsCounterAttack(t *testing.T) {
	e := newTestEngine(0.5)
	p := newPlayer("Recruit")
	mustStart(t, e, p, game.KindRaid, t0)
	p.Shield = 15

	if _, err := e.Attack(p, "Stick", t0); err != nil {
		t.Fatalf("attack: %v", err)
	}
	if p.Shield != 0 || p.Health != 95 {
		t.Fatalf("expected shield 0 and health 95, got %d/%d", p.Shield, p.Health)
	}
}

func TestSiegeVictoryEndToEnd(t *testing.T) {
	e := newTestEngine(0.5)
	p := newPlayer("Recruit")
	p.Experience = 0
	p.Coffers = 7
	mustStart(t, e, p, game.KindSiege, t0)
	s, _ := e.Session(p.PlayerID)
	roster := len(s.Opponents)
	if roster < 3 || roster > 5 {
		t.Fatalf("roster size %d", roster)
	}

	now := t0
	var res Result
	for i := 0; i < roster; i++ {
		var err error
		res, err = e.Attack(p, "sword", now)
		if err != nil {
			t.Fatalf("attack %d: %v", i, err)
		}
		now = now.Add(5 * time.Second)
		if i < roster-1 && res.Outcome != OutcomeAdvanced {
			t.Fatalf("attack %d: expected advance, got %s", i, res.Outcome)
		}
	}
	if res.Outcome != OutcomeVictory || res.Kind != game.KindSiege {
		t.Fatalf("expected siege victory, got %+v", res)
	}
	if p.Experience != 10 || p.Coffers != 22 || p.Sieges != 1 || p.Kills != roster {
		t.Fatalf("unexpected rewards: %+v", p)
	}
	if p.Rank != "Sergeant" {
		t.Fatalf("expected promotion to Sergeant, got %s", p.Rank)
	}
	if _, ok := e.Session(p.PlayerID); ok {
		t.Fatalf("session should be cleared")
	}
}

func TestAdvanceShowsNextStage(t *testing.T) {
	e := newTestEngine(0.5)
	p := newPlayer("Recruit")
	mustStart(t, e, p, game.KindSiege, t0)
	res, err := e.Attack(p, "Sword", t0)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if res.Outcome != OutcomeAdvanced {
		t.Fatalf("expected advance, got %s", res.Outcome)
	}
	found := false
	for _, l := range res.Lines {
		if l.Text == "The gate cracks." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected second stage text in %+v", res.Lines)
	}
}

func TestAbsorbProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		shield := rapid.IntRange(0, 100).Draw(t, "shield")
		hp := rapid.IntRange(-50, 200).Draw(t, "hp")
		dmg := rapid.IntRange(0, 300).Draw(t, "dmg")

		s, h := shield, hp
		absorbed, dealt := absorb(&s, &h, dmg)
		if s < 0 {
			t.Fatalf("shield went negative: %d", s)
		}
		if absorbed != minInt(dmg, shield) {
			t.Fatalf("absorbed %d, want %d", absorbed, minInt(dmg, shield))
		}
		if absorbed+dealt != dmg || hp-h != dealt || shield-s != absorbed {
			t.Fatalf("damage not conserved: absorbed=%d dealt=%d", absorbed, dealt)
		}
	})
}
