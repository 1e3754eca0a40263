package engine

import (
	"testing"
	"time"

	"github.com/ericogr/siegebot/internal/game"
)

func TestAmbushForcedForEliteTier(t *testing.T) {
	e := newTestEngine(0.5)
	p := newPlayer("General")
	p.Experience = 500
	start := mustStart(t, e, p, game.KindRaid, t0)

	res, err := e.Attack(p, "Sword", t0)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if res.Outcome != OutcomeAmbushed || res.Kind != game.KindAmbush {
		t.Fatalf("expected ambush, got %+v", res)
	}
	s, ok := e.Session(p.PlayerID)
	if !ok || s.Kind != game.KindAmbush || len(s.Opponents) != 1 {
		t.Fatalf("expected one-opponent ambush session, got %+v", s)
	}
	if s.ID != start.SessionID {
		t.Fatalf("ambush should keep the session id")
	}
	if !s.Opponents[0].Tier.Elite() {
		t.Fatalf("ambusher should be elite, got %s", s.Opponents[0].Tier)
	}
	if s.Suspended == nil || s.Suspended.Kind != game.KindRaid || s.Suspended.Current != len(s.Suspended.Opponents) {
		t.Fatalf("expected cleared raid suspended, got %+v", s.Suspended)
	}
	if p.Raids != 0 || p.Experience != 500 {
		t.Fatalf("rewards must wait for the ambush: %+v", p)
	}

	res, err = e.Attack(p, "Sword", t0.Add(5*time.Second))
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if res.Outcome != OutcomeVictory || res.Kind != game.KindRaid {
		t.Fatalf("expected raid victory, got %+v", res)
	}
	if p.Raids != 1 || p.Sieges != 0 || p.Experience != 510 || p.Coffers != 15 || p.Kills != 2 {
		t.Fatalf("unexpected settlement: %+v", p)
	}
	if _, ok := e.Session(p.PlayerID); ok {
		t.Fatalf("session should be cleared")
	}
}

func TestAmbushNeverForLowTierWithLowRoll(t *testing.T) {
	e := newTestEngine(0.5)
	p := newPlayer("Recruit")
	mustStart(t, e, p, game.KindAssassination, t0)
	res, err := e.Attack(p, "Sword", t0)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if res.Outcome != OutcomeVictory || p.Assassinations != 1 {
		t.Fatalf("expected plain victory, got %+v", res)
	}
}

func TestAmbushBaseChanceCanFire(t *testing.T) {
	e := newTestEngine(0.0001)
	p := newPlayer("Recruit")
	mustStart(t, e, p, game.KindAssassination, t0)
	res, err := e.Attack(p, "Sword", t0)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if res.Outcome != OutcomeAmbushed {
		t.Fatalf("roll below base chance should ambush, got %s", res.Outcome)
	}
}

func TestAmbushDefeatForfeitsEncounter(t *testing.T) {
	e := newTestEngine(0.5)
	p := newPlayer("General")
	p.Experience = 502
	p.Coffers = 4
	mustStart(t, e, p, game.KindRaid, t0)
	if _, err := e.Attack(p, "Sword", t0); err != nil {
		t.Fatalf("attack: %v", err)
	}
	p.Health = 5
	p.Shield = 0

	res, err := e.Attack(p, "Stick", t0.Add(5*time.Second))
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if res.Outcome != OutcomeDefeat || res.Kind != game.KindAmbush {
		t.Fatalf("expected ambush defeat, got %+v", res)
	}
	if p.Raids != 0 || p.Experience != 497 || p.Coffers != 0 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if _, ok := e.Session(p.PlayerID); ok {
		t.Fatalf("suspended encounter must be discarded")
	}
	if res.Lines[len(res.Lines)-2].Text != "The ambush claims you." {
		t.Fatalf("expected ambush defeat narrative, got %+v", res.Lines)
	}
}

func TestAmbushFallsBackToAnySiegeOpponent(t *testing.T) {
	cat := testCatalog()
	var plain []game.Opponent
	for _, o := range cat.Opponents[game.KindSiege] {
		if !o.Tier.Elite() {
			plain = append(plain, o)
		}
	}
	cat.Opponents[game.KindSiege] = plain
	e := New(cat, WithRand(&stubRand{roll: 0.5}))

	got, ok := e.pickAmbusher()
	if !ok || got.Name != "Peasant" {
		t.Fatalf("expected fallback to first siege entry, got %+v %v", got, ok)
	}
}

func TestAmbushResumesUnfinishedEncounter(t *testing.T) {
	store := NewMemorySessionStore()
	e := New(testCatalog(), WithRand(&stubRand{roll: 0.5}), WithSessionStore(store))
	p := newPlayer("General")
	store.Put(&Session{
		ID:        "s1",
		PlayerID:  p.PlayerID,
		Kind:      game.KindAmbush,
		Opponents: []game.Opponent{opp("Knight Captain", game.TierHigh, 40, 0, 10)},
		Suspended: &Suspended{
			Kind:      game.KindSiege,
			Opponents: []game.Opponent{opp("Peasant", game.TierVeryLow, 0, 0, 5), opp("Archer", game.TierVeryLow, 15, 0, 5)},
			Current:   1,
		},
		LastActivity: t0,
	})

	res, err := e.Attack(p, "Sword", t0)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if res.Outcome != OutcomeResumed || res.Kind != game.KindSiege {
		t.Fatalf("expected resumed siege, got %+v", res)
	}
	s, _ := store.Get(p.PlayerID)
	if s.Kind != game.KindSiege || s.Suspended != nil || s.Current != 1 {
		t.Fatalf("unexpected restored session: %+v", s)
	}
	if p.Sieges != 0 {
		t.Fatalf("ambush win alone must not settle")
	}
}

func TestUseItems(t *testing.T) {
	e := newTestEngine(0.5)
	p := newPlayer("Recruit")
	if _, err := e.Use(p, "Potion", t0); err != ErrNoActiveEncounter {
		t.Fatalf("expected ErrNoActiveEncounter, got %v", err)
	}
	mustStart(t, e, p, game.KindRaid, t0)

	p.Health = 90
	res, err := e.Use(p, "potion", t0)
	if err != nil || res.Outcome != OutcomeUsed {
		t.Fatalf("use potion: %v %+v", err, res)
	}
	if p.Health != 100 {
		t.Fatalf("heal should cap at 100, got %d", p.Health)
	}
	if _, ok := p.Inventory["Potion"]; ok {
		t.Fatalf("last potion should be removed from inventory")
	}

	p.Shield = 95
	if _, err := e.Use(p, "Buckler", t0); err != nil {
		t.Fatalf("use buckler: %v", err)
	}
	if p.Shield != 100 || p.Inventory["Buckler"] != 1 {
		t.Fatalf("unexpected shield/inventory: %d %v", p.Shield, p.Inventory)
	}

	for _, name := range []string{"Sword", "Map"} {
		if _, err := e.Use(p, name, t0); err == nil {
			t.Fatalf("%s should not be usable", name)
		}
	}
	if _, seen := e.actions.Last(p.PlayerID); seen {
		t.Fatalf("use must not touch the attack clock")
	}
}
