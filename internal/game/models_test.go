package game

import (
	"testing"

	"pgregory.net/rapid"
)

func TestInventoryNeverHoldsEmptyEntries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := &Profile{PlayerID: "U1"}
		names := []string{"Sword", "Potion", "Buckler"}
		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			name := rapid.SampledFrom(names).Draw(t, "name")
			qty := rapid.IntRange(-2, 3).Draw(t, "qty")
			if rapid.Bool().Draw(t, "add") {
				p.AddItem(name, qty)
			} else {
				before := p.Inventory.Quantity(name)
				ok := p.RemoveItem(name, qty)
				if ok != (qty > 0 && before >= qty) {
					t.Fatalf("RemoveItem(%s,%d) with %d held returned %v", name, qty, before, ok)
				}
			}
			for n, q := range p.Inventory {
				if q <= 0 {
					t.Fatalf("inventory holds %s=%d", n, q)
				}
			}
		}
	})
}

func TestInventoryLookupIgnoresCase(t *testing.T) {
	inv := Inventory{"Rusty Sword": 1}
	got, ok := inv.Lookup("  rusty sword ")
	if !ok || got != "Rusty Sword" {
		t.Fatalf("Lookup = %q %v", got, ok)
	}
	if _, ok := inv.Lookup(""); ok {
		t.Fatalf("empty name should not resolve")
	}
}

func TestIncrementCompleted(t *testing.T) {
	p := &Profile{}
	for _, k := range TrackableKinds {
		p.IncrementCompleted(k)
	}
	p.IncrementCompleted(KindAmbush)
	if p.Sieges != 1 || p.Raids != 1 || p.Fortifications != 1 || p.Assassinations != 1 {
		t.Fatalf("unexpected counters: %+v", p)
	}
	if p.Counter(KindAmbush) != 0 {
		t.Fatalf("ambush has no counter")
	}
}

func TestCloneDoesNotAliasInventory(t *testing.T) {
	p := &Profile{Inventory: Inventory{"Sword": 1}}
	cp := p.Clone()
	cp.AddItem("Sword", 1)
	if p.Inventory["Sword"] != 1 {
		t.Fatalf("clone shares inventory map")
	}
}

func TestParseTierAndKind(t *testing.T) {
	if tier, ok := ParseTier("Very-High"); !ok || tier != TierVeryHigh {
		t.Fatalf("ParseTier = %s %v", tier, ok)
	}
	if tier, ok := ParseTier("legendary"); ok || tier != TierVeryLow {
		t.Fatalf("unknown tier should map to very-low")
	}
	if k, ok := ParseKind("assassinate"); !ok || k != KindAssassination {
		t.Fatalf("ParseKind = %s %v", k, ok)
	}
}

func TestCatalogHelpers(t *testing.T) {
	c := &Catalog{
		Ranks: []Rank{
			{Name: "Recruit", Tier: TierVeryLow},
			{Name: "Captain", Tier: TierMid, MinExperience: 100},
		},
		DefaultRank:      "Recruit",
		StarterInventory: map[string]int{"Rusty Sword": 1, "Bandage": 2},
		Items:            map[string]Item{"rusty sword": {Name: "Rusty Sword", Kind: ItemWeapon, Damage: 8}, "bandage": {Name: "Bandage", Kind: ItemConsumable, Heal: 10}},
		Narratives:       map[Kind]Narrative{KindRaid: {Stages: []string{"a", "b"}}},
	}
	if c.TierForRank("captain") != TierMid || c.TierForRank("nobody") != TierVeryLow {
		t.Fatalf("TierForRank mismatch")
	}
	if r, _ := c.RankForExperience(150); r.Name != "Captain" {
		t.Fatalf("RankForExperience = %s", r.Name)
	}
	if c.Stage(KindRaid, 7) != "b" || c.Stage(KindSiege, 0) != "" {
		t.Fatalf("Stage clamp mismatch")
	}
	if _, ok := c.Weapon("bandage"); ok {
		t.Fatalf("bandage is not a weapon")
	}
	p := c.NewProfile("U1")
	if p.Health != MaxHealth || p.Rank != "Recruit" || p.Inventory["Bandage"] != 2 {
		t.Fatalf("unexpected new profile: %+v", p)
	}
}
