package game

import (
	"sort"
	"strings"

	"gorm.io/gorm"
)

const (
	MaxHealth = 100
	MaxShield = 100
)

// Opponent is a mutable snapshot of a catalog entry. Sessions own their
// copies; the catalog itself is never modified.
type Opponent struct {
	Name      string `json:"name"`
	Tier      Tier   `json:"tier"`
	HitPoints int    `json:"hp"`
	Shield    int    `json:"shield"`
	Damage    int    `json:"damage"`
}

// Inventory maps an item name to a positive quantity. A missing key means
// the player holds none of the item.
type Inventory map[string]int

// Quantity returns how many units of name are held (exact name match).
func (inv Inventory) Quantity(name string) int {
	return inv[name]
}

// Lookup resolves name against held items ignoring case and surrounding
// whitespace, returning the stored name.
func (inv Inventory) Lookup(name string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return "", false
	}
	if q, ok := inv[name]; ok && q > 0 {
		return name, true
	}
	for held, q := range inv {
		if q > 0 && strings.ToLower(held) == want {
			return held, true
		}
	}
	return "", false
}

// Empty reports whether no item is held.
func (inv Inventory) Empty() bool {
	for _, q := range inv {
		if q > 0 {
			return false
		}
	}
	return true
}

// Names returns the held item names sorted alphabetically.
func (inv Inventory) Names() []string {
	names := make([]string, 0, len(inv))
	for n, q := range inv {
		if q > 0 {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Profile is the persisted player record the engine reads and mutates.
type Profile struct {
	gorm.Model
	PlayerID   string    `json:"player_id" gorm:"uniqueIndex"`
	Health     int       `json:"health"`
	Shield     int       `json:"shield"`
	Coffers    int       `json:"coffers"`
	Experience int       `json:"experience"`
	Rank       string    `json:"rank"`
	Inventory  Inventory `json:"inventory" gorm:"serializer:json"`

	Kills          int `json:"kills"`
	Sieges         int `json:"sieges"`
	Raids          int `json:"raids"`
	Fortifications int `json:"fortifications"`
	Assassinations int `json:"assassinations"`
}

// TableName pins the table shared with the leaderboard queries.
func (Profile) TableName() string { return "player_profiles" }

// AddItem adds qty units of name. Non-positive quantities are ignored.
func (p *Profile) AddItem(name string, qty int) {
	if qty <= 0 {
		return
	}
	if p.Inventory == nil {
		p.Inventory = Inventory{}
	}
	p.Inventory[name] += qty
}

// RemoveItem removes qty units of name, deleting the key when the last
// unit goes. It returns false and leaves the inventory untouched when
// fewer than qty units are held.
func (p *Profile) RemoveItem(name string, qty int) bool {
	if qty <= 0 {
		return false
	}
	have := p.Inventory[name]
	if have < qty {
		return false
	}
	if have == qty {
		delete(p.Inventory, name)
		return true
	}
	p.Inventory[name] = have - qty
	return true
}

// Counter returns the completion counter for a trackable kind.
func (p *Profile) Counter(k Kind) int {
	switch k {
	case KindSiege:
		return p.Sieges
	case KindRaid:
		return p.Raids
	case KindFortify:
		return p.Fortifications
	case KindAssassination:
		return p.Assassinations
	}
	return 0
}

// IncrementCompleted bumps the counter matching k. Ambush has no counter.
func (p *Profile) IncrementCompleted(k Kind) {
	switch k {
	case KindSiege:
		p.Sieges++
	case KindRaid:
		p.Raids++
	case KindFortify:
		p.Fortifications++
	case KindAssassination:
		p.Assassinations++
	}
}

// Clone returns a deep copy so callers sharing a loaded record never alias
// the inventory map.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Inventory != nil {
		cp.Inventory = make(Inventory, len(p.Inventory))
		for k, v := range p.Inventory {
			cp.Inventory[k] = v
		}
	}
	return &cp
}
