package game

import (
	"strings"

	"github.com/ericogr/siegebot/internal/keys"
)

// ItemKind classifies catalog items.
type ItemKind string

const (
	ItemWeapon     ItemKind = "weapon"
	ItemConsumable ItemKind = "consumable"
	ItemArmor      ItemKind = "armor"
)

// Item is a static catalog definition. Weapons carry Damage, consumables
// Heal and armor Shield.
type Item struct {
	Name   string   `json:"name"`
	Kind   ItemKind `json:"kind"`
	Unique bool     `json:"unique"`
	Damage int      `json:"damage,omitempty"`
	Heal   int      `json:"heal,omitempty"`
	Shield int      `json:"shield,omitempty"`
}

// Rank maps a profile rank label to a tier. MinExperience drives promotion.
type Rank struct {
	Name          string `json:"name"`
	Tier          Tier   `json:"tier"`
	MinExperience int    `json:"min_experience"`
}

// Narrative holds the ordered stage texts of one encounter kind. Stage i is
// shown when opponent i is introduced.
type Narrative struct {
	Stages  []string `json:"stages"`
	Victory string   `json:"victory"`
	Defeat  string   `json:"defeat"`
}

// AmbushNarrative holds the texts shown around the ambush interrupt.
type AmbushNarrative struct {
	Intro   string `json:"intro"`
	Victory string `json:"victory"`
	Defeat  string `json:"defeat"`
}

// Catalog is the immutable reference data the engine queries. It is built
// by the config loader and never mutated afterwards.
type Catalog struct {
	Ranks            []Rank
	DefaultRank      string
	StarterInventory map[string]int
	Items            map[string]Item
	Opponents        map[Kind][]Opponent
	Narratives       map[Kind]Narrative
	Ambush           AmbushNarrative
}

// Item looks up an item by name ignoring case.
func (c *Catalog) Item(name string) (Item, bool) {
	it, ok := c.Items[keys.ItemKey(name)]
	return it, ok
}

// Weapon returns the item only when it deals damage.
func (c *Catalog) Weapon(name string) (Item, bool) {
	it, ok := c.Item(name)
	if !ok || it.Kind != ItemWeapon || it.Damage <= 0 {
		return Item{}, false
	}
	return it, true
}

// TierForRank maps a rank label to its tier. Unknown ranks are very-low.
func (c *Catalog) TierForRank(rank string) Tier {
	for _, r := range c.Ranks {
		if strings.EqualFold(r.Name, strings.TrimSpace(rank)) {
			return r.Tier
		}
	}
	return TierVeryLow
}

// RankForExperience returns the highest rank whose threshold is met.
func (c *Catalog) RankForExperience(xp int) (Rank, bool) {
	var best Rank
	found := false
	for _, r := range c.Ranks {
		if r.MinExperience <= xp && (!found || r.MinExperience > best.MinExperience) {
			best = r
			found = true
		}
	}
	return best, found
}

// Pool returns the catalog opponents of kind k at tier t. The returned
// values are copies; mutating them does not affect the catalog.
func (c *Catalog) Pool(k Kind, t Tier) []Opponent {
	var out []Opponent
	for _, o := range c.Opponents[k] {
		if o.Tier == t {
			out = append(out, o)
		}
	}
	return out
}

// Stage returns narrative stage i of kind k, clamped to the last entry.
func (c *Catalog) Stage(k Kind, i int) string {
	stages := c.Narratives[k].Stages
	if len(stages) == 0 {
		return ""
	}
	if i < 0 {
		i = 0
	}
	if i >= len(stages) {
		i = len(stages) - 1
	}
	return stages[i]
}

// NewProfile builds the default record for a player seen for the first time.
func (c *Catalog) NewProfile(playerID string) *Profile {
	p := &Profile{
		PlayerID:  playerID,
		Health:    MaxHealth,
		Rank:      c.DefaultRank,
		Inventory: Inventory{},
	}
	for name, qty := range c.StarterInventory {
		p.AddItem(name, qty)
	}
	return p
}
