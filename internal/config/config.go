package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ericogr/siegebot/internal/game"
	"github.com/ericogr/siegebot/internal/keys"
)

//go:embed default_catalog.json
var defaultCatalog []byte

type rankEntry struct {
	Name          string `json:"name"`
	Tier          string `json:"tier"`
	MinExperience int    `json:"min_experience"`
}

type itemEntry struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Unique bool   `json:"unique"`
	Damage int    `json:"damage"`
	Heal   int    `json:"heal"`
	Shield int    `json:"shield"`
}

type opponentEntry struct {
	Name   string `json:"name"`
	Tier   string `json:"tier"`
	HP     int    `json:"hp"`
	Shield int    `json:"shield"`
	Damage int    `json:"damage"`
}

type rawCatalog struct {
	Ranks            []rankEntry                `json:"ranks"`
	DefaultRank      string                     `json:"default_rank"`
	StarterInventory map[string]int             `json:"starter_inventory"`
	Items            []itemEntry                `json:"items"`
	Opponents        map[string][]opponentEntry `json:"opponents"`
	Narratives       map[string]game.Narrative  `json:"narratives"`
	Ambush           game.AmbushNarrative       `json:"ambush"`
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() (*game.Catalog, error) {
	return ParseCatalog(defaultCatalog, "embedded catalog")
}

// LoadCatalog reads the catalog file at path. An empty path selects the
// embedded default.
func LoadCatalog(path string) (*game.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return ParseCatalog(b, path)
}

// ParseCatalog decodes and validates a catalog. source names the input in
// error messages.
func ParseCatalog(b []byte, source string) (*game.Catalog, error) {
	var rc rawCatalog
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", source, err)
	}

	ranks, err := parseRanks(rc.Ranks, source)
	if err != nil {
		return nil, err
	}
	cat := &game.Catalog{
		Ranks:            ranks,
		DefaultRank:      strings.TrimSpace(rc.DefaultRank),
		StarterInventory: map[string]int{},
		Items:            map[string]game.Item{},
		Opponents:        map[game.Kind][]game.Opponent{},
		Narratives:       map[game.Kind]game.Narrative{},
		Ambush:           rc.Ambush,
	}
	if cat.DefaultRank == "" {
		cat.DefaultRank = ranks[0].Name
	}
	if !hasRank(ranks, cat.DefaultRank) {
		return nil, fmt.Errorf("catalog %s: default_rank '%s' is not a listed rank", source, cat.DefaultRank)
	}

	if err := parseItems(cat, rc.Items, source); err != nil {
		return nil, err
	}
	for name, qty := range rc.StarterInventory {
		it, ok := cat.Item(name)
		if !ok {
			return nil, fmt.Errorf("catalog %s: starter item '%s' is not a listed item", source, name)
		}
		if qty <= 0 {
			return nil, fmt.Errorf("catalog %s: starter item '%s' needs a positive quantity", source, name)
		}
		if it.Unique && qty != 1 {
			return nil, fmt.Errorf("catalog %s: unique item '%s' can only be granted once", source, name)
		}
		cat.StarterInventory[it.Name] = qty
	}

	if err := parseOpponents(cat, rc.Opponents, source); err != nil {
		return nil, err
	}
	if err := parseNarratives(cat, rc.Narratives, source); err != nil {
		return nil, err
	}
	if err := checkPools(cat, source); err != nil {
		return nil, err
	}
	return cat, nil
}

func parseRanks(entries []rankEntry, source string) ([]game.Rank, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog %s: ranks is empty (provide 'ranks' array)", source)
	}
	out := make([]game.Rank, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, r := range entries {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog %s: rank entry missing 'name'", source)
		}
		ln := strings.ToLower(name)
		if _, exists := seen[ln]; exists {
			return nil, fmt.Errorf("catalog %s: duplicate rank name '%s'", source, name)
		}
		seen[ln] = struct{}{}
		tier, ok := game.ParseTier(r.Tier)
		if !ok {
			return nil, fmt.Errorf("catalog %s: rank '%s' has unknown tier '%s'", source, name, r.Tier)
		}
		if r.MinExperience < 0 {
			return nil, fmt.Errorf("catalog %s: rank '%s' has negative min_experience", source, name)
		}
		out = append(out, game.Rank{Name: name, Tier: tier, MinExperience: r.MinExperience})
	}
	return out, nil
}

func hasRank(ranks []game.Rank, name string) bool {
	for _, r := range ranks {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

func parseItems(cat *game.Catalog, entries []itemEntry, source string) error {
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return fmt.Errorf("catalog %s: item entry missing 'name'", source)
		}
		key := keys.ItemKey(name)
		if _, exists := cat.Items[key]; exists {
			return fmt.Errorf("catalog %s: duplicate item name '%s'", source, name)
		}
		it := game.Item{Name: name, Kind: game.ItemKind(strings.ToLower(e.Kind)), Unique: e.Unique}
		switch it.Kind {
		case game.ItemWeapon:
			if e.Damage <= 0 {
				return fmt.Errorf("catalog %s: weapon '%s' needs a positive damage", source, name)
			}
			it.Damage = e.Damage
		case game.ItemConsumable:
			if e.Heal <= 0 {
				return fmt.Errorf("catalog %s: consumable '%s' needs a positive heal", source, name)
			}
			it.Heal = e.Heal
		case game.ItemArmor:
			if e.Shield <= 0 {
				return fmt.Errorf("catalog %s: armor '%s' needs a positive shield", source, name)
			}
			it.Shield = e.Shield
		default:
			return fmt.Errorf("catalog %s: item '%s' has unknown kind '%s'", source, name, e.Kind)
		}
		cat.Items[key] = it
	}
	return nil
}

func parseOpponents(cat *game.Catalog, raw map[string][]opponentEntry, source string) error {
	for rawKind, entries := range raw {
		kind, ok := game.ParseKind(rawKind)
		if !ok || !kind.Trackable() {
			return fmt.Errorf("catalog %s: opponents listed for unknown kind '%s'", source, rawKind)
		}
		seen := make(map[string]struct{}, len(entries))
		for _, o := range entries {
			name := strings.TrimSpace(o.Name)
			if name == "" {
				return fmt.Errorf("catalog %s: %s opponent missing 'name'", source, kind)
			}
			ln := strings.ToLower(name)
			if _, exists := seen[ln]; exists {
				return fmt.Errorf("catalog %s: duplicate %s opponent '%s'", source, kind, name)
			}
			seen[ln] = struct{}{}
			tier, ok := game.ParseTier(o.Tier)
			if !ok {
				return fmt.Errorf("catalog %s: opponent '%s' has unknown tier '%s'", source, name, o.Tier)
			}
			if o.HP <= 0 || o.Shield < 0 || o.Damage < 0 {
				return fmt.Errorf("catalog %s: opponent '%s' needs hp > 0 and non-negative shield and damage", source, name)
			}
			cat.Opponents[kind] = append(cat.Opponents[kind], game.Opponent{
				Name:      name,
				Tier:      tier,
				HitPoints: o.HP,
				Shield:    o.Shield,
				Damage:    o.Damage,
			})
		}
	}
	return nil
}

func parseNarratives(cat *game.Catalog, raw map[string]game.Narrative, source string) error {
	for rawKind, n := range raw {
		kind, ok := game.ParseKind(rawKind)
		if !ok || !kind.Trackable() {
			return fmt.Errorf("catalog %s: narrative listed for unknown kind '%s'", source, rawKind)
		}
		cat.Narratives[kind] = n
	}
	for _, k := range game.TrackableKinds {
		if len(cat.Narratives[k].Stages) == 0 {
			return fmt.Errorf("catalog %s: narrative for '%s' needs at least one stage", source, k)
		}
	}
	return nil
}

// checkPools makes sure every tier a player can be in has opponents of
// every kind, so roster generation never runs dry at runtime.
func checkPools(cat *game.Catalog, source string) error {
	tiers := map[game.Tier]struct{}{game.TierVeryLow: {}}
	for _, r := range cat.Ranks {
		tiers[r.Tier] = struct{}{}
	}
	for _, k := range game.TrackableKinds {
		for _, t := range game.Tiers {
			if _, used := tiers[t]; !used {
				continue
			}
			if len(cat.Pool(k, t)) == 0 {
				return fmt.Errorf("catalog %s: no %s opponents for tier '%s'", source, k, t)
			}
		}
	}
	return nil
}
