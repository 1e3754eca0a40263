package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericogr/siegebot/internal/game"
	"github.com/ericogr/siegebot/internal/keys"
	"github.com/ericogr/siegebot/internal/storage"
)

// status answers the read-only record commands. A mention in the argument
// switches the subject to that player; mentioned players are never created.
func (s *Service) status(ctx context.Context, callerID string, cmd Command) (Reply, error) {
	target := callerID
	if arg := strings.TrimSpace(cmd.Arg); arg != "" && keys.IsMention(arg) {
		target = keys.PlayerID(strings.Fields(arg)[0])
	}

	if cmd.Verb == VerbCooldowns {
		return s.cooldowns(ctx, target, cmd)
	}

	var (
		p   *game.Profile
		err error
	)
	if target != callerID {
		p, err = s.lookup(ctx, target)
		if errors.Is(err, storage.ErrProfileNotFound) {
			return textReply(cmd, fmt.Sprintf("%s has no record yet.", mention(target))), nil
		}
	} else {
		unlock := s.locks.Lock(target)
		p, err = s.loadOrCreate(ctx, target)
		unlock()
	}
	if err != nil {
		return Reply{}, fmt.Errorf("%s: %w", cmd.Verb, err)
	}
	return textReply(cmd, s.render(cmd.Verb, p)...), nil
}

func mention(playerID string) string { return "<@" + playerID + ">" }

func (s *Service) render(v Verb, p *game.Profile) []string {
	who := mention(p.PlayerID)
	n := func(i int) string { return s.printer.Sprintf("%d", i) }
	switch v {
	case VerbInventory:
		return []string{fmt.Sprintf("%s carries: %s", who, s.inventoryText(p.Inventory))}
	case VerbRank:
		tier := s.engine.Catalog().TierForRank(p.Rank)
		return []string{fmt.Sprintf("%s holds the rank of %s (%s tier) with %s experience.", who, p.Rank, tier, n(p.Experience))}
	case VerbCoffers:
		return []string{fmt.Sprintf("%s has %s coins in the coffers.", who, n(p.Coffers))}
	case VerbKills:
		return []string{fmt.Sprintf("%s has %s kills.", who, n(p.Kills))}
	case VerbSieges:
		return []string{fmt.Sprintf("%s has won %s sieges.", who, n(p.Sieges))}
	case VerbRaids:
		return []string{fmt.Sprintf("%s has completed %s raids.", who, n(p.Raids))}
	case VerbFortifications:
		return []string{fmt.Sprintf("%s has held %s fortifications.", who, n(p.Fortifications))}
	case VerbAssassinations:
		return []string{fmt.Sprintf("%s has carried out %s assassinations.", who, n(p.Assassinations))}
	}
	return []string{
		fmt.Sprintf("Record of %s, %s:", who, p.Rank),
		fmt.Sprintf("Health %d/%d | Shield %d/%d", p.Health, game.MaxHealth, p.Shield, game.MaxShield),
		fmt.Sprintf("Experience %s | Coffers %s | Kills %s", n(p.Experience), n(p.Coffers), n(p.Kills)),
		fmt.Sprintf("Sieges %s | Raids %s | Fortifications %s | Assassinations %s",
			n(p.Sieges), n(p.Raids), n(p.Fortifications), n(p.Assassinations)),
	}
}

func (s *Service) inventoryText(inv game.Inventory) string {
	names := inv.Names()
	if len(names) == 0 {
		return "nothing"
	}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, s.printer.Sprintf("%s x%d", name, inv[name]))
	}
	return strings.Join(parts, ", ")
}

func (s *Service) cooldowns(ctx context.Context, playerID string, cmd Command) (Reply, error) {
	left, err := s.engine.Cooldowns(ctx, playerID, s.clock.Now())
	if err != nil {
		return Reply{}, fmt.Errorf("%s: %w", cmd.Verb, err)
	}
	lines := make([]string, 0, len(game.TrackableKinds))
	for _, k := range game.TrackableKinds {
		d, blocked := left[k]
		if !blocked {
			lines = append(lines, fmt.Sprintf("%s: ready", k.Label()))
			continue
		}
		h := int(d / time.Hour)
		m := int((d % time.Hour) / time.Minute)
		lines = append(lines, fmt.Sprintf("%s: %dh %02dm", k.Label(), h, m))
	}
	return textReply(cmd, lines...), nil
}
