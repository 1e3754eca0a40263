package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/dedupe"
	"github.com/ericogr/siegebot/internal/engine"
	"github.com/ericogr/siegebot/internal/game"
	"github.com/ericogr/siegebot/internal/keys"
	"github.com/ericogr/siegebot/internal/logging"
	"github.com/ericogr/siegebot/internal/storage"
)

//go:generate go tool mockgen -destination=./mocks/repository_mock.go -package=mocks . ProfileRepository

// ProfileRepository is the slice of storage the service needs.
type ProfileRepository interface {
	GetProfile(ctx context.Context, playerID string) (*game.Profile, error)
	CreateProfile(ctx context.Context, p *game.Profile) error
	SaveProfile(ctx context.Context, p *game.Profile) error
	GetTopPlayers(ctx context.Context, limit int) ([]game.Profile, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Reply is the rendered answer to one command.
type Reply struct {
	Command   Command
	Outcome   engine.Outcome
	SessionID string
	Lines     []engine.Line
}

func textReply(cmd Command, lines ...string) Reply {
	r := Reply{Command: cmd, Lines: make([]engine.Line, 0, len(lines))}
	for _, l := range lines {
		r.Lines = append(r.Lines, engine.Line{Text: l})
	}
	return r
}

// Service turns chat commands into engine calls against stored profiles.
// Commands for the same player run one at a time.
type Service struct {
	repo          ProfileRepository
	engine        *engine.Engine
	locks         *keyedMutex
	clock         Clock
	tracer        trace.Tracer
	printer       *message.Printer
	lookupTimeout time.Duration
}

const defaultLookupTimeout = 5 * time.Second

var errLookupTimeout = errors.New("profile lookup timed out")

// Option customizes a Service.
type Option func(*Service)

func WithClock(c Clock) Option { return func(s *Service) { s.clock = c } }

func WithTracer(t trace.Tracer) Option { return func(s *Service) { s.tracer = t } }

// WithLookupTimeout bounds how long unlocked profile reads wait.
func WithLookupTimeout(d time.Duration) Option { return func(s *Service) { s.lookupTimeout = d } }

// New builds a service over repo and eng.
func New(repo ProfileRepository, eng *engine.Engine, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		engine:        eng,
		locks:         newKeyedMutex(),
		clock:         systemClock{},
		tracer:        otel.Tracer("github.com/ericogr/siegebot/internal/service"),
		printer:       message.NewPrinter(language.English),
		lookupTimeout: defaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle parses and runs one command issued by playerID.
func (s *Service) Handle(ctx context.Context, playerID, text string) (Reply, error) {
	playerID = keys.PlayerID(playerID)
	ctx, span := s.tracer.Start(ctx, "service.Handle", trace.WithAttributes(
		attribute.String("player.id", playerID),
	))
	defer span.End()

	cmd, err := Parse(text)
	if err != nil {
		return textReply(Command{}, fmt.Sprintf("I don't know that command. %s", helpHint)), nil
	}
	span.SetAttributes(attribute.String("command.verb", string(cmd.Verb)))

	var reply Reply
	switch {
	case cmd.Verb == VerbHelp:
		reply = textReply(cmd, helpLines...)
	case cmd.ReadOnly():
		reply, err = s.status(ctx, playerID, cmd)
	default:
		reply, err = s.play(ctx, playerID, cmd)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Reply{}, err
	}
	if reply.Outcome != "" {
		span.SetAttributes(attribute.String("encounter.outcome", string(reply.Outcome)))
	}
	return reply, nil
}

// play runs an encounter command under the player's lock and persists the
// profile afterwards. When the save fails the engine state is rolled back
// so the session, attack clock and cooldowns match the stored profile.
func (s *Service) play(ctx context.Context, playerID string, cmd Command) (Reply, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.loadOrCreate(ctx, playerID)
	if err != nil {
		return Reply{}, err
	}
	now := s.clock.Now()

	var started []game.Kind
	if kind, ok := cmd.StartKind(); ok {
		started = append(started, kind)
	}
	cp, err := s.engine.Checkpoint(ctx, playerID, started...)
	if err != nil {
		return Reply{}, fmt.Errorf("%s: %w", cmd.Verb, err)
	}

	var res engine.Result
	switch cmd.Verb {
	case VerbAttack:
		res, err = s.engine.Attack(p, cmd.Arg, now)
	case VerbUse:
		res, err = s.engine.Use(p, cmd.Arg, now)
	case VerbExit:
		res, err = s.engine.Exit(playerID)
	default:
		kind, ok := cmd.StartKind()
		if !ok {
			return Reply{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Verb)
		}
		res, err = s.engine.Start(ctx, p, kind, now)
	}

	fields := logging.Fields{
		constants.LogFieldPlayerID: playerID,
		constants.LogFieldCommand:  string(cmd.Verb),
	}
	if err != nil {
		if msg, ok := userMessage(err); ok {
			fields[constants.LogFieldSource] = err.Error()
			logging.Info("command rejected", fields)
			return textReply(cmd, msg), nil
		}
		logging.Error("command failed", err, fields)
		return Reply{}, fmt.Errorf("%s: %w", cmd.Verb, err)
	}

	fields[constants.LogFieldSessionID] = res.SessionID
	fields[constants.LogFieldKind] = string(res.Kind)
	fields[constants.LogFieldOutcome] = string(res.Outcome)
	if res.Outcome != engine.OutcomeExited {
		if err := s.repo.SaveProfile(ctx, p); err != nil {
			logging.Error("failed to save profile", err, fields)
			if rbErr := s.engine.Rollback(ctx, cp); rbErr != nil {
				logging.Error("failed to roll back encounter", rbErr, fields)
			}
			return Reply{}, fmt.Errorf("save profile %s: %w", playerID, err)
		}
	}
	logging.Info("command handled", fields)
	return Reply{Command: cmd, Outcome: res.Outcome, SessionID: res.SessionID, Lines: res.Lines}, nil
}

// loadOrCreate returns the player's profile, creating it with catalog
// defaults on first reference. Callers hold the player's lock.
func (s *Service) loadOrCreate(ctx context.Context, playerID string) (*game.Profile, error) {
	p, err := s.repo.GetProfile(ctx, playerID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, storage.ErrProfileNotFound) {
		return nil, fmt.Errorf("load profile %s: %w", playerID, err)
	}
	p = s.engine.Catalog().NewProfile(playerID)
	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile %s: %w", playerID, err)
	}
	logging.Info("profile created", logging.Fields{constants.LogFieldPlayerID: playerID})
	return p, nil
}

// lookup reads a profile without taking the player's lock. Concurrent
// reads of the same player share one storage call.
func (s *Service) lookup(ctx context.Context, playerID string) (*game.Profile, error) {
	ch := dedupe.ProfileGroup.DoChan(playerID, func() (interface{}, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.lookupTimeout)
		defer cancel()
		return s.repo.GetProfile(readCtx, playerID)
	})

	timer := time.NewTimer(s.lookupTimeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		if errors.Is(r.Err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", errLookupTimeout, playerID)
		}
		if r.Err != nil {
			return nil, r.Err
		}
		p, ok := r.Val.(*game.Profile)
		if !ok || p == nil {
			return nil, storage.ErrProfileNotFound
		}
		return p.Clone(), nil
	case <-timer.C:
		return nil, fmt.Errorf("%w: %s", errLookupTimeout, playerID)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Profile returns the stored profile without creating one.
func (s *Service) Profile(ctx context.Context, playerID string) (*game.Profile, error) {
	return s.lookup(ctx, keys.PlayerID(playerID))
}

// Leaderboard returns the top players by kills.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]game.Profile, error) {
	return s.repo.GetTopPlayers(ctx, limit)
}
