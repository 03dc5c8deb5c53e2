package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/UzayAnil/swiftcode/internal/dependencies/clock"
	"github.com/UzayAnil/swiftcode/internal/events"
	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/services/game"
	"github.com/UzayAnil/swiftcode/internal/storage"
)

// ElapsedTolerance is how far a reported race time may drift from the
// wall-clock elapsed time before the server's measurement wins
const ElapsedTolerance = 100 * time.Millisecond

// charsPerWord is the conventional word length for WPM calculations
const charsPerWord = 5.0

// Report is a player's raw race submission
type Report struct {
	Time       time.Duration
	Keystrokes int
	Mistakes   int
}

// Submission is the finalized outcome of a result submission
type Submission struct {
	Result *model.Result
	Player *model.Player
	Game   *model.Game
}

// Service validates race submissions, derives timing and speed metrics,
// updates the game's best result and folds the outcome into the player's
// lifetime statistics
type Service struct {
	storage storage.Storage
	games   *game.Controller
	bus     *events.Bus
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new stats Service
func New(
	storage storage.Storage,
	games *game.Controller,
	bus *events.Bus,
	clock clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: storage,
		games:   games,
		bus:     bus,
		clock:   clock,
		logger:  logger.With(slog.String("component", "stats")),
	}
}

// SubmitResult finalizes one player's race outcome for one game.
// Side effects happen in a fixed order: the Result is persisted first,
// then the Game's winner record, then the Player's lifetime stats.
func (s *Service) SubmitResult(ctx context.Context, playerID model.PlayerID, gameID model.GameID, report Report) (*Submission, error) {
	unlock := s.games.LockGame(gameID)
	defer unlock()

	g, err := s.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	p, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	exercise, err := s.storage.GetExercise(ctx, g.Exercise)
	if err != nil {
		return nil, err
	}

	// One result per player per game
	existing, err := s.storage.GetResultsForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	for _, prev := range existing {
		if prev.Player == p.ID {
			return nil, model.ErrResultExists
		}
	}

	now := s.clock.Now()

	// Clamp the reported time against the server's measurement to defend
	// against client clock tampering or drift
	raceTime := report.Time
	if g.Started {
		elapsed := now.Sub(g.StartTime)
		if diff := elapsed - raceTime; diff > ElapsedTolerance || diff < -ElapsedTolerance {
			s.logger.Debug("reported time clamped",
				slog.String("player_id", string(playerID)),
				slog.Duration("reported", raceTime),
				slog.Duration("elapsed", elapsed))
			raceTime = elapsed
		}
	}

	result := &model.Result{
		ID:         model.ResultID(uuid.NewString()),
		Player:     p.ID,
		Game:       g.ID,
		Time:       raceTime,
		Keystrokes: report.Keystrokes,
		Mistakes:   report.Mistakes,
		Typeables:  exercise.Typeables,
		CreatedAt:  now,
	}
	if raceTime > 0 {
		result.Speed = (float64(exercise.Typeables) / charsPerWord) / raceTime.Minutes()
	}
	if report.Keystrokes > 0 {
		result.PercentUnproductive = 1 - float64(exercise.Typeables)/float64(report.Keystrokes)
	}

	if err := s.storage.SaveResult(ctx, result); err != nil {
		return nil, err
	}

	// Best result for the game; an unset winner time counts as infinite
	if g.Winner == "" || result.Time < g.WinnerTime {
		g.Winner = result.Player
		g.WinnerTime = result.Time
		g.WinnerSpeed = result.Speed
		g.UpdatedAt = now
		if err := s.storage.SaveGame(ctx, g); err != nil {
			return nil, err
		}
	}

	s.applyLifetimeStats(p, g, result)
	p.UpdatedAt = now
	if err := s.storage.SavePlayer(ctx, p); err != nil {
		return nil, err
	}

	s.bus.Publish(events.TopicPlayerUpdated, p)

	return &Submission{
		Result: result,
		Player: p,
		Game:   g,
	}, nil
}

// applyLifetimeStats folds one result into the player's running records
func (s *Service) applyLifetimeStats(p *model.Player, g *model.Game, result *model.Result) {
	p.TotalGames++
	if !g.IsSinglePlayer {
		p.TotalMultiplayerGames++
	}
	if g.Winner == p.ID {
		p.GamesWon++
	}

	if p.BestTime == 0 || result.Time < p.BestTime {
		p.BestTime = result.Time
	}
	if result.Speed > p.BestSpeed {
		p.BestSpeed = result.Speed
	}

	n := float64(p.TotalGames)
	p.AverageTime = time.Duration((float64(p.AverageTime)*(n-1) + float64(result.Time)) / n)
	p.AverageSpeed = (p.AverageSpeed*(n-1) + result.Speed) / n
}
