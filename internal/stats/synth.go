package stats

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/statsmock/internal/config"
	"github.com/mauv0809/statsmock/internal/random"
)

// Bounds of the synthesized values.
const (
	maxStat           = 15
	activityDays      = 7
	gameYear          = 2025
	gameMonth         = time.October
	firstGameDay      = 5
	lastGameDay       = 25
	minGameSeconds    = 10
	maxGameSeconds    = 110
	maxJitterMillis   = 999
	maxTournamentAge  = 10
	autoGameIDPattern = "mock_game_%d"
)

type options struct {
	today time.Time
}

// Option configures Synthesize.
type Option func(*options)

// WithToday fixes the reference date used for activity history and
// tournament dates. Without it the current date is used.
func WithToday(t time.Time) Option {
	return func(o *options) {
		o.today = t
	}
}

// Synthesize builds the dataset described by cfg. Values are drawn from a
// generator seeded with cfg.Seed in a fixed order: users, then games, then
// tournaments, each in configuration order. The same seed and reference date
// always produce the same dataset.
func Synthesize(cfg config.MockConfig, opts ...Option) (*Snapshot, error) {
	o := options{today: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}
	today := DateOf(o.today)
	rng := random.New(cfg.Seed)

	s := newSnapshot()
	for i, u := range cfg.Users {
		if err := s.addUser(rng, u, today); err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
	}
	if len(s.userOrder) == 0 {
		return nil, fmt.Errorf("at least one user is required")
	}
	s.currentUser = s.userOrder[0]

	for i, g := range cfg.Games {
		if err := s.addGame(rng, g); err != nil {
			return nil, fmt.Errorf("games[%d]: %w", i, err)
		}
	}
	for i, t := range cfg.Tournaments {
		if err := s.addTournament(rng, t, today); err != nil {
			return nil, fmt.Errorf("tournaments[%d]: %w", i, err)
		}
	}
	for _, id := range s.gameOrder {
		g := s.games[id]
		if g.TournamentID == nil {
			continue
		}
		if _, ok := s.tournaments[*g.TournamentID]; !ok {
			return nil, fmt.Errorf("game %q: unknown tournament %q", id, *g.TournamentID)
		}
	}

	log.Info("Synthesized mock data",
		"seed", rng.Seed(),
		"today", today.String(),
		"current_user", s.currentUser,
		"users", len(s.users),
		"games", len(s.games),
		"tournaments", len(s.tournaments),
	)
	return s, nil
}

func drawStats(rng *random.Generator) UserGameStats {
	wins := rng.NextInt(0, maxStat)
	draws := rng.NextInt(0, maxStat)
	losses := rng.NextInt(0, maxStat)
	return UserGameStats{Wins: wins, Draws: draws, Losses: losses}
}

func (s *Snapshot) addUser(rng *random.Generator, u config.UserEntry, today Date) error {
	if u.Username == "" {
		return fmt.Errorf("empty username")
	}
	if _, ok := s.users[u.Username]; ok {
		return fmt.Errorf("duplicate user %q", u.Username)
	}

	stats := UserStats{
		Username:        u.Username,
		Realname:        u.Realname,
		GameStats:       drawStats(rng),
		TournamentStats: drawStats(rng),
		Activity:        make(Activity, 0, activityDays),
	}
	for offset := 0; offset < activityDays; offset++ {
		day := Date{today.AddDate(0, 0, -offset)}
		stats.Activity = append(stats.Activity, DailyStats{Date: day, Stats: drawStats(rng)})
	}

	s.users[u.Username] = stats.clone()
	s.userOrder = append(s.userOrder, u.Username)
	return nil
}

func (s *Snapshot) addGame(rng *random.Generator, g config.GameEntry) error {
	if len(g.Scores) == 0 {
		return fmt.Errorf("no player scores")
	}
	id := fmt.Sprintf(autoGameIDPattern, len(s.games))
	if g.ID != nil && *g.ID != "" {
		id = *g.ID
	}
	if _, ok := s.games[id]; ok {
		return fmt.Errorf("duplicate game id %q", id)
	}

	day := rng.NextInt(firstGameDay, lastGameDay)
	hour := rng.NextInt(0, 23)
	minute := rng.NextInt(0, 59)
	second := rng.NextInt(0, 59)
	seconds := rng.NextInt(minGameSeconds, maxGameSeconds)
	jitter := rng.NextInt(0, maxJitterMillis)

	game := GameResult{
		Date:           time.Date(gameYear, gameMonth, day, hour, minute, second, 0, time.UTC),
		GameID:         id,
		PlayerScores:   maps.Clone(g.Scores),
		DurationMillis: seconds*1000 + jitter,
	}
	if g.TournamentID != nil {
		tid := *g.TournamentID
		game.TournamentID = &tid
	}
	s.games[id] = game
	s.gameOrder = append(s.gameOrder, id)

	for _, username := range slices.Sorted(maps.Keys(g.Scores)) {
		s.warnUnknownUser(username, "game", id)
		if err := s.gameIndex.Insert(username, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Snapshot) addTournament(rng *random.Generator, t config.TournamentEntry, today Date) error {
	if t.ID == "" {
		return fmt.Errorf("missing tournament id")
	}
	if t.Players == nil {
		return fmt.Errorf("tournament %q: missing players", t.ID)
	}
	if _, ok := s.tournaments[t.ID]; ok {
		return fmt.Errorf("duplicate tournament id %q", t.ID)
	}
	for _, gameID := range t.Games {
		if _, ok := s.games[gameID]; !ok {
			return fmt.Errorf("tournament %q: unknown game %q", t.ID, gameID)
		}
	}

	offset := rng.NextInt(-maxTournamentAge, 0)
	tournament := Tournament{
		Date:         Date{today.AddDate(0, 0, offset)},
		TournamentID: t.ID,
		GameIDs:      slices.Clone(t.Games),
		Players:      slices.Clone(t.Players),
	}
	if tournament.GameIDs == nil {
		tournament.GameIDs = []string{}
	}
	s.tournaments[t.ID] = tournament
	s.tournamentOrder = append(s.tournamentOrder, t.ID)

	seen := make(map[string]bool, len(t.Players))
	for _, player := range t.Players {
		if seen[player] {
			continue
		}
		seen[player] = true
		s.warnUnknownUser(player, "tournament", t.ID)
		if err := s.tournamentIndex.Insert(player, t.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Snapshot) warnUnknownUser(username, kind, id string) {
	if _, ok := s.users[username]; !ok {
		log.Warn("Participant is not a configured user", "user", username, kind, id)
	}
}
