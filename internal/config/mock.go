package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/mauv0809/statsmock/internal/random"
)

// Reserved keys of a [[games]] entry. Every other key is a username.
const (
	gameIDKey       = "id"
	tournamentIDKey = "tournamentId"
	usersKey        = "users"
)

// rawMockConfig mirrors the file before it is turned into a MockConfig.
type rawMockConfig struct {
	Seed        *int64            `toml:"seed"`
	Users       map[string]any    `toml:"users"`
	Games       []map[string]any  `toml:"games"`
	Tournaments []TournamentEntry `toml:"tournaments"`
}

// LoadMock reads and validates the mock configuration file at path.
func LoadMock(path string) (MockConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MockConfig{}, fmt.Errorf("read mock config %s: %w", path, err)
	}
	cfg, err := ParseMock(data)
	if err != nil {
		return MockConfig{}, fmt.Errorf("mock config %s: %w", path, err)
	}
	log.Info("Loaded mock configuration", "path", path, "users", len(cfg.Users), "games", len(cfg.Games), "tournaments", len(cfg.Tournaments), "seed", cfg.Seed)
	return cfg, nil
}

// ParseMock decodes TOML mock configuration and validates it.
func ParseMock(data []byte) (MockConfig, error) {
	var raw rawMockConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return MockConfig{}, fmt.Errorf("decode toml: %w", err)
	}

	order, err := userOrder(data)
	if err != nil {
		return MockConfig{}, fmt.Errorf("read user order: %w", err)
	}

	cfg := MockConfig{Seed: random.DefaultSeed}
	if raw.Seed != nil {
		cfg.Seed = *raw.Seed
	}

	for _, username := range completeOrder(order, raw.Users) {
		realname, err := realnameOf(username, raw.Users[username])
		if err != nil {
			return MockConfig{}, err
		}
		cfg.Users = append(cfg.Users, UserEntry{Username: username, Realname: realname})
	}

	for i, rawGame := range raw.Games {
		game, err := gameEntryFrom(i, rawGame)
		if err != nil {
			return MockConfig{}, err
		}
		cfg.Games = append(cfg.Games, game)
	}
	cfg.Tournaments = raw.Tournaments

	if err := cfg.Validate(); err != nil {
		return MockConfig{}, err
	}
	return cfg, nil
}

// Validate checks the schema rules and the uniqueness of configured ids.
func (c MockConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid mock config: %s", FormatValidationError(err))
	}

	gameIDs := make(map[string]bool, len(c.Games))
	for i, g := range c.Games {
		if g.ID == nil {
			continue
		}
		if gameIDs[*g.ID] {
			return fmt.Errorf("games[%d]: duplicate game id %q", i, *g.ID)
		}
		gameIDs[*g.ID] = true
	}

	tournamentIDs := make(map[string]bool, len(c.Tournaments))
	for i, t := range c.Tournaments {
		if tournamentIDs[t.ID] {
			return fmt.Errorf("tournaments[%d]: duplicate tournament id %q", i, t.ID)
		}
		tournamentIDs[t.ID] = true
	}
	for i, g := range c.Games {
		if g.TournamentID != nil && !tournamentIDs[*g.TournamentID] {
			return fmt.Errorf("games[%d]: unknown tournament %q", i, *g.TournamentID)
		}
	}
	return nil
}

func gameEntryFrom(i int, raw map[string]any) (GameEntry, error) {
	entry := GameEntry{Scores: make(map[string]int, len(raw))}
	for key, value := range raw {
		switch key {
		case gameIDKey, tournamentIDKey:
			s, ok := value.(string)
			if !ok {
				return GameEntry{}, fmt.Errorf("games[%d]: %s must be a string, got %T", i, key, value)
			}
			if s == "" {
				continue
			}
			if key == gameIDKey {
				entry.ID = &s
			} else {
				entry.TournamentID = &s
			}
		default:
			score, ok := value.(int64)
			if !ok {
				return GameEntry{}, fmt.Errorf("games[%d]: score for %q must be an integer, got %T", i, key, value)
			}
			entry.Scores[key] = int(score)
		}
	}
	return entry, nil
}

// realnameOf reads `name = { realname = "Real Name" }`. Any other value,
// including a bare string, means the user has no real name.
func realnameOf(username string, info any) (*string, error) {
	table, ok := info.(map[string]any)
	if !ok {
		return nil, nil
	}
	raw, ok := table["realname"]
	if !ok {
		return nil, nil
	}
	name, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("users.%s: realname must be a string, got %T", username, raw)
	}
	if name == "" {
		return nil, nil
	}
	return &name, nil
}

// userOrder walks the TOML document and returns usernames in order of first
// appearance. Decoding into a map loses that order, and the first user is the
// current user.
func userOrder(data []byte) ([]string, error) {
	p := unstable.Parser{}
	p.Reset(data)

	var (
		table []string
		order []string
		seen  = make(map[string]bool)
	)
	record := func(path []string) {
		if len(path) >= 2 && path[0] == usersKey && !seen[path[1]] {
			seen[path[1]] = true
			order = append(order, path[1])
		}
	}

	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(expr.Key())
			record(table)
		case unstable.KeyValue:
			full := append(append([]string{}, table...), keyParts(expr.Key())...)
			record(full)
			// users = { alice = {...}, bob = {...} }
			if len(full) == 1 && full[0] == usersKey {
				if value := expr.Value(); value.Kind == unstable.InlineTable {
					it := value.Children()
					for it.Next() {
						record(append([]string{usersKey}, keyParts(it.Node().Key())...))
					}
				}
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return order, nil
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// completeOrder keeps the document order and appends, sorted, any decoded
// user the walk did not see.
func completeOrder(order []string, users map[string]any) []string {
	result := make([]string, 0, len(users))
	seen := make(map[string]bool, len(users))
	for _, name := range order {
		if _, ok := users[name]; ok && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	var rest []string
	for name := range users {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(result, rest...)
}
