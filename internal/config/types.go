package config

// Config holds all process configuration for the application.
type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	MockConfigPath string `env:"MOCK_CONFIG" envDefault:"mockConfig.toml"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	// Today overrides the synthesis reference date (YYYY-MM-DD). Empty means the current date.
	Today string `env:"TODAY"`
}

// MockConfig is the validated content of the mock configuration file.
type MockConfig struct {
	Seed        int64
	Users       []UserEntry       `validate:"required,min=1,dive"`
	Games       []GameEntry       `validate:"dive"`
	Tournaments []TournamentEntry `validate:"dive"`
}

// UserEntry is one configured user. Order in MockConfig.Users follows the file.
type UserEntry struct {
	Username string `validate:"required"`
	Realname *string
}

// GameEntry is one configured game. ID and TournamentID are optional.
type GameEntry struct {
	ID           *string
	TournamentID *string
	Scores       map[string]int `validate:"required,min=1"`
}

// TournamentEntry is one configured tournament.
type TournamentEntry struct {
	ID      string   `toml:"id" validate:"required"`
	Players []string `toml:"players" validate:"required,dive,required"`
	Games   []string `toml:"games" validate:"dive,required"`
}

// CurrentUser is the default user for requests that don't name one.
func (c MockConfig) CurrentUser() string {
	if len(c.Users) == 0 {
		return ""
	}
	return c.Users[0].Username
}
