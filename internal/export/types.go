package export

// Snapshot is the flattened, serializable form of a synthesized dataset.
type Snapshot struct {
	Seed        int64        `msgpack:"seed"`
	Today       string       `msgpack:"today"`
	CurrentUser string       `msgpack:"currentUser"`
	Users       []User       `msgpack:"users"`
	Games       []Game       `msgpack:"games"`
	Tournaments []Tournament `msgpack:"tournaments"`
}

type Tally struct {
	Wins   int `msgpack:"wins"`
	Draws  int `msgpack:"draws"`
	Losses int `msgpack:"losses"`
}

type Day struct {
	Date  string `msgpack:"date"`
	Stats Tally  `msgpack:"stats"`
}

type User struct {
	Username        string  `msgpack:"username"`
	Realname        *string `msgpack:"realname"`
	GameStats       Tally   `msgpack:"gameStats"`
	TournamentStats Tally   `msgpack:"tournamentStats"`
	Activity        []Day   `msgpack:"activity"`
}

type Score struct {
	Username string `msgpack:"username"`
	Score    int    `msgpack:"score"`
}

type Game struct {
	ID             string  `msgpack:"gameId"`
	PlayedAt       string  `msgpack:"date"`
	DurationMillis int     `msgpack:"durationMillis"`
	TournamentID   *string `msgpack:"tournamentId"`
	// Scores are sorted by username.
	Scores []Score `msgpack:"scores"`
}

type Tournament struct {
	ID      string   `msgpack:"tournamentId"`
	Date    string   `msgpack:"date"`
	GameIDs []string `msgpack:"gameIds"`
	Players []string `msgpack:"players"`
}

// Meta describes the run that produced a dataset.
type Meta struct {
	Seed        int64
	Today       string
	CurrentUser string
}
