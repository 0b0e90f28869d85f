package stats

import (
	"bytes"
	"maps"
	"slices"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const dateLayout = "2006-01-02"

// Date is a calendar date. It serializes as YYYY-MM-DD.
type Date struct {
	time.Time
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// UserGameStats is a win/draw/loss tally.
type UserGameStats struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// DailyStats is one day of a user's activity history.
type DailyStats struct {
	Date  Date
	Stats UserGameStats
}

// Activity is a user's recent history, most recent day first.
// It serializes as an object keyed by date, keeping that order.
type Activity []DailyStats

func (a Activity) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"` + day.Date.String() + `":`)
		stats, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(day.Stats)
		if err != nil {
			return nil, err
		}
		buf.Write(stats)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UserStats holds aggregate and recent statistics for one user.
type UserStats struct {
	Username        string        `json:"username"`
	Realname        *string       `json:"realname"`
	GameStats       UserGameStats `json:"gameStats"`
	TournamentStats UserGameStats `json:"tournamentStats"`
	Activity        Activity      `json:"activity"`
}

// GameResult describes one played game.
type GameResult struct {
	Date           time.Time      `json:"date"`
	GameID         string         `json:"gameId"`
	PlayerScores   map[string]int `json:"playerScores"`
	DurationMillis int            `json:"durationMillis"`
	TournamentID   *string        `json:"tournamentId"`
}

// Tournament groups games under a set of players and a single date.
type Tournament struct {
	Date         Date     `json:"date"`
	TournamentID string   `json:"tournamentId"`
	GameIDs      []string `json:"gameIds"`
	Players      []string `json:"players"`
}

// TournamentDetails is a Tournament with its games embedded in place of the id list.
type TournamentDetails struct {
	Date         Date         `json:"date"`
	TournamentID string       `json:"tournamentId"`
	Games        []GameResult `json:"games"`
	Players      []string     `json:"players"`
}

// Counts summarizes the size of a dataset.
type Counts struct {
	Users       int
	Games       int
	Tournaments int
}

func (u UserStats) clone() UserStats {
	u.Activity = slices.Clone(u.Activity)
	if u.Realname != nil {
		name := *u.Realname
		u.Realname = &name
	}
	return u
}

func (g GameResult) clone() GameResult {
	g.PlayerScores = maps.Clone(g.PlayerScores)
	if g.TournamentID != nil {
		id := *g.TournamentID
		g.TournamentID = &id
	}
	return g
}

func (t Tournament) clone() Tournament {
	t.GameIDs = slices.Clone(t.GameIDs)
	t.Players = slices.Clone(t.Players)
	return t
}
