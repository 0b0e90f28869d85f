package export

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mauv0809/statsmock/internal/stats"
)

// Flatten converts a dataset into its serializable records, keeping the
// dataset's order.
func Flatten(meta Meta, ds stats.Dataset) Snapshot {
	snap := Snapshot{
		Seed:        meta.Seed,
		Today:       meta.Today,
		CurrentUser: meta.CurrentUser,
	}
	for _, u := range ds.Users() {
		user := User{
			Username:        u.Username,
			Realname:        u.Realname,
			GameStats:       tally(u.GameStats),
			TournamentStats: tally(u.TournamentStats),
			Activity:        make([]Day, 0, len(u.Activity)),
		}
		for _, day := range u.Activity {
			user.Activity = append(user.Activity, Day{Date: day.Date.String(), Stats: tally(day.Stats)})
		}
		snap.Users = append(snap.Users, user)
	}
	for _, g := range ds.Games() {
		game := Game{
			ID:             g.GameID,
			PlayedAt:       g.Date.UTC().Format(time.RFC3339),
			DurationMillis: g.DurationMillis,
			TournamentID:   g.TournamentID,
			Scores:         make([]Score, 0, len(g.PlayerScores)),
		}
		for _, username := range slices.Sorted(maps.Keys(g.PlayerScores)) {
			game.Scores = append(game.Scores, Score{Username: username, Score: g.PlayerScores[username]})
		}
		snap.Games = append(snap.Games, game)
	}
	for _, t := range ds.Tournaments() {
		snap.Tournaments = append(snap.Tournaments, Tournament{
			ID:      t.TournamentID,
			Date:    t.Date.String(),
			GameIDs: t.GameIDs,
			Players: t.Players,
		})
	}
	return snap
}

func tally(s stats.UserGameStats) Tally {
	return Tally{Wins: s.Wins, Draws: s.Draws, Losses: s.Losses}
}

// WriteMsgpack encodes the flattened dataset to w.
func WriteMsgpack(w io.Writer, meta Meta, ds stats.Dataset) error {
	snap := Flatten(meta, ds)
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	log.Info("Wrote msgpack snapshot", "users", len(snap.Users), "games", len(snap.Games), "tournaments", len(snap.Tournaments))
	return nil
}

// ReadMsgpack decodes a snapshot written by WriteMsgpack.
func ReadMsgpack(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// WriteSQL replaces the contents of the export tables with the dataset in a
// single transaction.
func WriteSQL(ctx context.Context, db *sql.DB, ds stats.Dataset) error {
	snap := Flatten(Meta{}, ds)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clearTables(ctx, tx); err != nil {
		return err
	}
	if err := insertUsers(ctx, tx, snap.Users); err != nil {
		return err
	}
	if err := insertTournaments(ctx, tx, snap.Tournaments); err != nil {
		return err
	}
	if err := insertGames(ctx, tx, snap.Games); err != nil {
		return err
	}
	if err := insertTournamentLinks(ctx, tx, snap.Tournaments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}
	log.Info("Exported dataset to database", "users", len(snap.Users), "games", len(snap.Games), "tournaments", len(snap.Tournaments))
	return nil
}

func clearTables(ctx context.Context, tx *sql.Tx) error {
	// Children first.
	for _, table := range []string{
		"tournament_players", "tournament_games", "game_scores", "games", "tournaments", "user_activity", "users",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func insertUsers(ctx context.Context, tx *sql.Tx, users []User) error {
	for i, u := range users {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (username, realname, position, game_wins, game_draws, game_losses,
				tournament_wins, tournament_draws, tournament_losses)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.Username, u.Realname, i,
			u.GameStats.Wins, u.GameStats.Draws, u.GameStats.Losses,
			u.TournamentStats.Wins, u.TournamentStats.Draws, u.TournamentStats.Losses,
		)
		if err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.Username, err)
		}
		for _, day := range u.Activity {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO user_activity (username, day, wins, draws, losses) VALUES (?, ?, ?, ?, ?)",
				u.Username, day.Date, day.Stats.Wins, day.Stats.Draws, day.Stats.Losses,
			)
			if err != nil {
				return fmt.Errorf("failed to insert activity for %s on %s: %w", u.Username, day.Date, err)
			}
		}
	}
	return nil
}

func insertTournaments(ctx context.Context, tx *sql.Tx, tournaments []Tournament) error {
	for i, t := range tournaments {
		_, err := tx.ExecContext(ctx, "INSERT INTO tournaments (id, day, position) VALUES (?, ?, ?)", t.ID, t.Date, i)
		if err != nil {
			return fmt.Errorf("failed to insert tournament %s: %w", t.ID, err)
		}
	}
	return nil
}

func insertGames(ctx context.Context, tx *sql.Tx, games []Game) error {
	for i, g := range games {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO games (id, played_at, duration_millis, tournament_id, position) VALUES (?, ?, ?, ?, ?)",
			g.ID, g.PlayedAt, g.DurationMillis, g.TournamentID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert game %s: %w", g.ID, err)
		}
		for _, s := range g.Scores {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO game_scores (game_id, username, score) VALUES (?, ?, ?)",
				g.ID, s.Username, s.Score,
			)
			if err != nil {
				return fmt.Errorf("failed to insert score of %s in %s: %w", s.Username, g.ID, err)
			}
		}
	}
	return nil
}

func insertTournamentLinks(ctx context.Context, tx *sql.Tx, tournaments []Tournament) error {
	for _, t := range tournaments {
		for i, gameID := range t.GameIDs {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO tournament_games (tournament_id, game_id, position) VALUES (?, ?, ?)",
				t.ID, gameID, i,
			)
			if err != nil {
				return fmt.Errorf("failed to link game %s to tournament %s: %w", gameID, t.ID, err)
			}
		}
		for i, player := range t.Players {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO tournament_players (tournament_id, username, position) VALUES (?, ?, ?)",
				t.ID, player, i,
			)
			if err != nil {
				return fmt.Errorf("failed to add player %s to tournament %s: %w", player, t.ID, err)
			}
		}
	}
	return nil
}
