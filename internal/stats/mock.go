package stats

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CurrentUserValue    string
	GetUserStatsFunc    func(username string) (UserStats, error)
	GetGameFunc         func(gameID string) (GameResult, error)
	GetTournamentFunc   func(tournamentID string) (TournamentDetails, error)
	ListGamesFunc       func(username string, page, pageSize int) ([]GameResult, error)
	ListTournamentsFunc func(username string, page, pageSize int) ([]TournamentDetails, error)

	// Call records
	ListGamesCalls       []ListCall
	ListTournamentsCalls []ListCall
}

// ListCall holds the arguments for a call to ListGames or ListTournaments.
type ListCall struct {
	Username string
	Page     int
	PageSize int
}

var _ Store = (*MockStore)(nil)

// NewMockStore creates a new mock instance whose current user is currentUser.
func NewMockStore(currentUser string) *MockStore {
	return &MockStore{CurrentUserValue: currentUser}
}

func (m *MockStore) CurrentUser() string {
	return m.CurrentUserValue
}

func (m *MockStore) GetUserStats(username string) (UserStats, error) {
	if m.GetUserStatsFunc != nil {
		return m.GetUserStatsFunc(username)
	}
	return UserStats{}, ErrUserNotFound
}

func (m *MockStore) GetGame(gameID string) (GameResult, error) {
	if m.GetGameFunc != nil {
		return m.GetGameFunc(gameID)
	}
	return GameResult{}, ErrGameNotFound
}

func (m *MockStore) GetTournament(tournamentID string) (TournamentDetails, error) {
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(tournamentID)
	}
	return TournamentDetails{}, ErrTournamentNotFound
}

func (m *MockStore) ListGames(username string, page, pageSize int) ([]GameResult, error) {
	m.mu.Lock()
	m.ListGamesCalls = append(m.ListGamesCalls, ListCall{Username: username, Page: page, PageSize: pageSize})
	m.mu.Unlock()
	if m.ListGamesFunc != nil {
		return m.ListGamesFunc(username, page, pageSize)
	}
	return []GameResult{}, nil
}

func (m *MockStore) ListTournaments(username string, page, pageSize int) ([]TournamentDetails, error) {
	m.mu.Lock()
	m.ListTournamentsCalls = append(m.ListTournamentsCalls, ListCall{Username: username, Page: page, PageSize: pageSize})
	m.mu.Unlock()
	if m.ListTournamentsFunc != nil {
		return m.ListTournamentsFunc(username, page, pageSize)
	}
	return []TournamentDetails{}, nil
}

func (m *MockStore) Counts() Counts {
	return Counts{}
}
