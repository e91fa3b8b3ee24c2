package bot

import "sync"

// session is the ephemeral per-user dialog context: the category currently
// being browsed and whether the next free-text message is a city name.
// Every event for a user runs under mu, so two events for the same user can
// never interleave; events for different users proceed independently.
type session struct {
	mu           sync.Mutex
	category     string
	awaitingCity bool
}

type sessions struct {
	mu     sync.Mutex
	byUser map[int64]*session
}

func newSessions() *sessions {
	return &sessions{byUser: make(map[int64]*session)}
}

// get returns the user's session, creating it lazily.
func (s *sessions) get(userID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byUser[userID]
	if !ok {
		sess = &session{}
		s.byUser[userID] = sess
	}
	return sess
}

// drop discards a session once the conversation reaches a terminal state.
func (s *sessions) drop(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byUser, userID)
}
