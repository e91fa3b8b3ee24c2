package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/muzaproject/muza-bot/internal/models"
)

// MemoryStorage mirrors the Postgres implementation for tests and the
// use_in_memory dev mode. Tag and interest reads are ordered by id, matching
// the SQL queries.
type MemoryStorage struct {
	mu sync.RWMutex

	users         map[int64]struct{}
	userInterests map[int64]map[int64]struct{}

	interestIDs   map[string]int64
	interestNames map[int64]string
	nextInterest  int64

	museums    map[int64]models.Museum
	museumTags map[int64]map[int64]struct{}
	classified map[int64]struct{}
	nextMuseum int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:         make(map[int64]struct{}),
		userInterests: make(map[int64]map[int64]struct{}),
		interestIDs:   make(map[string]int64),
		interestNames: make(map[int64]string),
		nextInterest:  1,
		museums:       make(map[int64]models.Museum),
		museumTags:    make(map[int64]map[int64]struct{}),
		classified:    make(map[int64]struct{}),
		nextMuseum:    1,
	}
}

func (s *MemoryStorage) UpsertUser(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[userID] = struct{}{}
	return nil
}

func (s *MemoryStorage) SetUserInterest(ctx context.Context, userID, interestID int64, present bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !present {
		if set, ok := s.userInterests[userID]; ok {
			delete(set, interestID)
		}
		return nil
	}

	s.users[userID] = struct{}{}
	set, ok := s.userInterests[userID]
	if !ok {
		set = make(map[int64]struct{})
		s.userInterests[userID] = set
	}
	set[interestID] = struct{}{}
	return nil
}

func (s *MemoryStorage) GetUserInterests(ctx context.Context, userID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.labelsByID(s.userInterests[userID]), nil
}

func (s *MemoryStorage) LookupInterestID(ctx context.Context, label string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.interestIDs[label]
	return id, ok, nil
}

func (s *MemoryStorage) FindMuseumsByCity(ctx context.Context, city string, limit int) ([]models.Museum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.museums))
	for id, m := range s.museums {
		if strings.EqualFold(m.City, city) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var museums []models.Museum
	for _, id := range ids {
		if len(museums) == limit {
			break
		}
		museums = append(museums, s.museums[id])
	}
	return museums, nil
}

func (s *MemoryStorage) GetMuseumTags(ctx context.Context, museumID int64) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, classified := s.classified[museumID]
	return s.labelsByID(s.museumTags[museumID]), classified, nil
}

func (s *MemoryStorage) AddMuseumTag(ctx context.Context, museumID, interestID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.museumTags[museumID]
	if !ok {
		set = make(map[int64]struct{})
		s.museumTags[museumID] = set
	}
	set[interestID] = struct{}{}
	return nil
}

func (s *MemoryStorage) MarkMuseumTagged(ctx context.Context, museumID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.classified[museumID] = struct{}{}
	return nil
}

func (s *MemoryStorage) SeedInterests(ctx context.Context, labels []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, label := range labels {
		if _, ok := s.interestIDs[label]; ok {
			continue
		}
		id := s.nextInterest
		s.nextInterest++
		s.interestIDs[label] = id
		s.interestNames[id] = label
	}
	return nil
}

func (s *MemoryStorage) AddMuseum(ctx context.Context, museum *models.Museum) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	museum.ID = s.nextMuseum
	s.nextMuseum++
	s.museums[museum.ID] = *museum
	return nil
}

func (s *MemoryStorage) CountMuseums(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.museums), nil
}

func (s *MemoryStorage) Close() error {
	return nil
}

// labelsByID resolves a set of interest ids into labels ordered by id.
// Caller must hold at least a read lock.
func (s *MemoryStorage) labelsByID(set map[int64]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, s.interestNames[id])
	}
	return labels
}
