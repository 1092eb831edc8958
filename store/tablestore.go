package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/minaorangina/makao/game"
	"github.com/minaorangina/makao/ranking"
)

var (
	ErrUnknownTableID = errors.New("unknown table ID")
	ErrTableExists    = errors.New("table already exists")
)

const (
	tableIDLength = 6
	// attempts at drawing a free table ID before giving up
	maxIDAttempts = 10
)

var tableIDLetters = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// TableStore keeps every open Makao table
type TableStore interface {
	CreateTable() (string, *game.Session, error)
	AddTable(tableID string, session *game.Session) error
	FindTable(tableID string) (*game.Session, bool)
	DeleteTable(tableID string) error
	Tables() []string
	Ranking() *ranking.Ranking
}

// InMemoryTableStore maps table id to game session
type InMemoryTableStore struct {
	mu      sync.RWMutex
	tables  map[string]*game.Session
	ranking *ranking.Ranking
	newID   func() string
	log     logrus.FieldLogger
}

type Opts struct {
	// Ranking is shared by every table. Nil means an in-memory ranking.
	Ranking *ranking.Ranking
	Logger  logrus.FieldLogger
	// NewID draws table ids. Defaults to NewTableID.
	NewID func() string
}

// NewInMemoryTableStore constructs an InMemoryTableStore
func NewInMemoryTableStore(opts Opts) *InMemoryTableStore {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	rk := opts.Ranking
	if rk == nil {
		rk = ranking.New(nil, logger)
	}
	newID := opts.NewID
	if newID == nil {
		newID = NewTableID
	}

	return &InMemoryTableStore{
		tables:  map[string]*game.Session{},
		ranking: rk,
		newID:   newID,
		log:     logger.WithField("component", "store"),
	}
}

// NewTableID returns six upper-case letters drawn from a fresh uuid
func NewTableID() string {
	seed := uuid.NewV4()

	code := make([]byte, tableIDLength)
	for i := range code {
		code[i] = tableIDLetters[int(seed[i])%len(tableIDLetters)]
	}

	return string(code)
}

// CreateTable opens a new empty table under a fresh id
func (s *InMemoryTableStore) CreateTable() (string, *game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if _, exists := s.tables[id]; exists {
			continue
		}

		session := game.NewSession(game.Opts{
			TableID: id,
			Ranking: s.ranking,
			Logger:  s.log,
		})
		s.tables[id] = session

		s.log.WithField("table", id).Info("table created")
		return id, session, nil
	}

	return "", nil, fmt.Errorf("%w: no free id after %d attempts", ErrTableExists, maxIDAttempts)
}

// AddTable registers an existing session
func (s *InMemoryTableStore) AddTable(tableID string, session *game.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tables[tableID]; exists {
		return fmt.Errorf("%w: %s", ErrTableExists, tableID)
	}

	s.tables[tableID] = session
	return nil
}

func (s *InMemoryTableStore) FindTable(tableID string) (*game.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.tables[tableID]
	return session, ok
}

func (s *InMemoryTableStore) DeleteTable(tableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[tableID]; !ok {
		return ErrUnknownTableID
	}

	delete(s.tables, tableID)
	s.log.WithField("table", tableID).Info("table deleted")
	return nil
}

// Tables lists the open table ids in order
func (s *InMemoryTableStore) Tables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.tables))
	for id := range s.tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

func (s *InMemoryTableStore) Ranking() *ranking.Ranking {
	return s.ranking
}
