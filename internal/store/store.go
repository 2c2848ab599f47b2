package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RosterIO/rosterd/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store persists shifts, providers, and calendars in a single JSON
// file. Writes go through a temp file plus rename, so a crash never
// leaves a half-written store behind.
type Store struct {
	mu   sync.RWMutex
	path string
	data fileData
}

type fileData struct {
	Shifts    []models.Shift    `json:"shifts"`
	Providers []models.Provider `json:"providers"`
	Calendars []models.Calendar `json:"calendars"`
}

// Open loads the store file at path, creating an empty store when the
// file does not exist yet.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", path, err)
	}
	return s, nil
}

// save must be called with s.mu held for writing.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Shifts

func (s *Store) Shifts() []models.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Shift, len(s.data.Shifts))
	copy(out, s.data.Shifts)
	return out
}

func (s *Store) Shift(id string) (models.Shift, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sh := range s.data.Shifts {
		if sh.ID == id {
			return sh, true
		}
	}
	return models.Shift{}, false
}

func (s *Store) CreateShift(sh models.Shift) (models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sh.ID == "" {
		sh.ID = uuid.NewString()
	}
	for _, existing := range s.data.Shifts {
		if existing.ID == sh.ID {
			return models.Shift{}, fmt.Errorf("shift %s already exists", sh.ID)
		}
	}
	s.data.Shifts = append(s.data.Shifts, sh)
	if err := s.save(); err != nil {
		s.data.Shifts = s.data.Shifts[:len(s.data.Shifts)-1]
		return models.Shift{}, err
	}
	return sh, nil
}

func (s *Store) UpdateShift(id string, sh models.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.data.Shifts {
		if existing.ID == id {
			sh.ID = id
			s.data.Shifts[i] = sh
			return s.save()
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteShift(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.data.Shifts {
		if existing.ID == id {
			s.data.Shifts = append(s.data.Shifts[:i], s.data.Shifts[i+1:]...)
			return s.save()
		}
	}
	return ErrNotFound
}

// Providers

func (s *Store) Providers() []models.Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Provider, len(s.data.Providers))
	copy(out, s.data.Providers)
	return out
}

func (s *Store) Provider(id string) (models.Provider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.Providers {
		if p.ID == id {
			return p, true
		}
	}
	return models.Provider{}, false
}

func (s *Store) CreateProvider(p models.Provider) (models.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	for _, existing := range s.data.Providers {
		if existing.ID == p.ID {
			return models.Provider{}, fmt.Errorf("provider %s already exists", p.ID)
		}
	}
	s.data.Providers = append(s.data.Providers, p)
	if err := s.save(); err != nil {
		s.data.Providers = s.data.Providers[:len(s.data.Providers)-1]
		return models.Provider{}, err
	}
	return p, nil
}

func (s *Store) UpdateProvider(id string, p models.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.data.Providers {
		if existing.ID == id {
			p.ID = id
			s.data.Providers[i] = p
			return s.save()
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteProvider(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.data.Providers {
		if existing.ID == id {
			s.data.Providers = append(s.data.Providers[:i], s.data.Providers[i+1:]...)
			return s.save()
		}
	}
	return ErrNotFound
}

// Calendars

func (s *Store) Calendars() []models.Calendar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Calendar, len(s.data.Calendars))
	copy(out, s.data.Calendars)
	return out
}

func (s *Store) Calendar(id string) (models.Calendar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.data.Calendars {
		if c.ID == id {
			return c, true
		}
	}
	return models.Calendar{}, false
}

func (s *Store) CreateCalendar(c models.Calendar) (models.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	for _, existing := range s.data.Calendars {
		if existing.ID == c.ID {
			return models.Calendar{}, fmt.Errorf("calendar %s already exists", c.ID)
		}
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.data.Calendars = append(s.data.Calendars, c)
	if err := s.save(); err != nil {
		s.data.Calendars = s.data.Calendars[:len(s.data.Calendars)-1]
		return models.Calendar{}, err
	}
	return c, nil
}

func (s *Store) UpdateCalendar(id string, c models.Calendar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.data.Calendars {
		if existing.ID == id {
			c.ID = id
			c.CreatedAt = existing.CreatedAt
			c.UpdatedAt = time.Now().UTC()
			s.data.Calendars[i] = c
			return s.save()
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteCalendar(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.data.Calendars {
		if existing.ID == id {
			s.data.Calendars = append(s.data.Calendars[:i], s.data.Calendars[i+1:]...)
			return s.save()
		}
	}
	return ErrNotFound
}
