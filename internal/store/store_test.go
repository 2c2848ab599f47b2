package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosterIO/rosterd/internal/models"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestOpenMissingFile(t *testing.T) {
	s, _ := openTestStore(t)
	assert.Empty(t, s.Shifts())
	assert.Empty(t, s.Providers())
	assert.Empty(t, s.Calendars())
}

func TestShiftCRUD(t *testing.T) {
	s, _ := openTestStore(t)

	created, err := s.CreateShift(models.Shift{Name: "Day", Date: "2025-01-06", StartTime: "08:00", EndTime: "16:00"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, ok := s.Shift(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Day", got.Name)

	created.Name = "Day A"
	require.NoError(t, s.UpdateShift(created.ID, created))
	got, _ = s.Shift(created.ID)
	assert.Equal(t, "Day A", got.Name)

	require.NoError(t, s.DeleteShift(created.ID))
	_, ok = s.Shift(created.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, s.UpdateShift("nope", created), ErrNotFound)
	assert.ErrorIs(t, s.DeleteShift("nope"), ErrNotFound)
}

func TestCreateShiftDuplicateID(t *testing.T) {
	s, _ := openTestStore(t)
	_, err := s.CreateShift(models.Shift{ID: "s1", Name: "Day"})
	require.NoError(t, err)
	_, err = s.CreateShift(models.Shift{ID: "s1", Name: "Other"})
	assert.Error(t, err)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)

	_, err := s.CreateProvider(models.Provider{ID: "p1", Name: "Alice", MaxShiftsPerDay: 2})
	require.NoError(t, err)
	cal, err := s.CreateCalendar(models.Calendar{Name: "January", Days: []string{"2025-01-06"}})
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)

	p, ok := reopened.Provider("p1")
	require.True(t, ok)
	assert.Equal(t, "Alice", p.Name)

	c, ok := reopened.Calendar(cal.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"2025-01-06"}, c.Days)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestUpdateCalendarKeepsCreatedAt(t *testing.T) {
	s, _ := openTestStore(t)
	cal, err := s.CreateCalendar(models.Calendar{Name: "January", Days: []string{"2025-01-06"}})
	require.NoError(t, err)

	cal.Days = append(cal.Days, "2025-01-07")
	require.NoError(t, s.UpdateCalendar(cal.ID, cal))

	got, ok := s.Calendar(cal.ID)
	require.True(t, ok)
	assert.Equal(t, cal.CreatedAt, got.CreatedAt)
	assert.Len(t, got.Days, 2)
}
