package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smashers.dev/pkg/sitegen/internal/adapter"
	m "smashers.dev/pkg/sitegen/internal/model"
	"smashers.dev/pkg/sitegen/internal/site"
)

type fakeClubSource struct {
	list    []m.Membership
	listErr error
	single  map[int]m.Membership

	sessions     []m.Session
	sessionsErr  error
	sessionsDate string

	locations    []m.Location
	locationsErr error
}

func (f *fakeClubSource) Memberships(context.Context) ([]m.Membership, error) {
	return f.list, f.listErr
}

func (f *fakeClubSource) Membership(_ context.Context, id int) (m.Membership, error) {
	ms, ok := f.single[id]
	if !ok {
		return m.Membership{}, errors.New("not found")
	}

	return ms, nil
}

func (f *fakeClubSource) Sessions(_ context.Context, date string) ([]m.Session, error) {
	f.sessionsDate = date
	return f.sessions, f.sessionsErr
}

func (f *fakeClubSource) Locations(context.Context) ([]m.Location, error) {
	return f.locations, f.locationsErr
}

func TestSnapshot_WritesDataFile(t *testing.T) {
	single := m.Membership{ID: 2, Name: "Разовая", Category: m.CategoryAdults, Price: 1400, SessionCount: 1, IsVisible: true}
	source := &fakeClubSource{
		list: []m.Membership{
			{ID: 3, Name: "8 занятий", Category: m.CategoryAdults, Price: 8000, SessionCount: 8, IsVisible: true},
		},
		single: map[int]m.Membership{2: single},
	}
	output := m.Path(filepath.Join(t.TempDir(), "data", "snapshot.json"))

	snap, err := NewSnapshotter(adapter.NewLocalSiteFSAdapter(), source).Snapshot(context.Background(), SnapshotArgs{Output: output})
	require.NoError(t, err)

	assert.Equal(t, 1400, snap.BasePrice)
	require.Len(t, snap.Memberships, 2)
	assert.Equal(t, single, snap.Memberships[1])

	data, err := os.ReadFile(string(output))
	require.NoError(t, err)

	decoded, err := site.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Memberships, decoded.Memberships)
	assert.Equal(t, 1400, decoded.BasePrice)
}

func TestSnapshot_SingleVisitFallback(t *testing.T) {
	source := &fakeClubSource{}

	snap, err := NewSnapshotter(adapter.NewLocalSiteFSAdapter(), source).Snapshot(context.Background(), SnapshotArgs{})
	require.NoError(t, err)

	assert.Equal(t, site.DefaultBasePrice, snap.BasePrice)
	require.Len(t, snap.Memberships, 1)
	assert.Equal(t, DefaultSingleVisitID, snap.Memberships[0].ID)
	assert.Equal(t, "Разовая тренировка", snap.Memberships[0].Name)
}

func TestSnapshot_DoesNotDuplicateSingleVisit(t *testing.T) {
	single := m.Membership{ID: 2, Name: "Разовая", Price: 1200, SessionCount: 1, IsVisible: true}
	source := &fakeClubSource{list: []m.Membership{single}, single: map[int]m.Membership{2: single}}

	snap, err := NewSnapshotter(adapter.NewLocalSiteFSAdapter(), source).Snapshot(context.Background(), SnapshotArgs{})
	require.NoError(t, err)
	assert.Len(t, snap.Memberships, 1)
}

func TestSnapshot_ListFailureWritesNothing(t *testing.T) {
	source := &fakeClubSource{listErr: errors.New("upstream down")}
	output := filepath.Join(t.TempDir(), "snapshot.json")

	_, err := NewSnapshotter(adapter.NewLocalSiteFSAdapter(), source).Snapshot(context.Background(), SnapshotArgs{Output: m.Path(output)})
	require.ErrorContains(t, err, "upstream down")

	_, err = os.Stat(output)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSnapshot_CapturesSessionsAndLocations(t *testing.T) {
	evening := time.Date(2026, 10, 19, 19, 0, 0, 0, time.UTC)
	source := &fakeClubSource{
		list: []m.Membership{{ID: 2, Name: "Разовая", Price: 1300, SessionCount: 1, IsVisible: true}},
		sessions: []m.Session{
			{ID: 11, Datetime: evening, Location: m.Location{ID: 1, Name: "ЗАЛ А"}, Name: "Вечерняя", MaxSpots: 12, AvailableSpots: 2},
		},
		locations: []m.Location{{ID: 1, Name: "ЗАЛ А"}, {ID: 3, Name: "ЗАЛ В"}},
	}
	output := m.Path(filepath.Join(t.TempDir(), "snapshot.json"))

	snap, err := NewSnapshotter(adapter.NewLocalSiteFSAdapter(), source).Snapshot(context.Background(), SnapshotArgs{Output: output, Date: "2026-10-19"})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-19", source.sessionsDate)
	assert.Equal(t, source.sessions, snap.Sessions)
	assert.Equal(t, source.locations, snap.Locations)

	data, err := os.ReadFile(string(output))
	require.NoError(t, err)

	decoded, err := site.DecodeSnapshot(data)
	require.NoError(t, err)
	require.Len(t, decoded.Sessions, 1)
	assert.True(t, evening.Equal(decoded.Sessions[0].Datetime))
	assert.Equal(t, "ЗАЛ В", decoded.Locations[1].Name)
}

func TestSnapshot_ScheduleFailuresAreNotFatal(t *testing.T) {
	source := &fakeClubSource{
		list:         []m.Membership{{ID: 2, Name: "Разовая", Price: 1300, SessionCount: 1, IsVisible: true}},
		sessionsErr:  errors.New("sessions down"),
		locationsErr: errors.New("locations down"),
	}

	snap, err := NewSnapshotter(adapter.NewLocalSiteFSAdapter(), source).Snapshot(context.Background(), SnapshotArgs{})
	require.NoError(t, err)

	assert.Empty(t, snap.Sessions)
	assert.Empty(t, snap.Locations)
	assert.Len(t, snap.Memberships, 1)
}

func TestSnapshot_DefaultsDateToToday(t *testing.T) {
	source := &fakeClubSource{list: []m.Membership{}}
	s := NewSnapshotter(adapter.NewLocalSiteFSAdapter(), source).(*snapshotter)
	s.now = func() time.Time { return time.Date(2026, 3, 7, 9, 30, 0, 0, time.UTC) }

	_, err := s.Snapshot(context.Background(), SnapshotArgs{})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-07", source.sessionsDate)
}
