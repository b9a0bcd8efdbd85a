package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"smashers.dev/pkg/sitegen/internal/adapter"
	m "smashers.dev/pkg/sitegen/internal/model"
	"smashers.dev/pkg/sitegen/internal/site"
)

// DefaultSingleVisitID is the upstream id of the single session membership.
const DefaultSingleVisitID = 2

// ClubSource is the upstream club API read by the snapshot.
type ClubSource interface {
	Memberships(ctx context.Context) ([]m.Membership, error)
	Membership(ctx context.Context, id int) (m.Membership, error)
	Sessions(ctx context.Context, date string) ([]m.Session, error)
	Locations(ctx context.Context) ([]m.Location, error)
}

// SnapshotArgs contains the arguments for capturing a data snapshot.
type SnapshotArgs struct {
	Output        m.Path
	SingleVisitID int
	// Date selects the schedule day in YYYY-MM-DD form. Empty means today.
	Date string
}

// Snapshotter captures live data into a file the renderer reads as static state.
type Snapshotter interface {
	Snapshot(ctx context.Context, args SnapshotArgs) (m.Snapshot, error)
}

type snapshotter struct {
	adapter.SiteFSAdapter
	ClubSource

	now func() time.Time
}

// NewSnapshotter creates a Snapshotter reading from source.
func NewSnapshotter(fsAdapter adapter.SiteFSAdapter, source ClubSource) Snapshotter {
	return &snapshotter{
		SiteFSAdapter: fsAdapter,
		ClubSource:    source,
		now:           time.Now,
	}
}

func fallbackSingleVisit(id int) m.Membership {
	return m.Membership{
		ID:           id,
		Name:         "Разовая тренировка",
		Type:         "single",
		Category:     m.CategoryAdults,
		Price:        site.DefaultBasePrice,
		SessionCount: 1,
		IsVisible:    true,
	}
}

// Snapshot fetches the membership list, the single visit membership, the
// day's sessions and the locations concurrently. Only the list is required.
// The single visit falls back to the default price; missing sessions or
// locations leave the static schedule in place.
func (s *snapshotter) Snapshot(ctx context.Context, args SnapshotArgs) (m.Snapshot, error) {
	singleID := args.SingleVisitID
	if singleID <= 0 {
		singleID = DefaultSingleVisitID
	}

	date := args.Date
	if date == "" {
		date = s.now().Format(time.DateOnly)
	}

	var (
		memberships []m.Membership
		single      m.Membership
		sessions    []m.Session
		locations   []m.Location
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		list, err := s.Memberships(groupCtx)
		if err != nil {
			return fmt.Errorf("fetch memberships: %w", err)
		}

		memberships = list

		return nil
	})

	group.Go(func() error {
		ms, err := s.Membership(groupCtx, singleID)
		if err != nil {
			slog.Warn("Single visit membership unavailable, using fallback", "id", singleID, "error", err)

			ms = fallbackSingleVisit(singleID)
		}

		single = ms

		return nil
	})

	group.Go(func() error {
		list, err := s.Sessions(groupCtx, date)
		if err != nil {
			slog.Warn("Sessions unavailable, keeping static schedule", "date", date, "error", err)
			return nil
		}

		sessions = list

		return nil
	})

	group.Go(func() error {
		list, err := s.Locations(groupCtx)
		if err != nil {
			slog.Warn("Locations unavailable, keeping static halls", "error", err)
			return nil
		}

		locations = list

		return nil
	})

	if err := group.Wait(); err != nil {
		slog.Error("Failed to capture snapshot", "error", err)
		return m.Snapshot{}, err
	}

	snap := m.Snapshot{
		FetchedAt:   s.now().UTC(),
		BasePrice:   single.Price,
		Memberships: mergeSingleVisit(memberships, single),
		Sessions:    sessions,
		Locations:   locations,
	}

	if args.Output == "" {
		return snap, nil
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return m.Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}

	if err := s.WriteFile(args.Output, append(data, '\n'), outputPerm); err != nil {
		slog.Error("Failed to write snapshot", "path", args.Output, "error", err)
		return m.Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}

	slog.Info("Snapshot written", "path", args.Output,
		"memberships", len(snap.Memberships), "sessions", len(snap.Sessions), "locations", len(snap.Locations))

	return snap, nil
}

func mergeSingleVisit(memberships []m.Membership, single m.Membership) []m.Membership {
	for _, ms := range memberships {
		if ms.ID == single.ID {
			return memberships
		}
	}

	return append(memberships, single)
}
