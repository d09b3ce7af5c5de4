package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/anatolykoptev/go_profile/internal/engine/profile"
)

const janeURL = "https://www.linkedin.com/in/janedoe/"

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "snapshots.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func snapshot(title string) *profile.Snapshot {
	return &profile.Snapshot{
		URL:       janeURL,
		BasicInfo: profile.BasicInfo{Name: "Jane Doe", Headline: "Engineer"},
		Experiences: []profile.Entry[profile.Experience]{
			{Ordinal: 1, Record: profile.Experience{
				Ordinal:     1,
				Institution: profile.Institution{Name: "Acme Corp"},
				Title:       title,
			}},
			{Ordinal: 2, Fault: &profile.Fault{Kind: profile.KindExperience, Ordinal: 2, Error: "Failed to extract experiences #2: details node is empty"}},
		},
		PrimaryEmployer: "Acme Corp",
		PrimaryTitle:    title,
	}
}

func TestLatestEmpty(t *testing.T) {
	s := openTemp(t)
	_, err := s.Latest(context.Background(), janeURL)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Latest error = %v, want ErrNotFound", err)
	}

	recs, err := s.List(context.Background(), janeURL, 0, false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("List = %v, want empty non-nil slice", recs)
	}
}

func TestSaveAndLatest(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	rec, created, err := s.Save(ctx, janeURL, snapshot("Engineer"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !created || rec.ID <= 0 {
		t.Fatalf("Save = id %d created %v, want new record", rec.ID, created)
	}
	if rec.Company != "Acme Corp" || rec.JobTitle != "Engineer" || rec.FaultCount != 1 {
		t.Errorf("summary = %+v", rec)
	}

	latest, err := s.Latest(ctx, janeURL)
	if err != nil {
		t.Fatalf("Latest error: %v", err)
	}
	if latest.ID != rec.ID {
		t.Errorf("Latest ID = %d, want %d", latest.ID, rec.ID)
	}

	snap, err := latest.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if snap.URL != janeURL {
		t.Errorf("URL = %q, want %q", snap.URL, janeURL)
	}
	if len(snap.Experiences) != 2 || !snap.Experiences[1].Failed() {
		t.Fatalf("Experiences = %+v, want record then fault", snap.Experiences)
	}
	if snap.Experiences[1].Fault.Ordinal != 2 {
		t.Errorf("fault ordinal = %d, want 2", snap.Experiences[1].Fault.Ordinal)
	}
}

func TestSaveSkipsIdenticalSnapshot(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	first, _, err := s.Save(ctx, janeURL, snapshot("Engineer"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	again, created, err := s.Save(ctx, janeURL, snapshot("Engineer"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if created {
		t.Error("identical snapshot stored twice")
	}
	if again.ID != first.ID {
		t.Errorf("ID = %d, want %d", again.ID, first.ID)
	}

	changed, created, err := s.Save(ctx, janeURL, snapshot("Staff Engineer"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !created || changed.ID == first.ID {
		t.Errorf("changed snapshot not stored: %+v created=%v", changed, created)
	}
}

func TestSaveConcurrentIdenticalStoredOnce(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	const workers = 8
	var (
		wg      sync.WaitGroup
		created atomic.Int32
		errs    = make(chan error, workers)
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.Save(ctx, janeURL, snapshot("Engineer"))
			if err != nil {
				errs <- err
				return
			}
			if ok {
				created.Add(1)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Save error: %v", err)
	}

	if got := created.Load(); got != 1 {
		t.Errorf("created = %d, want 1", got)
	}
	recs, err := s.List(ctx, janeURL, 10, false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("stored %d records, want 1", len(recs))
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	for _, title := range []string{"Intern", "Engineer", "Staff Engineer"} {
		if _, _, err := s.Save(ctx, janeURL, snapshot(title)); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}
	if _, _, err := s.Save(ctx, "https://www.linkedin.com/in/other/", snapshot("Other")); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	recs, err := s.List(ctx, janeURL, 2, false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].JobTitle != "Staff Engineer" || recs[1].JobTitle != "Engineer" {
		t.Errorf("order = %q, %q", recs[0].JobTitle, recs[1].JobTitle)
	}
	if recs[0].Profile != nil {
		t.Error("profile body loaded without withBody")
	}

	full, err := s.List(ctx, janeURL, 10, true)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(full) != 3 || len(full[0].Profile) == 0 {
		t.Errorf("List(withBody) = %d records, body %d bytes", len(full), len(full[0].Profile))
	}
}

func TestSaveRequiresInput(t *testing.T) {
	s := openTemp(t)
	if _, _, err := s.Save(context.Background(), "", snapshot("x")); err == nil {
		t.Error("expected error for empty url")
	}
	if _, _, err := s.Save(context.Background(), janeURL, nil); err == nil {
		t.Error("expected error for nil snapshot")
	}
}
