package service

import (
	"context"
	"testing"
	"time"

	"portfolio-api/internal/logger"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSweeper(db *gorm.DB, files StoredFiles) *Sweeper {
	return NewSweeper(files, map[storage.Kind]Referencer{
		storage.KindProjects:      repository.NewProjectRepository(db),
		storage.KindProfessionals: repository.NewProfessionalRepository(db),
		storage.KindSlides:        repository.NewSlideRepository(db),
	}, time.Hour, logger.Nop())
}

func TestSweepRemovesOnlyUnreferencedFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.projects.Add(ctx, ProjectFields{Title: ptr("Kept")}, uploads("a.png"))
	require.NoError(t, err)
	_, err = f.slides.Add(ctx, SlideFields{Title: ptr("Hero")}, uploads("s.png"))
	require.NoError(t, err)

	orphan, err := f.store.Save(ctx, storage.KindProjects, uploads("lost.png")[0])
	require.NoError(t, err)
	slideOrphan, err := f.store.Save(ctx, storage.KindSlides, uploads("lost.png")[0])
	require.NoError(t, err)

	sweeper := newSweeper(f.db, f.store)
	sweeper.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	report, err := sweeper.Sweep(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Scanned)
	assert.ElementsMatch(t, []string{orphan, slideOrphan}, report.Orphans)
	assert.True(t, f.exists(t, orphan), "dry run must not delete")

	report, err = sweeper.Sweep(ctx, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{orphan, slideOrphan}, report.Orphans)
	assert.Empty(t, report.Failed)
	assert.False(t, f.exists(t, orphan))
	assert.False(t, f.exists(t, slideOrphan))

	report, err = sweeper.Sweep(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Empty(t, report.Orphans)
}

func TestSweepKeepsRecentFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fresh, err := f.store.Save(ctx, storage.KindProfessionals, uploads("fresh.png")[0])
	require.NoError(t, err)

	report, err := newSweeper(f.db, f.store).Sweep(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, report.Orphans)
	assert.Equal(t, 1, report.Recent)
	assert.True(t, f.exists(t, fresh))
}

// sweepingFiles runs a sweep after every save, while the caller has not yet
// stored the row that references the file.
type sweepingFiles struct {
	Files
	t       *testing.T
	sweeper *Sweeper
}

func (s *sweepingFiles) Save(ctx context.Context, kind storage.Kind, up storage.Upload) (string, error) {
	rel, err := s.Files.Save(ctx, kind, up)
	if err == nil {
		_, sweepErr := s.sweeper.Sweep(ctx, false)
		require.NoError(s.t, sweepErr)
	}
	return rel, err
}

func TestSweepDuringAddKeepsUploads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	files := &sweepingFiles{Files: f.store, t: t, sweeper: newSweeper(f.db, f.store)}
	projects := NewProjectService(repository.NewProjectRepository(f.db), files, nil, logger.Nop())

	id, err := projects.Add(ctx, ProjectFields{Title: ptr("In flight")}, uploads("a.png", "b.png"))
	require.NoError(t, err)

	got, err := projects.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Media, 2)
	for _, p := range got.Media {
		assert.True(t, f.exists(t, p), p)
	}
}
