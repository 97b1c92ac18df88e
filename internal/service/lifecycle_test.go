package service

import (
	"context"
	"errors"
	"testing"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// racingRepo answers writes as if another request changed the row in between.
type racingRepo struct {
	mediaRepo[models.Project]
	updateErr error
	updateN   int64
	deleteN   int64
}

func (r *racingRepo) Update(ctx context.Context, id string, values map[string]any) (int64, error) {
	return r.updateN, r.updateErr
}

func (r *racingRepo) Delete(ctx context.Context, id string) (int64, error) {
	return r.deleteN, nil
}

func addProjectWithMedia(t *testing.T, f *fixture) (string, []string) {
	t.Helper()
	id, err := f.projects.Add(context.Background(), ProjectFields{Title: ptr("Racing")}, uploads("a.png", "b.png"))
	require.NoError(t, err)
	got, err := f.projects.Get(context.Background(), id)
	require.NoError(t, err)
	return id, got.Media.Strings()
}

func TestUpdateOfVanishedRowRemovesOnlyNewUploads(t *testing.T) {
	f := newFixture(t)
	id, stored := addProjectWithMedia(t, f)
	f.projects.lc.repo = &racingRepo{mediaRepo: f.projects.lc.repo}

	err := f.projects.Update(context.Background(), id, ProjectFields{}, stored[:1], uploads("c.png"))
	assert.True(t, apperrors.IsNotFound(err))

	require.Len(t, f.files.saved, 3)
	fresh := f.files.saved[2]
	assert.Equal(t, []string{fresh}, f.files.deletes())
	assert.False(t, f.exists(t, fresh))
	for _, p := range stored {
		assert.True(t, f.exists(t, p), p)
	}
}

func TestFailedUpdateRemovesNoStoredMedia(t *testing.T) {
	f := newFixture(t)
	id, stored := addProjectWithMedia(t, f)
	f.projects.lc.repo = &racingRepo{
		mediaRepo: f.projects.lc.repo,
		updateErr: apperrors.Database("Failed to update project", errors.New("disk full")),
	}

	err := f.projects.Update(context.Background(), id, ProjectFields{}, nil, uploads("c.png"))
	assert.True(t, apperrors.IsDatabase(err))

	assert.Empty(t, f.files.deletes())
	for _, p := range stored {
		assert.True(t, f.exists(t, p), p)
	}
	assert.Len(t, f.notifier.events, 1, "only the add is announced")
}

func TestDeleteLostToConcurrentDeleteLeavesFiles(t *testing.T) {
	f := newFixture(t)
	id, stored := addProjectWithMedia(t, f)
	f.projects.lc.repo = &racingRepo{mediaRepo: f.projects.lc.repo}

	err := f.projects.Delete(context.Background(), id)
	assert.True(t, apperrors.IsNotFound(err))

	assert.Empty(t, f.files.deletes())
	for _, p := range stored {
		assert.True(t, f.exists(t, p), p)
	}
}
