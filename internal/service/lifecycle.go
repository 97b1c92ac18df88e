package service

import (
	"context"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/media"
	"portfolio-api/internal/models"
	"portfolio-api/internal/storage"
	pkgmodels "portfolio-api/pkg/models"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// mediaRepo is the storage a lifecycle needs for one table.
type mediaRepo[T any] interface {
	Insert(ctx context.Context, row *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, values map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// lifecycle holds the media ordering rules shared by projects, professionals
// and slides:
//
//   - add uploads first, then inserts the row;
//   - update writes the row first, then removes files it no longer references;
//   - delete removes the row first, then its files.
//
// Removing files is best effort. Failures are logged and never fail the call.
type lifecycle[T any] struct {
	kind     storage.Kind
	label    string
	repo     mediaRepo[T]
	files    Files
	notify   Notifier
	log      *zap.SugaredLogger
	media    func(*T) models.StringList
	setMedia func(*T, models.StringList)
}

func (l *lifecycle[T]) add(ctx context.Context, id string, row *T, uploads []storage.Upload) error {
	paths, err := l.saveAll(ctx, uploads)
	if err != nil {
		return err
	}
	l.setMedia(row, paths)

	if err := l.repo.Insert(ctx, row); err != nil {
		if len(paths) > 0 {
			l.log.Warnw("insert failed after upload, files left on disk", "id", id, "paths", paths, "error", err)
		}
		return err
	}

	l.log.Infow("added", "id", id, "media", len(paths))
	l.notify.Publish(pkgmodels.Event{Kind: string(l.kind), Action: pkgmodels.ActionCreated, ID: id})
	return nil
}

// update loads the row, lets changes compute the scalar columns, uploads the
// new files and writes the reconciled media list.
func (l *lifecycle[T]) update(
	ctx context.Context,
	id string,
	changes func(current *T) (map[string]any, error),
	kept []string,
	uploads []storage.Upload,
) error {
	current, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	values, err := changes(current)
	if err != nil {
		return err
	}

	uploaded, err := l.saveAll(ctx, uploads)
	if err != nil {
		return err
	}

	plan := media.Reconcile(l.media(current), kept, uploaded)
	values["media"] = models.StringList(plan.Final)

	n, err := l.repo.Update(ctx, id, values)
	if err != nil {
		if len(uploaded) > 0 {
			l.log.Warnw("update failed after upload, files left on disk", "id", id, "paths", uploaded, "error", err)
		}
		return err
	}
	if n == 0 {
		// The row went away between the read and the write.
		l.removeAll(ctx, uploaded)
		return apperrors.NotFound(l.label)
	}

	l.removeAll(ctx, plan.Delete)
	l.log.Infow("updated", "id", id, "kept", len(plan.Keep), "added", len(uploaded), "removed", len(plan.Delete))
	l.notify.Publish(pkgmodels.Event{Kind: string(l.kind), Action: pkgmodels.ActionUpdated, ID: id})
	return nil
}

func (l *lifecycle[T]) remove(ctx context.Context, id string) error {
	current, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	n, err := l.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		// A concurrent delete won; it owns the file cleanup.
		return apperrors.NotFound(l.label)
	}

	paths := l.media(current)
	l.removeAll(ctx, paths)
	l.log.Infow("deleted", "id", id, "media", len(paths))
	l.notify.Publish(pkgmodels.Event{Kind: string(l.kind), Action: pkgmodels.ActionDeleted, ID: id})
	return nil
}

// saveAll stores uploads in order. If one fails, the files this call already
// wrote are removed before returning.
func (l *lifecycle[T]) saveAll(ctx context.Context, uploads []storage.Upload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, up := range uploads {
		p, err := l.files.Save(ctx, l.kind, up)
		if err != nil {
			l.removeAll(ctx, paths)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// removeAll deletes paths concurrently and waits for every attempt. The
// caller's cancellation does not stop it; the row change is already durable.
func (l *lifecycle[T]) removeAll(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var wg conc.WaitGroup
	for _, p := range paths {
		wg.Go(func() {
			if err := l.files.Delete(ctx, p); err != nil {
				l.log.Errorw("failed to delete media file", "path", p, "error", err)
			}
		})
	}
	wg.Wait()
}
