package service

import (
	"context"
	"time"

	"portfolio-api/internal/media"
	"portfolio-api/internal/storage"

	"go.uber.org/zap"
)

// Referencer lists the media paths a table still points at.
type Referencer interface {
	ReferencedMedia(ctx context.Context) ([]string, error)
}

// StoredFiles is the part of the file store the sweeper needs.
type StoredFiles interface {
	List(kind storage.Kind) ([]string, error)
	ModTime(rel string) (time.Time, error)
	Delete(ctx context.Context, rel string) error
}

// Sweeper finds files under the uploads directory that no record references,
// such as uploads left behind when an insert failed.
//
// Files younger than minAge are never touched: an add or update may have
// written them and not yet stored the row that lists them.
type Sweeper struct {
	files  StoredFiles
	refs   map[storage.Kind]Referencer
	minAge time.Duration
	log    *zap.SugaredLogger
	now    func() time.Time
}

func NewSweeper(files StoredFiles, refs map[storage.Kind]Referencer, minAge time.Duration, log *zap.SugaredLogger) *Sweeper {
	return &Sweeper{
		files:  files,
		refs:   refs,
		minAge: minAge,
		log:    log.Named("sweeper"),
		now:    time.Now,
	}
}

type SweepReport struct {
	Scanned int
	Orphans []string
	Recent  int // unreferenced but younger than the minimum age
	Failed  []string
}

// Sweep deletes every unreferenced file older than the minimum age, or only
// reports them when dryRun is set. A failed delete is recorded and the sweep
// goes on.
func (s *Sweeper) Sweep(ctx context.Context, dryRun bool) (SweepReport, error) {
	var report SweepReport
	for _, kind := range []storage.Kind{storage.KindProjects, storage.KindProfessionals, storage.KindSlides} {
		ref, ok := s.refs[kind]
		if !ok {
			continue
		}
		referenced, err := ref.ReferencedMedia(ctx)
		if err != nil {
			return report, err
		}
		inUse := make(map[string]struct{}, len(referenced))
		for _, p := range media.NormalizeAll(referenced) {
			inUse[p] = struct{}{}
		}

		stored, err := s.files.List(kind)
		if err != nil {
			return report, err
		}
		report.Scanned += len(stored)

		for _, p := range stored {
			if _, ok := inUse[media.Normalize(p)]; ok {
				continue
			}
			written, err := s.files.ModTime(p)
			if err != nil {
				s.log.Warnw("failed to stat file, skipping", "path", p, "error", err)
				continue
			}
			if s.now().Sub(written) < s.minAge {
				report.Recent++
				continue
			}
			report.Orphans = append(report.Orphans, p)
			if dryRun {
				s.log.Infow("orphaned file", "path", p)
				continue
			}
			if err := s.files.Delete(ctx, p); err != nil {
				s.log.Warnw("failed to delete orphaned file", "path", p, "error", err)
				report.Failed = append(report.Failed, p)
				continue
			}
			s.log.Infow("deleted orphaned file", "path", p)
		}
	}
	return report, nil
}
