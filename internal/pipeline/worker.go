package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/gridgest/internal/layout"
	"github.com/dgallion1/gridgest/internal/searchidx"
	"github.com/dgallion1/gridgest/internal/store"
)

// Worker processes a single layout ingestion job.
type Worker struct {
	factory *layout.Factory
	store   *store.Store
	idx     *searchidx.Client
	log     *slog.Logger

	maxConcurrentIndex int
}

func NewWorker(factory *layout.Factory, st *store.Store, idx *searchidx.Client, log *slog.Logger, maxIndex int) *Worker {
	return &Worker{
		factory:            factory,
		store:              st,
		idx:                idx,
		log:                log,
		maxConcurrentIndex: maxIndex,
	}
}

// Process runs the full ingestion pipeline for a job: build the model,
// dedup by content hash, persist, then index row text.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "layout_id", job.LayoutID)

	// Phase 1: Build the model. A malformed document fails the whole job;
	// there is no partial model to salvage.
	job.SetStatus(StatusBuilding, "building model")
	raw := job.RawDoc()
	doc, err := layout.Parse(bytes.NewReader(raw), w.factory)
	if err != nil {
		log.Error("build failed", "error", err)
		job.AddError(fmt.Sprintf("build: %s", err))
		job.SetStatus(StatusFailed, "building model")
		return
	}
	if job.Title == "" {
		job.Title = doc.Name
	}

	entries := indexEntries(doc, job.LayoutID)
	controls := doc.Controls()
	job.SetCounts(len(entries), len(controls))

	// Phase 2: Dedup by content hash of the raw document.
	hash := ContentHashHex(raw)
	job.SetContentHash(hash)
	if existing, err := w.store.FindByHash(ctx, hash); err != nil {
		log.Warn("dedup check failed, proceeding", "error", err)
	} else if existing != "" && existing != job.LayoutID && !job.Force {
		log.Info("duplicate layout, skipping", "existing_layout_id", existing)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 3: Persist.
	job.SetStatus(StatusStoring, "storing layout")
	rec := store.Record{
		ID:           job.LayoutID,
		Title:        job.Title,
		ContentHash:  hash,
		Raw:          raw,
		SearchText:   doc.SearchableText(),
		ControlCount: len(controls),
		Valid:        doc.IsValid(),
	}
	if err := w.store.Put(ctx, rec); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing layout")
		return
	}

	// Phase 4: Index row text with bounded concurrency.
	job.SetStatus(StatusIndexing, "indexing rows")
	if len(entries) == 0 {
		log.Info("no indexable rows")
		job.SetStatus(StatusCompleted, "done")
		return
	}

	sem := make(chan struct{}, w.maxConcurrentIndex)
	results := make(chan error, len(entries))
	for _, e := range entries {
		sem <- struct{}{}
		go func(e searchidx.Entry) {
			defer func() { <-sem }()
			var lastErr error
			for attempt := 0; attempt < MaxRetries; attempt++ {
				lastErr = w.idx.PutEntry(ctx, e)
				if lastErr == nil || !IsRetryable(lastErr) {
					break
				}
				log.Warn("retryable index error", "row_id", e.RowID, "attempt", attempt, "error", lastErr)
				select {
				case <-time.After(Backoff(attempt)):
				case <-ctx.Done():
					results <- ctx.Err()
					return
				}
			}
			results <- lastErr
		}(e)
	}

	hadErrors := false
	for range entries {
		if err := <-results; err != nil {
			job.AddError(fmt.Sprintf("index: %s", err))
			hadErrors = true
			continue
		}
		job.IncrRowsIndexed()
	}

	switch {
	case hadErrors && job.Snapshot().Progress.RowsIndexed == 0:
		job.SetStatus(StatusFailed, "indexing rows")
	case hadErrors:
		job.SetStatus(StatusPartial, "done with index errors")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("ingestion finished", "status", job.Snapshot().Status, "rows", len(entries))
}

// indexEntries flattens a model into one index entry per row with
// non-empty searchable text. The breadcrumb carries the document name and
// the row's label (or name) so results keep their structural context.
func indexEntries(doc *layout.Document, layoutID string) []searchidx.Entry {
	var entries []searchidx.Entry
	rowNum := 0
	for _, sec := range doc.Sections {
		for _, row := range sec.Rows {
			rowNum++
			text := rowText(row)
			if text == "" {
				continue
			}

			rowID := row.ID
			if rowID == "" {
				rowID = fmt.Sprintf("row-%d", rowNum)
			}

			var crumb []string
			if doc.Name != "" {
				crumb = append(crumb, doc.Name)
			}
			if label := rowLabel(row); label != "" {
				crumb = append(crumb, label)
			}

			var aliases []string
			seen := map[string]bool{}
			for _, c := range row.Controls() {
				a := c.Editor().Alias
				if a != "" && !seen[a] {
					seen[a] = true
					aliases = append(aliases, a)
				}
			}

			entries = append(entries, searchidx.Entry{
				LayoutID:   layoutID,
				RowID:      rowID,
				Breadcrumb: crumb,
				Text:       text,
				Editors:    aliases,
			})
		}
	}
	return entries
}

// rowText joins the row's area texts with spaces: the model's own
// concatenation is separator-free, which is right for rendering order but
// would glue words together in the index.
func rowText(row *layout.Row) string {
	var parts []string
	for _, a := range row.Areas {
		if t := strings.TrimSpace(a.SearchableText()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func rowLabel(row *layout.Row) string {
	if row.Label != "" {
		return row.Label
	}
	return row.Name
}
