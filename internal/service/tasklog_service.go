package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/alexanderramin/moodlog/internal/db"
	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/alexanderramin/moodlog/internal/repository"
	"github.com/google/uuid"
)

type taskLogService struct {
	records  repository.TaskRecordRepo
	uow      db.UnitOfWork
	metrics  Metrics
	observer UseCaseObserver
}

// NewTaskLogService creates the use cases that write and browse records.
// metrics may be nil.
func NewTaskLogService(records repository.TaskRecordRepo, uow db.UnitOfWork, metrics Metrics, observers ...UseCaseObserver) app.TaskLogUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &taskLogService{
		records:  records,
		uow:      uow,
		metrics:  metrics,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskLogService) LogTask(ctx context.Context, req app.LogTaskRequest) (rec *domain.TaskEmotionRecord, err error) {
	fields := map[string]any{"emotions": len(req.Emotions)}
	defer observe(ctx, s.observer, "log-task", time.Now(), fields, &err)

	now := time.Now().UTC()
	loggedAt := now
	if req.LoggedAt != nil {
		loggedAt = req.LoggedAt.UTC()
	}

	rec = &domain.TaskEmotionRecord{
		ID:          uuid.New().String(),
		Description: strings.TrimSpace(req.Description),
		LoggedAt:    loggedAt,
		Emotions:    req.Emotions,
		CreatedAt:   now,
	}
	if err = rec.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTaskRecordRepo(tx).Create(ctx, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("logging task: %w", err)
	}

	fields["record_id"] = rec.ID
	s.metrics.RecordLogged(ctx, len(rec.Emotions))
	return rec, nil
}

func (s *taskLogService) ListRecords(ctx context.Context, req app.ListRecordsRequest) (resp *app.RecordsResponse, err error) {
	defer observe(ctx, s.observer, "list-records", time.Now(), map[string]any{"view": string(req.View)}, &err)

	view := req.View
	if view == "" {
		view = domain.ViewToday
	}
	if !view.Valid() {
		return nil, &domain.InputError{Field: "view", Reason: fmt.Sprintf("unknown view %q", view)}
	}
	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	start, end := view.Window(now)

	records, err := s.records.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	counts, err := s.records.EmotionCounts(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("counting emotions: %w", err)
	}

	return &app.RecordsResponse{
		View:          view,
		Window:        app.Window{Start: start, End: end},
		Records:       records,
		EmotionCounts: counts,
	}, nil
}

func (s *taskLogService) RecentRecords(ctx context.Context, limit int) (records []domain.TaskEmotionRecord, err error) {
	defer observe(ctx, s.observer, "recent-records", time.Now(), map[string]any{"limit": limit}, &err)

	if limit <= 0 {
		return nil, &domain.InputError{Field: "limit", Reason: fmt.Sprintf("must be positive, got %d", limit)}
	}
	records, err = s.records.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent records: %w", err)
	}
	return records, nil
}

func (s *taskLogService) GetRecord(ctx context.Context, id string) (rec *domain.TaskEmotionRecord, err error) {
	defer observe(ctx, s.observer, "get-record", time.Now(), map[string]any{"record_id": id}, &err)

	if strings.TrimSpace(id) == "" {
		return nil, &domain.InputError{Field: "id", Reason: "must not be empty"}
	}
	return s.records.GetByID(ctx, id)
}

func (s *taskLogService) DeleteRecord(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-record", time.Now(), map[string]any{"record_id": id}, &err)

	if strings.TrimSpace(id) == "" {
		return &domain.InputError{Field: "id", Reason: "must not be empty"}
	}
	return s.records.Delete(ctx, id)
}
