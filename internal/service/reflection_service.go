package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/moodlog/internal/analytics"
	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/alexanderramin/moodlog/internal/intelligence"
	"github.com/alexanderramin/moodlog/internal/repository"
	"golang.org/x/sync/errgroup"
)

type reflectionService struct {
	records    repository.TaskRecordRepo
	narratives intelligence.NarrativeService
	catalog    ResourceCatalog
	metrics    Metrics
	observer   UseCaseObserver
}

// NewReflectionService wires the record store to the analytics core. metrics
// may be nil.
func NewReflectionService(
	records repository.TaskRecordRepo,
	narratives intelligence.NarrativeService,
	catalog ResourceCatalog,
	metrics Metrics,
	observers ...UseCaseObserver,
) app.ReflectUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if narratives == nil {
		narratives = intelligence.NewNarrativeService(nil, nil)
	}
	return &reflectionService{
		records:    records,
		narratives: narratives,
		catalog:    catalog,
		metrics:    metrics,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *reflectionService) AugmentationAvailable(ctx context.Context) bool {
	return s.narratives.Available(ctx)
}

func (s *reflectionService) Reflect(ctx context.Context, req app.ReflectRequest) (resp *app.ReflectResponse, err error) {
	fields := map[string]any{"view": string(req.View), "augment": req.Augment}
	defer observe(ctx, s.observer, "reflect", time.Now(), fields, &err)

	resp, err = s.reflectRules(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.Augment {
		narrative, err := s.narratives.Narrate(ctx, narrativeRequest(resp))
		if err != nil {
			return nil, err
		}
		resp.Narrative = narrative
	}

	fields["task_count"] = resp.TaskCount
	fields["bucket"] = string(resp.Bucket)
	fields["narrative_source"] = string(resp.Narrative.Source)
	s.metrics.RecordReflection(ctx, resp.View, resp.Bucket, resp.Narrative.Source)
	return resp, nil
}

func (s *reflectionService) ReflectStream(ctx context.Context, req app.ReflectRequest) (resp *app.ReflectResponse, updates <-chan domain.NarrativeResult, err error) {
	fields := map[string]any{"view": string(req.View)}
	defer observe(ctx, s.observer, "reflect-stream", time.Now(), fields, &err)

	resp, err = s.reflectRules(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	_, updates, err = s.narratives.NarrateAsync(ctx, narrativeRequest(resp))
	if err != nil {
		return nil, nil, err
	}

	fields["task_count"] = resp.TaskCount
	fields["bucket"] = string(resp.Bucket)
	s.metrics.RecordReflection(ctx, resp.View, resp.Bucket, resp.Narrative.Source)
	return resp, updates, nil
}

func (s *reflectionService) Overview(ctx context.Context, req app.OverviewRequest) (resp *app.OverviewResponse, err error) {
	defer observe(ctx, s.observer, "overview", time.Now(), map[string]any{"augment": req.Augment}, &err)

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}

	views := make([]app.ReflectResponse, len(domain.Views))
	g, gctx := errgroup.WithContext(ctx)
	for i, view := range domain.Views {
		g.Go(func() error {
			r, err := s.Reflect(gctx, app.ReflectRequest{View: view, Now: &now, Augment: req.Augment})
			if err != nil {
				return fmt.Errorf("%s: %w", view, err)
			}
			views[i] = *r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &app.OverviewResponse{Views: views}, nil
}

// reflectRules computes everything except augmentation.
func (s *reflectionService) reflectRules(ctx context.Context, req app.ReflectRequest) (*app.ReflectResponse, error) {
	view := req.View
	if view == "" {
		view = domain.ViewToday
	}
	if !view.Valid() {
		return nil, &domain.InputError{Field: "view", Reason: fmt.Sprintf("unknown view %q", view)}
	}
	radius := req.Radius
	if radius == 0 {
		radius = analytics.DefaultRadius
	}

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	start, end := view.Window(now)

	records, err := s.records.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading records for %s: %w", view, err)
	}

	breakdown, count := analytics.Aggregate(records)

	radar, err := analytics.Radar(breakdown, count, view, radius)
	if err != nil {
		return nil, err
	}
	narrative, err := intelligence.DeterministicNarrative(intelligence.NarrativeRequest{
		Breakdown: breakdown,
		TaskCount: count,
		View:      view,
	})
	if err != nil {
		return nil, err
	}
	bucket, err := analytics.SelectBucket(breakdown, count)
	if err != nil {
		return nil, err
	}

	return &app.ReflectResponse{
		View:      view,
		Window:    app.Window{Start: start, End: end},
		TaskCount: count,
		Breakdown: breakdown,
		Radar:     radar,
		Narrative: narrative,
		Bucket:    bucket,
		Scores:    analytics.Scores(breakdown),
		Resources: s.catalog.Resources(bucket),
	}, nil
}

func narrativeRequest(resp *app.ReflectResponse) intelligence.NarrativeRequest {
	return intelligence.NarrativeRequest{
		Breakdown: resp.Breakdown,
		TaskCount: resp.TaskCount,
		View:      resp.View,
	}
}
