package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/alexanderramin/moodlog/internal/catalog"
	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/alexanderramin/moodlog/internal/intelligence"
	"github.com/alexanderramin/moodlog/internal/llm"
	"github.com/alexanderramin/moodlog/internal/repository"
	"github.com/alexanderramin/moodlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type fakeLLM struct {
	text string
	err  error
}

func (f *fakeLLM) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.text}, nil
}

func (f *fakeLLM) Available(context.Context) bool { return f.err == nil }

type recordedReflection struct {
	view   domain.ViewGranularity
	bucket domain.ResourceBucketKey
	source domain.NarrativeSource
}

type fakeMetrics struct {
	reflections chan recordedReflection
	logged      []int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{reflections: make(chan recordedReflection, 16)}
}

func (m *fakeMetrics) RecordReflection(_ context.Context, v domain.ViewGranularity, b domain.ResourceBucketKey, s domain.NarrativeSource) {
	m.reflections <- recordedReflection{v, b, s}
}

func (m *fakeMetrics) RecordLogged(_ context.Context, n int) { m.logged = append(m.logged, n) }

type fixture struct {
	reflect app.ReflectUseCase
	log     app.TaskLogUseCase
	metrics *fakeMetrics
}

func newFixture(t *testing.T, client llm.LLMClient) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	records := repository.NewSQLiteTaskRecordRepo(database)
	cat, err := catalog.Default()
	require.NoError(t, err)

	var narratives intelligence.NarrativeService
	if client != nil {
		narratives = intelligence.NewNarrativeService(client, nil)
	}
	metrics := newFakeMetrics()
	return fixture{
		reflect: NewReflectionService(records, narratives, cat, metrics),
		log:     NewTaskLogService(records, testutil.NewTestUoW(database), metrics),
		metrics: metrics,
	}
}

func (f fixture) seed(t *testing.T) {
	t.Helper()
	entries := []struct {
		desc     string
		at       time.Time
		emotions []domain.Emotion
	}{
		{"ship feature", testNow.AddDate(0, 0, -1), []domain.Emotion{domain.EmotionExcited}},
		{"demo", testNow.AddDate(0, 0, -2), []domain.Emotion{domain.EmotionEnergized, domain.EmotionProud}},
		{"planning", testNow.AddDate(0, 0, -3), []domain.Emotion{domain.EmotionMotivated}},
		{"tax forms", testNow.AddDate(0, 0, -14), []domain.Emotion{domain.EmotionAnxious}},
	}
	for _, e := range entries {
		at := e.at
		_, err := f.log.LogTask(context.Background(), app.LogTaskRequest{Description: e.desc, Emotions: e.emotions, LoggedAt: &at})
		require.NoError(t, err)
	}
}

func TestReflect_EmptyToday(t *testing.T) {
	f := newFixture(t, nil)
	now := testNow

	resp, err := f.reflect.Reflect(context.Background(), app.ReflectRequest{View: domain.ViewToday, Now: &now})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.TaskCount)
	assert.True(t, resp.Breakdown.IsZero())
	assert.Equal(t, "You haven't logged any tasks yet today. How are you feeling?", resp.Narrative.Text)
	assert.Equal(t, domain.NarrativeRules, resp.Narrative.Source)
	assert.Equal(t, domain.ResourceTired, resp.Bucket)
	assert.Len(t, resp.Resources, 4)
	require.Len(t, resp.Radar.Points, 5)
	for _, p := range resp.Radar.Points {
		assert.InDelta(t, 0.08*1.2, p.VisualValue, 1e-12)
	}
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), resp.Window.Start)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), resp.Window.End)
}

func TestReflect_WeeklyEnergized(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)
	now := testNow

	resp, err := f.reflect.Reflect(context.Background(), app.ReflectRequest{View: domain.ViewWeekly, Now: &now})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TaskCount)
	assert.InDelta(t, 1.0, resp.Breakdown.Excited, 1e-12)
	assert.InDelta(t, 1.0/3, resp.Breakdown.Happy, 1e-12)
	assert.Zero(t, resp.Breakdown.Anxious)
	assert.Equal(t, domain.ResourceEnergized, resp.Bucket)
	assert.InDelta(t, 1.9, resp.Scores.Energy, 1e-12)
	assert.Equal(t, domain.ViewWeekly, resp.Radar.View)
	assert.Equal(t, 100.0, resp.Radar.Radius)
	assert.Equal(t, domain.ResourceEnergized, (<-f.metrics.reflections).bucket)
}

func TestReflect_CustomRadiusAndInvalidView(t *testing.T) {
	f := newFixture(t, nil)
	now := testNow

	resp, err := f.reflect.Reflect(context.Background(), app.ReflectRequest{View: domain.ViewMonthly, Now: &now, Radius: 50})
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.Radar.Radius)

	_, err = f.reflect.Reflect(context.Background(), app.ReflectRequest{View: "yearly", Now: &now})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.reflect.Reflect(context.Background(), app.ReflectRequest{View: domain.ViewToday, Now: &now, Radius: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReflect_AugmentedNarrative(t *testing.T) {
	f := newFixture(t, &fakeLLM{text: `{"text":"A lively week.","keywords":["lively"]}`})
	f.seed(t)
	now := testNow

	resp, err := f.reflect.Reflect(context.Background(), app.ReflectRequest{View: domain.ViewWeekly, Now: &now, Augment: true})
	require.NoError(t, err)

	assert.Equal(t, "A lively week.", resp.Narrative.Text)
	assert.Equal(t, domain.NarrativeAugmented, resp.Narrative.Source)
	assert.Equal(t, []string{"lively"}, resp.Narrative.Keywords)
	assert.Equal(t, domain.NarrativeAugmented, (<-f.metrics.reflections).source)
}

func TestReflect_AugmentFailureKeepsRules(t *testing.T) {
	f := newFixture(t, &fakeLLM{err: llm.ErrProviderUnavailable})
	now := testNow

	assert.False(t, f.reflect.AugmentationAvailable(context.Background()))

	resp, err := f.reflect.Reflect(context.Background(), app.ReflectRequest{View: domain.ViewToday, Now: &now, Augment: true})
	require.NoError(t, err)
	assert.Equal(t, domain.NarrativeRules, resp.Narrative.Source)
	assert.Equal(t, "You haven't logged any tasks yet today. How are you feeling?", resp.Narrative.Text)
}

func TestReflect_WithoutAugmentSkipsGateway(t *testing.T) {
	f := newFixture(t, &fakeLLM{text: `{"text":"should not appear","keywords":[]}`})
	now := testNow

	resp, err := f.reflect.Reflect(context.Background(), app.ReflectRequest{View: domain.ViewToday, Now: &now})
	require.NoError(t, err)
	assert.Equal(t, domain.NarrativeRules, resp.Narrative.Source)
}

func TestReflectStream_RulesThenAugmented(t *testing.T) {
	// The test database lives until cleanup, after this check runs.
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	f := newFixture(t, &fakeLLM{text: `{"text":"Streamed.","keywords":[]}`})
	now := testNow

	resp, updates, err := f.reflect.ReflectStream(context.Background(), app.ReflectRequest{View: domain.ViewToday, Now: &now})
	require.NoError(t, err)
	assert.Equal(t, domain.NarrativeRules, resp.Narrative.Source)

	var got []domain.NarrativeResult
	for u := range updates {
		got = append(got, u)
	}
	require.Len(t, got, 1)
	assert.Equal(t, "Streamed.", got[0].Text)
}

func TestReflectStream_NoGatewayClosesImmediately(t *testing.T) {
	f := newFixture(t, nil)
	now := testNow

	_, updates, err := f.reflect.ReflectStream(context.Background(), app.ReflectRequest{View: domain.ViewWeekly, Now: &now})
	require.NoError(t, err)
	_, ok := <-updates
	assert.False(t, ok)
}

func TestOverview_AllViewsInOrder(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)
	now := testNow

	resp, err := f.reflect.Overview(context.Background(), app.OverviewRequest{Now: &now})
	require.NoError(t, err)
	require.Len(t, resp.Views, 3)

	assert.Equal(t, domain.ViewToday, resp.Views[0].View)
	assert.Equal(t, 0, resp.Views[0].TaskCount)
	assert.Equal(t, domain.ViewWeekly, resp.Views[1].View)
	assert.Equal(t, 3, resp.Views[1].TaskCount)
	assert.Equal(t, domain.ViewMonthly, resp.Views[2].View)
	assert.Equal(t, 4, resp.Views[2].TaskCount)
	assert.InDelta(t, 0.25, resp.Views[2].Breakdown.Anxious, 1e-12)
}

func TestOverview_PropagatesStoreError(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	boom := errors.New("disk gone")
	svc := NewReflectionService(failingRecords{err: boom}, nil, cat, nil)

	_, err = svc.Overview(context.Background(), app.OverviewRequest{})
	assert.ErrorIs(t, err, boom)
}

type failingRecords struct {
	repository.TaskRecordRepo
	err error
}

func (f failingRecords) ListBetween(context.Context, time.Time, time.Time) ([]domain.TaskEmotionRecord, error) {
	return nil, f.err
}
