package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/alexanderramin/moodlog/internal/repository"
	"github.com/alexanderramin/moodlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogTask_PersistsTrimmedRecord(t *testing.T) {
	f := newFixture(t, nil)
	at := testNow.Add(-time.Hour)

	rec, err := f.log.LogTask(context.Background(), app.LogTaskRequest{
		Description: "  review PR  ",
		Emotions:    []domain.Emotion{domain.EmotionCalm, domain.EmotionGrateful},
		LoggedAt:    &at,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "review PR", rec.Description)
	assert.Equal(t, []int{2}, f.metrics.logged)

	now := testNow
	list, err := f.log.ListRecords(context.Background(), app.ListRecordsRequest{View: domain.ViewToday, Now: &now})
	require.NoError(t, err)
	require.Len(t, list.Records, 1)
	assert.Equal(t, rec.ID, list.Records[0].ID)
	assert.Equal(t, map[domain.Emotion]int{domain.EmotionCalm: 1, domain.EmotionGrateful: 1}, list.EmotionCounts)
}

func TestLogTask_RejectsInvalidInput(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.log.LogTask(context.Background(), app.LogTaskRequest{Description: " ", Emotions: []domain.Emotion{domain.EmotionCalm}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.log.LogTask(context.Background(), app.LogTaskRequest{Description: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.metrics.logged)
}

func TestLogTask_RollsBackWhenTagInsertFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	records := repository.NewSQLiteTaskRecordRepo(database)
	boom := errors.New("tag insert failed")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom}
	svc := NewTaskLogService(records, uow, nil)
	at := testNow.Add(-time.Hour)

	_, err := svc.LogTask(context.Background(), app.LogTaskRequest{
		Description: "deploy",
		Emotions:    []domain.Emotion{domain.EmotionStressed, domain.EmotionAnxious},
		LoggedAt:    &at,
	})
	assert.ErrorIs(t, err, boom)

	got, err := records.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	inWindow, err := records.ListBetween(context.Background(), testNow.Add(-24*time.Hour), testNow)
	require.NoError(t, err)
	assert.Empty(t, inWindow, "the task row must not survive a failed tag insert")
}

func TestRecentRecords_NewestFirstAndLimited(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)

	got, err := f.log.RecentRecords(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ship feature", got[0].Description)
	assert.Equal(t, "demo", got[1].Description)
	assert.ElementsMatch(t, []domain.Emotion{domain.EmotionEnergized, domain.EmotionProud}, got[1].Emotions)

	all, err := f.log.RecentRecords(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "tax forms", all[3].Description)
}

func TestRecentRecords_RejectsNonPositiveLimit(t *testing.T) {
	f := newFixture(t, nil)

	for _, limit := range []int{0, -3} {
		_, err := f.log.RecentRecords(context.Background(), limit)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "limit %d", limit)
	}
}

func TestGetRecord(t *testing.T) {
	f := newFixture(t, nil)
	rec, err := f.log.LogTask(context.Background(), app.LogTaskRequest{Description: "standup", Emotions: []domain.Emotion{domain.EmotionCalm}})
	require.NoError(t, err)

	got, err := f.log.GetRecord(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "standup", got.Description)
	assert.Equal(t, []domain.Emotion{domain.EmotionCalm}, got.Emotions)

	_, err = f.log.GetRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.log.GetRecord(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListRecords_DefaultsToToday(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)
	now := testNow

	list, err := f.log.ListRecords(context.Background(), app.ListRecordsRequest{Now: &now})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewToday, list.View)
	assert.Empty(t, list.Records)

	weekly, err := f.log.ListRecords(context.Background(), app.ListRecordsRequest{View: domain.ViewWeekly, Now: &now})
	require.NoError(t, err)
	require.Len(t, weekly.Records, 3)
	assert.Equal(t, "planning", weekly.Records[0].Description)
}

func TestDeleteRecord(t *testing.T) {
	f := newFixture(t, nil)
	rec, err := f.log.LogTask(context.Background(), app.LogTaskRequest{Description: "a", Emotions: []domain.Emotion{domain.EmotionBored}})
	require.NoError(t, err)

	require.NoError(t, f.log.DeleteRecord(context.Background(), rec.ID))
	assert.ErrorIs(t, f.log.DeleteRecord(context.Background(), rec.ID), repository.ErrNotFound)
	assert.ErrorIs(t, f.log.DeleteRecord(context.Background(), ""), domain.ErrInvalidInput)
}

func TestLogUseCaseObserver_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	database := testutil.NewTestDB(t)
	records := repository.NewSQLiteTaskRecordRepo(database)
	svc := NewTaskLogService(records, testutil.NewTestUoW(database), nil, NewLogUseCaseObserver(zap.New(core)))

	_, err := svc.LogTask(context.Background(), app.LogTaskRequest{Description: "a", Emotions: []domain.Emotion{domain.EmotionHappy}})
	require.NoError(t, err)
	_ = svc.DeleteRecord(context.Background(), "missing")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, "log-task", entries[0].ContextMap()["use_case"])
	assert.NotEmpty(t, entries[0].ContextMap()["record_id"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, false, entries[1].ContextMap()["success"])
}

func TestNewLogUseCaseObserver_NilLoggerIsNoop(t *testing.T) {
	_, ok := NewLogUseCaseObserver(nil).(NoopUseCaseObserver)
	assert.True(t, ok)
}
