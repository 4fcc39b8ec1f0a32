package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/alexanderramin/moodlog/internal/catalog"
	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/alexanderramin/moodlog/internal/intelligence"
	"github.com/alexanderramin/moodlog/internal/llm"
	"github.com/alexanderramin/moodlog/internal/repository"
	"github.com/alexanderramin/moodlog/internal/service"
	"github.com/alexanderramin/moodlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type stubLLM struct{ text string }

func (s stubLLM) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return &llm.GenerateResponse{Text: s.text}, nil
}

func (stubLLM) Available(context.Context) bool { return true }

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
// client may be nil to run without augmentation.
func testApp(t *testing.T, client llm.LLMClient) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	records := repository.NewSQLiteTaskRecordRepo(database)
	cat, err := catalog.Default()
	require.NoError(t, err)

	var narratives intelligence.NarrativeService
	if client != nil {
		narratives = intelligence.NewNarrativeService(client, nil)
	}

	return &App{
		Reflect: service.NewReflectionService(records, narratives, cat, nil),
		Tasks:   service.NewTaskLogService(records, testutil.NewTestUoW(database), nil),
		Now:     func() time.Time { return testNow },
	}
}

// seedWeek logs three upbeat tasks earlier in the week.
func seedWeek(t *testing.T, a *App) {
	t.Helper()
	for i, e := range []domain.Emotion{domain.EmotionExcited, domain.EmotionEnergized, domain.EmotionMotivated} {
		at := testNow.AddDate(0, 0, -(i + 1))
		_, err := a.Tasks.LogTask(context.Background(), app.LogTaskRequest{
			Description: "task",
			Emotions:    []domain.Emotion{e},
			LoggedAt:    &at,
		})
		require.NoError(t, err)
	}
}

func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- log ---

func TestLogCmd_WithEmotions(t *testing.T) {
	a := testApp(t, nil)

	out, err := executeCmd(t, a, "log", "review", "PR", "-e", "calm", "-e", "Proud")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Logged")
	assert.Contains(t, out, "review PR")
	assert.Contains(t, out, "proud")
}

func TestLogCmd_CommaSeparatedAndAt(t *testing.T) {
	a := testApp(t, nil)

	_, err := executeCmd(t, a, "log", "tax forms", "-e", "anxious,stressed", "--at", "09:30")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Today 09:30")
	assert.Contains(t, out, "tax forms")
	assert.Contains(t, out, "stressed")
}

func TestLogCmd_RequiresEmotionWhenNotInteractive(t *testing.T) {
	a := testApp(t, nil)

	_, err := executeCmd(t, a, "log", "something")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogCmd_RejectsUnknownEmotion(t *testing.T) {
	a := testApp(t, nil)

	_, err := executeCmd(t, a, "log", "something", "-e", "ecstatic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown emotion")
}

func TestLogCmd_RejectsBadAt(t *testing.T) {
	a := testApp(t, nil)

	_, err := executeCmd(t, a, "log", "something", "-e", "calm", "--at", "noonish")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogCmd_MissingDescription(t *testing.T) {
	a := testApp(t, nil)

	_, err := executeCmd(t, a, "log", "-e", "calm")
	assert.Error(t, err)
}

// --- list / delete / emotions ---

func TestListCmd_JSON(t *testing.T) {
	a := testApp(t, nil)
	seedWeek(t, a)

	out, err := executeCmd(t, a, "list", "--view", "weekly", "--json")
	require.NoError(t, err)

	var resp app.RecordsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, domain.ViewWeekly, resp.View)
	assert.Len(t, resp.Records, 3)
	assert.Equal(t, 1, resp.EmotionCounts[domain.EmotionEnergized])
}

func TestListCmd_EmptyWindow(t *testing.T) {
	a := testApp(t, nil)
	seedWeek(t, a)

	out, err := executeCmd(t, a, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks logged")
}

func TestListCmd_InvalidView(t *testing.T) {
	a := testApp(t, nil)

	_, err := executeCmd(t, a, "list", "--view", "yearly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown view")
}

func TestListCmd_Recent(t *testing.T) {
	a := testApp(t, nil)
	seedWeek(t, a)

	out, err := executeCmd(t, a, "list", "--recent", "2", "--json")
	require.NoError(t, err)

	var records []domain.TaskEmotionRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, []domain.Emotion{domain.EmotionExcited}, records[0].Emotions)
	assert.Equal(t, []domain.Emotion{domain.EmotionEnergized}, records[1].Emotions)

	out, err = executeCmd(t, a, "list", "--recent", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "RECENT")
	assert.Contains(t, out, "motivated")
}

func TestListCmd_RecentRejectsZeroAndView(t *testing.T) {
	a := testApp(t, nil)

	_, err := executeCmd(t, a, "list", "--recent", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = executeCmd(t, a, "list", "--recent", "3", "--view", "weekly")
	assert.Error(t, err)
}

func TestShowCmd(t *testing.T) {
	a := testApp(t, nil)
	rec, err := a.Tasks.LogTask(context.Background(), app.LogTaskRequest{
		Description: "write design doc",
		Emotions:    []domain.Emotion{domain.EmotionMotivated, domain.EmotionStressed},
	})
	require.NoError(t, err)

	out, err := executeCmd(t, a, "show", rec.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "write design doc")
	assert.Contains(t, out, rec.ID)
	assert.Contains(t, out, "stressed")

	out, err = executeCmd(t, a, "show", rec.ID, "--json")
	require.NoError(t, err)
	var got domain.TaskEmotionRecord
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, rec.ID, got.ID)

	_, err = executeCmd(t, a, "show", "no-such-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteCmd(t *testing.T) {
	a := testApp(t, nil)
	rec, err := a.Tasks.LogTask(context.Background(), app.LogTaskRequest{Description: "x", Emotions: []domain.Emotion{domain.EmotionBored}})
	require.NoError(t, err)

	out, err := executeCmd(t, a, "delete", rec.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Deleted")

	_, err = executeCmd(t, a, "delete", rec.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEmotionsCmd(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "emotions")
	require.NoError(t, err)
	for _, e := range domain.Emotions {
		assert.Contains(t, out, string(e))
	}

	out, err = executeCmd(t, testApp(t, nil), "emotions", "--json")
	require.NoError(t, err)
	var entries []taxonomyEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 5)
	assert.Equal(t, domain.BucketCalm, entries[0].Bucket)
	assert.True(t, entries[0].Positive)
	assert.Len(t, entries[4].Emotions, 3)
}

// --- reflect ---

func TestReflectCmd_EmptyToday(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "reflect")
	require.NoError(t, err)
	assert.Contains(t, out, "You haven't logged any tasks yet today. How are you feeling?")
	assert.Contains(t, out, "● TIRED")
}

func TestReflectCmd_WeeklyJSON(t *testing.T) {
	a := testApp(t, nil)
	seedWeek(t, a)

	out, err := executeCmd(t, a, "reflect", "--view", "weekly", "--json")
	require.NoError(t, err)

	var resp app.ReflectResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 3, resp.TaskCount)
	assert.InDelta(t, 1.0, resp.Breakdown.Excited, 1e-12)
	assert.Equal(t, domain.ResourceEnergized, resp.Bucket)
	assert.Equal(t, domain.NarrativeRules, resp.Narrative.Source)
}

func TestReflectCmd_AugmentUnavailableWarns(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "reflect", "--augment")
	require.NoError(t, err)
	assert.Contains(t, out, "Augmentation is not available")
	assert.Contains(t, out, "· rules")
}

func TestReflectCmd_Augmented(t *testing.T) {
	a := testApp(t, stubLLM{text: `{"text":"Steady and bright.","keywords":["steady"]}`})

	out, err := executeCmd(t, a, "reflect", "--augment")
	require.NoError(t, err)
	assert.Contains(t, out, "Steady and bright.")
	assert.Contains(t, out, "✦ augmented")
	assert.NotContains(t, out, "not available")
}

func TestReflectCmd_AugmentedStreamingWhenInteractive(t *testing.T) {
	a := testApp(t, stubLLM{text: `{"text":"Streamed take.","keywords":[]}`})
	a.IsInteractive = func() bool { return true }

	out, err := executeCmd(t, a, "reflect", "--augment")
	require.NoError(t, err)
	assert.Contains(t, out, "You haven't logged any tasks yet today.")
	assert.Contains(t, out, "ANOTHER TAKE")
	assert.Contains(t, out, "Streamed take.")
}

func TestRadarCmd_JSONWithRadius(t *testing.T) {
	a := testApp(t, nil)
	seedWeek(t, a)

	out, err := executeCmd(t, a, "radar", "--view", "weekly", "--radius", "50", "--json")
	require.NoError(t, err)

	var chart domain.RadarChart
	require.NoError(t, json.Unmarshal([]byte(out), &chart))
	assert.Equal(t, 50.0, chart.Radius)
	assert.Equal(t, 3, chart.TaskCount)
	require.Len(t, chart.Points, 5)
	assert.Equal(t, domain.BucketCalm, chart.Points[0].Emotion)
}

func TestRadarCmd_Table(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "radar")
	require.NoError(t, err)
	assert.Contains(t, out, "RADAR · TODAY")
	assert.Contains(t, out, "0.096")
}

func TestRadarCmd_NegativeRadius(t *testing.T) {
	_, err := executeCmd(t, testApp(t, nil), "radar", "--radius", "-5")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResourcesCmd(t *testing.T) {
	a := testApp(t, nil)
	seedWeek(t, a)

	out, err := executeCmd(t, a, "resources", "--view", "weekly")
	require.NoError(t, err)
	assert.Contains(t, out, "● ENERGIZED")
	assert.Contains(t, out, "tool")
}

func TestOverviewCmd(t *testing.T) {
	a := testApp(t, nil)
	seedWeek(t, a)

	out, err := executeCmd(t, a, "overview", "--json")
	require.NoError(t, err)

	var resp app.OverviewResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Views, 3)
	assert.Equal(t, 0, resp.Views[0].TaskCount)
	assert.Equal(t, 3, resp.Views[1].TaskCount)

	out, err = executeCmd(t, a, "overview")
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly")
}

func TestRootCmd_VerboseHook(t *testing.T) {
	a := testApp(t, nil)
	var verbose bool
	a.SetVerbose = func(v bool) { verbose = v }

	_, err := executeCmd(t, a, "--verbose", "emotions")
	require.NoError(t, err)
	assert.True(t, verbose)
}
