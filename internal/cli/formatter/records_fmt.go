package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/alexanderramin/moodlog/internal/domain"
)

// FormatRecords renders the records of a view followed by per-emotion counts.
func FormatRecords(resp *app.RecordsResponse, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s · %s", resp.View, WindowLabel(resp.Window.Start, resp.Window.End))))
	b.WriteString("\n")

	if len(resp.Records) == 0 {
		b.WriteString(Dim("No tasks logged in this window."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(recordTable(resp.Records, now))
	b.WriteString("\n")
	b.WriteString(FormatEmotionCounts(resp.EmotionCounts))
	return b.String()
}

// FormatRecentRecords renders the newest records, newest first.
func FormatRecentRecords(records []domain.TaskEmotionRecord, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Recent"))
	b.WriteString("\n")
	if len(records) == 0 {
		b.WriteString(Dim("No tasks logged yet."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(recordTable(records, now))
	return b.String()
}

// FormatRecord renders a single record with its buckets.
func FormatRecord(rec *domain.TaskEmotionRecord, now time.Time) string {
	local := rec.LoggedAt.In(now.Location())
	buckets := make([]string, 0, len(domain.Buckets))
	for _, bucket := range rec.Buckets() {
		buckets = append(buckets, BucketStyle(bucket).Render(string(bucket)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Bold(rec.Description))
	fmt.Fprintf(&b, "  %s %s\n", Dim("id      "), rec.ID)
	fmt.Fprintf(&b, "  %s %s (%s)\n", Dim("logged  "), local.Format("Mon Jan 2 15:04"), RelativeDateFrom(local, now))
	fmt.Fprintf(&b, "  %s %s\n", Dim("emotions"), EmotionList(rec.Emotions))
	fmt.Fprintf(&b, "  %s %s\n", Dim("buckets "), strings.Join(buckets, Dim(", ")))
	return b.String()
}

func recordTable(records []domain.TaskEmotionRecord, now time.Time) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		local := r.LoggedAt.In(now.Location())
		rows = append(rows, []string{
			Dim(r.ID),
			fmt.Sprintf("%s %s", RelativeDateFrom(local, now), local.Format("15:04")),
			Truncate(r.Description, 40),
			EmotionList(r.Emotions),
		})
	}
	return RenderTable([]string{"ID", "WHEN", "TASK", "EMOTIONS"}, rows)
}

// FormatEmotionCounts renders counts in taxonomy order, skipping zeros.
func FormatEmotionCounts(counts map[domain.Emotion]int) string {
	parts := make([]string, 0, len(counts))
	for _, e := range domain.Emotions {
		if n := counts[e]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", EmotionLabel(e), Dim(fmt.Sprintf("×%d", n))))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "  ") + "\n"
}

// FormatLogged confirms a newly logged record.
func FormatLogged(rec *domain.TaskEmotionRecord) string {
	return fmt.Sprintf("%s %s %s %s\n",
		StyleGreen.Render("✔ Logged"),
		Dim(rec.ID),
		Bold(rec.Description),
		EmotionList(rec.Emotions))
}

// FormatTaxonomy lists every emotion grouped under its bucket.
func FormatTaxonomy() string {
	var b strings.Builder
	b.WriteString(Header("Emotions"))
	b.WriteString("\n")

	rows := make([][]string, 0, len(domain.Buckets))
	for _, bucket := range domain.Buckets {
		var names []string
		for _, e := range domain.Emotions {
			if eb, _ := e.Bucket(); eb == bucket {
				names = append(names, string(e))
			}
		}
		tone := Dim("negative")
		if bucket.Positive() {
			tone = Dim("positive")
		}
		rows = append(rows, []string{
			BucketStyle(bucket).Render(string(bucket)),
			tone,
			strings.Join(names, ", "),
		})
	}
	b.WriteString(RenderTable([]string{"BUCKET", "TONE", "EMOTIONS"}, rows))
	return b.String()
}
