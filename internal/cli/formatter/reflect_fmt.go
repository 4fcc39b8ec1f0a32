package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/alexanderramin/moodlog/internal/domain"
)

const barWidth = 20

// FormatReflection renders a full reflection: narrative, bucket shares and
// the recommended resources.
func FormatReflection(resp *app.ReflectResponse) string {
	var b strings.Builder

	title := fmt.Sprintf("%s · %s", Title(string(resp.View)), WindowLabel(resp.Window.Start, resp.Window.End))
	b.WriteString(RenderBox(title, FormatNarrative(resp.Narrative, resp.TaskCount)))
	b.WriteString("\n\n")

	b.WriteString(Header("Breakdown"))
	b.WriteString("\n")
	b.WriteString(FormatBreakdown(resp.Breakdown))
	b.WriteString("\n")

	b.WriteString(FormatResources(resp.Bucket, resp.Resources))
	return b.String()
}

// FormatNarrative renders the narrative sentence with its source and keywords.
func FormatNarrative(n domain.NarrativeResult, taskCount int) string {
	var b strings.Builder
	b.WriteString(StyleFg.Render(n.Text))
	b.WriteString("\n\n")
	b.WriteString(Dim(TaskCountLabel(taskCount)) + "  " + SourceBadge(n.Source))
	if len(n.Keywords) > 0 {
		b.WriteString("  " + StylePurple.Render(strings.Join(n.Keywords, " · ")))
	}
	return b.String()
}

// FormatBreakdown renders one share bar per bucket in canonical order.
func FormatBreakdown(bd domain.EmotionBreakdown) string {
	var b strings.Builder
	for _, bucket := range domain.Buckets {
		fmt.Fprintf(&b, "  %s %s\n",
			BucketStyle(bucket).Render(fmt.Sprintf("%-11s", bucket)),
			RenderBar(bd.Value(bucket), barWidth, BucketStyle(bucket)))
	}
	return b.String()
}

// FormatRadar renders the chart geometry as a table.
func FormatRadar(chart domain.RadarChart) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Radar · %s", chart.View)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		Dim(TaskCountLabel(chart.TaskCount)),
		Dim(fmt.Sprintf("scale ×%.3f", chart.ScaleFactor)),
		Dim(fmt.Sprintf("radius %.0f", chart.Radius)))

	rows := make([][]string, 0, len(chart.Points))
	for _, p := range chart.Points {
		rows = append(rows, []string{
			BucketStyle(p.Emotion).Render(string(p.Emotion)),
			fmt.Sprintf("%.3f", p.Value),
			fmt.Sprintf("%.3f", p.VisualValue),
			fmt.Sprintf("%.3f", p.Angle),
			fmt.Sprintf("%.2f", p.X),
			fmt.Sprintf("%.2f", p.Y),
		})
	}
	b.WriteString(RenderTable([]string{"AXIS", "RAW", "VISUAL", "ANGLE", "X", "Y"}, rows))
	return b.String()
}

// FormatResources renders the selected bucket and its curated resources.
func FormatResources(key domain.ResourceBucketKey, resources []domain.Resource) string {
	var b strings.Builder
	b.WriteString(Header("Resources"))
	b.WriteString("\n")
	b.WriteString(BucketIndicator(key))
	b.WriteString("\n\n")
	for _, r := range resources {
		fmt.Fprintf(&b, "  %s  %s\n", StyleYellow.Render(fmt.Sprintf("%-7s", r.Category)), Bold(r.Title))
		fmt.Fprintf(&b, "           %s\n", Dim(r.Description))
		if r.URL != "" {
			fmt.Fprintf(&b, "           %s\n", StyleBlue.Render(r.URL))
		}
	}
	return b.String()
}

// FormatOverview renders a compact row per view.
func FormatOverview(resp *app.OverviewResponse) string {
	var b strings.Builder
	b.WriteString(Header("Overview"))
	b.WriteString("\n")

	rows := make([][]string, 0, len(resp.Views))
	for _, v := range resp.Views {
		dominant := Dim("--")
		if v.TaskCount > 0 {
			top := v.Breakdown.Dominant()
			dominant = BucketStyle(top.Bucket).Render(fmt.Sprintf("%s %.0f%%", top.Bucket, top.Value*100))
		}
		rows = append(rows, []string{
			Title(string(v.View)),
			fmt.Sprintf("%d", v.TaskCount),
			dominant,
			BucketIndicator(v.Bucket),
		})
	}
	b.WriteString(RenderTable([]string{"VIEW", "TASKS", "DOMINANT", "BUCKET"}, rows))

	for _, v := range resp.Views {
		fmt.Fprintf(&b, "\n%s %s\n", StyleHeader.Render(Title(string(v.View))+":"), StyleFg.Render(v.Narrative.Text))
	}
	return b.String()
}
