package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/RostHarcha/clickup-tracker/pkg/timeutil"
)

const dateLayout = "02.01.06"

// String renders the report as plain text: the date range, the per-project
// and per-day tables side by side, and a summary block with the hourly
// rate, total hours and payment.
func (r *Report) String() string {
	projects := table.NewWriter()
	projects.AppendHeader(table.Row{"Project", "Time"})
	for _, pt := range r.ProjectTime() {
		projects.AppendRow(table.Row{pt.Project, timeutil.FormatSpan(pt.Duration)})
	}

	daily := table.NewWriter()
	daily.AppendHeader(table.Row{"Date", "Time"})
	for _, dt := range r.DateTime() {
		daily.AppendRow(table.Row{dt.Date.Format(dateLayout), timeutil.FormatSpan(dt.Duration)})
	}

	summary := table.NewWriter()
	summary.AppendHeader(table.Row{"Hourly rate", "Hours", "Payment"})
	summary.AppendRow(table.Row{
		r.HourlyRate.String(),
		r.TotalHours().StringFixed(2),
		fmt.Sprintf("%d", r.Payment()),
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", r.FromDate.Format(dateLayout), r.ToDate.Format(dateLayout))
	b.WriteString(sideBySide(projects.Render(), daily.Render(), "  "))
	b.WriteString("\n")
	b.WriteString(summary.Render())
	b.WriteString("\n")
	return b.String()
}

// sideBySide joins two rendered blocks line by line, padding the left block
// to a constant width so the right column stays aligned.
func sideBySide(left, right, gap string) string {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	width := 0
	for _, line := range leftLines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}

	n := len(leftLines)
	if len(rightLines) > n {
		n = len(rightLines)
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		b.WriteString(l)
		if r != "" {
			b.WriteString(strings.Repeat(" ", width-len([]rune(l))))
			b.WriteString(gap)
			b.WriteString(r)
		}
		b.WriteString("\n")
	}
	return b.String()
}
