package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/scheduler"
)

const loadBarWidth = 10

// FormatSchedule renders one block per day: the date, a load bar against
// that day's capacity, then the day's entries in allocation order.
func FormatSchedule(schedule domain.Schedule, cfg domain.CapacityConfig) string {
	if len(schedule) == 0 {
		return Dim("Nothing scheduled.") + "\n"
	}

	nameWidth := 0
	for _, day := range schedule {
		for _, e := range day.Entries {
			if n := len([]rune(e.SubjectName)); n > nameWidth {
				nameWidth = n
			}
		}
	}

	var b strings.Builder
	for _, day := range schedule {
		fmt.Fprintf(&b, "%s %s  %s\n",
			Bold(day.DayOfWeek.String()[:3]),
			Bold(day.Date.Format(domain.DateLayout)),
			RenderLoad(day.TotalHours, scheduler.DailyCapacity(day.Date, cfg), loadBarWidth))
		for _, e := range day.Entries {
			pad := strings.Repeat(" ", nameWidth-len([]rune(e.SubjectName)))
			fmt.Fprintf(&b, "  %s%s  %5sh  %s\n",
				e.SubjectName, pad,
				FormatHours(e.HoursAllocated),
				ImportanceStyle(e.Importance).Render(string(e.Importance)))
		}
	}
	return b.String()
}

// FormatShortages lists every subject whose deadline cannot be met.
func FormatShortages(shortages []domain.Shortage) string {
	rows := make([][]string, len(shortages))
	for i, s := range shortages {
		rows[i] = []string{
			s.Subject,
			FormatHours(s.RequiredHours),
			FormatHours(s.AvailableHours),
			StyleRed.Render(FormatHours(s.Shortage)),
		}
	}
	return Header("Insufficient time") + "\n" +
		RenderTable([]string{"SUBJECT", "REQUIRED", "AVAILABLE", "SHORT BY"}, rows)
}

// FormatResiduals lists hours a feasible plan left unplaced.
func FormatResiduals(residuals []domain.Residual) string {
	if len(residuals) == 0 {
		return ""
	}
	rows := make([][]string, len(residuals))
	for i, r := range residuals {
		rows[i] = []string{r.Subject, StyleYellow.Render(FormatHours(r.RemainingHours)), Dim(string(r.Reason))}
	}
	return Header("Unscheduled") + "\n" +
		RenderTable([]string{"SUBJECT", "REMAINING", "REASON"}, rows)
}

// FormatResult renders an engine result. An infeasible result shows only the
// shortages.
func FormatResult(result *domain.Result, cfg domain.CapacityConfig) string {
	if !result.Feasible() {
		return FeasibilityIndicator(false) + "\n\n" + FormatShortages(result.Shortages)
	}

	var b strings.Builder
	b.WriteString(FormatSchedule(result.Schedule, cfg))
	if len(result.Residuals) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatResiduals(result.Residuals))
	}
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%sh over %d day(s) · policy %s · from %s",
		FormatHours(result.Schedule.TotalHours()),
		len(result.Schedule),
		result.Policy,
		result.StartDate.Format(domain.DateLayout))))
	b.WriteString("\n")
	return b.String()
}

// FormatPlanList renders saved plans as a table, newest first as given.
func FormatPlanList(plans []domain.PlanSummary) string {
	rows := make([][]string, len(plans))
	for i := range plans {
		p := &plans[i]
		lastDay := "--"
		if p.LastDay != nil {
			lastDay = p.LastDay.Format(domain.DateLayout)
		}
		name := p.Name
		if name == "" {
			name = Dim("(unnamed)")
		}
		status := StyleGreen.Render("ok")
		if !p.Feasible {
			status = StyleRed.Render("infeasible")
		}
		rows[i] = []string{
			StyleBlue.Render(p.DisplayID()),
			TruncateText(name, 30),
			p.StartDate.Format(domain.DateLayout),
			lastDay,
			string(p.Policy),
			fmt.Sprintf("%d", p.SubjectCount),
			FormatHours(p.TotalHours),
			status,
		}
	}
	return RenderTable([]string{"ID", "NAME", "START", "LAST DAY", "POLICY", "SUBJECTS", "HOURS", "STATUS"}, rows)
}

// FormatStoredPlan renders a saved plan: a summary box, its subjects and the
// schedule.
func FormatStoredPlan(p *domain.StoredPlan) string {
	title := p.Name
	if title == "" {
		title = "Plan " + p.DisplayID()
	}

	summary := []string{
		fmt.Sprintf("%s  %s", Dim("ID"), p.ID),
		fmt.Sprintf("%s  %s", Dim("Start"), p.StartDate.Format(domain.DateLayout)),
		fmt.Sprintf("%s  %s", Dim("Policy"), p.Policy),
		fmt.Sprintf("%s  %sh weekdays, %sh weekends, max %sh/day",
			Dim("Capacity"),
			FormatHours(p.Capacity.WeekdayHours),
			FormatHours(p.Capacity.WeekendHours),
			FormatHours(p.Capacity.MaxDailyHours)),
	}
	if p.Capacity.PreferredTimeSlot != "" {
		summary = append(summary, fmt.Sprintf("%s  %s", Dim("Slot"), p.Capacity.PreferredTimeSlot))
	}
	summary = append(summary, FeasibilityIndicator(p.Feasible))

	scheduled := p.Schedule.HoursBySubject()
	rows := make([][]string, len(p.Subjects))
	for i, s := range p.Subjects {
		rows[i] = []string{
			s.Name,
			ImportanceStyle(s.Importance).Render(string(s.Importance)),
			s.Deadline.Format(domain.DateLayout),
			FormatHours(s.RequiredHours),
			FormatHours(scheduled[s.Name]),
		}
	}

	var b strings.Builder
	b.WriteString(RenderBox(title, strings.Join(summary, "\n")))
	b.WriteString("\n\n")
	b.WriteString(Header("Subjects"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"SUBJECT", "IMPORTANCE", "DEADLINE", "REQUIRED", "SCHEDULED"}, rows))
	b.WriteString("\n")
	b.WriteString(Header("Schedule"))
	b.WriteString("\n")
	b.WriteString(FormatSchedule(p.Schedule, p.Capacity))
	return b.String()
}
