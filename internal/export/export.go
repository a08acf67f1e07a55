package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/mindweave/internal/domain"
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected csv or pdf)", s)
	}
}

// Dataset is tabular export content. Rows hold one value per header.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

var scheduleHeaders = []string{"Date", "Day", "Subject", "Importance", "Hours"}

// FromSchedule flattens a schedule into one row per allocation entry.
func FromSchedule(schedule domain.Schedule) Dataset {
	data := Dataset{Headers: scheduleHeaders}
	for _, day := range schedule {
		for _, e := range day.Entries {
			data.Rows = append(data.Rows, []string{
				day.Date.Format(domain.DateLayout),
				day.DayOfWeek.String()[:3],
				e.SubjectName,
				string(e.Importance),
				FormatHours(e.HoursAllocated),
			})
		}
	}
	return data
}

// FormatHours renders hours without trailing zeros.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// Title names a plan in document headers.
func Title(p *domain.StoredPlan) string {
	if p.Name != "" {
		return p.Name
	}
	return "Study plan " + p.DisplayID()
}

// WritePlan renders a stored plan's schedule to w.
func WritePlan(w io.Writer, p *domain.StoredPlan, format Format) error {
	data := FromSchedule(p.Schedule)

	var (
		out []byte
		err error
	)
	switch format {
	case FormatCSV:
		out, err = NewCSVExporter().Render(data)
	case FormatPDF:
		out, err = NewPDFExporter().Render(data, Title(p), planSummaryLines(p))
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing %s export: %w", format, err)
	}
	return nil
}

func planSummaryLines(p *domain.StoredPlan) []string {
	lines := []string{
		fmt.Sprintf("Start %s, policy %s", p.StartDate.Format(domain.DateLayout), p.Policy),
		fmt.Sprintf("Capacity: %s h weekdays, %s h weekends, at most %s h a day",
			FormatHours(p.Capacity.WeekdayHours), FormatHours(p.Capacity.WeekendHours), FormatHours(p.Capacity.MaxDailyHours)),
		fmt.Sprintf("Total %s h over %d day(s)", FormatHours(p.Schedule.TotalHours()), len(p.Schedule)),
	}
	if p.Capacity.PreferredTimeSlot != "" {
		lines = append(lines, "Preferred time slot: "+p.Capacity.PreferredTimeSlot)
	}
	if !p.Feasible {
		lines = append(lines, "Infeasible: at least one deadline cannot be met")
	}
	return lines
}
