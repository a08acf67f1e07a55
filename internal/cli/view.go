package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mindweave/internal/cli/formatter"
	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type planViewKeys struct {
	Quit   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Next   key.Binding
	Prev   key.Binding
}

func defaultPlanViewKeys() planViewKeys {
	return planViewKeys{
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Next:   key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n", "next day")),
		Prev:   key.NewBinding(key.WithKeys("p", "shift+tab"), key.WithHelp("p", "prev day")),
	}
}

func (k planViewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Top, k.Bottom, k.Quit}
}

// planView is a scrollable full-screen rendering of a saved plan. n and p
// jump between days.
type planView struct {
	plan     *domain.StoredPlan
	keys     planViewKeys
	viewport viewport.Model
	content  string
	// dayLines holds the content line each scheduled day starts on.
	dayLines []int
	ready    bool
	quitting bool
}

func newPlanView(plan *domain.StoredPlan) *planView {
	content := formatter.FormatStoredPlan(plan)
	return &planView{
		plan:     plan,
		keys:     defaultPlanViewKeys(),
		content:  content,
		dayLines: dayStartLines(content, plan.Schedule),
	}
}

// dayStartLines finds the line on which each day's block begins.
func dayStartLines(content string, schedule domain.Schedule) []int {
	lines := strings.Split(content, "\n")
	var starts []int
	next := 0
	for i, line := range lines {
		if next >= len(schedule) {
			break
		}
		day := schedule[next]
		if strings.Contains(line, day.DayOfWeek.String()[:3]) && strings.Contains(line, day.Date.Format(domain.DateLayout)) {
			starts = append(starts, i)
			next++
		}
	}
	return starts
}

func (v *planView) Init() tea.Cmd { return nil }

func (v *planView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - v.chromeHeight()
		if height < 1 {
			height = 1
		}
		if !v.ready {
			v.viewport = viewport.New(msg.Width, height)
			v.viewport.SetContent(v.content)
			v.ready = true
		} else {
			v.viewport.Width = msg.Width
			v.viewport.Height = height
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			v.quitting = true
			return v, tea.Quit
		case key.Matches(msg, v.keys.Top):
			v.viewport.GotoTop()
			return v, nil
		case key.Matches(msg, v.keys.Bottom):
			v.viewport.GotoBottom()
			return v, nil
		case key.Matches(msg, v.keys.Next):
			v.jumpDay(1)
			return v, nil
		case key.Matches(msg, v.keys.Prev):
			v.jumpDay(-1)
			return v, nil
		}
	}

	if !v.ready {
		return v, nil
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// jumpDay scrolls to the next (dir > 0) or previous day block relative to
// the current top line.
func (v *planView) jumpDay(dir int) {
	if !v.ready || len(v.dayLines) == 0 {
		return
	}
	top := v.viewport.YOffset
	target := -1
	if dir > 0 {
		for _, line := range v.dayLines {
			if line > top {
				target = line
				break
			}
		}
	} else {
		for i := len(v.dayLines) - 1; i >= 0; i-- {
			if v.dayLines[i] < top {
				target = v.dayLines[i]
				break
			}
		}
	}
	if target >= 0 {
		v.viewport.SetYOffset(target)
	}
}

func (v *planView) chromeHeight() int {
	return 2
}

func (v *planView) View() string {
	if v.quitting {
		return ""
	}
	if !v.ready {
		return "Loading..."
	}

	title := v.plan.Name
	if title == "" {
		title = "Plan " + v.plan.DisplayID()
	}
	header := formatter.StyleHeader.Render(title) + "  " + formatter.FeasibilityIndicator(v.plan.Feasible)

	var help []string
	for _, b := range v.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	footer := formatter.Dim(fmt.Sprintf("%3.0f%%  %s", v.viewport.ScrollPercent()*100, strings.Join(help, " · ")))

	return header + "\n" + v.viewport.View() + "\n" + footer
}

func newPlanViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view ID",
		Short: "Browse a saved plan full-screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plans.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !app.interactive() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStoredPlan(plan))
				return nil
			}

			p := tea.NewProgram(newPlanView(plan), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
