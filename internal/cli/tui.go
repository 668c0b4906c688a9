package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/coursepath/coursepath/pkg/catalog"
	"github.com/coursepath/coursepath/pkg/progress"
)

// List styles
var (
	listCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the interactive planner command.
func (c *CLI) tuiCommand() *cobra.Command {
	var recordPath string
	var future bool

	cmd := &cobra.Command{
		Use:   "tui [catalog.json]",
		Short: "Interactive course planner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := catalog.LoadIndexFile(args[0])
			if err != nil {
				return err
			}

			rec := progress.NewRecord()
			if recordPath != "" {
				loaded, err := progress.ReadRecordFile(recordPath)
				if err != nil {
					return err
				}
				rec = loaded
			}

			model := newPlannerModel(idx, rec, recordPath, future || c.Config.Plan.FutureMode)
			p := tea.NewProgram(model, tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}

			if m, ok := final.(plannerModel); ok && m.saveErr != nil {
				return m.saveErr
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&recordPath, "record", "r", "", "student record file to load and save")
	cmd.Flags().BoolVar(&future, "future", false, "also mark courses that unlock after one more term")
	return cmd
}

// plannerModel is the bubbletea model for the interactive planner. Toggling
// a course rewrites the record and reclassifies the whole catalog, so the
// list always reflects the current record.
type plannerModel struct {
	idx        *catalog.Index
	rec        *progress.Record
	recordPath string
	future     bool

	courses []catalog.Course
	states  map[string]progress.State

	cursor  int
	offset  int
	height  int
	saved   bool
	saveErr error
}

func newPlannerModel(idx *catalog.Index, rec *progress.Record, recordPath string, future bool) plannerModel {
	m := plannerModel{
		idx:        idx,
		rec:        rec,
		recordPath: recordPath,
		future:     future,
		courses:    idx.Courses(),
		height:     15,
	}
	m.reclassify()
	return m
}

func (m *plannerModel) reclassify() {
	m.states = progress.ClassifyAll(m.idx, m.rec, m.future)
}

// toggleCompleted flips the cursor course in the completed set.
func (m *plannerModel) toggleCompleted() {
	id := m.courses[m.cursor].ID
	if m.rec.HasCompleted(id) {
		kept := m.rec.CompletedCourses[:0]
		for _, c := range m.rec.CompletedCourses {
			if c != id {
				kept = append(kept, c)
			}
		}
		m.rec.CompletedCourses = kept
	} else {
		m.rec.CompletedCourses = append(m.rec.CompletedCourses, id)
	}
	m.saved = false
	m.reclassify()
}

// cycleStanding advances the record to the next class standing.
func (m *plannerModel) cycleStanding() {
	next := m.rec.Standing + 1
	if next > catalog.Graduate {
		next = catalog.Freshman
	}
	m.rec.Standing = next
	m.saved = false
	m.reclassify()
}

func (m plannerModel) Init() tea.Cmd {
	return nil
}

func (m plannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.courses)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ", "enter":
			if len(m.courses) > 0 {
				m.toggleCompleted()
			}
		case "s":
			m.cycleStanding()
		case "f":
			m.future = !m.future
			m.reclassify()
		case "w":
			if m.recordPath != "" {
				m.saveErr = progress.WriteRecordFile(m.rec, m.recordPath)
				m.saved = m.saveErr == nil
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m plannerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Course Planner"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("standing: %s", m.rec.Standing)))
	if m.future {
		b.WriteString(listDimStyle.Render("  future: on"))
	}
	if m.saved {
		b.WriteString("  " + styleCompleted.Render("saved"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle completed  s standing  f future  w save  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.courses) {
		end = len(m.courses)
	}

	for i := m.offset; i < end; i++ {
		course := m.courses[i]
		state := m.states[course.ID]

		cursor := "  "
		if i == m.cursor {
			cursor = listCursorStyle.Render("▸ ")
		}

		line := stateStyle(state).Render(fmt.Sprintf("%-10s", course.Code))
		line += " " + listDimStyle.Render(fmt.Sprintf("%-16s", state.String()))
		if course.Title != "" {
			line += " " + listDimStyle.Render(course.Title)
		}

		b.WriteString(cursor + line + "\n")
	}

	if len(m.courses) > m.height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(
			fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(m.courses))))
	}

	return b.String()
}
