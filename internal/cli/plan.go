package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/coursepath/coursepath/pkg/catalog"
	"github.com/coursepath/coursepath/pkg/progress"
)

// planOpts holds the command-line flags for the plan command.
type planOpts struct {
	record string // student record file
	future bool   // one-step lookahead
	all    bool   // include locked courses in the listing
}

// planCommand creates the plan command for classifying course availability.
func (c *CLI) planCommand() *cobra.Command {
	var opts planOpts

	cmd := &cobra.Command{
		Use:   "plan [catalog.json]",
		Short: "Show which courses a student record unlocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.record, "record", "r", "", "student record file (required)")
	cmd.Flags().BoolVar(&opts.future, "future", false, "also mark courses that unlock after one more term")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include locked courses")
	_ = cmd.MarkFlagRequired("record")

	return cmd
}

func (c *CLI) runPlan(input string, opts *planOpts) error {
	idx, err := catalog.LoadIndexFile(input)
	if err != nil {
		return err
	}
	rec, err := progress.ReadRecordFile(opts.record)
	if err != nil {
		return err
	}

	future := opts.future || c.Config.Plan.FutureMode
	states := progress.ClassifyAll(idx, rec, future)

	printKeyValue("record", rec.ID)
	printKeyValue("standing", rec.Standing.String())
	printKeyValue("completed", fmt.Sprintf("%d courses", len(rec.CompletedCourses)))
	printNewline()

	printStateGroup("Completed", progress.Completed, idx, states)
	printStateGroup("Available now", progress.Available, idx, states)
	if future {
		printStateGroup("Available next term", progress.FutureAvailable, idx, states)
	}
	if opts.all {
		printStateGroup("Locked", progress.Locked, idx, states)
	} else if n := countState(states, progress.Locked); n > 0 {
		printDetail("%d locked courses hidden (use --all to show)", n)
	}
	return nil
}

// printStateGroup prints a header and the courses in the given state, sorted
// by course code. Cross-listed courses can share a display code, so entries
// are keyed by ID and each gets its own line.
func printStateGroup(title string, state progress.State, idx *catalog.Index, states map[string]progress.State) {
	group := groupByState(idx, states, state)
	if len(group) == 0 {
		return
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("%s (%d)", title, len(group))))
	for _, course := range group {
		line := stateStyle(state).Render(course.Code)
		if course.Title != "" {
			line += " " + StyleDim.Render(course.Title)
		}
		fmt.Println("  " + line)
	}
	printNewline()
}

// groupByState returns the courses in the given state, ordered by code with
// ID as the tie-break.
func groupByState(idx *catalog.Index, states map[string]progress.State, state progress.State) []*catalog.Course {
	var group []*catalog.Course
	courses := idx.Courses()
	for i := range courses {
		course := &courses[i]
		if states[course.ID] == state {
			group = append(group, course)
		}
	}
	sort.Slice(group, func(i, j int) bool {
		if group[i].Code != group[j].Code {
			return group[i].Code < group[j].Code
		}
		return group[i].ID < group[j].ID
	})
	return group
}

func stateStyle(state progress.State) lipgloss.Style {
	switch state {
	case progress.Completed:
		return styleCompleted
	case progress.Available:
		return styleAvailable
	case progress.FutureAvailable:
		return styleFuture
	default:
		return styleLocked
	}
}

func countState(states map[string]progress.State, state progress.State) int {
	n := 0
	for _, s := range states {
		if s == state {
			n++
		}
	}
	return n
}
