package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursepath/coursepath/pkg/catalog"
)

// indexCommand creates the index command for validating catalogs.
func (c *CLI) indexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [catalog.json]",
		Short: "Validate a catalog file and print dependency statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runIndex(args[0])
		},
	}
	return cmd
}

func (c *CLI) runIndex(path string) error {
	prog := newProgress(c.Logger)

	courses, err := catalog.ReadCatalogFile(path)
	if err != nil {
		return err
	}
	idx, err := catalog.BuildIndex(courses)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Indexed %d courses", idx.Len()))

	var active, edges, isolated, dangling int
	for i := range courses {
		course := &courses[i]
		if course.Active {
			active++
		}
		edges += idx.InDegree(course.ID)
		if idx.IsIsolated(course.ID) {
			isolated++
		}

		// Leaves that resolved to no catalog entry stay permanently
		// unsatisfiable; surface them so catalog maintainers can fix the
		// references.
		seen := make(map[string]bool)
		for _, ref := range course.Prerequisites.CourseLeaves() {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			if _, ok := idx.Course(ref); !ok {
				dangling++
			}
		}
	}

	printSuccess("Catalog is valid")
	printKeyValue("courses", fmt.Sprintf("%d (%d active)", idx.Len(), active))
	printKeyValue("edges", fmt.Sprintf("%d", edges))
	printKeyValue("isolated", fmt.Sprintf("%d", isolated))
	if dangling > 0 {
		printWarning("%d prerequisite references point outside the catalog", dangling)
	}

	printNewline()
	printNextStep("Compute a layout", fmt.Sprintf("coursepath layout %s", path))
	return nil
}
