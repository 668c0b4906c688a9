package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursepath/coursepath/pkg/catalog"
	"github.com/coursepath/coursepath/pkg/progress"
)

// recordCommand creates the record management command.
func (c *CLI) recordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Manage student record files",
	}

	cmd.AddCommand(c.recordInitCommand())
	cmd.AddCommand(c.recordShowCommand())

	return cmd
}

// recordInitCommand creates the "record init" subcommand.
func (c *CLI) recordInitCommand() *cobra.Command {
	var standing string

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create an empty student record file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := progress.NewRecord()
			if standing != "" {
				s, err := catalog.ParseStanding(standing)
				if err != nil {
					return err
				}
				rec.Standing = s
			}
			if err := progress.WriteRecordFile(rec, args[0]); err != nil {
				return err
			}
			printSuccess("Created record %s", rec.ID)
			printFile(args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&standing, "standing", "s", "", "class standing (freshman, sophomore, junior, senior, graduate)")
	return cmd
}

// recordShowCommand creates the "record show" subcommand.
func (c *CLI) recordShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print a student record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := progress.ReadRecordFile(args[0])
			if err != nil {
				return err
			}
			printKeyValue("id", rec.ID)
			printKeyValue("standing", rec.Standing.String())
			printKeyValue("completed", fmt.Sprintf("%d", len(rec.CompletedCourses)))
			printKeyValue("taking now", fmt.Sprintf("%d", len(rec.TakingNow)))
			printKeyValue("external", fmt.Sprintf("%d", len(rec.ExternalCourses)))
			if !rec.UpdatedAt.IsZero() {
				printKeyValue("updated", rec.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
