package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDialoguesCmd(opts *options) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "dialogues",
		Short: "List practice dialogues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.dialogues()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()

			if category == "" {
				fmt.Fprintln(w, "CATEGORY\tNAME\tDIALOGUES")
				for _, c := range repo.ListCategories() {
					fmt.Fprintf(w, "%s\t%s %s\t%d\n", c.ID, c.Emoji, c.Name, c.DialogueCount)
				}
				return nil
			}

			if repo.GetCategory(category) == nil {
				return fmt.Errorf("unknown category %q", category)
			}
			fmt.Fprintln(w, "ID\tTITLE\tLINES")
			for _, d := range repo.ListByCategory(category) {
				fmt.Fprintf(w, "%s\t%s\t%d\n", d.ID, d.Title, len(d.Lines))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "list the dialogues in one category")
	return cmd
}
