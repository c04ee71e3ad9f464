package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"speakpractice/internal/scoring"
)

func newLineCmd(opts *options) *cobra.Command {
	var expected, spoken string

	cmd := &cobra.Command{
		Use:   "line",
		Short: "Score a dialogue line word by word",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := opts.classifier()
			if err != nil {
				return err
			}
			printFeedback(cmd, classifier.Classify(scoring.ScoreDialogueLine(spoken, expected)))
			return nil
		},
	}

	cmd.Flags().StringVar(&expected, "expected", "", "the sentence the learner should say")
	cmd.Flags().StringVar(&spoken, "spoken", "", "what the learner said")
	cmd.MarkFlagRequired("expected")
	cmd.MarkFlagRequired("spoken")
	return cmd
}

func newTurnCmd() *cobra.Command {
	var expected, spoken string

	cmd := &cobra.Command{
		Use:   "turn",
		Short: "Score a conversation turn as a whole",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Clarity: %.2f%%\n", scoring.ScoreConversationTurn(expected, spoken))
			return nil
		},
	}

	cmd.Flags().StringVar(&expected, "expected", "", "the reference text")
	cmd.Flags().StringVar(&spoken, "spoken", "", "what the learner said")
	cmd.MarkFlagRequired("expected")
	cmd.MarkFlagRequired("spoken")
	return cmd
}

func printFeedback(cmd *cobra.Command, f scoring.Feedback) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d%% (%s)\n", f.Emoji, f.Accuracy, f.Tier)
	fmt.Fprintln(out, f.Message)
	if len(f.IncorrectWords) > 0 {
		fmt.Fprintf(out, "Words to practice: %s\n", strings.Join(f.IncorrectWords, ", "))
	}
}
