package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"speakpractice/internal/models"
	"speakpractice/internal/service"
)

func newPracticeCmd(opts *options) *cobra.Command {
	var character string
	var threshold int

	cmd := &cobra.Command{
		Use:   "practice <dialogue-id>",
		Short: "Practice a dialogue, reading your lines from stdin",
		Long: `Walks through a dialogue as one character. Partner lines are printed;
for each of your lines one line of input is read and scored. A line
scoring below the pass mark is asked for again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.dialogues()
			if err != nil {
				return err
			}
			classifier, err := opts.classifier()
			if err != nil {
				return err
			}

			svc := service.NewPracticeService(repo,
				service.WithClassifier(classifier),
				service.WithPassThreshold(threshold),
			)
			return runPractice(cmd, svc, args[0], models.Character(strings.ToUpper(character)))
		},
	}

	cmd.Flags().StringVarP(&character, "character", "c", "A", "the character you play (A or B)")
	cmd.Flags().IntVar(&threshold, "pass", service.DefaultPassThreshold, "accuracy needed to move on")
	return cmd
}

func runPractice(cmd *cobra.Command, svc *service.PracticeService, dialogueID string, character models.Character) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	state, err := svc.StartSession(ctx, dialogueID, character)
	if err != nil {
		return err
	}

	for !state.Completed {
		line := state.CurrentLine
		if !state.IsUserTurn {
			fmt.Fprintf(out, "%s: %s\n", line.Character, line.English)
		} else {
			fmt.Fprintf(out, "You (%s): %s\n> ", line.Character, line.English)
			if !in.Scan() {
				fmt.Fprintln(out)
				return fmt.Errorf("input ended at line %d of %d", state.LineIndex+1, state.TotalLines)
			}

			scored, err := svc.SubmitTranscript(state.SessionID, in.Text())
			if errors.Is(err, service.ErrNoSpeech) {
				fmt.Fprintln(out, "Nothing heard, try again.")
				continue
			}
			if err != nil {
				return err
			}
			state = scored
			printFeedback(cmd, *state.Feedback)
			if !state.CanAdvance {
				if state, err = svc.Retry(state.SessionID); err != nil {
					return err
				}
				continue
			}
		}

		if state, err = svc.NextLine(ctx, state.SessionID); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "🎉 Dialogue complete! Average score: %.0f%%\n", state.AverageScore)
	return nil
}
