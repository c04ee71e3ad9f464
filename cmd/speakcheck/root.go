package main

import (
	"github.com/spf13/cobra"

	"speakpractice/internal/repository"
	"speakpractice/internal/scoring"
)

// options are the persistent flags shared by every subcommand
type options struct {
	templatesPath string
	dialoguesPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "speakcheck",
		Short: "Score spoken English against expected text",
		Long: `speakcheck scores what a learner said against what they were meant to say.

Examples:
  speakcheck line --expected "Hello world" --spoken "hello word"
  speakcheck turn --expected "Hello there" --spoken "helo ther"
  speakcheck dialogues --category daily-life
  speakcheck practice vegetable-shop --character B < answers.txt`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.templatesPath, "templates", "", "YAML file overriding feedback messages")
	root.PersistentFlags().StringVar(&opts.dialoguesPath, "dialogues", "", "YAML dialogue catalog (default: built-in)")

	root.AddCommand(
		newLineCmd(opts),
		newTurnCmd(),
		newDialoguesCmd(opts),
		newPracticeCmd(opts),
	)
	return root
}

func (o *options) classifier() (*scoring.Classifier, error) {
	if o.templatesPath == "" {
		return scoring.DefaultClassifier(), nil
	}
	templates, err := scoring.LoadTemplates(o.templatesPath)
	if err != nil {
		return nil, err
	}
	return scoring.NewClassifier(templates)
}

func (o *options) dialogues() (*repository.DialogueRepository, error) {
	if o.dialoguesPath == "" {
		return repository.NewDialogueRepository()
	}
	return repository.LoadDialogueRepository(o.dialoguesPath)
}
