package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLineCommand(t *testing.T) {
	out, err := run(t, "", "line", "--expected", "The shop is open", "--spoken", "the shop is closed")
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if !strings.Contains(out, "75% (good)") || !strings.Contains(out, "open") {
		t.Errorf("expected a good tier, got %q", out)
	}

	if _, err := run(t, "", "line", "--expected", "Hello"); err == nil {
		t.Error("expected an error without --spoken")
	}
}

func TestLineCommandCustomTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.yaml")
	yaml := "excellent:\n  message: \"Brilliant, {{.Accuracy}}%!\"\n  emoji: \"🏆\"\n  color: success\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "--templates", path, "line", "--expected", "Hello world", "--spoken", "hello world")
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if !strings.Contains(out, "Brilliant, 100%!") || !strings.Contains(out, "🏆") {
		t.Errorf("custom template not applied: %q", out)
	}
}

func TestTurnCommand(t *testing.T) {
	out, err := run(t, "", "turn", "--expected", "Hello there", "--spoken", "Helo ther")
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if strings.TrimSpace(out) != "Clarity: 81.82%" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDialoguesCommand(t *testing.T) {
	out, err := run(t, "", "dialogues")
	if err != nil {
		t.Fatalf("dialogues: %v", err)
	}
	for _, id := range []string{"school-friends", "daily-life", "practical-skills"} {
		if !strings.Contains(out, id) {
			t.Errorf("missing category %s in %q", id, out)
		}
	}

	out, err = run(t, "", "dialogues", "--category", "daily-life")
	if err != nil {
		t.Fatalf("dialogues --category: %v", err)
	}
	if !strings.Contains(out, "vegetable-shop") || !strings.Contains(out, "daily-routine") {
		t.Errorf("unexpected listing %q", out)
	}

	if _, err := run(t, "", "dialogues", "--category", "cooking"); err == nil {
		t.Error("expected an error for an unknown category")
	}
}

func TestPracticeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialogues.yaml")
	catalog := `
categories:
  - id: daily-life
    name: "Daily Life"
dialogues:
  - id: greeting
    title: "Greeting"
    category: daily-life
    lines:
      - character: A
        english: "Hello there"
      - character: B
        english: "Hi, how are you?"
      - character: A
        english: "I am fine thank you"
`
	if err := os.WriteFile(path, []byte(catalog), 0o600); err != nil {
		t.Fatal(err)
	}

	// First attempt fails and is asked again; the blank line is ignored.
	stdin := "hello\nhello there\n\nI am fine thank you\n"
	out, err := run(t, stdin, "--dialogues", path, "practice", "greeting", "--character", "a")
	if err != nil {
		t.Fatalf("practice: %v\n%s", err, out)
	}
	if strings.Count(out, "You (A): Hello there") != 2 {
		t.Errorf("expected the first line to be asked twice: %q", out)
	}
	if !strings.Contains(out, "B: Hi, how are you?") {
		t.Errorf("partner line not printed: %q", out)
	}
	if !strings.Contains(out, "Nothing heard") {
		t.Errorf("blank input should be reported: %q", out)
	}
	if !strings.Contains(out, "Dialogue complete! Average score: 100%") {
		t.Errorf("missing completion summary: %q", out)
	}

	if _, err := run(t, "hello\n", "--dialogues", path, "practice", "greeting"); err == nil {
		t.Error("expected an error when input runs out")
	}
	if _, err := run(t, "", "practice", "no-such-dialogue"); err == nil {
		t.Error("expected an error for an unknown dialogue")
	}
}
