package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vocabmaster/vocabmaster/internal/chart"
	"github.com/vocabmaster/vocabmaster/internal/core"
	"github.com/vocabmaster/vocabmaster/internal/vocab"
)

func newQuizCommand() *cobra.Command {
	var skipPreview bool
	command := &cobra.Command{
		Use:   "quiz",
		Short: "Run a quiz on the command line (shows English, you type German)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				return runQuiz(a.trainer, cmd.InOrStdin(), cmd.OutOrStdout(), !skipPreview)
			})
		},
	}
	command.Flags().BoolVar(&skipPreview, "yes", false, "Start without confirming the preview")
	return command
}

func newChartCommand() *cobra.Command {
	var width int
	command := &cobra.Command{
		Use:   "chart",
		Short: "Print the mastery progress chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				v := a.trainer.Vocabulary()
				_, err := fmt.Fprintln(cmd.OutOrStdout(), chart.Render(chart.Bars(v), width))
				return err
			})
		},
	}
	command.Flags().IntVar(&width, "width", 80, "Chart width in columns")
	return command
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all words with their translation and mastery score",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				return printVocabulary(cmd.OutOrStdout(), a.trainer.Vocabulary())
			})
		},
	}
}

func newAddCommand() *cobra.Command {
	var suggest bool
	command := &cobra.Command{
		Use:   "add <english> [german]",
		Short: "Add a new word (the translation may be suggested with --suggest)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				english := args[0]
				german := ""
				if len(args) == 2 {
					german = args[1]
				}
				if german == "" && suggest {
					suggestion, err := a.trainer.SuggestTranslation(english)
					if err != nil {
						return err
					}
					german = suggestion
				}
				if err := a.trainer.AddWord(english, german); err != nil {
					if errors.Is(err, vocab.ErrEmptyField) {
						return fmt.Errorf("both fields required: %w", err)
					}
					return err
				}
				_, err := color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Added '%s' → '%s'\n",
					strings.TrimSpace(english), strings.TrimSpace(german))
				return err
			})
		},
	}
	command.Flags().BoolVar(&suggest, "suggest", false, "Ask Claude for the German translation")
	return command
}

func newResetCommand() *cobra.Command {
	var yes bool
	command := &cobra.Command{
		Use:   "reset",
		Short: "Reset all vocabulary data to the default word set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				out := cmd.OutOrStdout()
				if !yes {
					confirmed, err := confirm(bufio.NewReader(cmd.InOrStdin()), out, "Reset all vocabulary data?")
					if err != nil || !confirmed {
						return err
					}
				}
				if err := a.trainer.Reset(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(out, "All data has been reset!")
				return err
			})
		},
	}
	command.Flags().BoolVar(&yes, "yes", false, "Do not ask for confirmation")
	return command
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import word pairs from a .txt, .pdf or .docx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				result, err := a.trainer.Import(args[0])
				if err != nil && result == nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "New words added: %d\n", result.NewWords)
				fmt.Fprintf(out, "Existing words skipped: %d\n", result.SkippedExisting)
				fmt.Fprintf(out, "Total processed: %d\n", result.TotalProcessed)
				return err
			})
		},
	}
}

func newHistoryCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "history",
		Short: "Show recent answers and per-word accuracy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				return printHistory(cmd.OutOrStdout(), a.trainer, limit)
			})
		},
	}
	command.Flags().IntVar(&limit, "limit", 20, "Number of recent answers to show")
	return command
}

func newExportHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export-history <file>",
		Short: "Export the answer history to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(a *app) error {
				if err := a.trainer.ExportHistory(args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "History exported to %s\n", args[0])
				return err
			})
		},
	}
}

// runQuiz runs one quiz reading answers line by line. End of input stops the quiz early.
func runQuiz(trainer *core.Trainer, in io.Reader, out io.Writer, preview bool) error {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	quiz, err := trainer.StartQuiz()
	if errors.Is(err, core.ErrNoVocabulary) {
		_, err := fmt.Fprintln(out, "No vocabulary available. Add words first.")
		return err
	}
	if err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	if preview {
		fmt.Fprintln(out, "Today's quiz will include these words:")
		fmt.Fprintln(out)
		for _, item := range quiz.Preview() {
			fmt.Fprintf(out, "• %s → %s\n", item.Word, item.Translation)
		}
		fmt.Fprintln(out)
		confirmed, err := confirm(reader, out, "Start quiz?")
		if err != nil || !confirmed {
			return err
		}
	}

	for !quiz.Done() {
		word, ok := quiz.Current()
		if !ok {
			break
		}
		bold.Fprintf(out, "What is the German word for '%s'? ", word)

		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			if readErr != io.EOF {
				return fmt.Errorf("failed to read answer: %w", readErr)
			}
			quiz.Abort()
			fmt.Fprintln(out)
			break
		}

		result, err := quiz.Answer(strings.TrimRight(line, "\r\n"))
		if err != nil {
			red.Fprintf(out, "Error: %v\n", err)
		}
		if result.Correct {
			green.Fprintf(out, "✅ Correct! '%s' → '%s'\n", result.Word, result.Expected)
		} else {
			red.Fprintf(out, "❌ Wrong! Correct: '%s'\n", result.Expected)
		}
	}

	result, err := quiz.Finish()
	bold.Fprintln(out, result.String())
	return err
}

// confirm asks a yes/no question; anything but y or yes is a no
func confirm(reader *bufio.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func printVocabulary(out io.Writer, v vocab.Vocabulary) error {
	if len(v) == 0 {
		_, err := fmt.Fprintln(out, "No vocabulary available. Add words first.")
		return err
	}

	bold := color.New(color.Bold)
	width := 0
	for _, word := range v.Words() {
		width = max(width, len(word))
	}

	for _, word := range v.Words() {
		entry := v[word]
		bold.Fprintf(out, "%-*s", width, word)
		fmt.Fprintf(out, "  → %-20s ", entry.Translation)
		scoreColor(entry.Score).Fprintf(out, "%d/%d\n", entry.Score, vocab.MaxScore)
	}

	summary := v.Summary()
	_, err := fmt.Fprintf(out, "\nWords: %d  Mastered: %d  Average: %.1f\n", summary.Total, summary.Mastered, summary.Average)
	return err
}

func printHistory(out io.Writer, trainer *core.Trainer, limit int) error {
	attempts, err := trainer.RecentAttempts(limit)
	if err != nil {
		return err
	}
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(out, "No answers recorded yet.")
		return err
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	bold := color.New(color.Bold)

	bold.Fprintln(out, "Recent answers")
	for _, attempt := range attempts {
		mark := green.Sprint("✓")
		if !attempt.Correct {
			mark = red.Sprint("✗")
		}
		fmt.Fprintf(out, "%s %s  %s → %s (score %d)\n",
			attempt.CreatedAt.Local().Format("2006-01-02 15:04"), mark, attempt.Word, attempt.Answer, attempt.ScoreAfter)
	}

	stats, err := trainer.WordStats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	bold.Fprintln(out, "Accuracy per word")
	for _, s := range stats {
		fmt.Fprintf(out, "%s: %d/%d (%.0f%%)\n", s.Word, s.Correct, s.Attempts, s.Accuracy()*100)
	}
	return nil
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 4:
		return color.New(color.FgGreen)
	case score >= 2:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
