package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/phrazzld/omnistudy/internal/generation"
	"github.com/phrazzld/omnistudy/internal/service"
	"github.com/spf13/cobra"
)

// runText resolves the output format and service, runs call and prints its result.
func runText(cmd *cobra.Command, c *cli, call func(context.Context, service.StudyService) (*service.TextResult, error)) error {
	format, err := parseOutputFormat(c.outputFormat)
	if err != nil {
		return err
	}
	svc, err := c.service(cmd.Context())
	if err != nil {
		return err
	}
	result, err := call(cmd.Context(), svc)
	if err != nil {
		return describeFailure(err)
	}
	return writeText(cmd.OutOrStdout(), format, result)
}

func runRecords(
	cmd *cobra.Command,
	c *cli,
	call func(context.Context, service.StudyService) (*service.RecordsResult, error),
	text recordWriter,
) error {
	format, err := parseOutputFormat(c.outputFormat)
	if err != nil {
		return err
	}
	svc, err := c.service(cmd.Context())
	if err != nil {
		return err
	}
	result, err := call(cmd.Context(), svc)
	if err != nil {
		return describeFailure(err)
	}
	return writeRecords(cmd.OutOrStdout(), format, result, text)
}

// describeFailure replaces a gateway failure with its per-provider summary.
func describeFailure(err error) error {
	var f *generation.Failure
	if errors.As(err, &f) {
		return errors.New(f.Summary())
	}
	return err
}

func explainCmd(c *cli) *cobra.Command {
	var socratic bool
	var imagePath string

	cmd := &cobra.Command{
		Use:   "explain <concept>",
		Short: "Explain a concept",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var img *generation.Image
			if imagePath != "" {
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				img = &generation.Image{MIMEType: imageMIMEType(imagePath), Data: data}
			}
			return runText(cmd, c, func(ctx context.Context, svc service.StudyService) (*service.TextResult, error) {
				return svc.Explain(ctx, service.ExplainInput{
					Concept:  strings.Join(args, " "),
					Socratic: socratic,
					Image:    img,
				})
			})
		},
	}

	cmd.Flags().BoolVar(&socratic, "socratic", false, "guide with questions instead of explaining directly")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to an image to explain alongside the concept")
	return cmd
}

func summarizeCmd(c *cli) *cobra.Command {
	var length string
	var file string

	cmd := &cobra.Command{
		Use:   "summarize [text]",
		Short: "Summarize text given as arguments or read from --file",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				text = strings.ToValidUTF8(string(data), "")
			}
			return runText(cmd, c, func(ctx context.Context, svc service.StudyService) (*service.TextResult, error) {
				return svc.Summarize(ctx, service.SummarizeInput{
					Text:   text,
					Length: domain.SummaryLength(length),
				})
			})
		},
	}

	cmd.Flags().StringVar(&length, "length", string(domain.SummaryMedium), "Brief, Medium or Detailed")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the text from a file")
	return cmd
}

func quizCmd(c *cli) *cobra.Command {
	var count int
	var difficulty string

	cmd := &cobra.Command{
		Use:   "quiz <topic>",
		Short: "Generate multiple-choice questions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(cmd, c, func(ctx context.Context, svc service.StudyService) (*service.RecordsResult, error) {
				return svc.Quiz(ctx, service.QuizInput{
					Topic:      strings.Join(args, " "),
					Count:      count,
					Difficulty: domain.Difficulty(difficulty),
				})
			}, writeQuestion)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", domain.DefaultQuizQuestions, "number of questions (1-10)")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyMedium), "Easy, Medium or Hard")
	return cmd
}

func flashcardsCmd(c *cli) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "flashcards <topic>",
		Short: "Generate flashcards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")
			return runRecords(cmd, c, func(ctx context.Context, svc service.StudyService) (*service.RecordsResult, error) {
				return svc.Flashcards(ctx, service.FlashcardsInput{Topic: topic, Count: count})
			}, writeFlashcard)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", domain.DefaultFlashcards, "number of flashcards (5-50)")
	return cmd
}

func mnemonicCmd(c *cli) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "mnemonic <concept>",
		Short: "Create a memory aid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runText(cmd, c, func(ctx context.Context, svc service.StudyService) (*service.TextResult, error) {
				return svc.Mnemonic(ctx, service.MnemonicInput{
					Concept: strings.Join(args, " "),
					Type:    domain.MnemonicType(kind),
				})
			})
		},
	}

	cmd.Flags().StringVar(&kind, "type", string(domain.MnemonicAcronym), "Acronym, Method of Loci, Rhyme, Story or Association")
	return cmd
}

func storyCmd(c *cli) *cobra.Command {
	var style, audience string

	cmd := &cobra.Command{
		Use:   "story <topic>",
		Short: "Write an educational story",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runText(cmd, c, func(ctx context.Context, svc service.StudyService) (*service.TextResult, error) {
				return svc.Story(ctx, service.StoryInput{
					Topic:    strings.Join(args, " "),
					Style:    domain.StoryStyle(style),
					Audience: domain.Audience(audience),
				})
			})
		},
	}

	cmd.Flags().StringVar(&style, "style", string(domain.StyleEducational), "Educational, Adventure, Mystery, Fantasy or Historical")
	cmd.Flags().StringVar(&audience, "audience", string(domain.AudienceAdults), "Kids, Teens, Adults or Professionals")
	return cmd
}

func imageMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
