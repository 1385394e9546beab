// recruit-publish converts a locally authored document into a blog post
// and creates it in the CMS.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/s98978ym/archeco-recruit/cms"
	"github.com/s98978ym/archeco-recruit/internal/ai"
	"github.com/s98978ym/archeco-recruit/internal/article"
	"github.com/s98978ym/archeco-recruit/internal/config"
	"github.com/s98978ym/archeco-recruit/internal/publish"
)

var (
	imagePaths    []string
	title         string
	category      string
	writer        string
	featured      bool
	dryRun        bool
	aiDescription bool
	keywordsPath  string
	debugMode     bool
)

var rootCmd = &cobra.Command{
	Use:   "recruit-publish <source-file>",
	Short: "Publish a local document to the recruit blog CMS",
	Long: `Reads a plain text, Markdown, HTML, or .docx document, derives
title, category, and description, converts the body to HTML, uploads an
eyecatch image, and creates the post. --dry-run prints the assembled
record instead of calling the CMS.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(debugMode)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()

		cfg := config.Load()

		opts := publish.Options{
			SourcePath: args[0],
			ImagePaths: imagePaths,
			Title:      title,
			Category:   category,
			Writer:     writer,
			Featured:   featured,
			DryRun:     dryRun,
		}

		if keywordsPath != "" {
			classifier, err := article.NewClassifierFromFile(keywordsPath)
			if err != nil {
				return err
			}
			opts.Classifier = classifier
		}

		if aiDescription {
			describer, err := ai.NewDescriber(cfg.AnthropicKey)
			if err != nil {
				return err
			}
			opts.Describe = describer.Describe
		}

		var uploader publish.Uploader
		var creator publish.Creator
		if !dryRun {
			if err := cfg.ValidateCMS(); err != nil {
				return err
			}
			client, err := cms.New(cms.Config{
				ServiceDomain: cfg.ServiceDomain,
				APIKey:        cfg.APIKey,
			}, cms.WithLogger(logger))
			if err != nil {
				return err
			}
			uploader, creator = client, client
		}

		publisher := publish.New(uploader, creator, logger, os.Stdout)
		return publisher.Run(cmd.Context(), opts)
	},
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

func init() {
	rootCmd.Flags().StringArrayVar(&imagePaths, "image", nil, "Eyecatch candidate image path (repeatable)")
	rootCmd.Flags().StringVar(&title, "title", "", "Override the derived title")
	rootCmd.Flags().StringVar(&category, "category", "", "Override the derived category")
	rootCmd.Flags().StringVar(&writer, "writer", "", "Writer name")
	rootCmd.Flags().BoolVar(&featured, "featured", false, "Mark the post as featured")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the assembled record instead of publishing")
	rootCmd.Flags().BoolVar(&aiDescription, "ai-description", false, "Generate the description with an Anthropic model")
	rootCmd.Flags().StringVar(&keywordsPath, "categories", "", "Path to a custom category keyword file")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
