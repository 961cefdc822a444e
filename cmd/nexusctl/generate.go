package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/nexusdoc/internal/config"
	"github.com/dgallion1/nexusdoc/internal/dialect"
	"github.com/dgallion1/nexusdoc/internal/generate"
	"github.com/dgallion1/nexusdoc/internal/stream"
)

var (
	generateParams   string
	generateTopic    string
	generateContent  string
	generateRawOut   string
	generateQuietRaw bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Stream a live report from the configured provider",
	Long: `Generate builds a report prompt from a JSON parameters file, streams the
model output to stderr as it arrives, and prints the rendered HTML to stdout.
With --topic and --content it produces a NADL analysis instead.

The provider comes from the server environment: GENERATOR_PROVIDER,
GEMINI_API_KEY or ANTHROPIC_API_KEY, and the model variables.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateParams, "params", "p", "", "Report parameters JSON file")
	generateCmd.Flags().StringVar(&generateTopic, "topic", "", "Analysis topic")
	generateCmd.Flags().StringVar(&generateContent, "content", "", "Report text the analysis expands on")
	generateCmd.Flags().StringVarP(&generateRawOut, "raw-out", "o", "", "Also write the raw stream to this file")
	generateCmd.Flags().BoolVarP(&generateQuietRaw, "quiet", "q", false, "Do not echo the raw stream to stderr")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := newLogger()
	dialectName, prompt, err := generatePrompt()
	if err != nil {
		return err
	}

	cfg := config.Load()
	gen, err := generate.FromConfig(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.GenerationTimeout)
	defer cancel()

	renderer, err := dialect.ForName(dialectName, dialect.Options{PreviewLimit: cfg.PreviewLimit, Log: log})
	if err != nil {
		return err
	}

	var echo io.Writer = cmd.ErrOrStderr()
	if generateQuietRaw {
		echo = io.Discard
	}
	if generateRawOut != "" {
		f, err := os.Create(generateRawOut)
		if err != nil {
			return err
		}
		defer f.Close()
		echo = io.MultiWriter(echo, f)
	}

	buf := stream.NewBuffer(dialect.Completion(dialectName))
	start := time.Now()
	log.Info("generating", "generator", gen.Name(), "dialect", dialectName)
	streamErr := gen.Stream(ctx, prompt, func(chunk string) error {
		buf.Append(chunk)
		_, err := io.WriteString(echo, chunk)
		return err
	})
	buf.MarkDone()
	fmt.Fprintln(cmd.ErrOrStderr())
	log.Info("generation finished", "chunks", buf.Chunks(), "bytes", buf.Len(), "duration", time.Since(start))
	if streamErr != nil {
		return fmt.Errorf("%s stream: %w", gen.Name(), streamErr)
	}

	res := renderFinished(renderer, dialectName, buf.Snapshot(), cfg.PreviewLimit)
	if _, err := io.WriteString(cmd.OutOrStdout(), res.HTML+"\n"); err != nil {
		return err
	}
	return modeError(res)
}

// generatePrompt builds the report or analysis prompt from the flags.
func generatePrompt() (string, generate.Prompt, error) {
	if generateTopic != "" || generateContent != "" {
		req := generate.AnalysisRequest{Topic: generateTopic, Content: generateContent}
		if err := req.Validate(); err != nil {
			return "", generate.Prompt{}, err
		}
		return dialect.NADL, generate.BuildAnalysisPrompt(req), nil
	}
	if generateParams == "" {
		return "", generate.Prompt{}, fmt.Errorf("--params or --topic/--content is required")
	}

	data, err := os.ReadFile(generateParams)
	if err != nil {
		return "", generate.Prompt{}, err
	}
	var params generate.ReportParameters
	if err := json.Unmarshal(data, &params); err != nil {
		return "", generate.Prompt{}, fmt.Errorf("parse %s: %w", generateParams, err)
	}
	if err := params.Validate(); err != nil {
		return "", generate.Prompt{}, err
	}
	return dialect.NIDL, generate.BuildReportPrompt(params), nil
}
