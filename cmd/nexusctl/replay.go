package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/nexusdoc/internal/dialect"
	"github.com/dgallion1/nexusdoc/internal/generate"
	"github.com/dgallion1/nexusdoc/internal/render"
	"github.com/dgallion1/nexusdoc/internal/stream"
)

var (
	replayDialect   string
	replayChunkSize int
	replayDelay     time.Duration
	replayHTML      bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [file|-]",
	Short: "Feed a document through the streaming renderer chunk by chunk",
	Long: `Replay splits a captured document into chunks, appends them to a stream
buffer one at a time, and prints the render mode after each append. Use it
to check where a document first renders complete.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayDialect, "dialect", "d", dialect.NIDL, fmt.Sprintf("Document dialect %v", dialect.Names()))
	replayCmd.Flags().IntVarP(&replayChunkSize, "chunk-size", "n", 256, "Bytes per chunk")
	replayCmd.Flags().DurationVar(&replayDelay, "delay", 0, "Pause between chunks")
	replayCmd.Flags().BoolVar(&replayHTML, "html", false, "Print the final HTML after the trace")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	renderer, err := dialect.ForName(replayDialect, dialect.Options{Log: newLogger()})
	if err != nil {
		return err
	}
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	buf := stream.NewBuffer(dialect.Completion(replayDialect))
	src := &generate.Replay{Text: text, ChunkSize: replayChunkSize, Delay: replayDelay}
	err = src.Stream(cmd.Context(), generate.Prompt{}, func(chunk string) error {
		buf.Append(chunk)
		res := render.Snapshot(renderer, buf.Snapshot(), buf.IsComplete(), false, 0)
		_, werr := fmt.Fprintf(out, "chunk %d\tbytes %d\tmode %s\n", buf.Chunks(), buf.Len(), res.Mode)
		return werr
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	buf.MarkDone()

	res := render.Snapshot(renderer, buf.Snapshot(), buf.IsComplete(), true, 0)
	fmt.Fprintf(out, "final\tbytes %d\tmode %s\n", buf.Len(), res.Mode)
	if replayHTML {
		if _, err := io.WriteString(out, res.HTML+"\n"); err != nil {
			return err
		}
	}
	return modeError(res)
}
