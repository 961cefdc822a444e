package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dgallion1/nexusdoc/internal/dialect"
	"github.com/dgallion1/nexusdoc/internal/render"
)

var (
	renderDialect      string
	renderPreviewLimit int
)

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render a finished document to HTML",
	Long: `Render reads a complete document and prints its HTML fragment. The input
is treated as a finished stream, so a NIDL or NADL document missing its
closing tag renders as an error. Exits with status 2 when the result is an
error view.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderDialect, "dialect", "d", dialect.NIDL, fmt.Sprintf("Document dialect %v", dialect.Names()))
	renderCmd.Flags().IntVar(&renderPreviewLimit, "preview-limit", render.DefaultPreviewLimit, "Bytes of raw text shown in pending views")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	renderer, err := dialect.ForName(renderDialect, dialect.Options{PreviewLimit: renderPreviewLimit, Log: newLogger()})
	if err != nil {
		return err
	}
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	res := renderFinished(renderer, renderDialect, text, renderPreviewLimit)
	if _, err := io.WriteString(cmd.OutOrStdout(), res.HTML+"\n"); err != nil {
		return err
	}
	return modeError(res)
}

// renderFinished renders text as the final state of a stream in the named
// dialect.
func renderFinished(r render.Renderer, dialectName, text string, limit int) render.Result {
	complete := true
	if isComplete := dialect.Completion(dialectName); isComplete != nil {
		complete = isComplete(text)
	}
	return render.Snapshot(r, text, complete, true, limit)
}

func modeError(res render.Result) error {
	if res.Mode == render.ModeError {
		return &exitError{code: 2, msg: "document rendered in error mode"}
	}
	return nil
}
