package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/glyphlab/ocrserve/cmd/ocrctl/ui"
	"github.com/glyphlab/ocrserve/internal/client"
	"github.com/glyphlab/ocrserve/pkg/api"
)

var recognizeLanguage string

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image>...",
	Short: "Upload images for text recognition",
	Long: `Upload one or more images (or scanned PDFs) to the OCR service and
print the recognized text. A single file shows the full text; a batch
shows a per-file summary table.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecognize,
}

func init() {
	recognizeCmd.Flags().StringVarP(&recognizeLanguage, "language", "l", "", "language hint (canonical code or alias, server default when empty)")
	rootCmd.AddCommand(recognizeCmd)
}

// fileResult pairs an uploaded file with its outcome. A transport error
// means the service was never reached or answered with a rejection.
type fileResult struct {
	File string `json:"file"`
	api.RecognizeResponse
	TransportError string `json:"transportError,omitempty"`
}

func runRecognize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c := newClient()

	if verbose && !jsonOut {
		ui.Info("Server: %s", serverURL)
	}

	var results []fileResult
	switch {
	case jsonOut:
		results = recognizeFiles(ctx, c, args, nil)
	case len(args) == 1:
		spin := ui.NewSpinner(fmt.Sprintf("Recognizing %s...", filepath.Base(args[0])))
		spin.Start()
		results = recognizeFiles(ctx, c, args, nil)
		spin.Stop()
	default:
		bar := ui.NewProgressBar(int64(len(args)), "Recognizing")
		results = recognizeFiles(ctx, c, args, bar)
		bar.Finish()
	}

	if jsonOut {
		if len(results) == 1 {
			return writeJSON(results[0])
		}
		return writeJSON(results)
	}

	failures := 0
	for _, r := range results {
		if r.TransportError != "" || !r.Success {
			failures++
		}
	}

	if len(results) == 1 {
		renderSingle(results[0])
	} else {
		renderBatch(results, failures)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(results))
	}
	return nil
}

func recognizeFiles(ctx context.Context, c *client.Client, paths []string, bar *ui.ProgressBar) []fileResult {
	results := make([]fileResult, 0, len(paths))
	for i, path := range paths {
		r := fileResult{File: path}
		if res, err := c.RecognizeFile(ctx, path, recognizeLanguage); err != nil {
			r.TransportError = err.Error()
		} else {
			r.RecognizeResponse = *res
		}
		results = append(results, r)

		if bar != nil {
			bar.Set(int64(i + 1))
		}
	}
	return results
}

func renderSingle(r fileResult) {
	ui.Newline()
	if r.TransportError != "" {
		ui.Error("%s: %s", filepath.Base(r.File), r.TransportError)
		return
	}
	if !r.Success {
		ui.Error("%s: %s", filepath.Base(r.File), r.Error)
		ui.KeyValue("Processing time", ui.FormatDuration(time.Duration(r.ProcessingTimeMs)*time.Millisecond))
		return
	}

	ui.Success("Recognized %s", filepath.Base(r.File))
	ui.Newline()
	if r.Text == "" {
		ui.Warning("No text found")
	} else {
		fmt.Println(r.Text)
	}
	ui.Newline()
	ui.KeyValue("Confidence", fmt.Sprintf("%.1f%%", r.Confidence))
	ui.KeyValue("Processing time", ui.FormatDuration(time.Duration(r.ProcessingTimeMs)*time.Millisecond))
	ui.KeyValue("Language", r.DetectedLanguage)
}

func renderBatch(results []fileResult, failures int) {
	ui.Newline()
	ui.Section("Recognition Summary")

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status, confidence, took := "ok", "-", "-"
		detail := snippet(r.Text)

		switch {
		case r.TransportError != "":
			status = "error"
			detail = r.TransportError
		case !r.Success:
			status = "failed"
			detail = r.Error
		default:
			confidence = fmt.Sprintf("%.1f%%", r.Confidence)
			took = ui.FormatDuration(time.Duration(r.ProcessingTimeMs) * time.Millisecond)
		}

		rows = append(rows, []string{filepath.Base(r.File), status, confidence, took, detail})
	}
	ui.Table([]string{"File", "Status", "Confidence", "Time", "Detail"}, rows)

	if verbose {
		for _, r := range results {
			if r.TransportError == "" && r.Success && r.Text != "" {
				ui.Section(filepath.Base(r.File))
				fmt.Println(r.Text)
			}
		}
	}

	ui.Newline()
	if failures == 0 {
		ui.Success("%d files recognized", len(results))
	} else {
		ui.Warning("%d of %d files failed", failures, len(results))
	}
}

// snippet condenses recognized text to a single table cell.
func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > 40 {
		return string(runes[:37]) + "..."
	}
	return s
}
