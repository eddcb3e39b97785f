package commands

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/glyphlab/ocrserve/cmd/ocrctl/ui"
)

var (
	serverURL      string
	requestTimeout time.Duration
	verbose        bool
	noColor        bool
	jsonOut        bool
)

var rootCmd = &cobra.Command{
	Use:   "ocrctl",
	Short: "Operator CLI for the OCR service",
	Long: `ocrctl talks to a running OCR service: upload images or scanned PDFs
for text recognition and inspect service health and engine settings.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.InitUI(noColor, verbose)
	},
}

func init() {
	// Load environment variables
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	defaultServer := os.Getenv("OCR_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServer, "base URL of the OCR service")
	rootCmd.PersistentFlags().DurationVar(&requestTimeout, "timeout", 2*time.Minute, "per-request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print raw JSON responses")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
