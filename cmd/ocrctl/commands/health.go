package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glyphlab/ocrserve/cmd/ocrctl/ui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show service health and engine settings",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	c := newClient()

	health, err := c.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	if jsonOut {
		return writeJSON(health)
	}

	ui.Section("Service Health")
	ui.Table([]string{"Field", "Value"}, [][]string{
		{"Status", health.Status},
		{"Service", health.Service},
		{"Engine policy", health.EnginePolicy},
		{"Concurrency", strconv.Itoa(health.Concurrency)},
		{"Languages", strings.Join(health.SupportedLanguages, ", ")},
	})
	return nil
}
