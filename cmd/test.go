package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to TMDb",
	Long:  `Test the connection to the TMDb API and display basic information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to TMDb at %s...\n", cfg.TMDB.BaseURL)

	genres, err := fetchGenres(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("✓ Connection successful!")

	fmt.Printf("\nTMDb Statistics:\n")
	fmt.Printf("- Genres: %d\n", genres.Len())
	fmt.Printf("- Language: %s\n", cfg.TMDB.Language)
	fmt.Printf("- Page size: %d\n", cfg.Browse.PageSize)

	if names := filters.Names(); len(names) > 0 {
		fmt.Printf("\nFilter presets:\n")
		for _, name := range names {
			f, _ := filters.Get(name)
			fmt.Printf("  • %s: %s\n", name, f.Expression())
		}
	}

	fmt.Printf("\nMetrics endpoint: %s\n", boolToStatus(cfg.Metrics.Enabled))

	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}
