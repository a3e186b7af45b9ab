package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"martianoff/lama/internal/fetch"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached fixture repositories",
	Long: `Clean removes every fixture repository cloned from a git test source.

The cache lives in $LAMA_CACHE, or ~/.lama/fixtures by default.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := fetch.DefaultConfig()
		freed, err := config.Clean()
		if err != nil {
			return fmt.Errorf("cleaning %s: %w", config.CacheDir, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s freed).\n", config.CacheDir, humanize.Bytes(uint64(freed)))
		return nil
	},
}
