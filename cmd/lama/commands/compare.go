package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"martianoff/lama/internal/content"
)

type mismatchError struct {
	actual, expected string
}

func (e *mismatchError) Error() string {
	return fmt.Sprintf("%s does not match %s", e.actual, e.expected)
}

var compareCmd = &cobra.Command{
	Use:   "compare <actual> <expected>",
	Short: "Compare two files the way test outputs are compared",
	Long: `Compare reports whether two files are equal after collapsing runs of
spaces and trimming surrounding whitespace. It exits with status 1 when
they differ.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		equal, err := content.Equal(args[0], args[1])
		if err != nil {
			return err
		}
		if !equal {
			return &mismatchError{actual: args[0], expected: args[1]}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Outputs match.")
		return nil
	},
}
