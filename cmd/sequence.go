package cmd

import (
	"fmt"

	"fibonacci/fib"

	"github.com/spf13/cobra"
)

var count int

var sequenceCmd = &cobra.Command{
	Use:     "sequence",
	Aliases: []string{"seq"},
	Short:   "Print the first terms of the sequence",
	Args:    cobra.NoArgs,
	RunE:    sequence,
}

func init() {
	sequenceCmd.Flags().IntVarP(&count, "count", "c", 10, "How many terms to print")
	RootCmd.AddCommand(sequenceCmd)
}

func sequence(cmd *cobra.Command, args []string) error {
	for i, v := range fib.Sequence(count) {
		fmt.Fprintf(cmd.OutOrStdout(), "F(%d) = %d\n", i, v)
	}
	return nil
}
