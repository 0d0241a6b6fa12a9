package cmd

import (
	"fmt"

	"fibonacci/fib"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const prompt = "Enter the position-> "

// RootCmd reads a position from stdin and prints the Fibonacci number at it
var RootCmd = &cobra.Command{
	Use:   "fibonacci",
	Short: "Print the Fibonacci number at a position read from standard input",
	Long: `Prompts for a position, reads one integer from standard input and prints
the Fibonacci number at that position. Positions below 1 give 0.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          position,
}

// Execute adds all child commands to the root command and sets Flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		log.Fatal("Failed to execute command: " + err.Error())
	}
}

func position(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, prompt)

	var n int
	if _, err := fmt.Fscan(cmd.InOrStdin(), &n); err != nil {
		return fmt.Errorf("invalid position: %w", err)
	}
	fmt.Fprintln(out, fib.Fibonacci(n))
	return nil
}
