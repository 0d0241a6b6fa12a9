package main

import "fibonacci/cmd"

// Reads a position from stdin and prints the Fibonacci number there.
// Subcommands profile the computation, list the sequence and check source for recursion.
func main() {
	cmd.Execute()
}
