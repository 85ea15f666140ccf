// mlcd is a terminal editor for neural-network architecture diagrams.
//
// Run: GOWORK=off go run ./cmd/mlcd/ edit diagram.json
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
