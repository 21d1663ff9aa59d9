// Command eda summarizes, cleans and charts CSV files.
package main

import (
	"os"

	"github.com/vdobler/eda/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
