// Command fuelroutectl is the administrative CLI for the fuel route
// optimizer: importing the OPIS station CSV and running the out-of-band
// geocoding pass, grounded on acdtunes-spacetraders' spf13/cobra CLI
// shape (a root command with one subcommand per operation).
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "fuelroutectl",
		Short: "Administrative CLI for the fuel route optimizer",
		Long: `fuelroutectl manages the fuel station corpus backing the route
optimizer: importing OPIS retail price CSV snapshots and resolving
station city/state into coordinates via Nominatim.`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.AddCommand(newImportStationsCommand())
	root.AddCommand(newGeocodeStationsCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
