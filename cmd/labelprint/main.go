// Command labelprint halftones images onto thermal label stock and
// spools the result through CUPS.
package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "labelprint",
	Short:        "Halftone images for thermal label printers",
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v",
		false, "Debug logging",
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Fatal()
	}
}
