package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/osbock/dymo-picture-print/printer"
)

var (
	printerName    string
	printerOptions []string
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Render and spool the label through CUPS",
	RunE:  runPrint,
}

func init() {
	printCmd.Flags().StringVar(&printerName, "printer", "", "CUPS destination (default: first label printer found)")
	printCmd.Flags().StringArrayVar(&printerOptions, "printer-options", nil, "Extra lp -o options, repeatable")
	rootCmd.AddCommand(printCmd)
}

func runPrint(cmd *cobra.Command, _ []string) error {
	out, spec, err := renderLabel()
	if err != nil {
		return err
	}

	client := printer.New()
	target := printerName
	if target == "" {
		printers, err := client.List(cmd.Context())
		if err != nil {
			return err
		}
		picked, ok := printer.PickDefault(printers)
		if !ok {
			return fmt.Errorf("no printers found, check connections or pass --printer")
		}
		target = picked
		log.WithField("printer", target).Info("auto-selected printer")
	}

	tmp, err := os.CreateTemp("", "labelprint-*.png")
	if err != nil {
		return err
	}
	tmp.Close()
	defer os.Remove(tmp.Name())
	if err := writePNG(out, tmp.Name()); err != nil {
		return err
	}

	return client.Submit(cmd.Context(), printer.Job{
		Printer: target,
		Media:   spec.Media,
		PPI:     spec.DPI,
		Options: printerOptions,
	}, tmp.Name())
}
