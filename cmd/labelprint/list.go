package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	halftone "github.com/osbock/dymo-picture-print"
	"github.com/osbock/dymo-picture-print/label"
	"github.com/osbock/dymo-picture-print/printer"
)

var printersCmd = &cobra.Command{
	Use:   "printers",
	Short: "List available CUPS destinations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		printers, err := printer.New().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(printers) == 0 {
			fmt.Println("no printers found")
			return nil
		}
		def, _ := printer.PickDefault(printers)
		for _, p := range printers {
			marker := " "
			if p == def {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, p)
		}
		return nil
	},
}

var labelsBrand string

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List known label stock",
	RunE: func(_ *cobra.Command, _ []string) error {
		specs := label.All()
		if labelsBrand != "" {
			specs = label.ByBrand(label.Brand(labelsBrand))
			if len(specs) == 0 {
				return fmt.Errorf("unknown brand %q", labelsBrand)
			}
		}
		for _, spec := range specs {
			fmt.Printf("%-6s %-28s %4dx%-4d %3d dpi  %s\n",
				spec.Code, spec.Name, spec.WidthPx, spec.HeightPx, spec.DPI, spec.Media)
		}
		return nil
	},
}

var dithersCmd = &cobra.Command{
	Use:   "dithers",
	Short: "List dithering strategies",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(strings.Join(halftone.Strategies(), "\n"))
	},
}

func init() {
	labelsCmd.Flags().StringVar(&labelsBrand, "brand", "", "Filter by brand (dymo or generic)")
	rootCmd.AddCommand(printersCmd, labelsCmd, dithersCmd)
}
