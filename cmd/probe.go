package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/screenway/vidcaps/internal/codec"
	_ "github.com/screenway/vidcaps/internal/modules"
	"github.com/spf13/cobra"
)

// CreateProbeCmd creates the probe command.
func CreateProbeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe codec module availability",
		Long: `Probes every known encoder, colorspace conversion, and decoder module ` +
			`and reports which are available on this system.`,
		Run: func(_ *cobra.Command, _ []string) {
			loader := codec.Default()

			results := make(map[string]map[string]bool)
			for _, kind := range []codec.Kind{codec.KindEncoder, codec.KindConverter, codec.KindDecoder} {
				byName := make(map[string]bool)
				for _, name := range codec.Known(kind) {
					byName[name] = loader.Probe(kind, name)
				}
				results[string(kind)] = byName
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					fmt.Fprintf(os.Stderr, "failed to encode results: %v\n", err)
					os.Exit(1)
				}
				return
			}

			for _, kind := range []codec.Kind{codec.KindEncoder, codec.KindConverter, codec.KindDecoder} {
				fmt.Printf("%s:\n", kind)
				for _, name := range codec.Known(kind) {
					status := "unavailable"
					if results[string(kind)][name] {
						status = "available"
					}
					fmt.Printf("  %-10s %s\n", name, status)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")

	return cmd
}
