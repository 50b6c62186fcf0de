package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/screenway/vidcaps/internal/codec"
	"github.com/screenway/vidcaps/internal/config"
	"github.com/screenway/vidcaps/internal/logging"
	_ "github.com/screenway/vidcaps/internal/modules"
	"github.com/screenway/vidcaps/internal/registry"
	"github.com/spf13/cobra"
)

// CreateSummaryCmd creates the summary command.
func CreateSummaryCmd() *cobra.Command {
	var configFile string
	var encoders, csc, decoders []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Initialize the registry and print its capability tables",
		Long: `Selects modules, initializes the capability registry, and prints the ` +
			`resulting tables along with per-module status. Selection flags override ` +
			`the [modules] table in the config file.`,
		Run: func(cmd *cobra.Command, _ []string) {
			// Keep output clean, warnings only
			logging.Initialize(logging.Config{Level: "warn", Format: "text"})

			sel, err := config.LoadSelection(configFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
				os.Exit(1)
			}
			if cmd.Flags().Changed("encoders") {
				sel.Encoders = encoders
			}
			if cmd.Flags().Changed("csc") {
				sel.CSC = csc
			}
			if cmd.Flags().Changed("decoders") {
				sel.Decoders = decoders
			}

			reg := registry.New(codec.SystemCatalog(), codec.Default())
			if selErr := reg.SelectModules(sel.Encoders, sel.CSC, sel.Decoders); selErr != nil {
				fmt.Fprintf(os.Stderr, "failed to select modules: %v\n", selErr)
				os.Exit(1)
			}
			reg.Init()
			defer reg.Cleanup()

			sum := reg.Summary()

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if encodeErr := enc.Encode(sum); encodeErr != nil {
					fmt.Fprintf(os.Stderr, "failed to encode summary: %v\n", encodeErr)
					os.Exit(1)
				}
				return
			}

			printTable := func(title string, table map[string][]string) {
				fmt.Printf("%s:\n", title)
				keys := make([]string, 0, len(table))
				for k := range table {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Printf("  %-24s %v\n", k, table[k])
				}
			}
			printStatuses := func(title string, statuses map[string]registry.ModuleStatus) {
				fmt.Printf("%s:\n", title)
				names := make([]string, 0, len(statuses))
				for name := range statuses {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Printf("  %-10s %s\n", name, statuses[name])
				}
			}

			printTable("encoding", sum.Encoding)
			printTable("csc", sum.CSC)
			printTable("decoding", sum.Decoding)
			printStatuses("encoders", sum.Encoders)
			printStatuses("converters", sum.Converters)
			printStatuses("decoders", sum.Decoders)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "config.toml", "Path to configuration file")
	cmd.Flags().StringSliceVar(&encoders, "encoders", []string{"all"}, "Encoder modules to enable")
	cmd.Flags().StringSliceVar(&csc, "csc", []string{"all"}, "Colorspace conversion modules to enable")
	cmd.Flags().StringSliceVar(&decoders, "decoders", []string{"all"}, "Decoder modules to enable")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output summary as JSON")

	return cmd
}
