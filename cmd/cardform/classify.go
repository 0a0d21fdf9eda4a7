package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardform/pkg/card"
	"github.com/goliatone/go-cardform/pkg/display"
)

func newClassifyCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "classify <number>...",
		Short: "Detect the card network from the number prefix",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number := card.NormalizeNumber(strings.Join(args, ""))
			network := card.ClassifyNumber(number)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				return enc.Encode(map[string]any{
					"number":       number,
					"network":      network,
					"presentation": display.PresentationFor(network),
				})
			}
			_, err := fmt.Fprintf(out, "%s\t%s\n", network, display.PresentationFor(network).Label)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
