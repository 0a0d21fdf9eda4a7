package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardform/pkg/card"
)

func newFormatCmd() *cobra.Command {
	var paste bool
	cmd := &cobra.Command{
		Use:   "format <number|holder|expiry|cvv> <raw>...",
		Short: "Print the canonical form of a raw field value",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := card.ParseField(args[0])
			if err != nil {
				return err
			}
			raw := strings.Join(args[1:], " ")
			value := card.Normalize(field, raw)
			if paste {
				if sanitized, ok := card.SanitizePaste(field, raw); ok {
					value = sanitized
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
	cmd.Flags().BoolVar(&paste, "paste", false, "treat the value as clipboard text")
	return cmd
}
