package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardform/pkg/orchestrator"
	"github.com/goliatone/go-cardform/pkg/record"
	"github.com/goliatone/go-cardform/pkg/renderers/tui"
)

func newFillCmd(a *app) *cobra.Command {
	var useClipboard bool
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in a card interactively and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			navigate := func(_ context.Context, next string, rec record.Record) {
				fmt.Fprintf(out, "Continue to %s (record %s)\n", next, rec.ID)
			}

			o, err := orchestrator.FromConfig(cmd.Context(), a.cfg, a.log, orchestrator.WithNavigator(navigate))
			if err != nil {
				return err
			}
			defer o.Close()

			options := []tui.Option{
				tui.WithOutput(out),
				tui.WithLogger(a.log),
				tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
			}
			if useClipboard {
				options = append(options, tui.WithClipboard(tui.SystemClipboard{}))
			}
			session, err := tui.New(options...)
			if err != nil {
				return err
			}

			_, err = session.Run(cmd.Context(), o.NewForm())
			return err
		},
	}
	cmd.Flags().BoolVar(&useClipboard, "clipboard", true, "allow typing "+tui.PasteToken+" to paste from the clipboard")
	return cmd
}
