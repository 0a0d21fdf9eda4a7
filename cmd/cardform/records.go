package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardform/pkg/orchestrator"
)

func newRecordsCmd(a *app) *cobra.Command {
	var (
		reveal bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List stored card records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := orchestrator.FromConfig(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer o.Close()

			records, err := o.Records(cmd.Context())
			if err != nil {
				return err
			}
			networks := make([]string, len(records))
			for i := range records {
				networks[i] = records[i].Network().String()
				if !reveal {
					records[i] = records[i].Redacted()
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			if len(records) == 0 {
				_, err := fmt.Fprintln(out, "no records")
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNETWORK\tNUMBER\tHOLDER\tEXPIRY\tCVV\tSTORED")
			for i, rec := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					rec.ID, networks[i], rec.Number, rec.Holder, rec.Expiry, rec.CVV,
					rec.Timestamp.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "show full numbers and CVVs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
