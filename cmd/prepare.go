package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/parking-dashboard/internal/model"
	"github.com/sells-group/parking-dashboard/internal/prepare"
)

var (
	prepareFormat string
	prepareTop    int
	prepareKey    string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Load, join and derive the district table",
	Long:  "Runs the dataset preparer once and prints the per-district metrics, optionally ranked by a ratio.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("prepare"); err != nil {
			return err
		}

		ds, err := prepare.Run(cfg)
		if err != nil {
			return err
		}

		rows := ds.Districts
		if prepareTop > 0 {
			key, err := model.ParseRatioKey(prepareKey)
			if err != nil {
				return err
			}
			rows = prepare.TopN(rows, key, prepareTop)
		}

		return writeDistricts(os.Stdout, prepareFormat, rows)
	},
}

func init() {
	prepareCmd.Flags().StringVar(&prepareFormat, "format", "table", "output format: table, json or yaml")
	prepareCmd.Flags().IntVar(&prepareTop, "top", 0, "only print the top N districts by --key (0 = all, in input order)")
	prepareCmd.Flags().StringVar(&prepareKey, "key", string(model.KeyComplaintLotRatio), "ratio used by --top")
	rootCmd.AddCommand(prepareCmd)
}

// writeDistricts renders rows in the requested format.
func writeDistricts(out io.Writer, format string, rows []model.DistrictMetrics) error {
	switch format {
	case "table":
		formatDistricts(out, rows)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(rows), "prepare: encode json")
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return eris.Wrap(err, "prepare: encode yaml")
		}
		return eris.Wrap(enc.Close(), "prepare: encode yaml")
	default:
		return eris.Errorf("prepare: unknown format %q", format)
	}
}

// formatDistricts writes a tabular representation of district metrics to w.
func formatDistricts(out io.Writer, rows []model.DistrictMetrics) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DISTRICT\tCOMPLAINTS\tLOTS\tPOPULATION\tCOMPLAINTS/1K\tLOTS/1K\tRATIO\tPOP/LOT")
	_, _ = fmt.Fprintln(w, "--------\t----------\t----\t----------\t-------------\t-------\t-----\t-------")

	for _, r := range rows {
		pop := fmt.Sprintf("%d", r.Population)
		if !r.PopulationMatched {
			pop = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.District,
			r.Complaints,
			r.ParkingLots,
			pop,
			r.ComplaintsPer1000,
			r.LotsPer1000,
			r.ComplaintLotRatio,
			r.PopulationPerLot,
		)
	}
	_ = w.Flush()
}
