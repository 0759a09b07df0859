package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/parking-dashboard/internal/prepare"
)

var cctvCmd = &cobra.Command{
	Use:   "cctv",
	Short: "Load the CCTV site file and print its extent",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("cctv"); err != nil {
			return err
		}

		layer, err := prepare.RunCCTV(cfg)
		if err != nil {
			return err
		}

		formatCCTV(os.Stdout, layer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cctvCmd)
}

func formatCCTV(out io.Writer, l *prepare.CCTVLayer) {
	_, _ = fmt.Fprintf(out, "sites:   %d\n", len(l.Sites))
	_, _ = fmt.Fprintf(out, "dropped: %d\n", l.Dropped)
	if l.Bounds.Empty {
		_, _ = fmt.Fprintln(out, "bounds:  none")
		return
	}
	_, _ = fmt.Fprintf(out, "bounds:  %.6f,%.6f .. %.6f,%.6f\n",
		l.Bounds.South, l.Bounds.West, l.Bounds.North, l.Bounds.East)
}
