package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/parking-dashboard/internal/geo"
	"github.com/sells-group/parking-dashboard/internal/prepare"
)

var geojsonLayer string

var geojsonCmd = &cobra.Command{
	Use:   "geojson",
	Short: "Write a map layer as GeoJSON to stdout",
	Long:  "Writes the sampled complaint markers or the CCTV sites as a GeoJSON FeatureCollection.",
	RunE: func(cmd *cobra.Command, args []string) error {
		markers, err := layerMarkers(geojsonLayer)
		if err != nil {
			return err
		}
		return writeMarkers(os.Stdout, markers)
	},
}

func init() {
	geojsonCmd.Flags().StringVar(&geojsonLayer, "layer", "complaints", "layer to export: complaints or cctv")
	rootCmd.AddCommand(geojsonCmd)
}

func layerMarkers(layer string) ([]geo.Marker, error) {
	switch layer {
	case "complaints":
		if err := cfg.Validate("prepare"); err != nil {
			return nil, err
		}
		ds, err := prepare.Run(cfg)
		if err != nil {
			return nil, err
		}
		return ds.SampleMarkers(), nil
	case "cctv":
		if err := cfg.Validate("cctv"); err != nil {
			return nil, err
		}
		l, err := prepare.RunCCTV(cfg)
		if err != nil {
			return nil, err
		}
		return l.Markers(), nil
	default:
		return nil, eris.Errorf("geojson: unknown layer %q", layer)
	}
}

func writeMarkers(out io.Writer, markers []geo.Marker) error {
	b, err := geo.MarshalMarkers(markers)
	if err != nil {
		return err
	}
	if _, err := out.Write(append(b, '\n')); err != nil {
		return eris.Wrap(err, "geojson: write")
	}
	return nil
}
