package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file.stl|measurements.json>",
	Short: "List saved measurements",
	Long: `List the measurements stored in a measurement file. When an STL file is
given, its sidecar file is used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := sidecarFor(args[0])
		records, err := readRecords(path)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Printf("No measurements in %s\n", path)
			return nil
		}

		fmt.Printf("Measurements in %s\n", path)
		fmt.Println(strings.Repeat("=", len("Measurements in ")+len(path)))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tDISTANCE\tSTART\tEND\tANCHORS\tSNAP\tDYNAMIC")
		for i, rec := range records {
			fmt.Fprintf(w, "%d\t%s\t%.6f\t%s\t%s\t%s\t%s\t%t\n",
				i+1,
				rec.ID,
				rec.Distance,
				formatPosition(rec.Start.Position),
				formatPosition(rec.End.Position),
				anchors(rec),
				snapLabel(rec.Options),
				rec.Options.IsDynamic,
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// sidecarFor maps a model file to its measurement file; other paths are used as is
func sidecarFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".stl") {
		return measurement.SidecarPath(path)
	}
	return path
}

// readRecords decodes a measurement file, logging skipped entries
func readRecords(path string) ([]measurement.Record, error) {
	codec := measurement.NewCodec(
		measurement.WithCodecLogger(log),
		measurement.WithDiagnostics(func(d measurement.Diagnostic) {
			log.Warn().Err(d).Int("index", d.Index).Msg("skipping measurement")
		}),
	)
	return codec.LoadFile(path)
}

func formatPosition(xs []float64) string {
	if len(xs) != 3 {
		return "-"
	}
	return analysis.FormatVector(geometry.NewVector3(xs[0], xs[1], xs[2]))
}

func anchors(rec measurement.Record) string {
	start, end := rec.Start.AnchorObjectID, rec.End.AnchorObjectID
	if start == "" {
		start = "-"
	}
	if end == "" {
		end = "-"
	}
	return start + "/" + end
}

func snapLabel(o measurement.OptionsRecord) string {
	if !o.SnapEnabled || o.SnapMode == "" {
		return string(measurement.SnapDisabled)
	}
	return fmt.Sprintf("%s@%g", o.SnapMode, o.SnapDistance)
}
