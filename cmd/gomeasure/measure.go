package main

import (
	"fmt"

	"github.com/philipparndt/gomeasure/internal/config"
	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/scene"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	point1X, point1Y, point1Z float64
	point2X, point2Y, point2Z float64

	snapMode     string
	snapDistance float64
	outFile      string
	dryRun       bool
)

var measureCmd = &cobra.Command{
	Use:   "measure <file.stl>",
	Short: "Measure distance between two points",
	Long: `Measure the straight-line distance between two 3D points on a model.
With vertex snapping each point moves to the nearest model vertex within the
snap distance. The measurement is anchored to the model and appended to its
sidecar file unless --dry-run is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Z, "z1", 0.0, "Z coordinate of first point")
	measureCmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Z, "z2", 0.0, "Z coordinate of second point")
	measureCmd.Flags().StringVar(&snapMode, "snap", "", "snap mode: vertex or disabled (default from config)")
	measureCmd.Flags().Float64Var(&snapDistance, "snap-distance", 0, "snap distance (default from config)")
	measureCmd.Flags().StringVar(&outFile, "out", "", "measurement file (default <file>.gomeasure.json)")
	measureCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the measurement without saving it")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "z1", "x2", "y2", "z2")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	filename := args[0]

	options, err := config.DefaultOptions()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("snap") {
		mode, err := measurement.ParseSnapMode(snapMode)
		if err != nil {
			return err
		}
		options = options.WithSnap(mode, options.SnapDistance, mode != measurement.SnapDisabled)
	}
	if cmd.Flags().Changed("snap-distance") {
		options = options.WithSnap(options.SnapMode, snapDistance, options.SnapEnabled)
	}
	if options.SnapEnabled && options.SnapMode != measurement.SnapVertex && options.SnapMode != measurement.SnapDisabled {
		return fmt.Errorf("snap mode %q needs a picked face; use vertex or disabled", options.SnapMode)
	}

	sc := scene.New()
	obj, err := sc.LoadSTL(filename)
	if err != nil {
		return err
	}
	options = options.WithTargets(obj)

	out := outFile
	if out == "" {
		out = measurement.SidecarPath(filename)
	}

	codec := measurement.NewCodec(measurement.WithCodecLogger(log))
	store := measurement.NewStore(measurement.WithStoreLogger(log))
	if !dryRun {
		records, err := codec.LoadFile(out)
		if err != nil {
			return err
		}
		if _, err := codec.Load(cmd.Context(), store, records, measurement.Lookup(sc.Lookup)); err != nil {
			return err
		}
	}

	local := analysis.UniqueVertices(&stl.Model{Triangles: obj.Triangles()})
	vertices := make([]geometry.Vector3, 0, len(local))
	for _, v := range local {
		vertices = append(vertices, obj.WorldTransform().Apply(v))
	}

	pick := func(label string, p geometry.Vector3) measurement.Point {
		fmt.Printf("\n%s: %s\n", label, analysis.FormatVector(p))
		if options.SnapEnabled && options.SnapMode == measurement.SnapVertex {
			if snapped, ok := measurement.SnapToVertex(p, vertices, options.SnapDistance); ok {
				fmt.Printf("  Snapped to vertex: %s\n", analysis.FormatVector(snapped))
				p = snapped
			} else {
				fmt.Printf("  No vertex within %.6f\n", options.SnapDistance)
			}
		}
		return measurement.NewAnchoredPoint(obj, p)
	}

	fmt.Println("Point-to-Point Measurement")
	fmt.Println("==========================")

	start := pick("Point 1", geometry.NewVector3(point1X, point1Y, point1Z))
	end := pick("Point 2", geometry.NewVector3(point2X, point2Y, point2Z))
	m := store.Add(start, end, options)

	fmt.Printf("\nDistance: %s\n", analysis.FormatDistance(m.Distance, ""))

	if dryRun {
		return nil
	}
	if err := measurement.SaveFile(out, measurement.Serialize(store.List())); err != nil {
		return err
	}
	fmt.Printf("Saved %d measurement(s) to %s\n", store.Len(), out)
	return nil
}
