package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.stl|measurements.json>",
	Short: "Display model and measurement statistics",
	Long: `Display the dimensions, surface area and triangle count of an STL model,
followed by a summary of its saved measurements.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		if strings.EqualFold(filepath.Ext(filename), ".stl") {
			model, err := stl.Parse(filename)
			if err != nil {
				return fmt.Errorf("failed to parse STL file: %w", err)
			}
			printModelInfo(filename, analysis.AnalyzeModel(model))
		}

		path := sidecarFor(filename)
		records, err := readRecords(path)
		if err != nil {
			return err
		}
		printSummary(path, records)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printModelInfo(filename string, info analysis.ModelInfo) {
	fmt.Printf("STL File Information: %s\n", filename)
	fmt.Println("====================")
	fmt.Printf("Triangles:     %d\n", info.TriangleCount)
	fmt.Printf("Vertices:      %d\n", info.VertexCount)
	fmt.Printf("Surface Area:  %.6f\n", info.SurfaceArea)
	fmt.Printf("Bounding Box:  %s - %s\n",
		analysis.FormatVector(info.BoundingBox.Min),
		analysis.FormatVector(info.BoundingBox.Max))
	fmt.Printf("Dimensions:    %.6f x %.6f x %.6f\n",
		info.Dimensions.X, info.Dimensions.Y, info.Dimensions.Z)
	fmt.Println()
}

func printSummary(path string, records []measurement.Record) {
	distances := make([]float64, 0, len(records))
	dynamic := 0
	for _, rec := range records {
		distances = append(distances, rec.Distance)
		if rec.Options.IsDynamic {
			dynamic++
		}
	}
	s := analysis.Summarize(distances)

	fmt.Printf("Measurements: %s\n", path)
	fmt.Println("============")
	fmt.Printf("Count:    %d (%d dynamic)\n", s.Count, dynamic)
	if s.Count == 0 {
		return
	}
	fmt.Printf("Shortest: %s\n", analysis.FormatDistance(s.Min, ""))
	fmt.Printf("Longest:  %s\n", analysis.FormatDistance(s.Max, ""))
	fmt.Printf("Mean:     %s\n", analysis.FormatDistance(s.Mean, ""))
	fmt.Printf("Total:    %s\n", analysis.FormatDistance(s.Total, ""))
}
