package main

import (
	"fmt"

	"github.com/spf13/cobra"

	agimage "agrisense/internal/image"
)

var (
	plantAnnotate string
	plantJSON     bool
)

var plantCmd = &cobra.Command{
	Use:   "plant <image>",
	Short: "Identify a leaf and diagnose its condition",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlant,
}

func init() {
	plantCmd.Flags().StringVar(&plantAnnotate, "annotate", "", "Write an annotated copy of the image to this path")
	plantCmd.Flags().BoolVar(&plantJSON, "json", false, "Print the report as JSON")
}

func runPlant(cmd *cobra.Command, args []string) error {
	img, err := agimage.Load(args[0])
	if err != nil {
		return err
	}

	a, err := newAnalyzer()
	if err != nil {
		return err
	}

	report, err := a.DiagnosePlant(img.Image)
	if err != nil {
		return fmt.Errorf("plant analysis failed: %w", err)
	}

	if plantAnnotate != "" {
		if err := a.Annotate(img.Image, report, plantAnnotate); err != nil {
			return err
		}
	}

	if plantJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	printPlantReport(cmd.OutOrStdout(), report)
	return nil
}
