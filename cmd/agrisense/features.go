package main

import (
	"fmt"

	"github.com/spf13/cobra"

	agimage "agrisense/internal/image"
)

var featuresCmd = &cobra.Command{
	Use:   "features <image>",
	Short: "Print the flat feature vector of an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeatures,
}

func runFeatures(cmd *cobra.Command, args []string) error {
	img, err := agimage.Load(args[0])
	if err != nil {
		return err
	}

	a, err := newAnalyzer()
	if err != nil {
		return err
	}

	set, err := a.ExtractFeatures(img.Image)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s %dx%d subject=%v\n", args[0], set.Width, set.Height, set.SubjectFound)
	vec := set.Vector()
	for _, k := range vec.Keys() {
		fmt.Fprintf(out, "%-24s %12.6f\n", k, vec[k])
	}
	return nil
}
