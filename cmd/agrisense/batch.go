package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agrisense/internal/analysis"
	agimage "agrisense/internal/image"
	"agrisense/internal/soil"
	"agrisense/pkg/geometry"
)

var (
	batchMode    string
	batchWorkers int
	batchLat     float64
	batchLon     float64
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyse every image in a directory",
	Long: `Runs the soil or plant analysis on every supported image in a directory
and prints one JSON document with a result per file. A file that cannot be
analysed gets an error entry; the rest of the batch continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchMode, "mode", "soil", "Analysis to run: soil or plant")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "j", runtime.NumCPU(), "Images analysed in parallel")
	batchCmd.Flags().Float64Var(&batchLat, "lat", 0, "Latitude applied to every soil photo")
	batchCmd.Flags().Float64Var(&batchLon, "lon", 0, "Longitude applied to every soil photo")
	batchCmd.MarkFlagsRequiredTogether("lat", "lon")
}

type batchResult struct {
	File  string                `json:"file"`
	Soil  *soil.Verdict         `json:"soil,omitempty"`
	Plant *analysis.PlantReport `json:"plant,omitempty"`
	Error string                `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchMode != "soil" && batchMode != "plant" {
		return fmt.Errorf("unknown mode %q, want soil or plant", batchMode)
	}

	files, err := listImages(args[0])
	if err != nil {
		return err
	}

	a, err := newAnalyzer()
	if err != nil {
		return err
	}

	var loc *geometry.LatLon
	if cmd.Flags().Changed("lat") {
		loc = &geometry.LatLon{Lat: batchLat, Lon: batchLon}
	}

	results := make([]batchResult, len(files))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, batchWorkers))
	for i, path := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = analyseFile(gctx, a, path, loc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("batch complete", zap.Int("files", len(files)), zap.String("mode", batchMode))
	return writeJSON(cmd.OutOrStdout(), results)
}

func analyseFile(ctx context.Context, a *analysis.Analyzer, path string, loc *geometry.LatLon) batchResult {
	res := batchResult{File: path}

	img, err := agimage.Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	switch batchMode {
	case "plant":
		res.Plant, err = a.DiagnosePlant(img.Image)
	default:
		res.Soil, err = a.ClassifySoil(ctx, img.Image, loc)
	}
	if err != nil {
		logger.Warn("image skipped", zap.String("file", path), zap.Error(err))
		res.Error = err.Error()
	}
	return res
}

// listImages returns the supported images directly inside dir, sorted.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !agimage.IsSupportedFormat(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
