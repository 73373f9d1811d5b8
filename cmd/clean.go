package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/pipeline"
	"github.com/spigell/talent-match/internal/records"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Flatten and normalize the record files into typed JSON for the record store",
	Run: func(cmd *cobra.Command, _ []string) {
		clean(cmd)
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringP("out", "o", "clean", "directory for the typed JSON files")
	cleanCmd.Flags().Bool("dump-unified", false, "also dump the unified training table to a temporary file")
}

func clean(cmd *cobra.Command) {
	ctx, cancel := signalContext()
	defer cancel()

	logger, config := setup()

	out, _ := cmd.Flags().GetString("out")
	dumpUnified, _ := cmd.Flags().GetBool("dump-unified")

	stages := []pipeline.Stage{
		pipeline.NewLoad(config.loader(logger), config.sources()),
		pipeline.NewNormalize(),
		pipeline.NewUnify(logger),
	}
	if !dumpUnified {
		pipeline.DisableByName(stages, pipeline.StageUnify, "dump-unified flag is not set")
	}

	ds := &pipeline.Dataset{}
	if err := pipeline.Run(ctx, logger, stages, ds); err != nil {
		logger.Fatal("cleaning records", zap.Error(err))
	}

	applicants, err := records.DecodeApplicants(ds.Applicants)
	if err != nil {
		logger.Fatal("decoding applicants", zap.Error(err))
	}
	jobs, err := records.DecodeJobs(ds.Jobs)
	if err != nil {
		logger.Fatal("decoding jobs", zap.Error(err))
	}
	prospects, err := records.DecodeProspects(ds.Prospects)
	if err != nil {
		logger.Fatal("decoding prospects", zap.Error(err))
	}

	for name, payload := range map[string]any{
		config.Data.Applicants: applicants,
		config.Data.Jobs:       jobs,
		config.Data.Prospects:  prospects,
	} {
		path := filepath.Join(out, name)
		if err := writeJSON(path, payload); err != nil {
			logger.Fatal("writing cleaned records", zap.Error(err), zap.String("filename", path))
		}
		logger.Info("cleaned records written", zap.String("filename", path))
	}

	if dumpUnified {
		filename, err := ds.Unified.DumpToTmpFile()
		if err != nil {
			logger.Fatal("dumping unified table", zap.Error(err))
		}
		logger.Info("dumping unified table to file", zap.String("filename", filename), zap.Int("rows", ds.Unified.Len()))
	}
}

func writeJSON(path string, payload any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
