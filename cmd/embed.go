package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/embeddings"
	"github.com/spigell/talent-match/internal/normalize"
	"github.com/spigell/talent-match/internal/records"
	"github.com/spigell/talent-match/internal/secrets"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed applicant texts with Gemini and write the embedding table",
	Run: func(_ *cobra.Command, _ []string) {
		embed()
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)
}

func embed() {
	ctx, cancel := signalContext()
	defer cancel()

	logger, config := setup()

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		File:  config.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		logger.Fatal("loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE, GEMINI_API_KEY or gemini.api-key-file in the configuration file"),
		)
	}

	embedder, err := embeddings.NewGemini(ctx, apiKey, config.Gemini.Model, config.Gemini.Dimension,
		logger.With(zap.String("provider", "gemini"), zap.String("model", config.Gemini.Model)))
	if err != nil {
		logger.Fatal("creating the gemini embedder", zap.Error(err))
	}

	applicants := normalize.Applicants(config.loader(logger).LoadApplicants(config.Data.Applicants))
	if applicants.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no applicants loaded"))
		return
	}

	column := config.Embeddings.TextColumn
	if !applicants.HasColumn(column) {
		logger.Fatal("unknown applicant text column", zap.String("column", column))
	}

	ids := make([]string, 0, applicants.Len())
	texts := make([]string, 0, applicants.Len())
	for _, row := range applicants.Rows {
		ids = append(ids, row.Text(records.ApplicantIDColumn))
		texts = append(texts, row.Text(column))
	}

	logger.Info("embedding applicants",
		zap.Int("applicants", len(texts)),
		zap.String("column", column),
		zap.String("model", embedder.Model()),
		zap.Int("dimension", embedder.Dimension()),
	)

	table, err := embeddings.Build(ctx, embedder, ids, texts, config.Embeddings.BatchSize)
	if err != nil {
		logger.Fatal("embedding applicants", zap.Error(err))
	}

	if err := embeddings.Write(config.Embeddings.Path, table); err != nil {
		logger.Fatal("writing embeddings", zap.Error(err))
	}
	logger.Info("embeddings written", zap.String("filename", config.Embeddings.Path), zap.Int("rows", table.Len()))
}
