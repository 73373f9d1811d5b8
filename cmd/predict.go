package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/embeddings"
	"github.com/spigell/talent-match/internal/export"
	"github.com/spigell/talent-match/internal/matching"
	"github.com/spigell/talent-match/internal/normalize"
	"github.com/spigell/talent-match/internal/records"
	"github.com/spigell/talent-match/internal/registry"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Rank known applicants for a single job with the latest registered model",
	Run: func(cmd *cobra.Command, _ []string) {
		predict(cmd)
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().String("job", "", "JSON file with the raw attributes of the job")
	predictCmd.Flags().BoolP("pick", "p", false, "choose the job interactively from the jobs file")
	predictCmd.Flags().String("xlsx", "", "also write the shortlist to this spreadsheet")
}

func predict(cmd *cobra.Command) {
	ctx, cancel := signalContext()
	defer cancel()

	logger, config := setup()

	jobFile, _ := cmd.Flags().GetString("job")
	pick, _ := cmd.Flags().GetBool("pick")
	xlsx, _ := cmd.Flags().GetString("xlsx")

	var raw map[string]any
	var err error
	switch {
	case jobFile != "":
		raw, err = readJob(jobFile)
	case pick:
		raw, err = pickJob(config.loader(logger).LoadJobs(config.Data.Jobs))
	default:
		err = errors.New("either --job or --pick is required")
	}
	if err != nil {
		logger.Fatal("reading the job", zap.Error(err))
	}

	emb, err := embeddings.Read(config.Embeddings.Path)
	if err != nil {
		logger.Fatal("reading applicant embeddings", zap.Error(err), zap.String("path", config.Embeddings.Path))
	}

	reg, err := registry.OpenSQLite(ctx, config.Registry.Path)
	if err != nil {
		logger.Fatal("opening the model registry", zap.Error(err))
	}
	defer reg.Close()

	predictor, err := matching.NewPredictor(config.predictConfig(), reg, emb, logger)
	if err != nil {
		logger.Fatal("creating the predictor", zap.Error(err))
	}

	matches, err := predictor.Predict(ctx, raw)
	if err != nil {
		var missing *matching.MissingColumnsError
		if errors.As(err, &missing) {
			logger.Fatal("job is missing required columns", zap.Strings("missing", missing.Missing))
		}
		logger.Fatal("prediction failed", zap.Error(err))
	}

	jobID := records.ValueAsString(raw[records.JobIDColumn])
	title := records.ValueAsString(raw[records.JobTitleColumn])

	if err := writeMatches(os.Stdout, matches); err != nil {
		logger.Fatal("writing matches", zap.Error(err))
	}

	if xlsx != "" {
		path, err := export.Shortlist(xlsx, jobID, title, matches)
		if err != nil {
			logger.Fatal("exporting the shortlist", zap.Error(err))
		}
		logger.Info("shortlist exported", zap.String("filename", path))
	}
}

// writeMatches prints matches as indented JSON, an empty list when nothing ranked.
func writeMatches(w io.Writer, matches []matching.Match) error {
	if matches == nil {
		matches = []matching.Match{}
	}
	pretty, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding matches: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(pretty)); err != nil {
		return fmt.Errorf("printing matches: %w", err)
	}
	return nil
}

func readJob(path string) (map[string]any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return raw, nil
}

// pickJob lets the user choose one loaded job and returns it as a prediction request.
func pickJob(jobs *records.Table) (map[string]any, error) {
	if jobs.Len() == 0 {
		return nil, errors.New("no jobs loaded")
	}

	items := make([]string, 0, jobs.Len())
	for _, row := range jobs.Rows {
		items = append(items, fmt.Sprintf("%s %s / %s",
			row.Text(records.JobIDColumn), row.Text(records.JobTitleColumn), row.Text("cliente"),
		))
	}

	jobPrompt := promptui.Select{
		Label:             "Choose a job and press ENTER",
		Items:             items,
		Size:              15,
		StartInSearchMode: true,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
	}

	index, _, err := jobPrompt.Run()
	if err != nil {
		return nil, err
	}

	raw := jobs.Rows[index].Clone()
	raw[records.JobContractGroupColumn] = normalize.ContractCategory(raw.Text(records.JobContractColumn))
	return raw, nil
}
