package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"etf-grader/internal/ai"
	"etf-grader/internal/ai/gemini"
	"etf-grader/internal/candidate"
	"etf-grader/internal/drive"
	"etf-grader/internal/education"
	"etf-grader/internal/eligibility"
	"etf-grader/internal/evaluator"
	"etf-grader/internal/linkedin"
	"etf-grader/internal/logger"
	"etf-grader/internal/pipeline"
	"etf-grader/internal/resume"
	"etf-grader/internal/secrets"
	"etf-grader/internal/store"
	"etf-grader/internal/website"

	gh "etf-grader/internal/githubprofile"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the batch over every pending candidate in the CSV",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("csv", "c", "", "batch CSV file (overrides the config key)")
	runCmd.Flags().StringP("output-dir", "o", "", "directory for charts and logs (overrides the config key)")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before processing")

	viper.BindPFlag("csv", runCmd.Flags().Lookup("csv"))
	viper.BindPFlag("output-dir", runCmd.Flags().Lookup("output-dir"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the etf-grader", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}
	if config.CSV == "" {
		logger.Fatal("batch csv path is required", zap.String("hint", "set --csv or the 'csv' config key"))
	}
	if config.Rankings == nil || config.Rankings.World == "" {
		logger.Fatal("world ranking table is required under rankings.world")
	}
	if config.OutputDir == "" {
		config.OutputDir = "output"
	}

	world, err := education.LoadWorldTable(config.Rankings.World)
	if err != nil {
		logger.Fatal("loading world ranking table", zap.Error(err))
	}
	logger.Info("loaded world ranking table", zap.Int("universities", world.Len()))

	var domestic *education.DomesticTable
	if config.Rankings.Domestic != "" {
		domestic, err = education.LoadDomesticTable(config.Rankings.Domestic)
		if err != nil {
			logger.Fatal("loading domestic ranking table", zap.Error(err))
		}
	}

	table, err := store.Load(config.CSV, logger)
	if err != nil {
		logger.Fatal("loading batch file", zap.Error(err))
	}

	if config.ResumeDir != "" {
		if err := linkResumes(table, config.ResumeDir, logger); err != nil {
			logger.Warn("resume folder sync failed, continuing with the csv as-is", zap.Error(err))
		}
	}

	scorer, err := newScorer(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal(
			"building the consensus scorer",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE or the 'ai.gemini.api-key-file' config key"),
		)
	}

	debugPort := 0
	githubToken := ""
	if config.Scraper != nil {
		debugPort = config.Scraper.ChromeDebugPort
		githubToken = config.Scraper.GithubToken
	}

	profiles := linkedin.New(logger, debugPort)
	defer profiles.Close()

	cache := evaluator.NewSnapshotCache(
		profiles,
		gh.New(logger, githubToken),
		website.New(),
		resume.New(),
	)

	orch := pipeline.New(
		table,
		eligibility.NewFilter(world),
		evaluator.New(education.NewGrader(domestic, world), scorer, cache),
		cache,
		pipeline.Options{
			OutputDir: config.OutputDir,
			LogsDir:   filepath.Join(config.OutputDir, "logs"),
			JSONLogs:  viper.GetBool("json"),
			Debug:     viper.GetBool("debug"),
		},
		logger,
	)

	selectable := 0
	for i := 0; i < table.Len(); i++ {
		if !table.Status(i).Terminal() {
			selectable++
		}
	}

	if selectable == 0 {
		logger.Info("exiting", zap.String("reason", "no pending candidates in the batch"))
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "false" {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Process %d candidate(s)?", selectable),
			Items: []string{PromptYes, PromptNo},
		}
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action != PromptYes {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	summary, err := orch.Run(ctx)
	if err != nil {
		logger.Fatal("batch aborted", zap.Error(err))
	}

	logger.Info("batch complete",
		zap.Int("done", summary.Done),
		zap.Int("rejected", summary.Rejected),
		zap.Int("failed", summary.Failed),
		zap.Int("pending", summary.Pending),
	)
}

// linkResumes fills the resume column from files in the synced folder.
func linkResumes(table *store.Table, dir string, logger *zap.Logger) error {
	syncer := drive.New(dir, logger)
	paths, err := syncer.Scan()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	targets := make([]drive.Target, table.Len())
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		targets[i] = drive.Target{
			First:  row[candidate.FieldFirstName],
			Last:   row[candidate.FieldLastName],
			Resume: row[candidate.FieldUploadResume],
		}
	}

	matched := drive.MatchFiles(paths, targets)
	for i, path := range matched {
		table.Set(i, candidate.FieldUploadResume, path)
	}
	logger.Info("linked resumes from sync folder", zap.Int("matched", len(matched)))

	if len(matched) == 0 {
		return nil
	}
	return table.Persist()
}

func newScorer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Scorer, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required under ai.gemini")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.GeminiAPIKey(cfg.Gemini.APIKeyFile)
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	logger.Info("consensus scorer ready",
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)
	return generator, nil
}
