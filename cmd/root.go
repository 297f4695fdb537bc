package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "etf-grader"
)

type Config struct {
	CSV       string          `mapstructure:"csv"`
	OutputDir string          `mapstructure:"output-dir"`
	ResumeDir string          `mapstructure:"resume-dir"`
	Rankings  *RankingsConfig `mapstructure:"rankings"`
	Scraper   *ScraperConfig  `mapstructure:"scraper"`
	AI        *AIConfig       `mapstructure:"ai"`
}

type RankingsConfig struct {
	// World is the merged world ranking CSV carrying the Region column.
	World string `mapstructure:"world"`
	// Domestic is the national notation table used for French schools.
	Domestic string `mapstructure:"domestic"`
}

type ScraperConfig struct {
	// ChromeDebugPort attaches to an already running browser. 0 launches a
	// headless instance per fetch.
	ChromeDebugPort int    `mapstructure:"chrome-debug-port"`
	GithubToken     string `mapstructure:"github-token"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "etf-grader evaluates fellowship candidates from a CSV batch file",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"scraper.github-token":      "GITHUB_TOKEN",
		"scraper.chrome-debug-port": "CHROME_DEBUG_PORT",
		"ai.gemini.api-key-file":    "GEMINI_API_KEY_FILE",
		"resume-dir":                "RESUME_SYNC_DIR",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is etf-grader.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Secrets and per-machine paths live in .env beside the batch file.
	_ = godotenv.Load()

	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
