package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "job-scout"
)

type Config struct {
	UserAgent string `mapstructure:"user-agent"`
	Area      int    `mapstructure:"area"`

	StoreFile string `mapstructure:"store-file"`
	StatsFile string `mapstructure:"stats-file"`

	Channels []string `mapstructure:"channels"`

	AI *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Provider   string            `mapstructure:"provider"`
	OpenRouter *OpenRouterConfig `mapstructure:"openrouter"`
	Gemini     *GeminiConfig     `mapstructure:"gemini"`
}

type OpenRouterConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-scout searches vacancies across hh.ru, trudvsem and Telegram channels and prepares applications",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.openrouter.api-key", "OPENROUTER_API_KEY"); err != nil {
		log.Fatalf("binding OPENROUTER_API_KEY environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-scout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("area", 113)
	viper.SetDefault("store-file", "telegram_vacancies.json")
	viper.SetDefault("stats-file", "bot_stats.json")
	viper.SetDefault("channels", defaultChannels)
}

// defaultChannels is the scrape list used when the config does not set one.
var defaultChannels = []string{
	"remote_it_jobs", "devjobs", "finder_jobs", "tproger_official",
	"getitru", "fordev", "myresume_jobs",
	"remotework", "itfreelance", "remotejobss",
	"frontend_jobs", "backend_jobs", "fullstack_jobs", "javascript_jobs",
	"python_jobs", "python_jobs_ru", "php_jobs", "java_jobs_ru",
	"devops_jobs", "qa_jobs", "data_jobs", "analyst_jobs_ru",
	"design_work", "uiux_jobs", "smm_jobs", "marketing_jobs",
	"product_jobs", "pm_jobs_ru", "project_managers",
	"hr_job", "careerspace",
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// A missing config file is fine, the defaults cover everything
	// except the AI credentials.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return config, nil
}
