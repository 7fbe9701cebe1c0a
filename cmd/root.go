package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storyshot/internal/config"
	"storyshot/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "storyshot",
	Short: "Storyshot - story to video shot list service",
	Long: `Storyshot turns story text, a target video length and a visual style
into an ordered list of 5-second video shots using an LLM provider.
It runs as an HTTP API (serve) or as a one-off CLI (generate, analyze).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// .env 只补充未设置的环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.storyshot")
	}

	// 环境变量设置，如 STORYSHOT_AI_API_KEY
	viper.SetEnvPrefix("STORYSHOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 7080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "0s")

	// AI
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.model", "gemini-2.5-pro")
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("ai.base_url", "")
	viper.SetDefault("ai.options.temperature", 0.7)
	viper.SetDefault("ai.options.max_tokens", 32768)
	viper.SetDefault("ai.options.top_p", 1.0)

	// Generation
	viper.SetDefault("generation.timeout", "5m")
	viper.SetDefault("generation.default_style", "hyperrealistic")
	viper.SetDefault("generation.default_duration", 1.0)
	viper.SetDefault("generation.max_duration", 30.0)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// MongoDB（uri 为空时不记录历史）
	viper.SetDefault("mongo.uri", "")
	viper.SetDefault("mongo.database", "storyshot")
	viper.SetDefault("mongo.max_pool_size", 100)
	viper.SetDefault("mongo.min_pool_size", 0)

	// Redis（addr 为空时不缓存）
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.run_ttl", "30m")

	// Auth（jwt_secret 为空时不认证）
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.access_token_expiry", "24h")

	// Storage / Artifacts
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local.base_path", "./data/artifacts")
	viper.SetDefault("storage.local.base_url", "")
	viper.SetDefault("artifacts.enabled", false)
	viper.SetDefault("artifacts.prefix", "")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
