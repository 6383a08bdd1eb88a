package main

import (
	"fmt"
	"log/slog"
	"os"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/wanderplan/wanderplan"
	"github.com/wanderplan/wanderplan/internal/config"
	"github.com/wanderplan/wanderplan/internal/logging"
	"github.com/wanderplan/wanderplan/pkg/adapters/openai"
	redisAdapter "github.com/wanderplan/wanderplan/pkg/adapters/redis"
)

var rootCmd = &cobra.Command{
	Use:   "wanderplan",
	Short: "Wanderplan is a conversational trip planning assistant",
	Long:  `Wanderplan turns free-text travel requests into ranked destinations, search results and day-by-day itineraries, entirely offline or backed by an OpenAI-compatible reasoner.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("store", "memory", "Session store backend (memory or redis)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func buildLogger(cmd *cobra.Command, json bool) *slog.Logger {
	levelName, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = slog.LevelWarn
	}
	if json {
		return logging.NewJSON(os.Stderr, level)
	}
	return logging.New(level)
}

// buildAssistant assembles an Assistant from flags and config. Server
// commands pass extra options (metrics, JSON logs) on top.
func buildAssistant(cmd *cobra.Command, logger *slog.Logger, extra ...wanderplan.Option) (*wanderplan.Assistant, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	opts := []wanderplan.Option{
		wanderplan.WithConfig(cfg),
		wanderplan.WithLogger(logger),
	}

	if cfg.LLM.APIKey != "" {
		reasoner := openai.New(openai.Config{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		}, openai.WithLogger(logger))
		opts = append(opts, wanderplan.WithReasoner(reasoner))
	}

	storeName, _ := cmd.Flags().GetString("store")
	switch storeName {
	case "memory", "":
		// Default in-memory store.
	case "redis":
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		opts = append(opts,
			wanderplan.WithStore(redisAdapter.NewFromClient(client)),
			wanderplan.WithLocker(redisAdapter.NewLocker(client, "wanderplan:lock:")),
		)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want memory or redis)", storeName)
	}

	opts = append(opts, extra...)
	return wanderplan.New(opts...), nil
}
