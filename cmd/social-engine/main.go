// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the social-engine CLI: it
// generates short educational tech posts with a hosted LLM, publishes
// them to Bluesky, and keeps a local record of every publication.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/social-engine/internal/secrets"
	"github.com/pdiddy/social-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the social-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "social-engine",
	Short: "Generate and publish educational tech posts to Bluesky",
	Long: `social-engine automates short educational posts for social networks.
It picks a topic (curated, trending, or user-supplied), generates the post
text with the Groq API, publishes it to Bluesky, and records every
successful publication in a local SQLite database.

Run "social-engine post" for a single publish cycle; an external scheduler
(cron, systemd timers) drives repeated runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./social-engine.yaml or ~/.config/social-engine/config.yaml)")
	rootCmd.PersistentFlags().String("store", "", "path to the posts database (default: data/posts.db)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("social-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "social-engine"))
		}
	}

	viper.SetDefault("store.path", "data/posts.db")
	viper.SetDefault("generator.model", "llama-3.3-70b-versatile")
	viper.SetDefault("bluesky.host", "https://bsky.social")
	viper.SetDefault("trending.limit", 10)
	viper.SetDefault("user_agent", "social-engine/"+version)

	viper.SetEnvPrefix("SOCIAL_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the run configuration from flags, env,
// config file, and the secrets directory, in that precedence order.
func pipelineConfig() types.PipelineConfig {
	var cfg types.PipelineConfig
	userAgent := viper.GetString("user_agent")

	cfg.Generator.APIKey = secrets.Resolve(viper.GetString("generator.api_key"), loadedSecrets, "groq-api-key")
	cfg.Generator.Model = viper.GetString("generator.model")
	cfg.Generator.UserAgent = userAgent

	cfg.Bluesky.Handle = secrets.Resolve(viper.GetString("bluesky.handle"), loadedSecrets, "bluesky-handle")
	cfg.Bluesky.AppPassword = secrets.Resolve(viper.GetString("bluesky.app_password"), loadedSecrets, "bluesky-app-password")
	cfg.Bluesky.Host = viper.GetString("bluesky.host")
	cfg.Bluesky.UserAgent = userAgent

	cfg.Store.Path = viper.GetString("store.path")
	if path, _ := rootCmd.PersistentFlags().GetString("store"); path != "" {
		cfg.Store.Path = path
	}

	cfg.Trending.Limit = viper.GetInt("trending.limit")
	cfg.Trending.Sources = viper.GetStringSlice("trending.sources")
	cfg.Trending.UserAgent = userAgent

	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
