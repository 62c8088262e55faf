/*
 * cineflix-bot is a Discord bot to browse a shared movie and series catalogue.
 * Copyright (C) 2025  Cineflix contributors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cineflix/cineflix-bot/pkg/catalogue"
	"github.com/cineflix/cineflix-bot/pkg/config"
	"github.com/cineflix/cineflix-bot/pkg/discord"
	"github.com/cineflix/cineflix-bot/pkg/server"
	"github.com/cineflix/cineflix-bot/pkg/store"
	"github.com/cineflix/cineflix-bot/pkg/tmdb"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cineflix-bot",
	Short: "Discord bot for a shared movie and series catalogue",
	Long: `cineflix-bot lets a Discord community browse a shared streaming
catalogue: search titles on TMDB, drill into seasons and episodes, jump
to watch links curated by moderators, keep favorites, and request
missing titles.

It also exposes a small HTTP API for keep-alive pings, status and
catalogue export.`,

	Run: func(cmd *cobra.Command, args []string) {
		log.Printf("[cineflix-bot] Starting...")

		conf := &config.BotConfig{
			DiscordToken:        config.CredentialString(viper.GetString("discord-token")),
			AdminRoleID:         viper.GetString("admin-role-id"),
			ReviewChannelID:     viper.GetString("review-channel-id"),
			DevGuildID:          viper.GetString("dev-guild-id"),
			TMDBAPIKey:          config.CredentialString(viper.GetString("tmdb-api-key")),
			TMDBLanguage:        viper.GetString("tmdb-language"),
			StoreFile:           viper.GetString("store-file"),
			Port:                viper.GetInt("port"),
			APIKey:              config.CredentialString(viper.GetString("api-key")),
			MaxResults:          viper.GetInt("max-results"),
			ViewTTL:             viper.GetDuration("view-ttl"),
			FavoritesOnEpisodes: viper.GetBool("favorites-on-episodes"),
			TrailersEnabled:     viper.GetBool("trailers-enabled"),
			SuggestionsEnabled:  viper.GetBool("suggestions-enabled"),
		}
		if conf.DiscordToken.Value() == "" {
			log.Fatal("[cineflix-bot] discord-token is required")
		}
		if conf.TMDBAPIKey.Value() == "" {
			log.Fatal("[cineflix-bot] tmdb-api-key is required")
		}
		if conf.ViewTTL <= 0 {
			conf.ViewTTL = 10 * time.Minute
		}

		st := store.NewFileStore(conf.StoreFile)
		api := tmdb.NewClient(conf.TMDBAPIKey.Value(), conf.TMDBLanguage)
		search := catalogue.NewSearchAdapter(api, conf.MaxResults)
		resolver := catalogue.NewResolver(api, st, conf.TrailersEnabled)

		bot, err := discord.NewBot(conf, st, search, resolver)
		if err != nil {
			log.Fatal(err)
		}

		if err := server.NewConfig(conf, st, bot).Serve(); err != nil {
			log.Fatal(err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.cineflix-bot.yaml)")

	// Discord flags
	rootCmd.Flags().String("discord-token", "", "Discord bot token")
	rootCmd.Flags().String("admin-role-id", "", "Role allowed to run moderation commands")
	rootCmd.Flags().String("review-channel-id", "", "Channel receiving link requests and suggestions")
	rootCmd.Flags().String("dev-guild-id", "", "Guild for instant slash-command registration during development")

	// TMDB flags
	rootCmd.Flags().String("tmdb-api-key", "", "TMDB API key")
	rootCmd.Flags().String("tmdb-language", "fr-FR", "TMDB metadata language")

	// Store and HTTP flags
	rootCmd.Flags().String("store-file", "catalogue.json", "Path of the catalogue JSON document")
	rootCmd.Flags().Int("port", 8080, "HTTP listening port")
	rootCmd.Flags().String("api-key", "", "X-API-Key protecting /api/export")

	// Catalogue behaviour flags
	rootCmd.Flags().Int("max-results", catalogue.DefaultMaxResults, "Search candidates shown at once")
	rootCmd.Flags().Duration("view-ttl", 10*time.Minute, "Lifetime of one navigation view")
	rootCmd.Flags().Bool("favorites-on-episodes", true, "Allow favoriting individual episodes")
	rootCmd.Flags().Bool("trailers-enabled", true, "Show trailer buttons on movie sheets")
	rootCmd.Flags().Bool("suggestions-enabled", true, "Allow free-text title suggestions")

	// Bind all flags to viper
	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		log.Fatal("Error binding PFlags to viper")
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory and current directory
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".cineflix-bot")
	}

	// Replace hyphens with underscores in environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Read environment variables
	viper.AutomaticEnv()

	// Read in config file if found
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
