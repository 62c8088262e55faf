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

// Package server exposes the small HTTP side of the bot: a keep-alive
// endpoint for the hosting platform's pinger and an internal API to
// inspect and export the catalogue.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cineflix/cineflix-bot/pkg/config"
	"github.com/cineflix/cineflix-bot/pkg/discord"
	"github.com/cineflix/cineflix-bot/pkg/store"
	"github.com/cineflix/cineflix-bot/pkg/types"
	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// Config wires the HTTP server to the rest of the bot.
type Config struct {
	cfg   *config.BotConfig
	store *store.FileStore
	bot   *discord.Bot
}

// NewConfig creates a server configuration. bot may be nil (API only).
func NewConfig(cfg *config.BotConfig, st *store.FileStore, bot *discord.Bot) *Config {
	return &Config{cfg: cfg, store: st, bot: bot}
}

// Serve starts the Discord bot, then blocks on the HTTP listener.
func (c *Config) Serve() error {
	if c.bot != nil {
		utils.InfoLog("Starting Discord bot...")
		if err := c.bot.Start(); err != nil {
			return utils.PrintErrorAndReturn(fmt.Errorf("failed to start Discord bot: %w", err))
		}
		defer c.bot.Stop()
	}

	router := c.setupRouter()
	utils.InfoLog("[cineflix-bot] Server is ready and listening on :%d", c.cfg.Port)
	return router.Run(fmt.Sprintf(":%d", c.cfg.Port))
}

// setupRouter builds the gin engine; split from Serve for tests.
func (c *Config) setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	// Free hosting suspends idle processes; an external pinger keeps the
	// bot awake through this route.
	router.GET("/", c.handleKeepAlive)
	router.HEAD("/", c.handleKeepAlive)

	api := router.Group("/api")
	api.GET("/status", c.handleStatus)
	api.GET("/export", c.requireAPIKey(), c.handleExport)

	return router
}

func (c *Config) handleKeepAlive(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, types.APIResponse{Success: true, Message: "cineflix-bot en ligne"})
}

// handleStatus reports catalogue totals.
func (c *Config) handleStatus(ctx *gin.Context) {
	links, trailers, favorites, banned := c.store.Counts()
	ctx.JSON(http.StatusOK, types.APIResponse{
		Success: true,
		Data: gin.H{
			"links":     links,
			"trailers":  trailers,
			"favorites": favorites,
			"banned":    banned,
		},
	})
}

// handleExport streams the raw catalogue document.
func (c *Config) handleExport(ctx *gin.Context) {
	data, err := c.store.Export()
	if err != nil {
		utils.ErrorLog("API: export failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.APIResponse{Success: false, Error: "export failed"})
		return
	}
	ctx.Data(http.StatusOK, "application/json", data)
}

// requireAPIKey guards internal endpoints with the X-API-Key header.
func (c *Config) requireAPIKey() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := c.cfg.APIKey.Value()
		if key == "" || ctx.GetHeader("X-API-Key") != key {
			utils.WarnLog("API: rejected request to %s (bad or missing key)", ctx.Request.URL.Path)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.APIResponse{Success: false, Error: "invalid API key"})
			return
		}
		ctx.Next()
	}
}
