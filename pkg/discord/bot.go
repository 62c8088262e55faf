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

package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/cineflix/cineflix-bot/pkg/catalogue"
	"github.com/cineflix/cineflix-bot/pkg/config"
	"github.com/cineflix/cineflix-bot/pkg/moderation"
	"github.com/cineflix/cineflix-bot/pkg/nav"
	"github.com/cineflix/cineflix-bot/pkg/store"
	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// NewBot creates the Discord bot around an already-open store and the
// catalogue services.
func NewBot(cfg *config.BotConfig, st *store.FileStore, search *catalogue.SearchAdapter, resolver *catalogue.Resolver) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken.Value())
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		session:         dg,
		cfg:             cfg,
		store:           st,
		search:          search,
		resolver:        resolver,
		flows:           nav.NewRegistry(cfg.ViewTTL),
		reviewMsgs:      make(map[string]reviewMessage),
		devGuildID:      cfg.DevGuildID,
		cleanupInterval: 30 * time.Minute,
		stopJanitor:     make(chan struct{}),
	}
	// The bot itself delivers decision DMs.
	bot.reports = moderation.NewQueue(bot)

	dg.AddHandler(bot.handleApplicationCommand)
	dg.AddHandler(bot.handleComponentInteraction)
	dg.AddHandler(bot.handleModalSubmit)
	dg.AddHandler(bot.messageCreate)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		if s != nil && s.State != nil && s.State.User != nil {
			utils.InfoLog("Discord ready: %s#%s (%s)", s.State.User.Username, s.State.User.Discriminator, s.State.User.ID)
		} else {
			utils.InfoLog("Discord ready: session state not populated yet")
		}
	})

	dg.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent

	go bot.janitorRoutine()

	return bot, nil
}

// Start opens the gateway session and registers slash commands.
func (b *Bot) Start() error {
	utils.InfoLog("Starting Discord bot")
	if err := b.session.Open(); err != nil {
		return err
	}
	// Register once here to avoid duplicate registrations on reconnects.
	if err := b.cleanupExistingCommands(); err != nil {
		utils.WarnLog("Failed to cleanup existing commands: %v", err)
	}
	if err := b.registerSlashCommands(); err != nil {
		utils.ErrorLog("Failed to register slash commands: %v", err)
	}
	if b.devGuildID == "" {
		utils.WarnLog("Slash commands registered globally; this can take up to 1 hour to appear. Set a dev guild id to register instantly during development.")
	}
	return nil
}

// Stop unregisters dev-guild commands and closes the session.
func (b *Bot) Stop() {
	utils.InfoLog("Stopping Discord bot")
	close(b.stopJanitor)
	if err := b.unregisterSlashCommands(); err != nil {
		utils.WarnLog("Failed to unregister slash commands: %v", err)
	}
	b.session.Close()
}

// janitorRoutine periodically reaps expired navigation views so the
// registry does not leak between searches.
func (b *Bot) janitorRoutine() {
	ticker := time.NewTicker(b.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopJanitor:
			return
		case <-ticker.C:
			if n := b.flows.Reap(time.Now()); n > 0 {
				utils.DebugLog("Navigation janitor reaped %d expired view(s)", n)
			}
		}
	}
}

// messageCreate greets users who say hello to the bot. Every real feature
// lives behind slash commands; this is the only plain-message behaviour.
func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !isGreeting(m.Content) {
		return
	}
	b.info(m.ChannelID, "👋 Salut !",
		"Je suis le bot du catalogue Cineflix.\n\n"+
			"• `/recherche <titre>` pour chercher un film ou une série\n"+
			"• `/catalogue` pour un aperçu du catalogue\n"+
			"• `/favoris` pour retrouver tes favoris")
}
