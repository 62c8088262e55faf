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
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// command definitions
func (b *Bot) commandSpecs() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "recherche",
			Description: "Chercher un film ou une série dans le catalogue",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "titre", Description: "Titre à chercher", Required: true},
			},
		},
		{
			Name:        "catalogue",
			Description: "Aperçu du catalogue partagé",
		},
		{
			Name:        "favoris",
			Description: "Lister tes titres favoris",
		},
		{
			Name:        "addlien",
			Description: "Modération : associer un lien de visionnage à un titre",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "cle", Description: "Clé du média (id film ou id_Sx_Ey)", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "lien", Description: "URL de visionnage", Required: true},
			},
		},
		{
			Name:        "addsaison",
			Description: "Modération : ajouter tous les épisodes d'une saison",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Id TMDB de la série", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "saison", Description: "Numéro de saison", Required: true, MinValue: floatPtr(1)},
				{Type: discordgo.ApplicationCommandOptionString, Name: "liens", Description: "Liens des épisodes, séparés par des virgules"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "playlist", Description: "URL d'une playlist M3U (un lien par épisode)"},
			},
		},
		{
			Name:        "addtrailer",
			Description: "Modération : associer une bande-annonce à un film",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Id TMDB du film", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "lien", Description: "URL de la bande-annonce", Required: true},
			},
		},
		{
			Name:        "warn",
			Description: "Modération : avertir un utilisateur en message privé",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "utilisateur", Description: "Utilisateur à avertir", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "raison", Description: "Motif de l'avertissement", Required: true},
			},
		},
		{
			Name:        "banuser",
			Description: "Modération : bloquer un utilisateur du bot",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "utilisateur", Description: "Utilisateur à bloquer", Required: true},
			},
		},
		{
			Name:        "unbanuser",
			Description: "Modération : débloquer un utilisateur",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "utilisateur", Description: "Utilisateur à débloquer", Required: true},
			},
		},
		{
			Name:        "export",
			Description: "Modération : exporter le catalogue en JSON",
		},
	}
}

func floatPtr(v float64) *float64 { return &v }

// registerSlashCommands registers commands globally or in a dev guild.
func (b *Bot) registerSlashCommands() error {
	if b.session == nil {
		return fmt.Errorf("session not initialized")
	}
	if b.session.State == nil || b.session.State.User == nil {
		return fmt.Errorf("session user not ready")
	}
	appID := b.session.State.User.ID
	guildID := b.devGuildID
	// If no explicit dev guild, and the bot is in exactly one guild, auto-scope to that for fast iteration.
	if guildID == "" && len(b.session.State.Guilds) == 1 {
		guildID = b.session.State.Guilds[0].ID
		b.devGuildID = guildID
		utils.InfoLog("Slash commands: auto-using guild %s for development registration", guildID)
	}
	specs := b.commandSpecs()
	// Use BulkOverwrite to avoid duplicates and keep commands in sync
	cmds, err := b.session.ApplicationCommandBulkOverwrite(appID, guildID, specs)
	if err != nil {
		return fmt.Errorf("bulk overwrite: %w", err)
	}
	b.registeredCommands = cmds
	scope := "global"
	if guildID != "" {
		scope = "guild:" + guildID
	}
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	utils.InfoLog("Slash commands registered (%s): %v", scope, names)
	return nil
}

// unregisterSlashCommands removes commands from dev guild (fast). Global deletions are slow, so skip if global.
func (b *Bot) unregisterSlashCommands() error {
	if b.session == nil || len(b.registeredCommands) == 0 {
		return nil
	}
	if b.devGuildID == "" {
		return nil
	}
	if b.session.State == nil || b.session.State.User == nil {
		return nil
	}
	appID := b.session.State.User.ID
	for _, cmd := range b.registeredCommands {
		_ = b.session.ApplicationCommandDelete(appID, b.devGuildID, cmd.ID)
	}
	b.registeredCommands = nil
	return nil
}

// cleanupExistingCommands deletes commands in the scope we plan to use before re-registering.
func (b *Bot) cleanupExistingCommands() error {
	if b.session == nil || b.session.State == nil || b.session.State.User == nil {
		return nil
	}
	appID := b.session.State.User.ID
	guildID := b.devGuildID
	if guildID == "" && len(b.session.State.Guilds) == 1 {
		guildID = b.session.State.Guilds[0].ID
	}
	cmds, err := b.session.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}
	for _, c := range cmds {
		if err := b.session.ApplicationCommandDelete(appID, guildID, c.ID); err != nil {
			utils.WarnLog("Failed to delete command %s: %v", c.Name, err)
		}
	}
	return nil
}

// handleApplicationCommand routes slash commands.
func (b *Bot) handleApplicationCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	userID := b.interactionUserID(i)

	// The ban gate sits in front of everything, before any TMDB call.
	// Moderation commands stay reachable so a banned admin situation
	// cannot lock everyone out; they are role-gated anyway.
	switch name {
	case "recherche", "catalogue", "favoris":
		if b.store.IsBanned(userID) {
			b.respondBanned(s, i)
			return
		}
	}

	switch name {
	case "recherche":
		b.handleRecherche(s, i)
	case "catalogue":
		b.handleCatalogue(s, i)
	case "favoris":
		b.handleFavoris(s, i)
	case "addlien":
		b.handleAddLien(s, i)
	case "addsaison":
		b.handleAddSaison(s, i)
	case "addtrailer":
		b.handleAddTrailer(s, i)
	case "warn":
		b.handleWarnUser(s, i)
	case "banuser":
		b.handleBanUser(s, i)
	case "unbanuser":
		b.handleUnbanUser(s, i)
	case "export":
		b.handleExport(s, i)
	}
}
