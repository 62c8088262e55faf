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
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/cineflix/cineflix-bot/pkg/nav"
	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// Catalogue overview buttons.
const (
	actionRandomPick = "cat_random"
	actionSearchHint = "cat_search"
	actionMyFavs     = "cat_favs"
	actionSuggest    = "cat_suggest"
	modalSuggest     = "suggest_modal"
)

// handleRecherche runs a TMDB search and opens an ephemeral navigation
// view rooted at the results screen.
func (b *Bot) handleRecherche(s *discordgo.Session, i *discordgo.InteractionCreate) {
	query := strings.TrimSpace(optString(i, "titre"))
	if query == "" {
		respondEmbed(s, i, colorInfo, "🔎 Recherche",
			"Usage : `/recherche titre:<film ou série>`\n\nExemple : `/recherche titre:Avatar`")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	candidates := b.search.Search(ctx, query)

	screen := nav.SearchResultsScreen(query, candidates)
	embed, components := renderScreen(screen, b.viewFlags())
	msg, err := b.respondView(s, i, embed, components)
	if err != nil {
		utils.ErrorLog("Discord: failed to send search view: %v", err)
		return
	}
	// An empty result set has no components, hence nothing to navigate.
	if len(candidates) > 0 && msg != nil {
		b.flows.Start(msg.ID, b.interactionUserID(i), screen)
	}
}

// handleCatalogue shows the store totals plus quick actions.
func (b *Bot) handleCatalogue(s *discordgo.Session, i *discordgo.InteractionCreate) {
	links, trailers, favorites, banned := b.store.Counts()

	desc := fmt.Sprintf(
		"**%d** liens de visionnage\n**%d** bandes-annonces\n**%d** favoris enregistrés",
		links, trailers, favorites)
	if b.hasAdminRole(s, i.GuildID, b.interactionUserID(i)) {
		desc += fmt.Sprintf("\n**%d** utilisateur(s) bloqué(s)", banned)
	}

	actions := []discordgo.MessageComponent{
		discordgo.Button{Style: discordgo.PrimaryButton, Label: "🎲 Au hasard", CustomID: actionRandomPick},
		discordgo.Button{Style: discordgo.SecondaryButton, Label: "🔎 Rechercher", CustomID: actionSearchHint},
		discordgo.Button{Style: discordgo.SecondaryButton, Label: "⭐ Mes favoris", CustomID: actionMyFavs},
	}
	if b.cfg.SuggestionsEnabled {
		actions = append(actions, discordgo.Button{
			Style: discordgo.SecondaryButton, Label: "💡 Suggérer un titre", CustomID: actionSuggest})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎞️ Catalogue Cineflix",
		Description: desc,
		Color:       colorInfo,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := b.respondView(s, i, embed, []discordgo.MessageComponent{discordgo.ActionsRow{Components: actions}}); err != nil {
		utils.ErrorLog("Discord: failed to send catalogue overview: %v", err)
	}
}

// handleFavoris lists the caller's favorites.
func (b *Bot) handleFavoris(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.respondFavorites(s, i)
}

// respondFavorites answers an interaction with the caller's favorites;
// shared by /favoris and the catalogue shortcut button.
func (b *Bot) respondFavorites(s *discordgo.Session, i *discordgo.InteractionCreate) {
	favs := b.store.FavoritesOf(b.interactionUserID(i))
	if len(favs) == 0 {
		respondEmbed(s, i, colorInfo, "⭐ Mes favoris",
			"Aucun favori pour l'instant. Ajoute-en depuis la fiche d'un titre.")
		return
	}
	lines := make([]string, 0, len(favs))
	for _, f := range favs {
		if f.Title == "" {
			lines = append(lines, fmt.Sprintf("• `%s`", f.Key))
			continue
		}
		lines = append(lines, fmt.Sprintf("• **%s** (`%s`)", f.Title, f.Key))
	}
	respondEmbed(s, i, colorInfo, "⭐ Mes favoris", strings.Join(lines, "\n"))
}

// respondRandomPick serves the "au hasard" button from stored links only.
func (b *Bot) respondRandomPick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	key, url, ok := b.store.RandomLink()
	if !ok {
		respondEmbed(s, i, colorWarn, "🎲 Au hasard", "Le catalogue est vide pour l'instant.")
		return
	}
	embed := &discordgo.MessageEmbed{
		Title:       "🎲 Sélection aléatoire",
		Description: fmt.Sprintf("Clé : `%s`", key),
		Color:       colorSuccess,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Style: discordgo.LinkButton, Label: "▶️ Regarder", URL: url},
		}},
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:      discordgo.MessageFlagsEphemeral,
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		utils.ErrorLog("Discord: failed to send random pick: %v", err)
	}
}

// openSuggestModal asks for a free-text title suggestion.
func openSuggestModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalSuggest,
			Title:    "Suggérer un titre",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "titre",
						Label:       "Film ou série à ajouter",
						Style:       discordgo.TextInputShort,
						Placeholder: "Ex : Le Comte de Monte-Cristo",
						Required:    true,
						MaxLength:   100,
					},
				}},
			},
		},
	})
	if err != nil {
		utils.ErrorLog("Discord: failed to open suggestion modal: %v", err)
	}
}
