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
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/cineflix/cineflix-bot/pkg/nav"
	"github.com/cineflix/cineflix-bot/pkg/types"
	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// handleComponentInteraction routes dropdowns and buttons.
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	action, args := decodeCustomID(i.MessageComponentData().CustomID)

	// Same gate as slash commands: a user banned mid-session must not keep
	// driving lookups through components that are still live. Review-channel
	// buttons stay reachable; they are role-gated in their handler.
	switch action {
	case actionModAccept, actionModReject:
	default:
		if b.store.IsBanned(b.interactionUserID(i)) {
			b.respondBanned(s, i)
			return
		}
	}

	switch action {
	case actionPickResult, actionOpenSeasons, actionBack, actionPickSeason, actionPickEpisode:
		b.handleNavigation(s, i, action)
	case actionFavorite:
		b.handleFavoriteToggle(s, i, args)
	case actionReport:
		b.handleReportRequest(s, i, args)
	case actionRandomPick:
		b.respondRandomPick(s, i)
	case actionSearchHint:
		respondEmbed(s, i, colorInfo, "🔎 Recherche",
			"Tape `/recherche titre:<film ou série>` pour explorer le catalogue.")
	case actionMyFavs:
		b.respondFavorites(s, i)
	case actionSuggest:
		if b.cfg.SuggestionsEnabled {
			openSuggestModal(s, i)
		}
	case actionModAccept, actionModReject:
		b.handleModDecision(s, i, action, args)
	}
}

// handleNavigation advances or rewinds the flow behind the interaction's
// message, then swaps the message for the new current screen.
func (b *Bot) handleNavigation(s *discordgo.Session, i *discordgo.InteractionCreate, action string) {
	flow, err := b.flows.Get(i.Message.ID)
	if err != nil {
		respondExpired(s, i)
		return
	}
	if !b.isSameUser(flow.UserID, i) {
		respondText(s, i, "Cette recherche appartient à quelqu'un d'autre. Lance la tienne avec `/recherche`.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch action {
	case actionPickResult:
		b.navPickResult(ctx, s, i, flow)
	case actionOpenSeasons:
		flow.Push(nav.SeasonListScreen(flow.Current().Candidate, flow.Current().Detail))
		b.refreshView(s, i, flow)
	case actionBack:
		flow.Back()
		b.refreshView(s, i, flow)
	case actionPickSeason:
		b.navPickSeason(ctx, s, i, flow)
	case actionPickEpisode:
		b.navPickEpisode(s, i, flow)
	}
}

func (b *Bot) refreshView(s *discordgo.Session, i *discordgo.InteractionCreate, flow *nav.Flow) {
	embed, components := renderScreen(flow.Current(), b.viewFlags())
	if err := updateView(s, i, embed, components); err != nil {
		utils.ErrorLog("Discord: failed to update navigation view: %v", err)
	}
}

func (b *Bot) navPickResult(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, flow *nav.Flow) {
	screen := flow.Current()
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}
	idx, err := strconv.Atoi(values[0])
	if err != nil || idx < 0 || idx >= len(screen.Candidates) {
		return
	}
	candidate := screen.Candidates[idx]

	detail, err := b.resolver.ResolveTitle(ctx, candidate.ID, candidate.Kind)
	if err != nil {
		utils.WarnLog("Discord: could not resolve %s %s: %v", candidate.Kind, candidate.ID, err)
		respondEmbed(s, i, colorError, "❌ Fiche indisponible",
			"Impossible de charger la fiche de ce titre pour le moment. Réessaie plus tard.")
		return
	}
	flow.Push(nav.TitleDetailScreen(candidate, detail))
	b.refreshView(s, i, flow)
}

func (b *Bot) navPickSeason(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, flow *nav.Flow) {
	screen := flow.Current()
	values := i.MessageComponentData().Values
	if len(values) == 0 || screen.Detail == nil {
		return
	}
	number, err := strconv.Atoi(values[0])
	if err != nil {
		return
	}

	season, err := b.resolver.ResolveSeason(ctx, screen.Detail.ID, screen.Detail.Title, number)
	if err != nil {
		utils.WarnLog("Discord: could not resolve season %d of %s: %v", number, screen.Detail.ID, err)
		respondEmbed(s, i, colorError, "❌ Saison indisponible",
			"Impossible de charger cette saison pour le moment. Réessaie plus tard.")
		return
	}
	flow.Push(nav.EpisodeListScreen(screen.Candidate, screen.Detail, season))
	b.refreshView(s, i, flow)
}

// navPickEpisode answers with the episode's actions in a side message;
// the episode list itself stays where it is.
func (b *Bot) navPickEpisode(s *discordgo.Session, i *discordgo.InteractionCreate, flow *nav.Flow) {
	screen := flow.Current()
	values := i.MessageComponentData().Values
	if len(values) == 0 || screen.Season == nil {
		return
	}
	number, err := strconv.Atoi(values[0])
	if err != nil {
		return
	}
	var episode *types.EpisodeSummary
	for idx := range screen.Season.Episodes {
		if screen.Season.Episodes[idx].Number == number {
			episode = &screen.Season.Episodes[idx]
			break
		}
	}
	if episode == nil {
		return
	}

	label := fmt.Sprintf("%s S%02dE%02d", screen.Season.SeriesTitle, screen.Season.Number, episode.Number)
	var actions []discordgo.MessageComponent
	embed := &discordgo.MessageEmbed{
		Title:     "📺 " + label,
		Color:     colorSuccess,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if episode.Available {
		embed.Description = episode.Name
		actions = append(actions, discordgo.Button{
			Style: discordgo.LinkButton, Label: "▶️ Regarder", URL: episode.WatchURL})
	} else {
		embed.Color = colorWarn
		embed.Description = "Cet épisode n'est pas encore dans le catalogue."
		actions = append(actions, discordgo.Button{
			Style: discordgo.SecondaryButton, Label: "🙋 Demander l'ajout",
			CustomID: encodeCustomID(actionReport, episode.Key, label)})
	}
	if b.cfg.FavoritesOnEpisodes {
		actions = append(actions, discordgo.Button{
			Style: discordgo.SecondaryButton, Label: "⭐ Favori",
			CustomID: encodeCustomID(actionFavorite, episode.Key, label)})
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:      discordgo.MessageFlagsEphemeral,
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: actions}},
		},
	})
	if err != nil {
		utils.ErrorLog("Discord: failed to send episode actions: %v", err)
	}
}

// handleFavoriteToggle flips a favorite on or off. The surrounding view
// is left untouched either way.
func (b *Bot) handleFavoriteToggle(s *discordgo.Session, i *discordgo.InteractionCreate, args []string) {
	if len(args) < 1 {
		return
	}
	key := args[0]
	title := titleArg(args, key)

	added, err := b.store.ToggleFavorite(b.interactionUserID(i), key, title)
	if err != nil {
		utils.ErrorLog("Discord: favorite toggle failed: %v", err)
		respondEmbed(s, i, colorError, "❌ Erreur",
			"Impossible d'enregistrer ton favori pour le moment. Réessaie plus tard.")
		return
	}
	if added {
		respondEmbed(s, i, colorSuccess, "⭐ Favori ajouté", fmt.Sprintf("**%s** est dans tes favoris.", title))
	} else {
		respondEmbed(s, i, colorInfo, "⭐ Favori retiré", fmt.Sprintf("**%s** n'est plus dans tes favoris.", title))
	}
}

// handleReportRequest files a missing-link report and posts it to the
// review channel.
func (b *Bot) handleReportRequest(s *discordgo.Session, i *discordgo.InteractionCreate, args []string) {
	if len(args) < 1 {
		return
	}
	key := args[0]
	title := titleArg(args, key)

	report := b.reports.Open(b.interactionUserID(i), title, key)
	b.postReviewMessage(s, report)
	respondEmbed(s, i, colorSuccess, "🙋 Demande envoyée",
		fmt.Sprintf("Ta demande pour **%s** a été transmise aux modérateurs. Tu seras prévenu en message privé.", title))
}

// handleModalSubmit routes modal submissions (suggestions and rejection
// reasons).
func (b *Bot) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionModalSubmit {
		return
	}
	data := i.ModalSubmitData()
	action, args := decodeCustomID(data.CustomID)

	switch action {
	case modalSuggest:
		if b.store.IsBanned(b.interactionUserID(i)) {
			b.respondBanned(s, i)
			return
		}
		title := modalInput(data, "titre")
		if title == "" {
			return
		}
		report := b.reports.Open(b.interactionUserID(i), title, "")
		b.postReviewMessage(s, report)
		respondEmbed(s, i, colorSuccess, "💡 Suggestion envoyée",
			fmt.Sprintf("Merci ! **%s** a été proposé aux modérateurs.", title))
	case actionModReason:
		if len(args) == 1 {
			b.handleRejectReason(s, i, args[0], modalInput(data, "raison"))
		}
	}
}

// modalInput digs the value of a named text input out of a modal payload.
func modalInput(data discordgo.ModalSubmitInteractionData, name string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			if input, ok := comp.(*discordgo.TextInput); ok && input.CustomID == name {
				return input.Value
			}
		}
	}
	return ""
}
