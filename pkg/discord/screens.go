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
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/cineflix/cineflix-bot/pkg/catalogue"
	"github.com/cineflix/cineflix-bot/pkg/nav"
	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// Component actions. Select values carry indices or numbers; favorite and
// report buttons carry "<action>|<key>|<title>" built by encodeCustomID.
const (
	actionPickResult  = "cat_pick"
	actionOpenSeasons = "cat_seasons"
	actionBack        = "cat_back"
	actionPickSeason  = "season_pick"
	actionPickEpisode = "episode_pick"
	actionFavorite    = "fav"
	actionReport      = "report"
)

// viewFlags is the slice of configuration the renderers depend on.
type viewFlags struct {
	FavoritesOnEpisodes bool
	TrailersEnabled     bool
	SuggestionsEnabled  bool
}

func (b *Bot) viewFlags() viewFlags {
	return viewFlags{
		FavoritesOnEpisodes: b.cfg.FavoritesOnEpisodes,
		TrailersEnabled:     b.cfg.TrailersEnabled,
		SuggestionsEnabled:  b.cfg.SuggestionsEnabled,
	}
}

// renderScreen turns one navigation screen into its embed and component
// rows. It is a pure function of the screen: all fetching happened before
// the screen was pushed.
func renderScreen(screen nav.Screen, flags viewFlags) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	switch screen.Kind {
	case nav.ScreenTitleDetail:
		return renderTitleDetail(screen, flags)
	case nav.ScreenSeasonList:
		return renderSeasonList(screen)
	case nav.ScreenEpisodeList:
		return renderEpisodeList(screen)
	default:
		return renderSearchResults(screen)
	}
}

func renderSearchResults(screen nav.Screen) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	lines := make([]string, 0, len(screen.Candidates))
	opts := make([]discordgo.SelectMenuOption, 0, len(screen.Candidates))
	for idx, c := range screen.Candidates {
		lines = append(lines, fmt.Sprintf("%d. **%s** — %s", idx+1, displayTitle(c.Title, c.Year), kindLabel(c.Kind)))
		opts = append(opts, discordgo.SelectMenuOption{
			Label:       utils.TrimTo(displayTitle(c.Title, c.Year), catalogue.MaxLabelLen),
			Description: kindLabel(c.Kind),
			Value:       strconv.Itoa(idx),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:     "🔎 Résultats de recherche",
		Color:     colorInfo,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if len(lines) == 0 {
		embed.Description = fmt.Sprintf("Aucun résultat pour `%s`.", screen.Query)
		return embed, nil
	}
	embed.Description = fmt.Sprintf("Recherche : `%s`\n\n%s", screen.Query, strings.Join(lines, "\n"))

	one := 1
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{CustomID: actionPickResult, Placeholder: "Choisis un titre…", MinValues: &one, MaxValues: 1, Options: opts},
		}},
	}
	return embed, components
}

func renderTitleDetail(screen nav.Screen, flags viewFlags) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	d := screen.Detail

	embed := &discordgo.MessageEmbed{
		Title:       displayTitle(d.Title, d.Year),
		Description: d.Synopsis,
		Color:       colorInfo,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if d.PosterURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: d.PosterURL}
	}
	if len(d.Genres) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Genres", Value: strings.Join(d.Genres, ", "), Inline: true})
	}

	var actions []discordgo.MessageComponent
	if len(d.Seasons) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Saisons", Value: strconv.Itoa(len(d.Seasons)), Inline: true})
		actions = append(actions, discordgo.Button{
			Style: discordgo.PrimaryButton, Label: "📺 Voir les saisons", CustomID: actionOpenSeasons})
	} else if d.Available {
		embed.Color = colorSuccess
		actions = append(actions, discordgo.Button{
			Style: discordgo.LinkButton, Label: "▶️ Regarder", URL: d.WatchURL})
	} else {
		// Not watchable: the only offer is to ask for it.
		embed.Color = colorWarn
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Disponibilité", Value: "Pas encore dans le catalogue", Inline: true})
		actions = append(actions, discordgo.Button{
			Style: discordgo.SecondaryButton, Label: "🙋 Demander l'ajout",
			CustomID: encodeCustomID(actionReport, d.Key, d.Title)})
	}
	if flags.TrailersEnabled && d.TrailerURL != "" {
		actions = append(actions, discordgo.Button{
			Style: discordgo.LinkButton, Label: "🎬 Bande-annonce", URL: d.TrailerURL})
	}
	favKey := d.Key
	if favKey == "" {
		favKey = d.ID
	}
	actions = append(actions, discordgo.Button{
		Style: discordgo.SecondaryButton, Label: "⭐ Favori",
		CustomID: encodeCustomID(actionFavorite, favKey, d.Title)})

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: actions},
		backRow(),
	}
	return embed, components
}

func renderSeasonList(screen nav.Screen) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	d := screen.Detail
	opts := make([]discordgo.SelectMenuOption, 0, len(d.Seasons))
	for _, s := range d.Seasons {
		label := fmt.Sprintf("Saison %d", s.Number)
		if s.Name != "" && s.Name != label {
			label = fmt.Sprintf("Saison %d — %s", s.Number, s.Name)
		}
		opts = append(opts, discordgo.SelectMenuOption{
			Label:       utils.TrimTo(label, catalogue.MaxLabelLen),
			Description: fmt.Sprintf("%d épisode(s)", s.EpisodeCount),
			Value:       strconv.Itoa(s.Number),
		})
		// Discord caps a select menu at 25 options.
		if len(opts) == 25 {
			break
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📺 " + d.Title,
		Description: "Choisis une saison.",
		Color:       colorInfo,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	one := 1
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{CustomID: actionPickSeason, Placeholder: "Saison…", MinValues: &one, MaxValues: 1, Options: opts},
		}},
		backRow(),
	}
	return embed, components
}

func renderEpisodeList(screen nav.Screen) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	season := screen.Season
	lines := make([]string, 0, len(season.Episodes))
	opts := make([]discordgo.SelectMenuOption, 0, len(season.Episodes))
	for _, ep := range season.Episodes {
		mark := "❌"
		if ep.Available {
			mark = "✅"
		}
		lines = append(lines, fmt.Sprintf("%s E%02d — %s", mark, ep.Number, ep.Name))
		if len(opts) < 25 {
			desc := "Non disponible"
			if ep.Available {
				desc = "Disponible"
			}
			opts = append(opts, discordgo.SelectMenuOption{
				Label:       utils.TrimTo(fmt.Sprintf("E%02d — %s", ep.Number, ep.Name), catalogue.MaxLabelLen),
				Description: desc,
				Value:       strconv.Itoa(ep.Number),
			})
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📺 %s — Saison %d", season.SeriesTitle, season.Number),
		Description: strings.Join(lines, "\n"),
		Color:       colorInfo,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	one := 1
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{CustomID: actionPickEpisode, Placeholder: "Épisode…", MinValues: &one, MaxValues: 1, Options: opts},
		}},
		backRow(),
	}
	return embed, components
}

func backRow() discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Style: discordgo.SecondaryButton, Label: "↩️ Retour", CustomID: actionBack},
	}}
}
