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
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/cineflix/cineflix-bot/pkg/nav"
	"github.com/cineflix/cineflix-bot/pkg/types"
)

// flattenButtons collects every button of every row.
func flattenButtons(components []discordgo.MessageComponent) []discordgo.Button {
	var out []discordgo.Button
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if btn, ok := inner.(discordgo.Button); ok {
				out = append(out, btn)
			}
		}
	}
	return out
}

func firstSelect(components []discordgo.MessageComponent) (discordgo.SelectMenu, bool) {
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if menu, ok := inner.(discordgo.SelectMenu); ok {
				return menu, true
			}
		}
	}
	return discordgo.SelectMenu{}, false
}

func hasButtonWithPrefix(buttons []discordgo.Button, prefix string) bool {
	for _, btn := range buttons {
		if strings.HasPrefix(btn.CustomID, prefix) {
			return true
		}
	}
	return false
}

func TestRenderSearchResults(t *testing.T) {
	screen := nav.SearchResultsScreen("avatar", []types.CandidateResult{
		{ID: "19995", Kind: types.KindMovie, Title: "Avatar", Year: "2009"},
		{ID: "1399", Kind: types.KindSeries, Title: "Game of Thrones", Year: "2011"},
	})
	embed, components := renderScreen(screen, viewFlags{})

	if !strings.Contains(embed.Description, "avatar") {
		t.Errorf("description misses the query: %q", embed.Description)
	}
	menu, ok := firstSelect(components)
	if !ok {
		t.Fatal("no select menu rendered")
	}
	if menu.CustomID != actionPickResult || len(menu.Options) != 2 {
		t.Fatalf("menu = %s with %d options", menu.CustomID, len(menu.Options))
	}
	// Values index into the candidate slice.
	if menu.Options[0].Value != "0" || menu.Options[1].Value != "1" {
		t.Errorf("option values = %q, %q", menu.Options[0].Value, menu.Options[1].Value)
	}
	if menu.Options[1].Description != "Série" {
		t.Errorf("series labeled %q", menu.Options[1].Description)
	}
}

func TestRenderEmptySearchResultsHasNoComponents(t *testing.T) {
	embed, components := renderScreen(nav.SearchResultsScreen("zzz", nil), viewFlags{})
	if len(components) != 0 {
		t.Errorf("empty result set rendered %d component rows", len(components))
	}
	if !strings.Contains(embed.Description, "Aucun résultat") {
		t.Errorf("description = %q", embed.Description)
	}
}

func TestRenderMovieWatchAndReportExclusive(t *testing.T) {
	candidate := types.CandidateResult{ID: "19995", Kind: types.KindMovie, Title: "Avatar"}

	available := &types.TitleDetail{ID: "19995", Kind: types.KindMovie, Title: "Avatar",
		Key: "19995", Available: true, WatchURL: "https://cdn.example/avatar"}
	_, components := renderScreen(nav.TitleDetailScreen(candidate, available), viewFlags{})
	buttons := flattenButtons(components)
	if hasButtonWithPrefix(buttons, actionReport+customIDSep) {
		t.Error("available movie still offers a report button")
	}
	watch := false
	for _, btn := range buttons {
		if btn.Style == discordgo.LinkButton && btn.URL == available.WatchURL {
			watch = true
		}
	}
	if !watch {
		t.Error("available movie misses its watch link button")
	}

	missing := &types.TitleDetail{ID: "19995", Kind: types.KindMovie, Title: "Avatar", Key: "19995"}
	_, components = renderScreen(nav.TitleDetailScreen(candidate, missing), viewFlags{})
	buttons = flattenButtons(components)
	if !hasButtonWithPrefix(buttons, actionReport+customIDSep) {
		t.Error("unavailable movie misses the report button")
	}
	for _, btn := range buttons {
		if btn.Style == discordgo.LinkButton && btn.Label == "▶️ Regarder" {
			t.Error("unavailable movie still offers a watch button")
		}
	}
}

func TestRenderMovieTrailerGatedByFlag(t *testing.T) {
	candidate := types.CandidateResult{ID: "19995", Kind: types.KindMovie, Title: "Avatar"}
	detail := &types.TitleDetail{ID: "19995", Kind: types.KindMovie, Title: "Avatar",
		Key: "19995", Available: true, WatchURL: "https://cdn.example/avatar",
		TrailerURL: "https://yt.example/tr"}

	_, components := renderScreen(nav.TitleDetailScreen(candidate, detail), viewFlags{TrailersEnabled: true})
	if !hasTrailerButton(flattenButtons(components), detail.TrailerURL) {
		t.Error("trailer button missing despite flag and URL")
	}

	_, components = renderScreen(nav.TitleDetailScreen(candidate, detail), viewFlags{})
	if hasTrailerButton(flattenButtons(components), detail.TrailerURL) {
		t.Error("trailer button rendered with the feature off")
	}
}

func hasTrailerButton(buttons []discordgo.Button, url string) bool {
	for _, btn := range buttons {
		if btn.Style == discordgo.LinkButton && btn.URL == url {
			return true
		}
	}
	return false
}

func TestRenderSeriesOffersSeasons(t *testing.T) {
	candidate := types.CandidateResult{ID: "1399", Kind: types.KindSeries, Title: "Game of Thrones"}
	detail := &types.TitleDetail{ID: "1399", Kind: types.KindSeries, Title: "Game of Thrones",
		Seasons: []types.SeasonSummary{{Number: 1, EpisodeCount: 10}, {Number: 2, EpisodeCount: 10}}}

	_, components := renderScreen(nav.TitleDetailScreen(candidate, detail), viewFlags{})
	buttons := flattenButtons(components)
	seasons := false
	for _, btn := range buttons {
		if btn.CustomID == actionOpenSeasons {
			seasons = true
		}
		if btn.Style == discordgo.LinkButton {
			t.Error("series detail must not carry a direct watch button")
		}
	}
	if !seasons {
		t.Error("series detail misses the seasons button")
	}
}

func TestRenderEpisodeListCapsSelectAt25(t *testing.T) {
	season := &types.SeasonDetail{SeriesID: "1399", SeriesTitle: "GoT", Number: 1}
	for n := 1; n <= 30; n++ {
		season.Episodes = append(season.Episodes, types.EpisodeSummary{
			Number: n, Name: fmt.Sprintf("Épisode %d", n), Key: types.EpisodeKey("1399", 1, n),
			Available: n%2 == 0, WatchURL: "https://cdn.example/ep",
		})
	}
	screen := nav.EpisodeListScreen(types.CandidateResult{ID: "1399"}, &types.TitleDetail{ID: "1399"}, season)

	embed, components := renderScreen(screen, viewFlags{})
	menu, ok := firstSelect(components)
	if !ok {
		t.Fatal("no episode select rendered")
	}
	if len(menu.Options) != 25 {
		t.Errorf("select carries %d options, want 25", len(menu.Options))
	}
	// The embed body still lists all 30 with availability marks.
	if got := strings.Count(embed.Description, "\n") + 1; got != 30 {
		t.Errorf("embed lists %d episodes, want 30", got)
	}
	if !strings.Contains(embed.Description, "✅ E02") || !strings.Contains(embed.Description, "❌ E01") {
		t.Errorf("availability marks missing: %q", embed.Description[:80])
	}
}

func TestEveryNonRootScreenHasBack(t *testing.T) {
	candidate := types.CandidateResult{ID: "1399", Kind: types.KindSeries, Title: "GoT"}
	detail := &types.TitleDetail{ID: "1399", Kind: types.KindSeries, Title: "GoT",
		Seasons: []types.SeasonSummary{{Number: 1, EpisodeCount: 2}}}
	season := &types.SeasonDetail{SeriesID: "1399", SeriesTitle: "GoT", Number: 1,
		Episodes: []types.EpisodeSummary{{Number: 1, Name: "Pilote", Key: "1399_S1_E1"}}}

	screens := []nav.Screen{
		nav.TitleDetailScreen(candidate, detail),
		nav.SeasonListScreen(candidate, detail),
		nav.EpisodeListScreen(candidate, detail, season),
	}
	for _, screen := range screens {
		_, components := renderScreen(screen, viewFlags{})
		if !hasButtonWithPrefix(flattenButtons(components), actionBack) {
			t.Errorf("screen kind %v misses the back button", screen.Kind)
		}
	}
}

func TestCustomIDRoundTripAndBound(t *testing.T) {
	id := encodeCustomID(actionFavorite, "1399_S1_E1", "Game of Thrones")
	action, args := decodeCustomID(id)
	if action != actionFavorite || len(args) != 2 || args[0] != "1399_S1_E1" {
		t.Fatalf("decoded %q into %q %v", id, action, args)
	}

	long := encodeCustomID(actionReport, "19995", strings.Repeat("é", 120))
	if len(long) > 100 {
		t.Errorf("custom id is %d bytes, limit 100", len(long))
	}
}

func TestTitleArgKeepsSeparatorInTitle(t *testing.T) {
	id := encodeCustomID(actionFavorite, "100402", "Marvel | Agents of S.H.I.E.L.D.")
	_, args := decodeCustomID(id)

	if got := titleArg(args, args[0]); got != "Marvel | Agents of S.H.I.E.L.D." {
		t.Errorf("titleArg = %q, pipe in the title was lost", got)
	}
	if got := titleArg([]string{"100402"}, "100402"); got != "100402" {
		t.Errorf("titleArg without a title = %q, want the key fallback", got)
	}
	if got := titleArg([]string{"100402", ""}, "100402"); got != "100402" {
		t.Errorf("titleArg with an empty title = %q, want the key fallback", got)
	}
}

func TestIsGreeting(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"bonjour", true},
		{"Salut tout le monde", true},
		{"  COUCOU  ", true},
		{"bonjourno", false},
		{"je cherche avatar", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isGreeting(tt.in); got != tt.want {
			t.Errorf("isGreeting(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
