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
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/cineflix/cineflix-bot/pkg/types"
)

// isSameUser verifies the interaction comes from the expected user.
func (b *Bot) isSameUser(expected string, i *discordgo.InteractionCreate) bool {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID == expected
	}
	if i.User != nil {
		return i.User.ID == expected
	}
	return false
}

// interactionUserID extracts user ID from an interaction.
func (b *Bot) interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// Helpers to extract options
func optString(i *discordgo.InteractionCreate, name string) string {
	for _, o := range i.ApplicationCommandData().Options {
		if o.Name == name && o.StringValue() != "" {
			return o.StringValue()
		}
	}
	return ""
}
func optInt(i *discordgo.InteractionCreate, name string) int64 {
	for _, o := range i.ApplicationCommandData().Options {
		if o.Name == name {
			return o.IntValue()
		}
	}
	return 0
}

// displayTitle renders "Title (Year)" when the year is known.
func displayTitle(title, year string) string {
	if year == "" {
		return title
	}
	return title + " (" + year + ")"
}

// kindLabel returns the French label shown next to search results.
func kindLabel(kind types.MediaKind) string {
	if kind == types.KindSeries {
		return "Série"
	}
	return "Film"
}

// Component custom IDs are "<action>|<arg>|<arg>…". The pipe never occurs
// in media keys or report ids; a display title may contain it, which is
// why titles always ride last (see titleArg).
const customIDSep = "|"

func encodeCustomID(action string, args ...string) string {
	parts := append([]string{action}, args...)
	id := strings.Join(parts, customIDSep)
	// Discord caps custom IDs at 100 bytes; the last arg is a display
	// title, safe to shorten. Cut whole runes until the id fits.
	for len(id) > 100 {
		runes := []rune(id)
		id = string(runes[:len(runes)-1])
	}
	return id
}

func decodeCustomID(id string) (action string, args []string) {
	parts := strings.Split(id, customIDSep)
	return parts[0], parts[1:]
}

// titleArg reassembles the display title carried after the media key.
// Titles may themselves contain the separator, so everything past the
// first arg belongs to the title.
func titleArg(args []string, fallback string) string {
	if len(args) < 2 {
		return fallback
	}
	title := strings.Join(args[1:], customIDSep)
	if title == "" {
		return fallback
	}
	return title
}

// isGreeting reports whether a plain message is a salute aimed at the bot.
func isGreeting(content string) bool {
	c := strings.ToLower(strings.TrimSpace(content))
	for _, g := range []string{"bonjour", "bienvenue", "salut", "coucou"} {
		if c == g || strings.HasPrefix(c, g+" ") {
			return true
		}
	}
	return false
}
