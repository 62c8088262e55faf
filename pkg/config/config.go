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

package config

import "time"

// CredentialString is a string that must never be printed in clear text.
type CredentialString string

// String masks the credential when formatted.
func (c CredentialString) String() string {
	if c == "" {
		return "[empty]"
	}
	return "********"
}

// Value returns the raw credential.
func (c CredentialString) Value() string {
	return string(c)
}

// BotConfig carries the whole runtime configuration, fed by cmd/root.go
// from flags, environment and the optional config file.
type BotConfig struct {
	// Discord
	DiscordToken    CredentialString
	AdminRoleID     string
	ReviewChannelID string // where moderation reports land
	DevGuildID      string // optional: guild-scoped slash commands for development

	// TMDB
	TMDBAPIKey   CredentialString
	TMDBLanguage string // e.g. "fr-FR"

	// Link store
	StoreFile string // path to the JSON document

	// HTTP API
	Port   int
	APIKey CredentialString // X-API-Key for /api/export

	// Catalogue behaviour
	MaxResults int           // search candidates shown at once
	ViewTTL    time.Duration // lifetime of one ephemeral navigation view

	// Feature flags. The legacy revisions of this bot diverged on these;
	// they are configuration, not separate code paths.
	FavoritesOnEpisodes bool
	TrailersEnabled     bool
	SuggestionsEnabled  bool
}
