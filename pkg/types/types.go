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

package types

import "fmt"

// MediaKind distinguishes the two catalogue entry kinds we handle.
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "series"
)

// MovieKey returns the link-store key for a movie.
func MovieKey(id string) string {
	return id
}

// EpisodeKey returns the link-store key for a series episode.
// Format: <id>_S<season>_E<episode>.
func EpisodeKey(id string, season, episode int) string {
	return fmt.Sprintf("%s_S%d_E%d", id, season, episode)
}

// CandidateResult is a single search hit before detail resolution.
// It is derived from a live TMDB call and never persisted.
type CandidateResult struct {
	ID        string    // TMDB id, as string
	Kind      MediaKind // movie or series
	Title     string
	Year      string // empty when TMDB has no release date
	PosterURL string // empty when TMDB has no poster
}

// SeasonSummary describes one season of a series.
type SeasonSummary struct {
	Number       int
	Name         string
	EpisodeCount int
}

// EpisodeSummary describes one episode together with its link-store state.
type EpisodeSummary struct {
	Number    int
	Name      string
	Key       string // link-store media key
	Available bool   // true iff the store has a link for Key
	WatchURL  string // set iff Available
}

// TitleDetail is the resolved view of a candidate: TMDB metadata joined
// with link-store availability. The store is the only source of truth for
// Available/WatchURL; metadata never implies a title is watchable.
type TitleDetail struct {
	ID         string
	Kind       MediaKind
	Title      string
	Synopsis   string
	Genres     []string
	Year       string
	PosterURL  string
	Key        string // movie key; empty for series (episodes carry their own)
	Available  bool   // movies only
	WatchURL   string // movies only, set iff Available
	TrailerURL string // movies only, optional
	Seasons    []SeasonSummary
}

// SeasonDetail is the resolved episode list for one season.
type SeasonDetail struct {
	SeriesID    string
	SeriesTitle string
	Number      int
	Episodes    []EpisodeSummary
}

// APIResponse is the standardized envelope of the internal HTTP API.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
