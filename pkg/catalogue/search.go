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

// Package catalogue turns TMDB metadata and link-store state into the
// records the navigation screens render.
package catalogue

import (
	"context"

	"github.com/cineflix/cineflix-bot/pkg/tmdb"
	"github.com/cineflix/cineflix-bot/pkg/types"
	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// MetadataAPI is the slice of the TMDB client the catalogue needs.
type MetadataAPI interface {
	SearchMulti(ctx context.Context, query string) ([]types.CandidateResult, error)
	MovieDetails(ctx context.Context, id string) (*tmdb.Movie, error)
	TVDetails(ctx context.Context, id string) (*tmdb.TV, error)
	SeasonDetails(ctx context.Context, id string, season int) (*tmdb.Season, error)
}

// LinkSource is the read side of the link store.
type LinkSource interface {
	GetLink(key string) (string, bool)
	GetTrailer(id string) (string, bool)
}

// DefaultMaxResults matches the number of quick-pick slots the legacy bot
// exposed at once.
const DefaultMaxResults = 9

// SearchAdapter normalizes TMDB search output into a bounded candidate
// list for the results screen.
type SearchAdapter struct {
	api        MetadataAPI
	maxResults int
}

// NewSearchAdapter creates an adapter; maxResults <= 0 selects the default.
func NewSearchAdapter(api MetadataAPI, maxResults int) *SearchAdapter {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &SearchAdapter{api: api, maxResults: maxResults}
}

// Search returns candidates in upstream relevance order, kinds restricted
// to movie|series, at most maxResults of them. An upstream failure
// degrades to an empty list: the caller renders "aucun résultat", never an
// error screen.
func (a *SearchAdapter) Search(ctx context.Context, query string) []types.CandidateResult {
	results, err := a.api.SearchMulti(ctx, query)
	if err != nil {
		utils.WarnLog("Catalogue: search %q failed upstream: %v", query, err)
		return []types.CandidateResult{}
	}

	out := make([]types.CandidateResult, 0, a.maxResults)
	for _, r := range results {
		if r.Kind != types.KindMovie && r.Kind != types.KindSeries {
			continue
		}
		out = append(out, r)
		if len(out) == a.maxResults {
			break
		}
	}
	return out
}
