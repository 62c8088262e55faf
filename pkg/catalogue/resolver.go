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

package catalogue

import (
	"context"
	"fmt"

	"github.com/cineflix/cineflix-bot/pkg/tmdb"

	"github.com/cineflix/cineflix-bot/pkg/types"
	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// Display bounds. Truncation is silent (no ellipsis) and rune-safe.
const (
	MaxSynopsisLen = 600 // embed description budget
	MaxLabelLen    = 100 // Discord select option label limit
)

// PlaceholderSynopsis is rendered when TMDB has no overview for a title.
const PlaceholderSynopsis = "Synopsis indisponible."

// Resolver merges TMDB metadata with link-store state. It only ever reads
// the store: availability flows from stored links, never from metadata.
type Resolver struct {
	api             MetadataAPI
	links           LinkSource
	trailersEnabled bool
}

// NewResolver creates a resolver.
func NewResolver(api MetadataAPI, links LinkSource, trailersEnabled bool) *Resolver {
	return &Resolver{api: api, links: links, trailersEnabled: trailersEnabled}
}

// ResolveTitle fetches full metadata for a candidate and joins it against
// the store. For series the season list is attached; availability is then
// a per-episode question answered by ResolveSeason.
func (r *Resolver) ResolveTitle(ctx context.Context, id string, kind types.MediaKind) (*types.TitleDetail, error) {
	switch kind {
	case types.KindMovie:
		return r.resolveMovie(ctx, id)
	case types.KindSeries:
		return r.resolveSeries(ctx, id)
	default:
		return nil, fmt.Errorf("catalogue: unknown media kind %q", kind)
	}
}

func (r *Resolver) resolveMovie(ctx context.Context, id string) (*types.TitleDetail, error) {
	m, err := r.api.MovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &types.TitleDetail{
		ID:        id,
		Kind:      types.KindMovie,
		Title:     m.Title,
		Synopsis:  utils.OrPlaceholder(utils.TrimTo(m.Overview, MaxSynopsisLen), PlaceholderSynopsis),
		Genres:    genreNames(m.Genres),
		Year:      yearOfDate(m.ReleaseDate),
		PosterURL: tmdb.PosterURL(m.PosterPath),
		Key:       types.MovieKey(id),
	}
	if url, ok := r.links.GetLink(detail.Key); ok {
		detail.Available = true
		detail.WatchURL = url
	}
	if r.trailersEnabled {
		if url, ok := r.links.GetTrailer(id); ok {
			detail.TrailerURL = url
		}
	}
	return detail, nil
}

func (r *Resolver) resolveSeries(ctx context.Context, id string) (*types.TitleDetail, error) {
	tv, err := r.api.TVDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &types.TitleDetail{
		ID:        id,
		Kind:      types.KindSeries,
		Title:     tv.Name,
		Synopsis:  utils.OrPlaceholder(utils.TrimTo(tv.Overview, MaxSynopsisLen), PlaceholderSynopsis),
		Genres:    genreNames(tv.Genres),
		Year:      yearOfDate(tv.FirstAirDate),
		PosterURL: tmdb.PosterURL(tv.PosterPath),
	}
	for _, s := range tv.Seasons {
		// Season 0 is TMDB's bucket for specials; the catalogue never
		// carried links for those.
		if s.SeasonNumber < 1 {
			continue
		}
		detail.Seasons = append(detail.Seasons, types.SeasonSummary{
			Number:       s.SeasonNumber,
			Name:         utils.TrimTo(s.Name, MaxLabelLen),
			EpisodeCount: s.EpisodeCount,
		})
	}
	return detail, nil
}

// ResolveSeason fetches one season's episode list and marks each episode
// available iff the store holds a link for its exact key.
func (r *Resolver) ResolveSeason(ctx context.Context, id, title string, season int) (*types.SeasonDetail, error) {
	s, err := r.api.SeasonDetails(ctx, id, season)
	if err != nil {
		return nil, err
	}

	detail := &types.SeasonDetail{
		SeriesID:    id,
		SeriesTitle: title,
		Number:      season,
	}
	for _, ep := range s.Episodes {
		summary := types.EpisodeSummary{
			Number: ep.EpisodeNumber,
			Name:   utils.TrimTo(utils.OrPlaceholder(ep.Name, fmt.Sprintf("Épisode %d", ep.EpisodeNumber)), MaxLabelLen),
			Key:    types.EpisodeKey(id, season, ep.EpisodeNumber),
		}
		if url, ok := r.links.GetLink(summary.Key); ok {
			summary.Available = true
			summary.WatchURL = url
		}
		detail.Episodes = append(detail.Episodes, summary)
	}
	return detail, nil
}

func genreNames(genres []tmdb.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

func yearOfDate(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
