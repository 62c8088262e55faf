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

// Package tmdb is a small client for The Movie Database API v3.
//
// Base URL: https://api.themoviedb.org/3
// Auth: api_key query parameter (TMDB_API_KEY).
// Posters: https://image.tmdb.org/t/p/w500<poster_path>
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/buger/jsonparser"

	"github.com/cineflix/cineflix-bot/pkg/types"
	"github.com/cineflix/cineflix-bot/pkg/utils"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	imageBaseURL   = "https://image.tmdb.org/t/p/w500"
)

// Client talks to TMDB. It is safe for concurrent use.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
}

// NewClient creates a TMDB client. language follows BCP 47 ("fr-FR");
// empty means TMDB's default.
func NewClient(apiKey, language string) *Client {
	utils.DebugLog("TMDB: client configured (key %s, language %q)", utils.MaskString(apiKey), language)
	return &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		language: language,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// get performs one API call and returns the raw body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, utils.ErrorWithLocation(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.ErrorWithLocation(fmt.Errorf("tmdb: %s returned %s", path, resp.Status))
	}
	return io.ReadAll(resp.Body)
}

// SearchMulti runs a free-text search across movies and TV shows and
// returns candidates in TMDB's relevance order. Results that are neither
// movies nor shows (people, collections) are dropped. The caller bounds
// the count.
func (c *Client) SearchMulti(ctx context.Context, query string) ([]types.CandidateResult, error) {
	body, err := c.get(ctx, "/search/multi", url.Values{"query": []string{query}})
	if err != nil {
		return nil, err
	}

	// The results array mixes result kinds with divergent field names;
	// walking it with jsonparser avoids a union decode type.
	candidates := []types.CandidateResult{}
	_, err = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, _ error) {
		mediaType, _ := jsonparser.GetString(value, "media_type")

		var cand types.CandidateResult
		switch mediaType {
		case "movie":
			cand.Kind = types.KindMovie
			cand.Title, _ = jsonparser.GetString(value, "title")
			cand.Year = yearOf(value, "release_date")
		case "tv":
			cand.Kind = types.KindSeries
			cand.Title, _ = jsonparser.GetString(value, "name")
			cand.Year = yearOf(value, "first_air_date")
		default:
			return
		}

		id, err := jsonparser.GetInt(value, "id")
		if err != nil || cand.Title == "" {
			return
		}
		cand.ID = strconv.FormatInt(id, 10)
		if poster, err := jsonparser.GetString(value, "poster_path"); err == nil && poster != "" {
			cand.PosterURL = imageBaseURL + poster
		}
		candidates = append(candidates, cand)
	}, "results")
	if err != nil {
		return nil, fmt.Errorf("tmdb: parse search results: %w", err)
	}
	return candidates, nil
}

func yearOf(value []byte, field string) string {
	date, err := jsonparser.GetString(value, field)
	if err != nil || len(date) < 4 {
		return ""
	}
	return date[:4]
}

// Genre is a movie/TV genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is the response from GET /movie/{id}.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Genres      []Genre `json:"genres"`
}

// TV is the response from GET /tv/{id}.
type TV struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	Genres       []Genre `json:"genres"`
	Seasons      []struct {
		SeasonNumber int    `json:"season_number"`
		Name         string `json:"name"`
		EpisodeCount int    `json:"episode_count"`
	} `json:"seasons"`
}

// Season is the response from GET /tv/{id}/season/{n}.
type Season struct {
	SeasonNumber int `json:"season_number"`
	Episodes     []struct {
		EpisodeNumber int    `json:"episode_number"`
		Name          string `json:"name"`
	} `json:"episodes"`
}

// PosterURL returns the w500 poster URL, or "" when TMDB has none.
func PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return imageBaseURL + posterPath
}

// MovieDetails fetches one movie by id.
func (c *Client) MovieDetails(ctx context.Context, id string) (*Movie, error) {
	body, err := c.get(ctx, "/movie/"+id, nil)
	if err != nil {
		return nil, err
	}
	m := &Movie{}
	if err := json.Unmarshal(body, m); err != nil {
		return nil, fmt.Errorf("tmdb: decode movie %s: %w", id, err)
	}
	return m, nil
}

// TVDetails fetches one show by id, including its season list.
func (c *Client) TVDetails(ctx context.Context, id string) (*TV, error) {
	body, err := c.get(ctx, "/tv/"+id, nil)
	if err != nil {
		return nil, err
	}
	tv := &TV{}
	if err := json.Unmarshal(body, tv); err != nil {
		return nil, fmt.Errorf("tmdb: decode tv %s: %w", id, err)
	}
	return tv, nil
}

// SeasonDetails fetches the episode list of one season.
func (c *Client) SeasonDetails(ctx context.Context, id string, season int) (*Season, error) {
	body, err := c.get(ctx, "/tv/"+id+"/season/"+strconv.Itoa(season), nil)
	if err != nil {
		return nil, err
	}
	s := &Season{}
	if err := json.Unmarshal(body, s); err != nil {
		return nil, fmt.Errorf("tmdb: decode season %d of %s: %w", season, id, err)
	}
	return s, nil
}
