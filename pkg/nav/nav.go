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

// Package nav holds the catalogue navigation state machine: the sequence
// of screens one ephemeral view walks through (search results → title
// detail → season list → episode list) and the retained context that lets
// "back" rebuild the previous screen without re-running the search.
//
// The screens are a tagged union; side effects (TMDB fetches, store
// writes, message edits) happen in the Discord layer before a screen is
// pushed, so the machine itself stays pure and testable.
package nav

import (
	"errors"
	"sync"
	"time"

	"github.com/cineflix/cineflix-bot/pkg/types"
)

// ErrExpired is returned for any action against a view whose clock ran
// out, or a view this process no longer knows about.
var ErrExpired = errors.New("nav: view expired")

// ScreenKind tags the Screen union.
type ScreenKind int

const (
	ScreenSearchResults ScreenKind = iota
	ScreenTitleDetail
	ScreenSeasonList
	ScreenEpisodeList
)

// Screen is one rendered state of a navigation view. Only the fields of
// the tagged kind are meaningful.
type Screen struct {
	Kind ScreenKind

	// ScreenSearchResults
	Query      string
	Candidates []types.CandidateResult

	// ScreenTitleDetail (Candidate also set on deeper screens)
	Candidate types.CandidateResult
	Detail    *types.TitleDetail

	// ScreenEpisodeList
	Season *types.SeasonDetail
}

// SearchResultsScreen builds the root screen of a flow.
func SearchResultsScreen(query string, candidates []types.CandidateResult) Screen {
	return Screen{Kind: ScreenSearchResults, Query: query, Candidates: candidates}
}

// TitleDetailScreen builds the detail screen for a selected candidate.
func TitleDetailScreen(c types.CandidateResult, d *types.TitleDetail) Screen {
	return Screen{Kind: ScreenTitleDetail, Candidate: c, Detail: d}
}

// SeasonListScreen builds the season picker of a series detail.
func SeasonListScreen(c types.CandidateResult, d *types.TitleDetail) Screen {
	return Screen{Kind: ScreenSeasonList, Candidate: c, Detail: d}
}

// EpisodeListScreen builds the episode list of one season.
func EpisodeListScreen(c types.CandidateResult, d *types.TitleDetail, s *types.SeasonDetail) Screen {
	return Screen{Kind: ScreenEpisodeList, Candidate: c, Detail: d, Season: s}
}

// Flow is the state of one ephemeral view: a stack of screens owned by
// one user, expiring on its own clock from the moment it was shown.
type Flow struct {
	UserID  string
	Created time.Time

	ttl   time.Duration
	mu    sync.Mutex
	stack []Screen
}

// NewFlow starts a flow at the given root screen.
func NewFlow(userID string, ttl time.Duration, root Screen) *Flow {
	return &Flow{
		UserID:  userID,
		Created: time.Now(),
		ttl:     ttl,
		stack:   []Screen{root},
	}
}

// Expired reports whether the view's validity window has passed.
func (f *Flow) Expired(now time.Time) bool {
	return now.Sub(f.Created) > f.ttl
}

// Current returns the screen on top of the stack.
func (f *Flow) Current() Screen {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stack[len(f.stack)-1]
}

// Push makes screen the new current screen; the previous one stays
// retained for Back.
func (f *Flow) Push(screen Screen) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stack = append(f.stack, screen)
}

// Replace swaps the current screen without growing the stack. Used when a
// screen refreshes itself (e.g. availability changed) rather than
// navigating.
func (f *Flow) Replace(screen Screen) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stack[len(f.stack)-1] = screen
}

// Back pops to the immediately preceding screen and returns it. ok is
// false on the root screen, where there is nothing to go back to.
func (f *Flow) Back() (Screen, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.stack) <= 1 {
		return f.stack[0], false
	}
	f.stack = f.stack[:len(f.stack)-1]
	return f.stack[len(f.stack)-1], true
}

// Depth returns the number of screens on the stack.
func (f *Flow) Depth() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stack)
}

// Registry tracks the live flows of this process, keyed by the Discord
// message that renders them. Expired flows answer ErrExpired and are
// reaped lazily plus by a periodic janitor.
type Registry struct {
	ttl   time.Duration
	mu    sync.RWMutex
	flows map[string]*Flow
}

// NewRegistry creates a registry; every flow it starts uses ttl.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{ttl: ttl, flows: make(map[string]*Flow)}
}

// Start registers a new flow rooted at root and owned by userID.
func (r *Registry) Start(messageID, userID string, root Screen) *Flow {
	flow := NewFlow(userID, r.ttl, root)
	r.mu.Lock()
	r.flows[messageID] = flow
	r.mu.Unlock()
	return flow
}

// Get returns the live flow behind a message. Unknown messages (process
// restarted, already reaped) and expired flows both come back as
// ErrExpired: either way the user must restart the search.
func (r *Registry) Get(messageID string) (*Flow, error) {
	r.mu.RLock()
	flow, ok := r.flows[messageID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrExpired
	}
	if flow.Expired(time.Now()) {
		r.mu.Lock()
		delete(r.flows, messageID)
		r.mu.Unlock()
		return nil, ErrExpired
	}
	return flow, nil
}

// End forgets a flow (view closed or superseded).
func (r *Registry) End(messageID string) {
	r.mu.Lock()
	delete(r.flows, messageID)
	r.mu.Unlock()
}

// Reap drops every expired flow and returns how many were removed.
func (r *Registry) Reap(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, flow := range r.flows {
		if flow.Expired(now) {
			delete(r.flows, id)
			n++
		}
	}
	return n
}

// Len returns the number of live flows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flows)
}
