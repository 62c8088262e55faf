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

package nav

import (
	"errors"
	"testing"
	"time"

	"github.com/cineflix/cineflix-bot/pkg/types"
)

func sampleCandidates() []types.CandidateResult {
	return []types.CandidateResult{
		{ID: "19995", Kind: types.KindMovie, Title: "Avatar", Year: "2009"},
		{ID: "1399", Kind: types.KindSeries, Title: "Game of Thrones", Year: "2011"},
	}
}

func TestFlowDrillDownAndBack(t *testing.T) {
	cands := sampleCandidates()
	flow := NewFlow("u1", time.Minute, SearchResultsScreen("avatar", cands))

	series := cands[1]
	detail := &types.TitleDetail{ID: "1399", Kind: types.KindSeries, Title: "Game of Thrones",
		Seasons: []types.SeasonSummary{{Number: 1, Name: "Saison 1", EpisodeCount: 10}}}
	season := &types.SeasonDetail{SeriesID: "1399", Number: 1,
		Episodes: []types.EpisodeSummary{{Number: 1, Name: "Pilote", Key: "1399_S1_E1"}}}

	flow.Push(TitleDetailScreen(series, detail))
	flow.Push(SeasonListScreen(series, detail))
	flow.Push(EpisodeListScreen(series, detail, season))

	if got := flow.Current(); got.Kind != ScreenEpisodeList || got.Season.Number != 1 {
		t.Fatalf("current = %+v", got)
	}

	// Back rebuilds each prior screen from retained context, all the way
	// to the original search results, without re-searching.
	steps := []struct {
		wantKind ScreenKind
		wantOK   bool
	}{
		{ScreenSeasonList, true},
		{ScreenTitleDetail, true},
		{ScreenSearchResults, true},
		{ScreenSearchResults, false}, // root: nowhere further back
	}
	for i, step := range steps {
		got, ok := flow.Back()
		if ok != step.wantOK || got.Kind != step.wantKind {
			t.Fatalf("back #%d = kind %v ok %v, want kind %v ok %v", i, got.Kind, ok, step.wantKind, step.wantOK)
		}
	}

	root := flow.Current()
	if root.Query != "avatar" || len(root.Candidates) != 2 {
		t.Errorf("root screen lost its context: %+v", root)
	}
}

func TestFlowReplaceKeepsDepth(t *testing.T) {
	flow := NewFlow("u1", time.Minute, SearchResultsScreen("x", nil))
	flow.Push(TitleDetailScreen(types.CandidateResult{ID: "1"}, &types.TitleDetail{ID: "1"}))

	refreshed := TitleDetailScreen(types.CandidateResult{ID: "1"}, &types.TitleDetail{ID: "1", Available: true})
	flow.Replace(refreshed)

	if flow.Depth() != 2 {
		t.Errorf("depth after Replace = %d, want 2", flow.Depth())
	}
	if !flow.Current().Detail.Available {
		t.Error("Replace did not swap the screen")
	}
}

func TestRegistryExpiry(t *testing.T) {
	r := NewRegistry(10 * time.Millisecond)
	r.Start("msg1", "u1", SearchResultsScreen("avatar", sampleCandidates()))

	if _, err := r.Get("msg1"); err != nil {
		t.Fatalf("fresh flow: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := r.Get("msg1"); !errors.Is(err, ErrExpired) {
		t.Errorf("expired flow: err = %v, want ErrExpired", err)
	}
	// Expired flows are removed on access.
	if r.Len() != 0 {
		t.Errorf("registry kept the expired flow, len = %d", r.Len())
	}
}

func TestRegistryUnknownMessageIsExpired(t *testing.T) {
	r := NewRegistry(time.Minute)
	if _, err := r.Get("never-seen"); !errors.Is(err, ErrExpired) {
		t.Errorf("err = %v, want ErrExpired", err)
	}
}

func TestRegistryIndependentClocks(t *testing.T) {
	r := NewRegistry(30 * time.Millisecond)
	r.Start("old", "u1", SearchResultsScreen("a", nil))
	time.Sleep(20 * time.Millisecond)
	r.Start("new", "u2", SearchResultsScreen("b", nil))
	time.Sleep(15 * time.Millisecond)

	// "old" is ~35ms in, "new" only ~15ms: each view expires on its own clock.
	if _, err := r.Get("old"); !errors.Is(err, ErrExpired) {
		t.Errorf("old view should be expired, err = %v", err)
	}
	if _, err := r.Get("new"); err != nil {
		t.Errorf("new view should still be live, err = %v", err)
	}
}

func TestRegistryReap(t *testing.T) {
	r := NewRegistry(5 * time.Millisecond)
	r.Start("m1", "u1", SearchResultsScreen("a", nil))
	r.Start("m2", "u2", SearchResultsScreen("b", nil))
	time.Sleep(10 * time.Millisecond)
	r.Start("m3", "u3", SearchResultsScreen("c", nil))

	if n := r.Reap(time.Now()); n != 2 {
		t.Errorf("reaped %d, want 2", n)
	}
	if r.Len() != 1 {
		t.Errorf("len after reap = %d, want 1", r.Len())
	}
}

func TestRegistryEnd(t *testing.T) {
	r := NewRegistry(time.Minute)
	r.Start("m1", "u1", SearchResultsScreen("a", nil))
	r.End("m1")
	if _, err := r.Get("m1"); !errors.Is(err, ErrExpired) {
		t.Errorf("ended flow should read as expired, err = %v", err)
	}
}
