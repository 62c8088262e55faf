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

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "catalogue.json"))
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name string
		key  string
		url  string
	}{
		{name: "movie key", key: "603", url: "https://x/matrix"},
		{name: "episode key", key: "1399_S1_E1", url: "https://x/got-s1e1"},
		{name: "overwrite is idempotent", key: "603", url: "https://x/matrix-v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.PutLink(tt.key, tt.url); err != nil {
				t.Fatalf("PutLink: %v", err)
			}
			got, ok := s.GetLink(tt.key)
			if !ok || got != tt.url {
				t.Errorf("GetLink(%q) = %q, %v; want %q, true", tt.key, got, ok, tt.url)
			}
		})
	}

	if _, ok := s.GetLink("absent"); ok {
		t.Error("GetLink on absent key should report absence, not an error state")
	}
}

func TestToggleFavoriteIsItsOwnInverse(t *testing.T) {
	s := newTestStore(t)

	added, err := s.ToggleFavorite("u1", "603", "Matrix")
	if err != nil || !added {
		t.Fatalf("first toggle = %v, %v; want added", added, err)
	}
	favs := s.FavoritesOf("u1")
	if len(favs) != 1 || favs[0].Key != "603" || favs[0].Title != "Matrix" {
		t.Fatalf("favorites after add = %+v", favs)
	}

	added, err = s.ToggleFavorite("u1", "603", "Matrix")
	if err != nil || added {
		t.Fatalf("second toggle = %v, %v; want removed", added, err)
	}
	if favs := s.FavoritesOf("u1"); len(favs) != 0 {
		t.Errorf("favorites after remove = %+v; want empty", favs)
	}
}

func TestFavoritesAreScopedPerUser(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.ToggleFavorite("u1", "603", "Matrix"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleFavorite("u2", "603", "Matrix"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleFavorite("u2", "603", "Matrix"); err != nil {
		t.Fatal(err)
	}

	if favs := s.FavoritesOf("u1"); len(favs) != 1 {
		t.Errorf("u1 favorites = %+v; u2's toggle must not touch them", favs)
	}
	if favs := s.FavoritesOf("u2"); len(favs) != 0 {
		t.Errorf("u2 favorites = %+v; want empty", favs)
	}
}

func TestBanGate(t *testing.T) {
	s := newTestStore(t)

	if s.IsBanned("u1") {
		t.Fatal("fresh store should not ban anyone")
	}
	if err := s.Ban("u1"); err != nil {
		t.Fatal(err)
	}
	// Idempotent insert
	if err := s.Ban("u1"); err != nil {
		t.Fatal(err)
	}
	if !s.IsBanned("u1") {
		t.Error("IsBanned after Ban = false")
	}
	if err := s.Unban("u1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Unban("u1"); err != nil {
		t.Fatal(err)
	}
	if s.IsBanned("u1") {
		t.Error("IsBanned after Unban = true")
	}
}

func TestBulkAddSeasonKeyOrder(t *testing.T) {
	s := newTestStore(t)

	urls := []string{"u1", "u2", "u3"}
	keys, err := s.BulkAddSeason("42", 1, urls)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"42_S1_E1", "42_S1_E2", "42_S1_E3"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], k)
		}
		url, ok := s.GetLink(k)
		if !ok || url != urls[i] {
			t.Errorf("GetLink(%q) = %q, %v; want %q", k, url, ok, urls[i])
		}
	}
}

func TestCorruptStoreRecovery(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "garbage", content: "{not json at all"},
		{name: "wrong shape", content: `[1, 2, 3]`},
		{name: "empty file", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalogue.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			s := NewFileStore(path)

			if _, ok := s.GetLink("any"); ok {
				t.Error("corrupt store should load as empty, not fail")
			}
			if s.IsBanned("u1") {
				t.Error("corrupt store should have an empty ban set")
			}
			// The store must stay writable after recovery.
			if err := s.PutLink("603", "https://x/matrix"); err != nil {
				t.Errorf("PutLink after recovery: %v", err)
			}
		})
	}
}

func TestPartialDocumentNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.json")
	if err := os.WriteFile(path, []byte(`{"links": {"603": "https://x/matrix"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)

	if url, ok := s.GetLink("603"); !ok || url != "https://x/matrix" {
		t.Errorf("GetLink = %q, %v", url, ok)
	}
	if added, err := s.ToggleFavorite("u1", "603", "Matrix"); err != nil || !added {
		t.Errorf("ToggleFavorite on partial document = %v, %v", added, err)
	}
}

func TestPersistenceErrorLeavesPriorValueReadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.json")
	s := NewFileStore(path)
	if err := s.PutLink("603", "https://x/matrix"); err != nil {
		t.Fatal(err)
	}

	// Make the directory unwritable so the temp-file write fails.
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(dir, 0755)

	err := s.PutLink("604", "https://x/reloaded")
	if err == nil {
		t.Skip("running as a user unaffected by directory permissions")
	}
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("error = %v, want ErrPersistence", err)
	}

	if url, ok := s.GetLink("603"); !ok || url != "https://x/matrix" {
		t.Errorf("prior value after failed write = %q, %v; want intact", url, ok)
	}
	if _, ok := s.GetLink("604"); ok {
		t.Error("failed write must not become visible")
	}
}

func TestDocumentLayoutOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.json")
	s := NewFileStore(path)

	if err := s.PutLink("42_S1_E1", "https://x/e1"); err != nil {
		t.Fatal(err)
	}
	if err := s.PutTrailer("42", "https://x/trailer"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleFavorite("u1", "42_S1_E1", "Pilot"); err != nil {
		t.Fatal(err)
	}
	if err := s.Ban("u9"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"links", "trailers", "favorites", "banned_users"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("document missing %q field", field)
		}
	}

	// The favorites entry must keep the legacy "titre" field name.
	var favs map[string][]map[string]string
	if err := json.Unmarshal(doc["favorites"], &favs); err != nil {
		t.Fatal(err)
	}
	if favs["u1"][0]["titre"] != "Pilot" {
		t.Errorf(`favorites entry = %v, want "titre" field`, favs["u1"][0])
	}
}

func TestExportMatchesCounts(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		if err := s.PutLink(fmt.Sprintf("%d", 100+i), "https://x/m"); err != nil {
			t.Fatal(err)
		}
	}

	links, _, _, _ := s.Counts()
	if links != 3 {
		t.Errorf("Counts links = %d, want 3", links)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Links map[string]string `json:"links"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Links) != 3 {
		t.Errorf("exported links = %d, want 3", len(doc.Links))
	}
}
