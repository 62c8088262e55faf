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

// Package store persists the catalogue state: viewing links, trailers,
// per-user favorites and the ban list. Everything lives in one JSON
// document; every mutation is a whole-document read-modify-write. The
// document layout is a compatibility contract with the legacy bot and
// must not change:
//
//	{
//	  "links":        { "<mediaKey>": "<url>" },
//	  "trailers":     { "<externalId>": "<url>" },
//	  "favorites":    { "<userId>": [ {"id": "...", "titre": "..."} ] },
//	  "banned_users": [ "<userId>" ]
//	}
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cineflix/cineflix-bot/pkg/types"
	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// ErrPersistence is wrapped by every error caused by the backing file.
// The previously committed document stays readable when it is returned.
var ErrPersistence = errors.New("store: persistence failure")

// FavoriteEntry is one favorited title. The JSON field "titre" is part of
// the legacy document format.
type FavoriteEntry struct {
	Key   string `json:"id"`
	Title string `json:"titre"`
}

// document is the on-disk layout.
type document struct {
	Links       map[string]string          `json:"links"`
	Trailers    map[string]string          `json:"trailers"`
	Favorites   map[string][]FavoriteEntry `json:"favorites"`
	BannedUsers []string                   `json:"banned_users"`
}

func emptyDocument() *document {
	return &document{
		Links:       map[string]string{},
		Trailers:    map[string]string{},
		Favorites:   map[string][]FavoriteEntry{},
		BannedUsers: []string{},
	}
}

// normalize fills nil collections after a partial document was decoded.
func (d *document) normalize() {
	if d.Links == nil {
		d.Links = map[string]string{}
	}
	if d.Trailers == nil {
		d.Trailers = map[string]string{}
	}
	if d.Favorites == nil {
		d.Favorites = map[string][]FavoriteEntry{}
	}
	if d.BannedUsers == nil {
		d.BannedUsers = []string{}
	}
}

// FileStore is the single source of truth for "is this watchable".
// All operations re-read the file so concurrent processes see each
// other's writes; the mutex removes torn read-modify-write interleavings
// inside this process while keeping last-writer-wins semantics.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore opens (or lazily creates) the store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// load reads the document. A missing or unparsable file yields the empty
// default instead of an error; that recovery is lossy but the legacy
// tooling around the file expects it, so the event is only logged.
func (s *FileStore) load() *document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.WarnLog("Store: cannot read %s, starting from empty document: %v", s.path, err)
		}
		return emptyDocument()
	}
	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		utils.WarnLog("Store: %s is unparsable, starting from empty document: %v", s.path, err)
		return emptyDocument()
	}
	doc.normalize()
	return doc
}

// save writes the full document atomically: temp file in the same
// directory, then rename. On any failure the previous file is untouched.
func (s *FileStore) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrPersistence, dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".catalogue-*.json")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", ErrPersistence, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write: %v", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", ErrPersistence, err)
	}
	return nil
}

// GetLink returns the stored URL for a media key. Absence is a normal state.
func (s *FileStore) GetLink(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url, ok := s.load().Links[key]
	return url, ok
}

// PutLink stores or overwrites the URL for a media key. Admin-only; the
// permission check belongs to the caller.
func (s *FileStore) PutLink(key, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	doc.Links[key] = url
	return s.save(doc)
}

// GetTrailer returns the trailer URL stored for a base external id.
func (s *FileStore) GetTrailer(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url, ok := s.load().Trailers[id]
	return url, ok
}

// PutTrailer stores or overwrites a trailer URL.
func (s *FileStore) PutTrailer(id, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	doc.Trailers[id] = url
	return s.save(doc)
}

// BulkAddSeason stores one link per episode, keys <id>_S<season>_E1..EN in
// input order, and returns the generated keys.
func (s *FileStore) BulkAddSeason(id string, season int, urls []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	keys := make([]string, 0, len(urls))
	for i, url := range urls {
		key := types.EpisodeKey(id, season, i+1)
		doc.Links[key] = url
		keys = append(keys, key)
	}
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return keys, nil
}

// ToggleFavorite flips membership of key in the user's favorite set.
// Returns true when the entry was added, false when it was removed.
func (s *FileStore) ToggleFavorite(userID, key, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	favs := doc.Favorites[userID]
	for i, f := range favs {
		if f.Key == key {
			doc.Favorites[userID] = append(favs[:i], favs[i+1:]...)
			if len(doc.Favorites[userID]) == 0 {
				delete(doc.Favorites, userID)
			}
			return false, s.save(doc)
		}
	}
	doc.Favorites[userID] = append(favs, FavoriteEntry{Key: key, Title: title})
	return true, s.save(doc)
}

// FavoritesOf returns the user's favorites, oldest first.
func (s *FileStore) FavoritesOf(userID string) []FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	favs := s.load().Favorites[userID]
	out := make([]FavoriteEntry, len(favs))
	copy(out, favs)
	return out
}

// Ban adds a user to the ban set. Idempotent.
func (s *FileStore) Ban(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for _, u := range doc.BannedUsers {
		if u == userID {
			return nil
		}
	}
	doc.BannedUsers = append(doc.BannedUsers, userID)
	return s.save(doc)
}

// Unban removes a user from the ban set. Idempotent.
func (s *FileStore) Unban(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for i, u := range doc.BannedUsers {
		if u == userID {
			doc.BannedUsers = append(doc.BannedUsers[:i], doc.BannedUsers[i+1:]...)
			return s.save(doc)
		}
	}
	return nil
}

// IsBanned reports whether a user is denied catalogue access.
func (s *FileStore) IsBanned(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.load().BannedUsers {
		if u == userID {
			return true
		}
	}
	return false
}

// Counts returns the sizes of each collection, for the overview embed and
// the status endpoint.
func (s *FileStore) Counts() (links, trailers, favorites, banned int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for _, favs := range doc.Favorites {
		favorites += len(favs)
	}
	return len(doc.Links), len(doc.Trailers), favorites, len(doc.BannedUsers)
}

// RandomLink returns an arbitrary (key, url) pair from the links map, or
// ok=false when the store has none. Map iteration order supplies the
// randomness, which matched the legacy bot's "sélection aléatoire".
func (s *FileStore) RandomLink() (key, url string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, u := range s.load().Links {
		return k, u, true
	}
	return "", "", false
}

// Export returns the raw document bytes, pretty-printed, for the admin
// export command and the internal API.
func (s *FileStore) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(s.load(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: marshal: %v", ErrPersistence, err)
	}
	return data, nil
}
