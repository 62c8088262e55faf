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

// Package moderation implements the missing/broken-link report queue:
// a user reports a title, a privileged reviewer accepts or rejects it,
// and the requester is notified best-effort.
package moderation

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cineflix/cineflix-bot/pkg/utils"
)

var (
	// ErrNotFound is returned when no report carries the given id.
	ErrNotFound = errors.New("moderation: report not found")
	// ErrAlreadyDecided is returned when a terminal report is decided again.
	ErrAlreadyDecided = errors.New("moderation: report already decided")
	// ErrReasonRequired is returned when a rejection carries no reason.
	ErrReasonRequired = errors.New("moderation: rejection requires a reason")
)

// Status is the review state of a report.
type Status int

const (
	StatusPending Status = iota
	StatusAccepted
	StatusRejected
)

// String implements fmt.Stringer for logs and embeds.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Report is one "this link is missing or broken" request.
type Report struct {
	ID          string
	RequesterID string
	Title       string // cached display title; the candidate is ephemeral
	Key         string // media key the report is about
	Status      Status
	Reason      string // set on rejection only
	CreatedAt   time.Time
	DecidedAt   time.Time
}

// Notifier delivers decision outcomes to the requester. Delivery is
// fire-and-forget: errors are logged by the queue and never surface to
// the moderation transition.
type Notifier interface {
	NotifyDecision(report *Report) error
}

// Queue holds pending reports in memory. Reports are short-lived review
// items, not catalogue state, so they do not belong in the link store
// document.
type Queue struct {
	mu       sync.RWMutex
	reports  map[string]*Report
	notifier Notifier
}

// NewQueue creates a queue. notifier may be nil (decisions go unnotified).
func NewQueue(notifier Notifier) *Queue {
	return &Queue{reports: make(map[string]*Report), notifier: notifier}
}

// Open files a new pending report and returns it.
func (q *Queue) Open(requesterID, title, key string) *Report {
	report := &Report{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		Title:       title,
		Key:         key,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
	q.mu.Lock()
	q.reports[report.ID] = report
	q.mu.Unlock()
	utils.InfoLog("Moderation: report %s opened by %s for %q (%s)", report.ID, requesterID, title, key)
	return report
}

// Get returns a copy of the report with the given id.
func (q *Queue) Get(id string) (*Report, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	report, ok := q.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *report
	return &c, nil
}

// Pending returns copies of all reports still awaiting a decision.
func (q *Queue) Pending() []*Report {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := []*Report{}
	for _, r := range q.reports {
		if r.Status == StatusPending {
			c := *r
			out = append(out, &c)
		}
	}
	return out
}

// Accept transitions a pending report to accepted and notifies the
// requester best-effort.
func (q *Queue) Accept(id string) (*Report, error) {
	return q.decide(id, StatusAccepted, "")
}

// Reject transitions a pending report to rejected with a mandatory
// free-text reason and notifies the requester best-effort.
func (q *Queue) Reject(id, reason string) (*Report, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return q.decide(id, StatusRejected, reason)
}

func (q *Queue) decide(id string, status Status, reason string) (*Report, error) {
	q.mu.Lock()
	report, ok := q.reports[id]
	if !ok {
		q.mu.Unlock()
		return nil, ErrNotFound
	}
	if report.Status != StatusPending {
		q.mu.Unlock()
		return nil, ErrAlreadyDecided
	}
	report.Status = status
	report.Reason = reason
	report.DecidedAt = time.Now()
	c := *report
	q.mu.Unlock()

	utils.InfoLog("Moderation: report %s %s", c.ID, c.Status)
	if q.notifier != nil {
		if err := q.notifier.NotifyDecision(&c); err != nil {
			// The decision stands either way.
			utils.WarnLog("Moderation: could not notify %s about report %s: %v", c.RequesterID, c.ID, err)
		}
	}
	return &c, nil
}
