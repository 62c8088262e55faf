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

package moderation

import (
	"errors"
	"testing"
)

type recordingNotifier struct {
	decided []*Report
	err     error
}

func (n *recordingNotifier) NotifyDecision(report *Report) error {
	n.decided = append(n.decided, report)
	return n.err
}

func TestAcceptFlow(t *testing.T) {
	notifier := &recordingNotifier{}
	q := NewQueue(notifier)

	report := q.Open("u1", "Matrix Reloaded", "604")
	if report.Status != StatusPending || report.ID == "" {
		t.Fatalf("opened report = %+v", report)
	}

	decided, err := q.Accept(report.ID)
	if err != nil {
		t.Fatal(err)
	}
	if decided.Status != StatusAccepted || decided.DecidedAt.IsZero() {
		t.Errorf("decided = %+v", decided)
	}
	if len(notifier.decided) != 1 || notifier.decided[0].RequesterID != "u1" {
		t.Errorf("notifications = %+v", notifier.decided)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	q := NewQueue(nil)
	report := q.Open("u1", "Matrix Reloaded", "604")

	if _, err := q.Reject(report.ID, ""); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("reject without reason: err = %v", err)
	}
	// The failed attempt must not consume the report.
	got, err := q.Get(report.ID)
	if err != nil || got.Status != StatusPending {
		t.Fatalf("report after refused rejection = %+v, %v", got, err)
	}

	decided, err := q.Reject(report.ID, "Lien introuvable chez nos sources.")
	if err != nil {
		t.Fatal(err)
	}
	if decided.Status != StatusRejected || decided.Reason == "" {
		t.Errorf("decided = %+v", decided)
	}
}

func TestDecisionIsTerminal(t *testing.T) {
	q := NewQueue(nil)
	report := q.Open("u1", "Matrix", "603")
	if _, err := q.Accept(report.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := q.Accept(report.ID); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("second accept: err = %v", err)
	}
	if _, err := q.Reject(report.ID, "raison"); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("reject after accept: err = %v", err)
	}
}

func TestNotificationFailureDoesNotBlockDecision(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("DMs closed")}
	q := NewQueue(notifier)
	report := q.Open("u1", "Matrix", "603")

	decided, err := q.Accept(report.ID)
	if err != nil {
		t.Fatalf("decision must not fail on notification error: %v", err)
	}
	if decided.Status != StatusAccepted {
		t.Errorf("status = %v", decided.Status)
	}
}

func TestUnknownReport(t *testing.T) {
	q := NewQueue(nil)
	if _, err := q.Accept("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := q.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPendingListsOnlyUndecided(t *testing.T) {
	q := NewQueue(nil)
	r1 := q.Open("u1", "A", "1")
	q.Open("u2", "B", "2")
	if _, err := q.Accept(r1.ID); err != nil {
		t.Fatal(err)
	}

	pending := q.Pending()
	if len(pending) != 1 || pending[0].Title != "B" {
		t.Errorf("pending = %+v", pending)
	}
}
