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

package utils

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestGetErrorDetailLevel(t *testing.T) {
	tests := []struct {
		name          string
		envValue      string
		expectedLevel ErrorDetailLevel
	}{
		{"none detail level", "none", ErrorDetailNone},
		{"full detail level", "full", ErrorDetailFull},
		{"simple detail level (default)", "simple", ErrorDetailSimple},
		{"empty env defaults to simple", "", ErrorDetailSimple},
		{"invalid value defaults to simple", "invalid", ErrorDetailSimple},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("ERROR_DETAIL_LEVEL", tt.envValue)
			defer os.Unsetenv("ERROR_DETAIL_LEVEL")

			if got := getErrorDetailLevel(); got != tt.expectedLevel {
				t.Errorf("getErrorDetailLevel() = %v, want %v", got, tt.expectedLevel)
			}
		})
	}
}

func TestErrorWithLocation(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		detailLevel     string
		expectedParts   []string
		unexpectedParts []string
	}{
		{
			name:        "nil error returns nil",
			err:         nil,
			detailLevel: "simple",
		},
		{
			name:        "simple detail level reports the caller",
			err:         errors.New("test error"),
			detailLevel: "simple",
			// The location is the call site, i.e. this test file.
			expectedParts:   []string{"error_utils_test.go", "test error"},
			unexpectedParts: []string{"Stack Trace:", "Error Location:"},
		},
		{
			name:        "full detail level carries a stack trace",
			err:         errors.New("test error"),
			detailLevel: "full",
			expectedParts: []string{
				"Error Location:",
				"Full Path:",
				"File: error_utils_test.go",
				"Line:",
				"Function:",
				"Error Details:",
				"test error",
				"Stack Trace:",
			},
		},
		{
			name:            "none detail level still returns the short form",
			err:             errors.New("test error"),
			detailLevel:     "none",
			expectedParts:   []string{"error_utils_test.go", "test error"},
			unexpectedParts: []string{"Stack Trace:", "Error Location:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("ERROR_DETAIL_LEVEL", tt.detailLevel)
			defer os.Unsetenv("ERROR_DETAIL_LEVEL")

			got := ErrorWithLocation(tt.err)

			if tt.err == nil {
				if got != nil {
					t.Errorf("ErrorWithLocation() = %v, want nil", got)
				}
				return
			}
			gotStr := got.Error()

			for _, expected := range tt.expectedParts {
				if !strings.Contains(gotStr, expected) {
					t.Errorf("ErrorWithLocation() output missing %q in:\n%s", expected, gotStr)
				}
			}
			for _, unexpected := range tt.unexpectedParts {
				if strings.Contains(gotStr, unexpected) {
					t.Errorf("ErrorWithLocation() output contains unexpected %q in:\n%s", unexpected, gotStr)
				}
			}
		})
	}
}

func TestPrintErrorAndReturn(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		detailLevel string
		shouldPrint bool
	}{
		{"nil error returns nil", nil, "simple", false},
		{"prints with simple detail level", errors.New("test error"), "simple", true},
		{"prints with full detail level", errors.New("test error"), "full", true},
		{"suppresses print with none detail level", errors.New("test error"), "none", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("ERROR_DETAIL_LEVEL", tt.detailLevel)
			defer os.Unsetenv("ERROR_DETAIL_LEVEL")

			oldStderr := os.Stderr
			r, w, _ := os.Pipe()
			os.Stderr = w

			got := PrintErrorAndReturn(tt.err)

			w.Close()
			os.Stderr = oldStderr
			output, readErr := io.ReadAll(r)
			if readErr != nil {
				t.Fatalf("failed to read captured output: %v", readErr)
			}

			if tt.err == nil {
				if got != nil {
					t.Errorf("PrintErrorAndReturn() = %v, want nil", got)
				}
				return
			}
			if got == nil || !strings.Contains(got.Error(), "test error") {
				t.Errorf("PrintErrorAndReturn() = %v", got)
			}
			if printed := len(output) > 0; printed != tt.shouldPrint {
				t.Errorf("printed = %v, want %v (output %q)", printed, tt.shouldPrint, output)
			}
		})
	}
}
