// SPDX-License-Identifier: GPL-3.0-or-later

//go:build linux

package logger

import (
	"os"

	"github.com/coreos/go-systemd/v22/journal"
)

// isStderrConnectedToJournal reports whether stderr is a systemd journal stream.
// The journal stamps records itself, so text output then drops the time attribute.
func isStderrConnectedToJournal() bool {
	if os.Getenv("JOURNAL_STREAM") == "" {
		return false
	}
	ok, err := journal.StderrIsJournalStream()
	return ok && err == nil
}
