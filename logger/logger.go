// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var isJournal = isStderrConnectedToJournal()

var appAttr = slog.String("app", "lldpdiscover")

// Logger is a leveled wrapper around slog used by every package of the module.
// The zero value and a nil *Logger are usable and write through the default logger.
type Logger struct {
	muted atomic.Bool
	sl    *slog.Logger
}

func New() *Logger {
	return &Logger{sl: slog.New(withCallDepth(4, newTextHandler(os.Stderr))).With(appAttr)}
}

// NewWriter returns a text logger that writes to w. Mostly useful in tests.
func NewWriter(w io.Writer) *Logger {
	return &Logger{sl: slog.New(withCallDepth(4, newTextHandler(w)))}
}

func (l *Logger) Error(a ...any)                   { l.log(slog.LevelError, fmt.Sprint(a...)) }
func (l *Logger) Warning(a ...any)                 { l.log(slog.LevelWarn, fmt.Sprint(a...)) }
func (l *Logger) Notice(a ...any)                  { l.log(levelNotice, fmt.Sprint(a...)) }
func (l *Logger) Info(a ...any)                    { l.log(slog.LevelInfo, fmt.Sprint(a...)) }
func (l *Logger) Debug(a ...any)                   { l.log(slog.LevelDebug, fmt.Sprint(a...)) }
func (l *Logger) Errorf(format string, a ...any)   { l.log(slog.LevelError, fmt.Sprintf(format, a...)) }
func (l *Logger) Warningf(format string, a ...any) { l.log(slog.LevelWarn, fmt.Sprintf(format, a...)) }
func (l *Logger) Noticef(format string, a ...any)  { l.log(levelNotice, fmt.Sprintf(format, a...)) }
func (l *Logger) Infof(format string, a ...any)    { l.log(slog.LevelInfo, fmt.Sprintf(format, a...)) }
func (l *Logger) Debugf(format string, a ...any)   { l.log(slog.LevelDebug, fmt.Sprintf(format, a...)) }

// With returns a child logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	if l.isNil() {
		return &Logger{sl: defaultLogger.sl.With(args...)}
	}

	ll := &Logger{sl: l.sl.With(args...)}
	ll.muted.Store(l.muted.Load())

	return ll
}

func (l *Logger) Mute()   { l.mute(true) }
func (l *Logger) Unmute() { l.mute(false) }

func (l *Logger) mute(v bool) {
	if l.isNil() {
		return
	}
	l.muted.Store(v)
}

func (l *Logger) log(level slog.Level, msg string) {
	if l.isNil() {
		defaultLogger.sl.Log(context.Background(), level, msg)
		return
	}

	if !l.muted.Load() {
		l.sl.Log(context.Background(), level, msg)
	}
}

func (l *Logger) isNil() bool { return l == nil || l.sl == nil }
