package diag

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Level represents entry severity
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "info"
}

type (
	//Entry represents a single diagnostic
	Entry struct {
		Level Level
		Path  string
		Err   error
	}

	//Logs collects diagnostics produced by one serialize, deserialize or populate call
	Logs struct {
		mu      sync.Mutex
		entries []Entry
	}
)

// Message returns entry message
func (e Entry) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e Entry) String() string {
	return "[" + e.Level.String() + "] " + e.Path + ": " + e.Message()
}

// NewLogs creates an empty log collection
func NewLogs() *Logs {
	return &Logs{}
}

// Add appends an entry
func (l *Logs) Add(level Level, path string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Path: path, Err: err})
}

func (l *Logs) Info(path string, err error) {
	l.Add(LevelInfo, path, err)
}

func (l *Logs) Warn(path string, err error) {
	l.Add(LevelWarn, path, err)
}

func (l *Logs) Error(path string, err error) {
	l.Add(LevelError, path, err)
}

// Entries returns a copy of all entries
func (l *Logs) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Len returns entry count
func (l *Logs) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Errors returns error level entries
func (l *Logs) Errors() []Entry {
	return l.filter(func(e Entry) bool { return e.Level == LevelError })
}

// Warnings returns warn level entries
func (l *Logs) Warnings() []Entry {
	return l.filter(func(e Entry) bool { return e.Level == LevelWarn })
}

// HasErrors returns true if any error level entry was logged
func (l *Logs) HasErrors() bool {
	return len(l.Errors()) > 0
}

// Contains returns true if any entry matches target with errors.Is
func (l *Logs) Contains(target error) bool {
	return len(l.filter(func(e Entry) bool { return errors.Is(e.Err, target) })) > 0
}

// At returns entries logged for path
func (l *Logs) At(path string) []Entry {
	return l.filter(func(e Entry) bool { return e.Path == path })
}

func (l *Logs) String() string {
	entries := l.Entries()
	return strings.Join(lo.Map(entries, func(e Entry, _ int) string { return e.String() }), "\n")
}

func (l *Logs) filter(fn func(e Entry) bool) []Entry {
	return lo.Filter(l.Entries(), func(e Entry, _ int) bool { return fn(e) })
}
