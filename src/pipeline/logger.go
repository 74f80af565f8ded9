package pipeline

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel orders log lines by severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int32(l))
	}
	return levelTags[l]
}

// ParseLogLevel maps a config/flag value to a LogLevel. "warning" is accepted
// as an alias of "warn".
func ParseLogLevel(s string) (LogLevel, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return LevelWarn, true
	}
	for i, tag := range levelTags {
		if strings.ToLower(tag) == s {
			return LogLevel(i), true
		}
	}
	return LevelInfo, false
}

var (
	level atomic.Int32
	sink  atomic.Pointer[log.Logger]
)

func init() {
	level.Store(int32(LevelInfo))
	SetLogOutput(os.Stderr)
}

// SetLogLevel sets the minimum level written. Unknown names are ignored;
// Config.Validate reports them.
func SetLogLevel(s string) {
	if l, ok := ParseLogLevel(s); ok {
		level.Store(int32(l))
	}
}

// GetLogLevel returns the minimum level written.
func GetLogLevel() LogLevel { return LogLevel(level.Load()) }

// SetLogOutput redirects log lines to w.
func SetLogOutput(w io.Writer) {
	sink.Store(log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds))
}

// FileLog scopes log lines to one statistics file. The file name is written
// verbatim in front of every message.
type FileLog struct {
	name string
}

// ForFile returns the logger used while charting path.
func ForFile(path string) FileLog { return FileLog{name: filepath.Base(path)} }

func (f FileLog) emit(l LogLevel, format string, args []any) {
	if GetLogLevel() > l {
		return
	}
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(l.String())
	b.WriteString("] ")
	if f.name != "" {
		b.WriteString(f.name)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, format, args...)
	sink.Load().Print(b.String())
}

func (f FileLog) Debugf(format string, args ...any) { f.emit(LevelDebug, format, args) }
func (f FileLog) Infof(format string, args ...any)  { f.emit(LevelInfo, format, args) }
func (f FileLog) Warnf(format string, args ...any)  { f.emit(LevelWarn, format, args) }
func (f FileLog) Errorf(format string, args ...any) { f.emit(LevelError, format, args) }

// Elapsed logs how long a phase of this file took, at debug level.
// Use as: defer lg.Elapsed(time.Now(), "render").
func (f FileLog) Elapsed(start time.Time, phase string) {
	f.Debugf("%s took %s", phase, time.Since(start).Round(time.Microsecond))
}

// run-wide lines carry no file name
var runLog FileLog

func Debugf(format string, args ...any) { runLog.emit(LevelDebug, format, args) }
func Infof(format string, args ...any)  { runLog.emit(LevelInfo, format, args) }
func Warnf(format string, args ...any)  { runLog.emit(LevelWarn, format, args) }
func Errorf(format string, args ...any) { runLog.emit(LevelError, format, args) }
