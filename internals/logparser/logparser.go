// Package logparser parses the log4j console output of the game
package logparser

import (
	"fmt"
	"regexp"
	"time"

	"github.com/jwalton/gchalk"
)

const timeFormat = "15:04:05"

// matches `[13:46:33] [main/INFO] [FML]: message` and `[13:46:33] [Render thread/WARN]: message`
var lineRegex = regexp.MustCompile(`^\[(\d+:\d+:\d+)\] \[([^\]]+)/([A-Z]+)\](?: \[([^\]]+)\])?: (.*)$`)

// LogLine is a parsed log line
type LogLine struct {
	Time   time.Time
	Thread string
	Level  string
	// Tag is only set by some (older) loaders
	Tag     string
	Message string
	// Garbage lines could not be parsed and only contain the Message
	Garbage bool
}

func (l LogLine) String() string {
	if l.Garbage {
		return l.Message
	}
	if l.Tag == "" {
		return fmt.Sprintf("[%s] [%s/%s]: %s", l.Time.Format(timeFormat), l.Thread, l.Level, l.Message)
	}
	return fmt.Sprintf(
		"[%s] [%s/%s] [%s]: %s",
		l.Time.Format(timeFormat),
		l.Thread,
		l.Level,
		l.Tag,
		l.Message,
	)
}

// Pretty returns the line colored by level without the thread
func (l LogLine) Pretty() string {
	if l.Garbage {
		return gchalk.Gray(l.Message)
	}
	level := l.Level
	switch l.Level {
	case "WARN":
		level = gchalk.Yellow(level)
	case "ERROR", "FATAL":
		level = gchalk.WithRed().Bold(level)
	case "DEBUG", "TRACE":
		level = gchalk.Gray(level)
	default:
		level = gchalk.Cyan(level)
	}
	return fmt.Sprintf("%s %s %s", gchalk.Gray(l.Time.Format(timeFormat)), level, l.Message)
}

// ParseLine parses a string into a `LogLine`
func ParseLine(input string) *LogLine {
	found := lineRegex.FindStringSubmatch(input)
	if len(found) == 0 {
		return &LogLine{Garbage: true, Message: input}
	}
	parsedTime, err := time.Parse(timeFormat, found[1])
	if err != nil {
		return &LogLine{Garbage: true, Message: input}
	}

	return &LogLine{
		Time:    parsedTime,
		Thread:  found[2],
		Level:   found[3],
		Tag:     found[4],
		Message: found[5],
	}
}
