package commands

import (
	"os"
	"runtime"
)

// EmojiEnabled can be set to false to never print emojis (`--ci` does that)
var EmojiEnabled = true

var emojiSupport = detectEmojiSupport(runtime.GOOS, os.Getenv)

// detectEmojiSupport guesses if the terminal renders emojis.
// Only the legacy windows console (cmd or powershell outside of the
// windows terminal) sets SESSIONNAME without WT_SESSION.
func detectEmojiSupport(goos string, getenv func(string) string) bool {
	if goos != "windows" {
		return true
	}
	if getenv("WT_SESSION") != "" {
		return true
	}
	return getenv("SESSIONNAME") == ""
}

// Emoji returns the given string (usually a emoji) if the current terminal
// (probably) supports it
func Emoji(e string) string {
	if emojiSupport && EmojiEnabled {
		return e
	}
	return ""
}
