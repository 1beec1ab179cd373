package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`                           _ _           _   `, "#34d399"},
	{`  _ __ ___   ___   ___   __| | |__   ___ | |_ `, "#2dd4bf"},
	{` | '_ ' _ \ / _ \ / _ \ / _' | '_ \ / _ \| __|`, "#22d3ee"},
	{` | | | | | | (_) | (_) | (_| | |_) | (_) | |_ `, "#38bdf8"},
	{` |_| |_| |_|\___/ \___/ \__,_|_.__/ \___/ \__|`, "#60a5fa"},
}

// PrintBanner writes the moodbot banner and the session help to w.
func PrintBanner(w io.Writer, profile termenv.Profile, version string) {
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, profile.String(l.text).Foreground(profile.Color(l.color)))
	}

	sub := fmt.Sprintf(" Sentiment Analysis Chatbot v%s", strings.TrimSpace(version))
	fmt.Fprintln(w, profile.String(sub).Faint())
	fmt.Fprintln(w)
}

// Help is the markdown shown when an interactive chat starts.
const Help = `Type a message and press **Enter**.

- ` + "`trend`" + ` shows the mood of the recent conversation
- ` + "`quit`" + ` or ` + "`exit`" + ` ends the chat`
