package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`              _                        _        `, "#818cf8"},
	{`   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ `, "#a78bfa"},
	{`  / _' | | | | __/ _ \| '_ ' _ \ / _' | __/ _' |`, "#c084fc"},
	{` | (_| | |_| | || (_) | | | | | | (_| | || (_| |`, "#e879f9"},
	{`  \__,_|\__,_|\__\___/|_| |_| |_|\__,_|\__\__,_|`, "#f472b6"},
}

// PrintBanner outputs the ASCII art banner to stdout.
func PrintBanner() {
	Banner(os.Stdout, termenv.ColorProfile())
}

// Banner writes the banner to w using the given color profile.
func Banner(w io.Writer, p termenv.Profile) {
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
