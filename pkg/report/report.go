// Package report turns a station's tide forecast into notification text.
package report

import (
	"fmt"
	"strings"

	"github.com/spencer-p/tidenotify/pkg/sunset"
	"github.com/spencer-p/tidenotify/pkg/tides"
)

// Report is everything that goes into one notification.
type Report struct {
	Info tides.Info
	// SunEvents is optional; each event adds a line to the body.
	SunEvents sunset.SunEvents
}

// Message is a formatted notification.
type Message struct {
	Title string
	Body  string
}

// Format renders r. It is pure: equal reports give identical messages.
func Format(r Report) Message {
	info := r.Info

	var b strings.Builder
	fmt.Fprintf(&b, "🌊 %s Tide Update:\n", info.Station)
	fmt.Fprintf(&b, "Predicted: %s\n", info.Predicted)
	fmt.Fprintf(&b, "High Tide: %s (%s)\n", info.NextHighTime, info.HighHeight)
	fmt.Fprintf(&b, "Low Tide: %s (%s)\n", info.NextLowTime, info.LowHeight)
	for _, e := range r.SunEvents {
		fmt.Fprintf(&b, "%s\n", e.String())
	}

	return Message{
		Title: fmt.Sprintf("Tide Times - %s", info.Station),
		Body:  b.String(),
	}
}
