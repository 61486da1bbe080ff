// Package render turns assistant replies into display fragments.
package render

import (
	"strings"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
)

// FallbackText replaces a missing or blank reply text.
const FallbackText = "I'm having a bit of trouble. Could you ask that again?"

// Kind identifies a fragment type.
type Kind string

const (
	KindText       Kind = "text"
	KindCardTitle  Kind = "card_title"
	KindInsight    Kind = "insight"
	KindSuggestion Kind = "suggestion"
)

// Style is the color pairing of an insight item.
type Style struct {
	Color      string // class name: green, orange or red
	Background string
	Foreground string
}

var (
	stylePositive = Style{Color: "green", Background: "#d1fae5", Foreground: "#059669"}
	styleCaution  = Style{Color: "orange", Background: "#ffedd5", Foreground: "#d97706"}
	styleCritical = Style{Color: "red", Background: "#fee2e2", Foreground: "#dc2626"}

	severityStyles = map[domain.Severity]Style{
		domain.SeverityPositive: stylePositive,
		domain.SeverityCaution:  styleCaution,
		domain.SeverityCritical: styleCritical,
	}
)

// StyleFor returns the pairing for sev. Unknown severities get the critical
// pairing.
func StyleFor(sev domain.Severity) Style {
	if s, ok := severityStyles[sev]; ok {
		return s
	}
	return styleCritical
}

// Insight is one rendered chip.
type Insight struct {
	Icon     string
	Label    string
	Value    string
	Severity domain.Severity
	Style    Style
}

// Fragment is one display unit of a reply. Text holds the body of text,
// card title and suggestion fragments; Insight is set for insight items.
type Fragment struct {
	Kind    Kind
	Text    string
	Insight *Insight
}

// Activatable reports whether the fragment sends a message when chosen.
func (f Fragment) Activatable() bool { return f.Kind == KindSuggestion }

// Render is pure and deterministic: text first, then the card title and its
// chips in payload order, then suggestions.
func Render(p domain.ReplyPayload) []Fragment {
	text := p.Text
	if strings.TrimSpace(text) == "" {
		text = FallbackText
	}
	out := []Fragment{{Kind: KindText, Text: text}}

	if p.Card != nil {
		out = append(out, Fragment{Kind: KindCardTitle, Text: p.Card.Title})
		for _, c := range p.Card.Chips {
			out = append(out, Fragment{
				Kind: KindInsight,
				Insight: &Insight{
					Icon:     c.Icon,
					Label:    c.Label,
					Value:    c.Value,
					Severity: c.Severity,
					Style:    StyleFor(c.Severity),
				},
			})
		}
	}

	for _, s := range p.Suggestions {
		out = append(out, Fragment{Kind: KindSuggestion, Text: s})
	}
	return out
}

// Suggestions lists the activatable fragments' texts in order.
func Suggestions(frags []Fragment) []string {
	var out []string
	for _, f := range frags {
		if f.Activatable() {
			out = append(out, f.Text)
		}
	}
	return out
}
