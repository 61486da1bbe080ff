package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
)

// Terminal paints fragments for a text console.
type Terminal struct {
	user       lipgloss.Style
	assistant  lipgloss.Style
	cardTitle  lipgloss.Style
	suggestion lipgloss.Style
	muted      lipgloss.Style
	failure    lipgloss.Style
}

func NewTerminal() *Terminal {
	return &Terminal{
		user:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6366f1")).Bold(true),
		assistant:  lipgloss.NewStyle().Foreground(lipgloss.Color("#0f766e")).Bold(true),
		cardTitle:  lipgloss.NewStyle().Bold(true).Underline(true),
		suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("#6366f1")).Background(lipgloss.Color("#eef2ff")).Padding(0, 1),
		muted:      lipgloss.NewStyle().Faint(true),
		failure:    lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true),
	}
}

// Message paints one transcript message. Assistant messages with fragments
// are painted fragment by fragment; suggestions are numbered from 1.
func (t *Terminal) Message(msg domain.ChatMessage, frags []Fragment) string {
	if msg.Author == domain.AuthorUser {
		return t.user.Render("you") + "  " + msg.Body
	}

	var b strings.Builder
	b.WriteString(t.assistant.Render("assistant"))
	if len(frags) == 0 {
		b.WriteString("  " + msg.Body)
		return b.String()
	}

	n := 0
	var chips []string
	for _, f := range frags {
		switch f.Kind {
		case KindText:
			b.WriteString("  " + f.Text)
		case KindCardTitle:
			b.WriteString("\n  " + t.cardTitle.Render(f.Text))
		case KindInsight:
			b.WriteString("\n    " + t.insight(f.Insight))
		case KindSuggestion:
			n++
			chips = append(chips, t.suggestion.Render(fmt.Sprintf("%d %s", n, f.Text)))
		}
	}
	if len(chips) > 0 {
		b.WriteString("\n  " + strings.Join(chips, " "))
	}
	return b.String()
}

func (t *Terminal) insight(in *Insight) string {
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(in.Style.Foreground)).
		Background(lipgloss.Color(in.Style.Background)).
		Padding(0, 1).
		Render(in.Icon)
	return badge + " " + lipgloss.NewStyle().Bold(true).Render(in.Label) + " " + t.muted.Render(in.Value)
}

// Notice paints a host message such as a state change.
func (t *Terminal) Notice(s string) string {
	return t.muted.Render(s)
}

// Error paints a user-facing failure message.
func (t *Terminal) Error(s string) string {
	return t.failure.Render(s)
}
