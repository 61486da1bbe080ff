package domain

import (
	"strings"
	"time"
)

// Author identifies who wrote a transcript message.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Severity classifies an insight chip.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityCaution  Severity = "caution"
	SeverityCritical Severity = "critical"
)

// ParseSeverity normalises a wire color or severity name.
// Anything unrecognised is critical.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "green", string(SeverityPositive):
		return SeverityPositive
	case "orange", string(SeverityCaution):
		return SeverityCaution
	default:
		return SeverityCritical
	}
}

// Chip is a single labelled fact inside an explanation card.
type Chip struct {
	Icon     string
	Label    string
	Value    string
	Severity Severity
}

// ExplanationCard groups insight chips under a title.
type ExplanationCard struct {
	Title string
	Chips []Chip
}

// ReplyPayload is the structured answer of the assistant endpoint.
type ReplyPayload struct {
	Text        string
	Card        *ExplanationCard
	Suggestions []string
}

// ChatMessage is one transcript entry. Messages are never modified once
// appended.
type ChatMessage struct {
	ID         string
	Author     Author
	Body       string
	Structured *ReplyPayload
	At         time.Time
}
