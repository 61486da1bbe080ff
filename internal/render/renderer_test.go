package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
)

func TestRender_TextFallback(t *testing.T) {
	for _, text := range []string{"", "   "} {
		frags := Render(domain.ReplyPayload{Text: text})
		if len(frags) != 1 || frags[0].Kind != KindText || frags[0].Text != FallbackText {
			t.Fatalf("Render(%q) = %+v", text, frags)
		}
	}
}

func TestRender_PlainText(t *testing.T) {
	frags := Render(domain.ReplyPayload{Text: "hello"})
	if len(frags) != 1 || frags[0].Text != "hello" {
		t.Fatalf("unexpected fragments: %+v", frags)
	}
}

func TestRender_ChipOrderAndStyles(t *testing.T) {
	p := domain.ReplyPayload{
		Text: "Here is why",
		Card: &domain.ExplanationCard{
			Title: "Why this recommendation?",
			Chips: []domain.Chip{
				{Icon: "shield", Label: "A", Value: "1", Severity: domain.SeverityPositive},
				{Icon: "alert-triangle", Label: "B", Value: "2", Severity: domain.SeverityCaution},
				{Icon: "x", Label: "C", Value: "3", Severity: domain.SeverityCritical},
			},
		},
	}
	frags := Render(p)
	if len(frags) != 5 {
		t.Fatalf("expected 5 fragments, got %d", len(frags))
	}
	if frags[1].Kind != KindCardTitle || frags[1].Text != "Why this recommendation?" {
		t.Fatalf("unexpected title fragment: %+v", frags[1])
	}

	wantLabels := []string{"A", "B", "C"}
	wantColors := []string{"green", "orange", "red"}
	for i, f := range frags[2:] {
		if f.Kind != KindInsight {
			t.Fatalf("fragment %d is %s", i+2, f.Kind)
		}
		if f.Insight.Label != wantLabels[i] || f.Insight.Style.Color != wantColors[i] {
			t.Fatalf("insight %d = %+v, want %s/%s", i, f.Insight, wantLabels[i], wantColors[i])
		}
	}
}

func TestRender_UnknownSeverityUsesCriticalStyle(t *testing.T) {
	p := domain.ReplyPayload{
		Text: "x",
		Card: &domain.ExplanationCard{Chips: []domain.Chip{{Label: "Fiber", Severity: domain.Severity("blue")}}},
	}
	frags := Render(p)
	got := frags[2].Insight.Style
	if got != StyleFor(domain.SeverityCritical) || got.Color != "red" {
		t.Fatalf("unknown severity styled %+v", got)
	}
}

func TestRender_DuplicateChipsAreKept(t *testing.T) {
	chip := domain.Chip{Label: "Same", Severity: domain.SeverityPositive}
	frags := Render(domain.ReplyPayload{Card: &domain.ExplanationCard{Chips: []domain.Chip{chip, chip}}})
	if len(frags) != 4 {
		t.Fatalf("expected duplicates to be preserved, got %d fragments", len(frags))
	}
}

func TestRender_Suggestions(t *testing.T) {
	frags := Render(domain.ReplyPayload{Text: "t", Suggestions: []string{"Suggest Lunch", "My Analytics"}})
	if got := Suggestions(frags); !reflect.DeepEqual(got, []string{"Suggest Lunch", "My Analytics"}) {
		t.Fatalf("unexpected suggestions: %v", got)
	}
	for _, f := range frags[1:] {
		if !f.Activatable() {
			t.Fatalf("suggestion fragment must be activatable: %+v", f)
		}
	}
	if frags[0].Activatable() {
		t.Fatalf("text fragment must not be activatable")
	}
}

func TestRender_EmptySuggestionsProduceNothing(t *testing.T) {
	frags := Render(domain.ReplyPayload{Text: "t", Suggestions: []string{}})
	if len(frags) != 1 {
		t.Fatalf("expected only the text fragment, got %+v", frags)
	}
}

func TestRender_Deterministic(t *testing.T) {
	p := domain.ReplyPayload{
		Text:        "t",
		Card:        &domain.ExplanationCard{Title: "c", Chips: []domain.Chip{{Label: "x", Severity: domain.SeverityCaution}}},
		Suggestions: []string{"a"},
	}
	if !reflect.DeepEqual(Render(p), Render(p)) {
		t.Fatalf("Render is not deterministic")
	}
}

func TestTerminal_Message(t *testing.T) {
	term := NewTerminal()
	msg := domain.ChatMessage{Author: domain.AuthorAssistant, Body: "Try it"}
	frags := Render(domain.ReplyPayload{
		Text:        "Try it",
		Card:        &domain.ExplanationCard{Title: "Macro Comparison", Chips: []domain.Chip{{Icon: "activity", Label: "Impact", Value: "Stable Glucose"}}},
		Suggestions: []string{"Order Now"},
	})

	out := term.Message(msg, frags)
	for _, want := range []string{"Try it", "Macro Comparison", "Impact", "Stable Glucose", "1 Order Now"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}

	user := term.Message(domain.ChatMessage{Author: domain.AuthorUser, Body: "hi"}, nil)
	if !strings.Contains(user, "hi") {
		t.Fatalf("user output %q missing body", user)
	}
}
