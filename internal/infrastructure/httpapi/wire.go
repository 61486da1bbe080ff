package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
)

// The chatbot reply is loosely typed: every field is optional, chip values
// may be numbers, and unknown fields appear freely. Decoding keeps what it
// can read and drops the rest; only a body that is not a JSON object fails.

type replyWire struct {
	Text            json.RawMessage `json:"text"`
	ExplanationCard json.RawMessage `json:"explanation_card"`
	Chips           json.RawMessage `json:"chips"`
}

type chipWire struct {
	Icon  json.RawMessage `json:"icon"`
	Label json.RawMessage `json:"label"`
	Value json.RawMessage `json:"value"`
	Color json.RawMessage `json:"color"`
}

func decodeReply(raw []byte) (*domain.ReplyPayload, error) {
	if !isObject(raw) {
		return nil, ErrMalformed
	}
	var w replyWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return &domain.ReplyPayload{
		Text:        scalarString(w.Text),
		Card:        decodeCard(w.ExplanationCard),
		Suggestions: decodeSuggestions(w.Chips),
	}, nil
}

func decodeCard(raw json.RawMessage) *domain.ExplanationCard {
	if !isObject(raw) {
		return nil
	}
	// raw was validated by the enclosing decode, so this cannot fail.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	card := &domain.ExplanationCard{Title: scalarString(fields["title"])}
	var chips []json.RawMessage
	if err := json.Unmarshal(fields["chips"], &chips); err != nil {
		// chips absent or not an array; keep the title.
		return card
	}
	for _, rc := range chips {
		if !isObject(rc) {
			continue
		}
		var cw chipWire
		if err := json.Unmarshal(rc, &cw); err != nil {
			continue
		}
		card.Chips = append(card.Chips, domain.Chip{
			Icon:     scalarString(cw.Icon),
			Label:    scalarString(cw.Label),
			Value:    scalarString(cw.Value),
			Severity: domain.ParseSeverity(scalarString(cw.Color)),
		})
	}
	return card
}

func decodeSuggestions(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(scalarString(it)); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// scalarString renders a JSON string, number or boolean as text.
// Null, objects and arrays become "".
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// serverMessage extracts the error text of a FastAPI-style body:
// {"detail": "..."}, {"detail": [{"msg": "..."}]} or {"message": "..."}.
func serverMessage(raw []byte, fallback string) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}
	if s := scalarString(body["detail"]); s != "" {
		return s
	}
	var details []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body["detail"], &details); err == nil && len(details) > 0 && details[0].Msg != "" {
		return details[0].Msg
	}
	if s := scalarString(body["message"]); s != "" {
		return s
	}
	return fallback
}
