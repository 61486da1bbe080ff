package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/metrics"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/render"
)

// BusyReply is appended whenever a query cannot produce a reply.
const BusyReply = "Server busy. Try again later."

var errNoSession = errors.New("no session")

// Exchange sends user messages to the assistant and appends replies to a
// Transcript. It never returns errors to the caller.
type Exchange struct {
	chat       ports.ChatBackend
	sessions   ports.SessionStore
	transcript *Transcript
	log        zerolog.Logger
}

func NewExchange(chat ports.ChatBackend, sessions ports.SessionStore, transcript *Transcript, log zerolog.Logger) *Exchange {
	return &Exchange{chat: chat, sessions: sessions, transcript: transcript, log: log}
}

func (e *Exchange) Transcript() *Transcript { return e.transcript }

// Greet appends an assistant message that answers no query.
func (e *Exchange) Greet(text string) Entry {
	return e.transcript.append(domain.AuthorAssistant, text, nil, render.Render(domain.ReplyPayload{Text: text}))
}

// Pending is a sent user message awaiting its reply.
type Pending struct {
	User Entry

	ex   *Exchange
	text string
}

// Begin appends the user message. Blank text is ignored and reported as
// false.
func (e *Exchange) Begin(text string) (*Pending, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	user := e.transcript.append(domain.AuthorUser, text, nil, []render.Fragment{{Kind: render.KindText, Text: text}})
	return &Pending{User: user, ex: e, text: text}, true
}

// Complete performs the query and appends exactly one assistant entry.
// Cancellation of ctx does not abort the request.
func (p *Pending) Complete(ctx context.Context) Entry {
	ctx = context.WithoutCancel(ctx)
	e := p.ex
	start := time.Now()

	reply, err := e.query(ctx, p.text)
	if err != nil {
		e.log.Warn().Err(err).Str("message_id", p.User.Message.ID).Msg("chat query failed")
		metrics.ExchangeTotal.WithLabelValues("fallback").Inc()
		metrics.ExchangeDuration.WithLabelValues("fallback").Observe(time.Since(start).Seconds())
		return e.transcript.append(domain.AuthorAssistant, BusyReply, nil, render.Render(domain.ReplyPayload{Text: BusyReply}))
	}

	metrics.ExchangeTotal.WithLabelValues("ok").Inc()
	metrics.ExchangeDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	frags := render.Render(*reply)
	return e.transcript.append(domain.AuthorAssistant, frags[0].Text, reply, frags)
}

// Send is Begin followed by Complete on the calling goroutine. It returns
// the assistant entry, or nil when text is blank.
func (e *Exchange) Send(ctx context.Context, text string) *Entry {
	p, ok := e.Begin(text)
	if !ok {
		return nil
	}
	out := p.Complete(ctx)
	return &out
}

func (e *Exchange) query(ctx context.Context, text string) (*domain.ReplyPayload, error) {
	sess, ok := e.sessions.Load(ctx)
	if !ok {
		return nil, errNoSession
	}
	reply, err := e.chat.Query(ctx, sess.Token, text)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, errors.New("empty reply")
	}
	return reply, nil
}
