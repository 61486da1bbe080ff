package domain

// Landing names a destination page of the host application.
type Landing string

const (
	LandingEntry      Landing = "index"
	LandingAdmin      Landing = "admin"
	LandingMain       Landing = "user"
	LandingOnboarding Landing = "health"
	// LandingAssistant is the full-page variant of the chat widget.
	LandingAssistant Landing = "health-assistant"
)
