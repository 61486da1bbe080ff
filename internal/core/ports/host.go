package ports

import "github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"

// Navigator performs a page change decided by a service.
type Navigator interface {
	Navigate(to domain.Landing)
}

// ErrorSlot is an inline error area owned by a form.
type ErrorSlot interface {
	Show(msg string)
	Clear()
}

// Alerter is the blocking fallback used when no ErrorSlot is supplied.
type Alerter interface {
	Alert(msg string)
}
