package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchRequested EventType = "SearchRequested"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventItemSelected    EventType = "ItemSelected"
	EventCatalogLoaded   EventType = "CatalogLoaded"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchRequestedEvent asks the search service to run a query.
// Seq increases with every request so late answers can be told apart.
type SearchRequestedEvent struct {
	Seq   uint64
	Query string
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// SearchCompletedEvent carries the candidates for a query
type SearchCompletedEvent struct {
	Seq     uint64
	Query   string
	Entries []Entry
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a source returns an error
type SearchFailedEvent struct {
	Seq   uint64
	Query string
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ItemSelectedEvent is emitted when the user commits a candidate
type ItemSelectedEvent struct {
	Entry Entry
}

func (e ItemSelectedEvent) Type() EventType { return EventItemSelected }

// CatalogLoadedEvent is emitted once a source has built its catalog
type CatalogLoadedEvent struct {
	Source string
	Count  int
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
