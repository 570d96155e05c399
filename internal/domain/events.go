package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryChanged EventType = "QueryChanged"
	EventFetchStarted EventType = "FetchStarted"
	EventPageLoaded   EventType = "PageLoaded"
	EventFetchFailed  EventType = "FetchFailed"
	EventConfigLoaded EventType = "ConfigLoaded"
	EventConfigSaved  EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryChangedEvent is emitted when a debounced search query is committed
type QueryChangedEvent struct {
	Query string
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// FetchStartedEvent is emitted when a product page request is issued
type FetchStartedEvent struct {
	Generation uint64
	Query      string
	Page       int
	Offset     int
	Limit      int
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// PageLoadedEvent is emitted when a page of products has been appended
type PageLoadedEvent struct {
	Query      string
	Page       int
	TotalPages int
	Items      int
	Total      int
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// FetchFailedEvent is emitted when a request is rejected, including empty results
type FetchFailedEvent struct {
	Query string
	Page  int
	Kind  string
	Err   error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
