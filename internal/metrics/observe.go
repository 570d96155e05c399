package metrics

import (
	"shelf/internal/eventbus"
)

// Observe counts browse activity published on bus. The returned function
// unsubscribes.
func Observe(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventQueryChanged, func(eventbus.DomainEvent) {
			SearchesCommitted.Inc()
		}),
		bus.Subscribe(eventbus.EventPageLoaded, func(eventbus.DomainEvent) {
			PagesLoaded.Inc()
		}),
		bus.Subscribe(eventbus.EventFetchFailed, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.FetchFailedEvent); ok {
				FetchFailures.WithLabelValues(event.Kind).Inc()
			}
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
