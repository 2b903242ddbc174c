package itemtest

import (
	"catalog/pkg/events"
	"context"
	"sync"
)

// RecordingPublisher keeps every published event in memory.
type RecordingPublisher struct {
	mu        sync.Mutex
	Events    []*events.Event
	Err       error
	Unhealthy bool
}

func (p *RecordingPublisher) Publish(_ context.Context, _ string, event *events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}

func (p *RecordingPublisher) Close() error {
	return nil
}

func (p *RecordingPublisher) IsHealthy() bool {
	return !p.Unhealthy
}

func (p *RecordingPublisher) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, 0, len(p.Events))
	for _, event := range p.Events {
		names = append(names, event.Event)
	}
	return names
}
