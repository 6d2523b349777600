package oidc

import (
	"context"
	"fmt"
	"sync"

	"github.com/mydatashare/mdscore/pkg/async"
)

// State is the lifecycle of a discovery document fetch.
type State int

const (
	StateNotStarted State = iota
	StatePending
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Discovery holds the discovery document of one identity provider. All
// AuthItems of a provider share the same *Discovery, so a started fetch is
// observed by every one of them instead of being repeated.
//
// A failed fetch is not an error for waiters: Await reports the document as
// absent and Resolve falls back to a fresh fetch.
type Discovery struct {
	url        string
	discoverer Discoverer

	mu     sync.Mutex
	future *async.Future[*Document]
	doc    *Document
	err    error
}

// NewDiscovery returns a Discovery in StateNotStarted.
func NewDiscovery(discoveryURL string, d Discoverer) *Discovery {
	return &Discovery{url: discoveryURL, discoverer: d}
}

// URL returns the discovery document URL.
func (d *Discovery) URL() string {
	return d.url
}

// Start begins the background fetch unless one was already started or a
// document is already known. The fetch keeps ctx's values but not its
// cancellation: once started it runs to completion or failure, bounded by
// the discoverer's transport timeout.
func (d *Discovery) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.future != nil || d.doc != nil || d.discoverer == nil {
		return
	}
	d.future = async.Async(context.WithoutCancel(ctx), d.url, d.discoverer.Discover)
}

// State reports the current state without blocking.
func (d *Discovery) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.doc != nil:
		return StateReady
	case d.future == nil:
		if d.err != nil {
			return StateFailed
		}
		return StateNotStarted
	case !d.future.IsComplete():
		return StatePending
	}

	if doc, err := d.future.Await(); err == nil && doc != nil {
		return StateReady
	}
	return StateFailed
}

// Ready returns the document when it is available without waiting.
func (d *Discovery) Ready() (*Document, bool) {
	if d.State() != StateReady {
		return nil, false
	}
	return d.Await(context.Background())
}

// Await waits for a started fetch and returns its document. It reports false
// when no fetch was started, the fetch failed, or ctx ended first.
func (d *Discovery) Await(ctx context.Context) (*Document, bool) {
	d.mu.Lock()
	doc, future := d.doc, d.future
	d.mu.Unlock()

	if doc != nil {
		return doc, true
	}
	if future == nil {
		return nil, false
	}

	doc, err := future.AwaitContext(ctx)
	if err != nil || doc == nil {
		if ctx.Err() == nil {
			d.recordFailure(err)
		}
		return nil, false
	}
	return doc, true
}

// Resolve returns the document, awaiting a started fetch first and falling
// back to a fresh synchronous fetch when none succeeded. A successful fresh
// fetch makes the Discovery ready.
func (d *Discovery) Resolve(ctx context.Context) (*Document, error) {
	if doc, ok := d.Await(ctx); ok {
		return doc, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.discoverer == nil {
		return nil, ErrNoDiscoverer
	}
	if d.url == "" {
		return nil, ErrNoDiscoveryURL
	}

	doc, err := d.discoverer.Discover(ctx, d.url)
	if err != nil {
		d.recordFailure(err)
		return nil, err
	}
	if doc == nil {
		return nil, ErrDiscoveryFailed
	}
	d.Set(doc)
	return doc, nil
}

// Set installs a document directly, making the Discovery ready.
func (d *Discovery) Set(doc *Document) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.doc = doc
	d.err = nil
}

// Err returns the error of the last failed fetch, if any.
func (d *Discovery) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.err
}

func (d *Discovery) recordFailure(err error) {
	if err == nil {
		err = ErrDiscoveryFailed
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.err = err
}
