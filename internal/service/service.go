/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package service

/*****************************************************************************************************************/

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/JMMC-OpenDev/vobscore/pkg/catalog"
	"github.com/JMMC-OpenDev/vobscore/pkg/filter"
	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/scenario"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
	"github.com/JMMC-OpenDev/vobscore/pkg/vobserr"
)

/*****************************************************************************************************************/

// Service is the process-wide Core API front end (spec §6.4). It owns the
// read-only property registry, the registered Scenarios, and the resources
// shared across concurrently executing requests (spec §5): a weight-1
// semaphore modeling the "XML/DOM library critical section... guarded by a
// process-wide mutex" around any CatalogClient that declares it needs
// serialized parsing.
type Service struct {
	wk *registry.WellKnown

	mu        sync.RWMutex
	scenarios map[string]*scenario.Scenario
	known     map[star.Origin]catalog.Meta

	client   catalog.CatalogClient
	parseSem *semaphore.Weighted

	ulidMu      sync.Mutex
	ulidEntropy *ulid.MonotonicEntropy
}

/*****************************************************************************************************************/

// New returns a Service dispatching every RunScenario fetch through client.
func New(wk *registry.WellKnown, client catalog.CatalogClient, known map[star.Origin]catalog.Meta) *Service {
	return &Service{
		wk:          wk,
		scenarios:   make(map[string]*scenario.Scenario),
		known:       known,
		client:      client,
		parseSem:    semaphore.NewWeighted(1),
		ulidEntropy: ulid.Monotonic(rand.Reader, 0),
	}
}

/*****************************************************************************************************************/

// Register adds a named Scenario to the Service's catalog of runnable
// scenarios (scenario_id in spec §6.4's RunScenario signature).
func (svc *Service) Register(name string, s *scenario.Scenario) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.scenarios[name] = s
}

/*****************************************************************************************************************/

// newRunID mints a ULID run identifier. ulid.Monotonic is not safe for
// concurrent use, so every call is serialized behind ulidMu.
func (svc *Service) newRunID() string {
	svc.ulidMu.Lock()
	defer svc.ulidMu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), svc.ulidEntropy)

	return id.String()
}

/*****************************************************************************************************************/

// NeedsSerializedParsing is implemented by a CatalogClient whose response
// parser is not safe to run concurrently with itself (spec §5's shared
// "XML/DOM library" parser).
type NeedsSerializedParsing interface {
	NeedsSerializedParsing() bool
}

/*****************************************************************************************************************/

// serializingClient wraps a CatalogClient, acquiring Service.parseSem around
// Fetch when the wrapped client reports NeedsSerializedParsing.
type serializingClient struct {
	inner catalog.CatalogClient
	sem   *semaphore.Weighted
}

/*****************************************************************************************************************/

func (c serializingClient) Fetch(ctx context.Context, catalogID star.Origin, query catalog.Query) (*star.List, error) {
	needsSerial := false

	if ns, ok := c.inner.(NeedsSerializedParsing); ok {
		needsSerial = ns.NeedsSerializedParsing()
	}

	if !needsSerial {
		return c.inner.Fetch(ctx, catalogID, query)
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("service: acquire parse critical section: %w", err)
	}
	defer c.sem.Release(1)

	return c.inner.Fetch(ctx, catalogID, query)
}

/*****************************************************************************************************************/

func applyRequest(s *scenario.Scenario, req Request) *scenario.Scenario {
	entries := append([]scenario.Entry(nil), s.Entries...)

	if len(entries) > 0 {
		e := entries[0]
		e.QueryOptions.CenterRA = req.RA
		e.QueryOptions.CenterDec = req.Dec
		e.QueryOptions.Geometry = req.Geometry
		e.QueryOptions.Band = req.Band
		e.QueryOptions.MagMin = req.MagMin
		e.QueryOptions.MagMax = req.MagMax
		entries[0] = e
	}

	if req.IncludeFiltered {
		for i := range entries {
			entries[i].PostFilter = nil
		}
	}

	return &scenario.Scenario{Name: s.Name, Entries: entries}
}

/*****************************************************************************************************************/

// RunResult is RunScenario's successful outcome: the run's assigned
// identifier alongside its resulting StarList and a summary of the V
// magnitude distribution across the returned calibrators, handy for a
// caller deciding whether the run found a usable spread of candidates.
type RunResult struct {
	RunID string
	Stars *star.List

	MagVMean   float64
	MagVStdDev float64
	MagVCount  int
}

/*****************************************************************************************************************/

// RunScenario executes scenarioId against req, reporting progress to sink
// and optionally persisting/reloading per-step snapshots (spec §6.4). ctx
// doubles as the spec's cooperative cancel_flag: cancellation is observed
// between scenario entries (spec §5).
func (svc *Service) RunScenario(
	ctx context.Context, scenarioID string, req Request, sink scenario.StatusSink, snapshot scenario.Snapshot,
) (*RunResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	svc.mu.RLock()
	s, ok := svc.scenarios[scenarioID]
	svc.mu.RUnlock()

	if !ok {
		return nil, newError(vobserr.ErrInvalidRequest, "unknown scenario_id %q", scenarioID)
	}

	for _, e := range s.Entries {
		if svc.known != nil {
			if _, known := svc.known[e.CatalogID]; !known {
				return nil, newError(vobserr.ErrUnknownCatalog, "scenario %q references unregistered catalog_id %d", scenarioID, e.CatalogID)
			}
		}
	}

	runID := svc.newRunID()

	client := serializingClient{inner: svc.client, sem: svc.parseSem}

	out := star.NewList(fmt.Sprintf("%s-%s", scenarioID, runID))

	if err := scenario.Execute(ctx, applyRequest(s, req), client, sink, snapshot, out); err != nil {
		if ctx.Err() != nil {
			return nil, &Error{Kind: vobserr.ErrCancelled, Err: ctx.Err()}
		}

		return nil, &Error{Kind: vobserr.ErrFetchFailure, Err: err}
	}

	magMean, magStdDev, magCount := filter.MagnitudeStats(out, svc.wk.MagV)

	return &RunResult{RunID: runID, Stars: out, MagVMean: magMean, MagVStdDev: magStdDev, MagVCount: magCount}, nil
}

/*****************************************************************************************************************/

// BatchCall is one request within a RunBatch call.
type BatchCall struct {
	ScenarioID string
	Request    Request
	Sink       scenario.StatusSink
	Snapshot   scenario.Snapshot
}

/*****************************************************************************************************************/

// BatchResult pairs a BatchCall's index with its outcome.
type BatchResult struct {
	Index  int
	Result *RunResult
	Err    error
}

/*****************************************************************************************************************/

// RunBatch runs every call concurrently (spec §5: "multiple concurrent
// requests may execute in parallel threads, each with its own scenario
// instance and working StarList"), capping in-flight fetches via an
// errgroup with a bounded number of goroutines. A single call's failure
// does not cancel its siblings.
func (svc *Service) RunBatch(ctx context.Context, calls []BatchCall, maxConcurrency int) []BatchResult {
	results := make([]BatchResult, len(calls))

	g, gctx := errgroup.WithContext(ctx)

	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}

	for i, call := range calls {
		i, call := i, call

		g.Go(func() error {
			res, err := svc.RunScenario(gctx, call.ScenarioID, call.Request, call.Sink, call.Snapshot)
			results[i] = BatchResult{Index: i, Result: res, Err: err}

			return nil
		})
	}

	_ = g.Wait()

	select {
	case <-ctx.Done():
		for i := range results {
			if results[i].Err == nil && results[i].Result == nil {
				results[i] = BatchResult{Index: i, Err: &Error{Kind: vobserr.ErrCancelled, Err: ctx.Err()}}
			}
		}
	default:
	}

	return results
}
