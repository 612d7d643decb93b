/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package scenario implements the ordered catalog-query engine (spec §4.6),
// grounded on original_source/SearchCal/vobs/include/vobsSCENARIO.h and the
// concrete sclsvrSCENARIO_BRIGHT_V.cpp / sclsvrSCENARIO_JSDC.cpp entry
// orderings.
package scenario

/*****************************************************************************************************************/

import (
	"context"
	"fmt"

	"github.com/JMMC-OpenDev/vobscore/pkg/catalog"
	"github.com/JMMC-OpenDev/vobscore/pkg/criteria"
	"github.com/JMMC-OpenDev/vobscore/pkg/filter"
	"github.com/JMMC-OpenDev/vobscore/pkg/merge"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// MergeAction is an Entry's disposition for the working list (spec §4.6).
type MergeAction int

/*****************************************************************************************************************/

const (
	ActionCopy MergeAction = iota
	ActionClearMerge
	ActionUpdateOnly
	ActionMerge
)

/*****************************************************************************************************************/

// Entry is one step of a Scenario (spec §4.6).
type Entry struct {
	CatalogID    star.Origin
	CatalogMeta  catalog.Meta
	QueryOptions catalog.Query
	MergeAction  MergeAction
	Criteria     criteria.List
	PostFilter   filter.Filter // optional
}

/*****************************************************************************************************************/

// Scenario is a named ordered list of Entries.
type Scenario struct {
	Name    string
	Entries []Entry
}

/*****************************************************************************************************************/

// New returns an empty, named Scenario.
func New(name string) *Scenario { return &Scenario{Name: name} }

/*****************************************************************************************************************/

// Add appends an Entry, builder-style (spec §9: "Scenario construction —
// builder-style declarative description; no reflection").
func (s *Scenario) Add(e Entry) *Scenario {
	s.Entries = append(s.Entries, e)

	return s
}

/*****************************************************************************************************************/

// Status is one progress report posted before an entry executes
// (spec §6.4: `status_sink.Post("i\tcatalog\tcurrent\ttotal")`).
type Status struct {
	Index     int
	Total     int
	CatalogID star.Origin
}

/*****************************************************************************************************************/

// StatusSink receives progress reports.
type StatusSink interface {
	Post(s Status)
}

/*****************************************************************************************************************/

// StatusSinkFunc adapts a function to StatusSink.
type StatusSinkFunc func(Status)

func (f StatusSinkFunc) Post(s Status) { f(s) }

/*****************************************************************************************************************/

// Snapshot persists and reloads intermediate per-step star lists
// (spec §6.5), keyed by <scenario>_<step>_<catalog>.
type Snapshot interface {
	Save(key string, list *star.List) error
	Load(key string) (*star.List, bool, error)
}

/*****************************************************************************************************************/

// StepKey formats the <scenario>_<step>_<catalog> snapshot key.
func StepKey(scenarioName string, step int, catalogID star.Origin) string {
	return fmt.Sprintf("%s_%d_%d", scenarioName, step, catalogID)
}

/*****************************************************************************************************************/

// Execute runs every entry in order, reporting progress, fetching via
// client, merging into a working list, and finally copying the result into
// out (spec §4.6). snapshot may be nil to disable persistence.
func Execute(
	ctx context.Context,
	s *Scenario,
	client catalog.CatalogClient,
	sink StatusSink,
	snapshot Snapshot,
	out *star.List,
) error {
	working := star.NewList(s.Name + "-working")

	total := len(s.Entries)

	for i, entry := range s.Entries {
		select {
		case <-ctx.Done():
			return fmt.Errorf("scenario: cancelled: %w", ctx.Err())
		default:
		}

		if sink != nil {
			sink.Post(Status{Index: i + 1, Total: total, CatalogID: entry.CatalogID})
		}

		fetched, err := fetchEntry(ctx, entry, client, snapshot, s.Name, i, working)
		if err != nil {
			if i == 0 {
				return fmt.Errorf("scenario: primary seed fetch failed: %w", err)
			}

			continue
		}

		if entry.PostFilter != nil {
			entry.PostFilter.Apply(fetched)
		}

		if entry.MergeAction == ActionClearMerge {
			working.Clear()
		}

		updateOnly := entry.MergeAction == ActionUpdateOnly

		if err := merge.Merge(working, fetched, entry.Criteria, entry.CatalogMeta, updateOnly); err != nil {
			return fmt.Errorf("scenario: merge of entry %d failed: %w", i, err)
		}

		if snapshot != nil {
			_ = snapshot.Save(StepKey(s.Name, i, entry.CatalogID), working.Clone())
		}
	}

	out.CopyRefs(working, true)

	return nil
}

/*****************************************************************************************************************/

func fetchEntry(
	ctx context.Context, entry Entry, client catalog.CatalogClient, snapshot Snapshot, name string, step int, working *star.List,
) (*star.List, error) {
	key := StepKey(name, step, entry.CatalogID)

	if snapshot != nil {
		if list, ok, err := snapshot.Load(key); err == nil && ok {
			return list, nil
		}
	}

	query := entry.QueryOptions
	if query.SeedList == nil && working.Len() > 0 {
		query.SeedList = working
	}

	return client.Fetch(ctx, entry.CatalogID, query)
}
