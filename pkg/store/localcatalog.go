/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package store

/*****************************************************************************************************************/

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// LocalCatalogStore implements catalog.CatalogLoader over line-per-star text
// files (spec §6.2), grounded on
// original_source/SearchCal/vobs/src/vobsCATALOG_ASCC_LOCAL.cpp /
// vobsCATALOG_BADCAL_LOCAL.cpp's "load once, re-check mtime" local-catalog
// behavior (the parent vobsLOCAL_CATALOG class they both derive from).
//
// File format: a header line of whitespace-separated column names declared
// in wk's registry, followed by one line per star of whitespace-separated
// values in the same order. A bare "-" marks an unset value.
type LocalCatalogStore struct {
	wk *registry.WellKnown

	mu     sync.Mutex
	cached map[string]cachedList
}

/*****************************************************************************************************************/

type cachedList struct {
	modTime time.Time
	list    *star.List
}

/*****************************************************************************************************************/

// NewLocalCatalogStore returns a LocalCatalogStore resolving columns against
// wk's registry.
func NewLocalCatalogStore(wk *registry.WellKnown) *LocalCatalogStore {
	return &LocalCatalogStore{wk: wk, cached: make(map[string]cachedList)}
}

/*****************************************************************************************************************/

// Load reads path, re-parsing only if its mtime has advanced since the last
// Load of the same path (spec §6.2).
func (l *LocalCatalogStore) Load(path string) (*star.List, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("store: stat local catalog %q: %w", path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.cached[path]; ok && !info.ModTime().After(c.modTime) {
		return c.list, nil
	}

	list, err := l.parse(path)
	if err != nil {
		return nil, err
	}

	l.cached[path] = cachedList{modTime: info.ModTime(), list: list}

	return list, nil
}

/*****************************************************************************************************************/

func (l *LocalCatalogStore) parse(path string) (*star.List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open local catalog %q: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() {
		return nil, fmt.Errorf("store: local catalog %q is empty", path)
	}

	columns := strings.Fields(scanner.Text())

	metas := make([]registry.Meta, len(columns))

	for i, name := range columns {
		meta, ok := l.wk.Registry.ByName(name)
		if !ok {
			return nil, fmt.Errorf("store: local catalog %q: unknown column %q", path, name)
		}

		metas[i] = meta
	}

	name := strings.TrimSuffix(path[strings.LastIndexByte(path, '/')+1:], ".cat")

	list := star.NewList(name)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != len(metas) {
			continue
		}

		s := star.New(l.wk)

		for i, meta := range metas {
			if fields[i] == "-" {
				continue
			}

			if err := setField(s, meta, fields[i]); err != nil {
				return nil, fmt.Errorf("store: local catalog %q: %w", path, err)
			}
		}

		list.AddRefAtTail(s)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("store: read local catalog %q: %w", path, err)
	}

	return list, nil
}

/*****************************************************************************************************************/

func setField(s *star.Star, meta registry.Meta, raw string) error {
	switch meta.Type {
	case registry.TypeString:
		s.SetString(meta.ID, raw, star.OriginComputed, star.ConfidenceHigh, false)
	case registry.TypeInt, registry.TypeLong:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("column %q: %w", meta.Name, err)
		}

		s.SetInt(meta.ID, v, star.OriginComputed, star.ConfidenceHigh, false)
	case registry.TypeDouble:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("column %q: %w", meta.Name, err)
		}

		s.SetFloat(meta.ID, v, star.OriginComputed, star.ConfidenceHigh, false)
	case registry.TypeBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("column %q: %w", meta.Name, err)
		}

		s.SetBool(meta.ID, v, star.OriginComputed, star.ConfidenceHigh, false)
	}

	return nil
}
