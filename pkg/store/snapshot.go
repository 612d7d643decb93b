/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package store

/*****************************************************************************************************************/

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// snapshotRow is the gorm-mapped row backing one <scenario>_<step>_<catalog>
// snapshot key (spec §6.5).
type snapshotRow struct {
	Key     string `gorm:"primaryKey"`
	Name    string
	Payload []byte
}

/*****************************************************************************************************************/

// propertyRecord is one Star property, serialized with its full provenance
// so a reloaded snapshot is indistinguishable from the list that produced
// it (spec §3.1).
type propertyRecord struct {
	Name       string
	Origin     int32
	Confidence int8
	HasErr     bool
	Err        float64 `json:",omitempty"`
	Str        string  `json:",omitempty"`
	I64        int64   `json:",omitempty"`
	F64        float64 `json:",omitempty"`
}

/*****************************************************************************************************************/

type starRecord struct {
	Properties []propertyRecord
}

/*****************************************************************************************************************/

func encodeStar(wk *registry.WellKnown, s *star.Star) starRecord {
	var rec starRecord

	for id := 0; id < wk.Registry.Len(); id++ {
		p := s.Get(registry.ID(id))
		if !p.IsSet() {
			continue
		}

		meta, ok := wk.Registry.By(registry.ID(id))
		if !ok {
			continue
		}

		pr := propertyRecord{
			Name:       meta.Name,
			Origin:     int32(p.Origin()),
			Confidence: int8(p.Confidence()),
		}

		if errVal, ok := p.Error(); ok {
			pr.HasErr = true
			pr.Err = errVal
		}

		switch meta.Type {
		case registry.TypeString:
			pr.Str, _ = p.String()
		case registry.TypeInt, registry.TypeLong:
			pr.I64, _ = p.Int()
		case registry.TypeDouble:
			pr.F64, _ = p.Float()
		case registry.TypeBool:
			b, _ := p.Bool()
			if b {
				pr.I64 = 1
			}
		}

		rec.Properties = append(rec.Properties, pr)
	}

	return rec
}

/*****************************************************************************************************************/

func decodeStar(wk *registry.WellKnown, rec starRecord) *star.Star {
	s := star.New(wk)

	for _, pr := range rec.Properties {
		meta, ok := wk.Registry.ByName(pr.Name)
		if !ok {
			continue
		}

		origin := star.Origin(pr.Origin)
		confidence := star.Confidence(pr.Confidence)

		switch meta.Type {
		case registry.TypeString:
			s.SetString(meta.ID, pr.Str, origin, confidence, true)
		case registry.TypeInt, registry.TypeLong:
			s.SetInt(meta.ID, pr.I64, origin, confidence, true)
		case registry.TypeDouble:
			if pr.HasErr {
				s.SetFloatWithError(meta.ID, pr.F64, pr.Err, origin, confidence, true)
			} else {
				s.SetFloat(meta.ID, pr.F64, origin, confidence, true)
			}
		case registry.TypeBool:
			s.SetBool(meta.ID, pr.I64 != 0, origin, confidence, true)
		}
	}

	return s
}

/*****************************************************************************************************************/

// SnapshotStore implements scenario.Snapshot over a gorm/sqlite table,
// grounded on observerly-skysolve/internal/indexer's "write once, re-read on
// a later run" persisted-artifact pattern, here backed by a real table
// instead of loose JSON files on disk.
type SnapshotStore struct {
	db *gorm.DB
	wk *registry.WellKnown
}

/*****************************************************************************************************************/

// NewSnapshotStore returns a SnapshotStore over an already-migrated db.
func NewSnapshotStore(db *gorm.DB, wk *registry.WellKnown) *SnapshotStore {
	return &SnapshotStore{db: db, wk: wk}
}

/*****************************************************************************************************************/

// Save persists list under key, replacing any prior snapshot at that key.
func (s *SnapshotStore) Save(key string, list *star.List) error {
	recs := make([]starRecord, 0, list.Len())

	for _, st := range list.Stars() {
		recs = append(recs, encodeStar(s.wk, st))
	}

	payload, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("store: encode snapshot %q: %w", key, err)
	}

	row := snapshotRow{Key: key, Name: list.Name, Payload: payload}

	return s.db.Save(&row).Error
}

/*****************************************************************************************************************/

// Load reloads the snapshot at key, reporting ok=false if none exists.
func (s *SnapshotStore) Load(key string) (*star.List, bool, error) {
	var row snapshotRow

	err := s.db.First(&row, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("store: load snapshot %q: %w", key, err)
	}

	var recs []starRecord

	if err := json.Unmarshal(row.Payload, &recs); err != nil {
		return nil, false, fmt.Errorf("store: decode snapshot %q: %w", key, err)
	}

	list := star.NewList(row.Name)

	for _, rec := range recs {
		list.AddRefAtTail(decodeStar(s.wk, rec))
	}

	return list, true, nil
}
