/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package catalog

/*****************************************************************************************************************/

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"text/template"
	"time"

	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// ColumnKind tells a Column how to interpret a TAP response cell.
type ColumnKind int

/*****************************************************************************************************************/

const (
	ColumnFloat ColumnKind = iota
	ColumnString
)

/*****************************************************************************************************************/

// Column maps one position in a TAP row to a registered property.
type Column struct {
	Index int
	ID    registry.ID
	Kind  ColumnKind
}

/*****************************************************************************************************************/

// tapResponse is a TAP service's JSON-format query result.
type tapResponse struct {
	Data [][]interface{} `json:"data"`
}

/*****************************************************************************************************************/

// TapCatalogClient is a generic CatalogClient backed by a VO TAP service,
// adapted from the teacher's GAIA/SIMBAD service clients: one ADQL template
// with {{.RA}}/{{.Dec}}/{{.Radius}}/{{.Limit}} placeholders, and a column
// mapping from response index to registered property. It owns its own HTTP
// transport rather than wrapping a separate generic TAP client type, since
// no other catalog component talks ADQL.
type TapCatalogClient struct {
	URI     string
	HTTP    *http.Client
	Headers map[string]string

	Template string
	Columns  []Column
	Limit    int

	wk *registry.WellKnown
}

/*****************************************************************************************************************/

// NewTapCatalogClient returns a TapCatalogClient POSTing ADQL queries to
// serviceURL and tagging every fetched star against wk's registry.
func NewTapCatalogClient(
	serviceURL url.URL, timeout time.Duration, headers map[string]string, template string, columns []Column, limit int, wk *registry.WellKnown,
) *TapCatalogClient {
	return &TapCatalogClient{
		URI:      serviceURL.String(),
		HTTP:     &http.Client{Timeout: timeout},
		Headers:  headers,
		Template: template,
		Columns:  columns,
		Limit:    limit,
		wk:       wk,
	}
}

/*****************************************************************************************************************/

// buildQuery renders the ADQL template against data.
func (c *TapCatalogClient) buildQuery(data interface{}) (string, error) {
	tmpl, err := template.New("adql").Parse(c.Template)
	if err != nil {
		return "", fmt.Errorf("catalog: parsing ADQL template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("catalog: executing ADQL template: %w", err)
	}

	return buf.String(), nil
}

/*****************************************************************************************************************/

// executeQuery POSTs an ADQL query to the TAP service and parses its JSON
// response.
func (c *TapCatalogClient) executeQuery(ctx context.Context, adqlQuery string) (*tapResponse, error) {
	formData := url.Values{}
	formData.Set("REQUEST", "doQuery")
	formData.Set("LANG", "ADQL")
	formData.Set("FORMAT", "json")
	formData.Set("QUERY", adqlQuery)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URI, bytes.NewBufferString(formData.Encode()))
	if err != nil {
		return nil, fmt.Errorf("catalog: creating TAP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	for key, value := range c.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: TAP request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading TAP response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: TAP query failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed tapResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("catalog: parsing TAP response: %w", err)
	}

	return &parsed, nil
}

/*****************************************************************************************************************/

// Fetch implements CatalogClient. Only GeometryCone queries are supported by
// the generic template (box-shaped TAP templates are catalog-specific and
// left to a bespoke client); query.SeedList's targetId, when present, is
// stamped onto every returned row only when the seed carries exactly one
// star (a single targeted join) — a multi-star seed list requires the
// caller to issue one Fetch per seed row.
func (c *TapCatalogClient) Fetch(ctx context.Context, catalogID star.Origin, query Query) (*star.List, error) {
	if query.Geometry.Kind != GeometryCone {
		return nil, fmt.Errorf("catalog: TapCatalogClient only supports cone geometry")
	}

	data := struct {
		RA     float64
		Dec    float64
		Radius float64
		Limit  int
	}{
		RA:     query.CenterRA,
		Dec:    query.CenterDec,
		Radius: query.Geometry.RadiusDeg,
		Limit:  c.Limit,
	}

	adqlQuery, err := c.buildQuery(data)
	if err != nil {
		return nil, err
	}

	resp, err := c.executeQuery(ctx, adqlQuery)
	if err != nil {
		return nil, err
	}

	list := star.NewList(fmt.Sprintf("catalog-%d", catalogID))
	list.CatalogID = int32(catalogID)

	var targetID string
	if query.SeedList != nil && query.SeedList.Len() == 1 {
		targetID, _ = query.SeedList.At(0).TargetID()
	}

	for _, row := range resp.Data {
		s := star.New(c.wk)

		ok := true

		for _, col := range c.Columns {
			if col.Index >= len(row) || row[col.Index] == nil {
				continue
			}

			switch col.Kind {
			case ColumnFloat:
				v, fOk := toFloat64(row[col.Index])
				if !fOk {
					if col.ID == c.wk.RA || col.ID == c.wk.Dec {
						ok = false
					}

					continue
				}

				s.SetFloat(col.ID, v, catalogID, star.ConfidenceHigh, true)
			case ColumnString:
				s.SetString(col.ID, fmt.Sprintf("%v", row[col.Index]), catalogID, star.ConfidenceHigh, true)
			}
		}

		if !ok {
			continue
		}

		if targetID != "" {
			s.SetTargetID(targetID, catalogID)
		}

		list.AddRefAtTail(s)
	}

	return list, nil
}

/*****************************************************************************************************************/

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
