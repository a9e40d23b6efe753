package knowledge

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// Wikidata property identifiers consumed by reputation scoring.
const (
	propInstanceOf   = "P31"
	propIndustry     = "P452"
	propCountry      = "P17"
	propInception    = "P571"
	propWebsite      = "P856"
	propRegisteredIn = "P463"
)

type wikidataSearchResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"search"`
}

type wikidataEntityResponse struct {
	Entities map[string]struct {
		Claims map[string][]wikidataClaim `json:"claims"`
	} `json:"entities"`
}

type wikidataClaim struct {
	MainSnak struct {
		DataValue *struct {
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

// Wikidata resolves entityName to its structured attributes: a label search
// followed by a claims fetch on the top hit.  Any failure or an empty search
// degrades to nil.
func (c *Client) Wikidata(ctx context.Context, entityName string) *WikidataInfo {
	searchParams := url.Values{
		"action":   {"wbsearchentities"},
		"search":   {entityName},
		"language": {"en"},
		"format":   {"json"},
	}
	var search wikidataSearchResponse
	if err := c.getJSON(ctx, c.cfg.WikidataURL, searchParams, &search); err != nil {
		c.logger.Warn("wikidata search degraded",
			logging.String("entity", entityName), logging.Err(err))
		return nil
	}
	if len(search.Search) == 0 {
		return nil
	}
	top := search.Search[0]

	entityParams := url.Values{
		"action": {"wbgetentities"},
		"ids":    {top.ID},
		"props":  {"claims|descriptions"},
		"format": {"json"},
	}
	var entityResp wikidataEntityResponse
	if err := c.getJSON(ctx, c.cfg.WikidataURL, entityParams, &entityResp); err != nil {
		c.logger.Warn("wikidata claims fetch degraded",
			logging.String("entity", entityName), logging.Err(err))
		return nil
	}
	claims := entityResp.Entities[top.ID].Claims

	return &WikidataInfo{
		ID:           top.ID,
		Name:         top.Label,
		Description:  top.Description,
		InstanceOf:   claimValues(claims, propInstanceOf),
		Industry:     claimValues(claims, propIndustry),
		Jurisdiction: claimValues(claims, propCountry),
		Founded:      claimValues(claims, propInception),
		Website:      claimValues(claims, propWebsite),
		RegisteredIn: claimValues(claims, propRegisteredIn),
	}
}

// claimValues extracts the scalar value of each claim for a property: item
// identifiers, timestamps, or monolingual/plain strings.
func claimValues(claims map[string][]wikidataClaim, property string) []string {
	var values []string
	for _, claim := range claims[property] {
		dv := claim.MainSnak.DataValue
		if dv == nil {
			continue
		}

		// Item references and time values arrive as objects; URLs and plain
		// strings arrive as JSON strings.
		var obj struct {
			ID   string `json:"id"`
			Time string `json:"time"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(dv.Value, &obj); err == nil {
			switch {
			case obj.ID != "":
				values = append(values, obj.ID)
				continue
			case obj.Time != "":
				values = append(values, obj.Time)
				continue
			case obj.Text != "":
				values = append(values, obj.Text)
				continue
			}
		}
		var s string
		if err := json.Unmarshal(dv.Value, &s); err == nil && s != "" {
			values = append(values, s)
		}
	}
	return values
}
