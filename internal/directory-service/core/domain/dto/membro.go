package dto

import (
	"encoding/json"
	"strings"

	"membro-hub/internal/directory-service/core/domain/models"
)

// Filter is the view narrowing applied before pagination, aggregation and
// statistics. Q is a single case-insensitive substring pattern matched
// against name, comarca and effective role (OR across fields). Fields holds
// the structured filters_json payload: parsed and kept for forward
// compatibility, not applied in this version.
type Filter struct {
	Q      string
	Fields map[string][]string
}

// ParseFilter builds a Filter from the raw query parameters. A malformed
// filters_json is ignored rather than rejected.
func ParseFilter(q, filtersJSON string) Filter {
	f := Filter{Q: strings.TrimSpace(q)}
	if filtersJSON != "" {
		var fields map[string][]string
		if err := json.Unmarshal([]byte(filtersJSON), &fields); err == nil {
			f.Fields = fields
		}
	}
	return f
}

// Matches reports whether a record survives the filter. Applying the same
// filter twice yields the same subset.
func (f Filter) Matches(m models.Membro) bool {
	q := strings.ToLower(strings.TrimSpace(f.Q))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.Nome), q) {
		return true
	}
	for _, field := range []*string{m.ComarcaLotacao, m.CargoEfetivo} {
		if field != nil && strings.Contains(strings.ToLower(*field), q) {
			return true
		}
	}
	return false
}

type MembroRow struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

type MembroPage struct {
	Data  []MembroRow `json:"data"`
	Total int64       `json:"total"`
}

type Bucket struct {
	Value string `json:"v"`
	Count int64  `json:"c"`
}

type AggregateResult struct {
	Field string   `json:"field"`
	Data  []Bucket `json:"data"`
}

type Stats struct {
	Total       int64   `json:"total"`
	FemaleCount int64   `json:"female_count"`
	FemalePct   float64 `json:"female_pct"`
}

type MembroPayload struct {
	Data map[string]any `json:"data"`
}
