package repository

import (
	"strings"
	"testing"
)

// The window and ordering semantics live in the SQL, so pin them here: the
// interval must stay half-open and ties on the total must order by agent id
// with unattributed sales last.
func TestAggregateSalesQueryWindowIsHalfOpen(t *testing.T) {
	if !strings.Contains(aggregateSalesQuery, "closed_at >= $1") {
		t.Error("window start must be inclusive")
	}
	if !strings.Contains(aggregateSalesQuery, "closed_at < $2") {
		t.Error("window end must be exclusive: a sale closed exactly at the end is excluded")
	}
	if strings.Contains(aggregateSalesQuery, "closed_at <= $2") {
		t.Error("window end must not be inclusive")
	}
}

func TestAggregateSalesQueryOrdering(t *testing.T) {
	if !strings.Contains(aggregateSalesQuery, "ORDER BY total_cents DESC, agent_id ASC NULLS LAST") {
		t.Error("ordering must be total descending with agent id as tie-break, nulls last")
	}
	if !strings.Contains(aggregateSalesQuery, "GROUP BY agent_id, agent_name") {
		t.Error("aggregation must group by agent identity and denormalized name")
	}
}
