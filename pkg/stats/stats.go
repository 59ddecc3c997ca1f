// Package stats computes aggregate statistics over a parsed log collection.
package stats

import (
	"math"
	"sort"

	"github.com/loggaliza/loggaliza/pkg/parser"
)

// Stats is an immutable summary computed once from a complete collection.
type Stats struct {
	// TotalRequests counts every record, including those with no level.
	TotalRequests int `json:"total_requests"`

	// ErrorCount, WarningCount and InfoCount bucket records by level.
	// Records with no level contribute to TotalRequests only.
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	InfoCount    int `json:"info_count"`

	// AvgResponseTime divides the response-time sum by TotalRequests, not
	// by the number of records that carried a response time. Records
	// without one dilute the average as if they took zero time. Downstream
	// reports depend on this exact figure; do not "fix" the denominator.
	AvgResponseTime float64 `json:"avg_response_time"`

	// EndpointFrequency maps endpoint to occurrence count.
	EndpointFrequency map[string]int `json:"endpoint_frequency"`

	// ErrorsByEndpoint maps endpoint to count, incremented only for
	// records with level ERROR and a present endpoint.
	ErrorsByEndpoint map[string]int `json:"errors_by_endpoint"`

	// SlowestRequests holds every record ordered by response time
	// descending; records without one sort below all present values.
	// Reports take the top entries from the front.
	SlowestRequests []parser.LogRecord `json:"slowest_requests"`

	// sortedTimes holds the present response times ascending, for
	// percentile lookups.
	sortedTimes []float64
}

// EndpointCount is one entry of a count-descending ranking.
type EndpointCount struct {
	Endpoint string `json:"endpoint"`
	Count    int    `json:"count"`
}

// Compute builds a Stats snapshot from the given records in two structural
// passes: one linear pass for counts, sums and frequency maps, and one sort
// pass over a full copy for the slowest-first ranking.
func Compute(records []parser.LogRecord) *Stats {
	s := &Stats{
		TotalRequests:     len(records),
		EndpointFrequency: make(map[string]int),
		ErrorsByEndpoint:  make(map[string]int),
	}

	var sum float64
	for i := range records {
		rec := &records[i]

		if rec.Level != nil {
			switch *rec.Level {
			case parser.LevelInfo:
				s.InfoCount++
			case parser.LevelWarning:
				s.WarningCount++
			case parser.LevelError:
				s.ErrorCount++
				if rec.Endpoint != nil {
					s.ErrorsByEndpoint[*rec.Endpoint]++
				}
			}
		}

		if rec.Endpoint != nil {
			s.EndpointFrequency[*rec.Endpoint]++
		}

		if rec.ResponseTime != nil {
			sum += *rec.ResponseTime
			s.sortedTimes = append(s.sortedTimes, *rec.ResponseTime)
		}
	}

	if s.TotalRequests > 0 {
		s.AvgResponseTime = sum / float64(s.TotalRequests)
	}

	s.SlowestRequests = make([]parser.LogRecord, len(records))
	copy(s.SlowestRequests, records)
	sort.Slice(s.SlowestRequests, func(i, j int) bool {
		return sortKey(&s.SlowestRequests[i]) > sortKey(&s.SlowestRequests[j])
	})

	sort.Float64s(s.sortedTimes)

	return s
}

// sortKey orders records for the slowest ranking; an absent response time
// sorts below every present value.
func sortKey(r *parser.LogRecord) float64 {
	if r.ResponseTime == nil {
		return math.Inf(-1)
	}
	return *r.ResponseTime
}

// Percentile returns the response time at rank floor(n*p) in the
// ascending-sorted sample of present response times, with the index clamped
// for very small samples. p is a fraction, e.g. 0.95. The second return is
// false when no record carried a response time.
func (s *Stats) Percentile(p float64) (float64, bool) {
	n := len(s.sortedTimes)
	if n == 0 {
		return 0, false
	}

	idx := int(float64(n) * p)
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return s.sortedTimes[idx], true
}

// ErrorRate returns the percentage of records with level ERROR.
func (s *Stats) ErrorRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.ErrorCount) / float64(s.TotalRequests) * 100
}

// LevelPercent returns count as a percentage of total requests.
func (s *Stats) LevelPercent(count int) float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(count) / float64(s.TotalRequests) * 100
}

// TopEndpoints returns up to k endpoints by request count, descending.
// Ties are broken by map enumeration order, which is not reproducible.
func (s *Stats) TopEndpoints(k int) []EndpointCount {
	return topK(s.EndpointFrequency, k)
}

// TopErrors returns up to k endpoints by error count, descending, with the
// same unspecified tie order as TopEndpoints.
func (s *Stats) TopErrors(k int) []EndpointCount {
	return topK(s.ErrorsByEndpoint, k)
}

func topK(freq map[string]int, k int) []EndpointCount {
	ranked := make([]EndpointCount, 0, len(freq))
	for endpoint, count := range freq {
		ranked = append(ranked, EndpointCount{Endpoint: endpoint, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
