// Package stats computes descriptive statistics over scouting reports.
//
// Every computation shares one convention: values are coerced to numbers,
// non-numeric values are treated as missing, and a value of exactly 0 is
// "not rated" and excluded before averaging.
package stats

import (
	"math"
	"sort"

	"github.com/udlz/scouting/internal/domain/record"
)

// MeanVector maps attribute name to mean value. An attribute with no
// usable value in any source report is absent, not zero.
type MeanVector map[string]float64

// PlayerMean pairs a player with their overall mean rating.
type PlayerMean struct {
	Player string  `json:"player"`
	Mean   float64 `json:"mean"`
	Stars  int     `json:"stars"`
}

// Count is one bucket of a categorical frequency table.
type Count struct {
	Label string `json:"label"`
	Total int    `json:"total"`
}

// maxStars is the top of the rating scale.
const maxStars = 5

// Stars converts a mean rating to a star count: clamp(round(v), 0, 5).
// Rounding is half-away-from-zero, so 2.5 renders as 3 stars and 3.5 as 4.
func Stars(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > maxStars {
		return maxStars
	}
	return n
}

// PlayerMeans averages each named field across the player's reports,
// skipping unrated values.
func PlayerMeans(reports []record.Record, player string, fields []string) MeanVector {
	return meansOver(reports, fields, func(r record.Record) bool {
		return r.Text(record.FieldPlayer) == player
	})
}

// PositionMeans averages each named field across every report recorded
// for the given position.
func PositionMeans(reports []record.Record, position string, fields []string) MeanVector {
	return meansOver(reports, fields, func(r record.Record) bool {
		return r.Text(record.FieldPosition) == position
	})
}

// PlayerPosition returns the position on the player's first report; the
// peer group for comparisons. Empty when the player has no report with a
// position.
func PlayerPosition(reports []record.Record, player string) string {
	for _, r := range reports {
		if r.Text(record.FieldPlayer) != player {
			continue
		}
		if pos := r.Text(record.FieldPosition); pos != "" {
			return pos
		}
	}
	return ""
}

// Players lists the distinct player names in encounter order.
func Players(reports []record.Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range reports {
		name := r.Text(record.FieldPlayer)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// OverallMean averages the entries of a mean vector. ok=false when the
// vector is empty.
func OverallMean(mv MeanVector) (float64, bool) {
	if len(mv) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range mv {
		sum += v
	}
	return sum / float64(len(mv)), true
}

// PlayerOverallMeans computes each player's overall mean across the given
// fields, in encounter order. Players with no rated value are omitted.
func PlayerOverallMeans(reports []record.Record, fields []string) []PlayerMean {
	var out []PlayerMean
	for _, name := range Players(reports) {
		mv := PlayerMeans(reports, name, fields)
		if m, ok := OverallMean(mv); ok {
			out = append(out, PlayerMean{Player: name, Mean: m, Stars: Stars(m)})
		}
	}
	return out
}

// GlobalMean is the mean of per-player means; the threshold above which a
// player counts as a standout. ok=false when no player has a mean.
func GlobalMean(means []PlayerMean) (float64, bool) {
	if len(means) == 0 {
		return 0, false
	}
	var sum float64
	for _, m := range means {
		sum += m.Mean
	}
	return sum / float64(len(means)), true
}

// Standouts filters players whose mean strictly exceeds the global mean
// and returns the top n, descending by mean. Ties keep encounter order.
func Standouts(means []PlayerMean, global float64, n int) []PlayerMean {
	var above []PlayerMean
	for _, m := range means {
		if m.Mean > global {
			above = append(above, m)
		}
	}
	stableSortByMeanDesc(above)
	if n > 0 && len(above) > n {
		above = above[:n]
	}
	return above
}

// TopStandouts is the dashboard convenience: compute player means, derive
// the global mean, and rank.
func TopStandouts(reports []record.Record, fields []string, n int) []PlayerMean {
	means := PlayerOverallMeans(reports, fields)
	global, ok := GlobalMean(means)
	if !ok {
		return nil
	}
	return Standouts(means, global, n)
}

// CountBy builds a frequency table of one field across all reports, in
// first-seen order. Blank values are skipped.
func CountBy(reports []record.Record, field string) []Count {
	index := make(map[string]int)
	var out []Count
	for _, r := range reports {
		label := r.Text(field)
		if label == "" {
			continue
		}
		if i, ok := index[label]; ok {
			out[i].Total++
			continue
		}
		index[label] = len(out)
		out = append(out, Count{Label: label, Total: 1})
	}
	return out
}

func meansOver(reports []record.Record, fields []string, match func(record.Record) bool) MeanVector {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range reports {
		if !match(r) {
			continue
		}
		for _, f := range fields {
			if v, ok := r.Rated(f); ok {
				sums[f] += v
				counts[f]++
			}
		}
	}
	mv := make(MeanVector, len(sums))
	for f, sum := range sums {
		mv[f] = sum / float64(counts[f])
	}
	return mv
}

func stableSortByMeanDesc(ms []PlayerMean) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Mean > ms[j].Mean })
}
