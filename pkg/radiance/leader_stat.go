package radiance

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Column names produced by LeaderStatsQuery.
const (
	ColSlotWindow   = "slotWindow"
	ColLeader       = "leader"
	ColMedianReplay = "medianReplay"
	ColCount        = "count"
)

// LeaderStat is one row of LeaderStatsQuery.
type LeaderStat struct {
	SlotWindow   uint64  `json:"slotWindow" yaml:"slotWindow"`
	Leader       string  `json:"leader" yaml:"leader"`
	MedianReplay float64 `json:"medianReplay" yaml:"medianReplay"`
	Count        uint64  `json:"count" yaml:"count"`
}

// ParseLeaderStats converts generic rows into LeaderStat values.
// ClickHouse quotes 64-bit integers in JSON output by default, so numeric
// columns are accepted both as numbers and as numeric strings.
func ParseLeaderStats(rows []Row) ([]LeaderStat, error) {
	stats := make([]LeaderStat, 0, len(rows))
	for i, row := range rows {
		s, err := parseLeaderStat(row)
		if err != nil {
			return nil, &DecodeError{Err: errors.Wrapf(err, "row %d", i)}
		}
		stats = append(stats, s)
	}
	return stats, nil
}

func parseLeaderStat(row Row) (LeaderStat, error) {
	var (
		s   LeaderStat
		err error
	)
	if s.SlotWindow, err = uintColumn(row, ColSlotWindow); err != nil {
		return s, err
	}
	v, ok := row[ColLeader]
	if !ok {
		return s, errors.Errorf("missing column %q", ColLeader)
	}
	if s.Leader, ok = v.(string); !ok {
		return s, errors.Errorf("column %q: expected string, got %T", ColLeader, v)
	}
	if s.MedianReplay, err = floatColumn(row, ColMedianReplay); err != nil {
		return s, err
	}
	if s.Count, err = uintColumn(row, ColCount); err != nil {
		return s, err
	}
	return s, nil
}

func numericText(row Row, col string) (string, error) {
	v, ok := row[col]
	if !ok {
		return "", errors.Errorf("missing column %q", col)
	}
	switch x := v.(type) {
	case json.Number:
		return x.String(), nil
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case uint64, int64, int:
		return fmt.Sprint(x), nil
	default:
		return "", errors.Errorf("column %q: expected number, got %T", col, v)
	}
}

func floatColumn(row Row, col string) (float64, error) {
	text, err := numericText(row, col)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "column %q", col)
	}
	return f, nil
}

func uintColumn(row Row, col string) (uint64, error) {
	text, err := numericText(row, col)
	if err != nil {
		return 0, err
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return u, nil
	}
	// floor() over a Float64 column comes back as a float, e.g. 1.37326e+08
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "column %q", col)
	}
	if f < 0 || f != math.Trunc(f) || f >= math.MaxUint64 {
		return 0, errors.Errorf("column %q: %s is not an unsigned integer", col, text)
	}
	return uint64(f), nil
}
