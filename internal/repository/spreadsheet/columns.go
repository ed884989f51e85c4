package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"engagementReco/domain"
)

const (
	colVisitorID             = "visitor_id"
	colClusterLabel          = "cluster_label"
	colScoreEngagement       = "score_engagement"
	colNbSessions            = "nb_sessions"
	colNbClicks              = "nb_clicks"
	colDaysSinceLastActivity = "days_since_last_activity"
	colNbRequests            = "nb_requests"
	colFirstSession          = "first_session_yyyymmdd"
)

var RequiredColumns = []string{
	colVisitorID,
	colClusterLabel,
	colScoreEngagement,
	colNbSessions,
	colNbClicks,
	colDaysSinceLastActivity,
	colNbRequests,
	colFirstSession,
}

// header maps required column names to their index in a row.
type header map[string]int

func parseHeader(cells []string) (header, error) {
	h := make(header, len(cells))
	for i, c := range cells {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	return h, nil
}

func (h header) cell(row []string, col string) string {
	i := h[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// decodeRows turns raw rows (header first) into user records. Errors carry
// the 1-based line of the offending row.
func decodeRows(rows [][]string) ([]domain.UserRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	h, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.UserRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec, err := h.decode(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (h header) decode(row []string) (domain.UserRecord, error) {
	rec := domain.UserRecord{
		VisitorID:            normalizeID(h.cell(row, colVisitorID)),
		ClusterLabel:         domain.NormalizeLabel(h.cell(row, colClusterLabel)),
		FirstSessionYYYYMMDD: normalizeID(h.cell(row, colFirstSession)),
	}

	score, err := parseFloat(h.cell(row, colScoreEngagement))
	if err != nil {
		return rec, fmt.Errorf("%s: %w", colScoreEngagement, err)
	}
	rec.ScoreEngagement = score

	ints := []struct {
		col string
		dst *int
	}{
		{colNbSessions, &rec.NbSessions},
		{colNbClicks, &rec.NbClicks},
		{colDaysSinceLastActivity, &rec.DaysSinceLastActivity},
		{colNbRequests, &rec.NbRequests},
	}
	for _, f := range ints {
		v, err := parseInt(h.cell(row, f.col))
		if err != nil {
			return rec, fmt.Errorf("%s: %w", f.col, err)
		}
		*f.dst = v
	}

	return rec, nil
}

// parseFloat reads a numeric cell; empty cells are NaN. A decimal comma is accepted.
func parseFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// parseInt accepts integral cells written as floats ("12.0"), truncating like int().
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return int(f), nil
}

// normalizeID renders integer ids and dates stored as numbers ("42.0",
// "1.2345678901234568E+16") as plain digits. Anything else is kept as written.
func normalizeID(s string) string {
	if !strings.HasSuffix(s, ".0") && !strings.Contains(strings.ToUpper(s), "E+") {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
