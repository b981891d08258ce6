package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultBestPayersLimit is used when the caller supplies no usable limit.
const DefaultBestPayersLimit = 2

const reportCacheTTL = 30 * time.Second

// ProfessionEarnings is the top-earning profession over a window.
type ProfessionEarnings struct {
	Profession    string `json:"profession"`
	TotalEarnings int64  `json:"totalEarnings"` // in cents
}

// PayerTotal is one payer's total paid over a window.
type PayerTotal struct {
	PayerID   int64  `json:"id"`
	FullName  string `json:"fullName"`
	TotalPaid int64  `json:"totalPaid"` // in cents
}

// ReportService runs read-only aggregations over paid jobs. The Redis
// client is optional; when present, results are cached briefly.
type ReportService struct {
	db    *sql.DB
	cache *redis.Client
}

func NewReportService(db *sql.DB, cache *redis.Client) *ReportService {
	return &ReportService{db: db, cache: cache}
}

// BestProfession returns the profession that earned the most from jobs
// paid inside the inclusive [start, end] window. Ties resolve to the
// lexicographically smallest profession.
func (s *ReportService) BestProfession(ctx context.Context, start, end time.Time) (*ProfessionEarnings, error) {
	if start.IsZero() || end.IsZero() {
		return nil, ErrInvalidRange
	}

	key := fmt.Sprintf("reports:best-profession:%d:%d", start.Unix(), end.Unix())
	var cached ProfessionEarnings
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	var res ProfessionEarnings
	err := s.db.QueryRowContext(ctx, `
		SELECT p.profession, SUM(j.price) AS total
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.performer_id
		WHERE j.paid = true AND j.payment_date BETWEEN $1 AND $2
		GROUP BY p.profession
		ORDER BY total DESC, p.profession ASC
		LIMIT 1`, start, end).
		Scan(&res.Profession, &res.TotalEarnings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoResults
	}
	if err != nil {
		return nil, storeErr("best profession query", err)
	}

	s.cacheSet(ctx, key, res)
	return &res, nil
}

// BestPayers returns the top payers by total paid inside the inclusive
// [start, end] window, largest first. A non-positive limit falls back to
// DefaultBestPayersLimit. Ties resolve by ascending payer id. An empty
// window yields an empty list, not an error.
func (s *ReportService) BestPayers(ctx context.Context, start, end time.Time, limit int) ([]PayerTotal, error) {
	if start.IsZero() || end.IsZero() {
		return nil, ErrInvalidRange
	}
	if limit <= 0 {
		limit = DefaultBestPayersLimit
	}

	key := fmt.Sprintf("reports:best-payers:%d:%d:%d", start.Unix(), end.Unix(), limit)
	var cached []PayerTotal
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.first_name, p.last_name, SUM(j.price) AS total
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.payer_id
		WHERE j.paid = true AND j.payment_date BETWEEN $1 AND $2
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY total DESC, p.id ASC
		LIMIT $3`, start, end, limit)
	if err != nil {
		return nil, storeErr("best payers query", err)
	}
	defer rows.Close()

	payers := []PayerTotal{}
	for rows.Next() {
		var p PayerTotal
		var firstName, lastName string
		if err := rows.Scan(&p.PayerID, &firstName, &lastName, &p.TotalPaid); err != nil {
			return nil, storeErr("best payers scan", err)
		}
		p.FullName = firstName + " " + lastName
		payers = append(payers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("best payers rows", err)
	}

	s.cacheSet(ctx, key, payers)
	return payers, nil
}

// cacheGet loads a cached report into dest; a miss or a broken payload is
// just a miss.
func (s *ReportService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, reportCacheTTL).Err(); err != nil {
		log.Printf("[REPORTS] cache write failed for %s: %v", key, err)
	}
}
