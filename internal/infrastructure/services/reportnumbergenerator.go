// Package services holds infrastructure-backed implementations of domain
// service interfaces.
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"civicwatch/internal/shared/db"
)

// ReportNumberGenerator issues R-YYYYMMDD-NNNN report numbers. The per-day
// sequence is seeded from the highest persisted number for the date prefix,
// so numbering survives process restarts; after seeding, the counter advances
// in memory under the mutex.
type ReportNumberGenerator struct {
	db    *gorm.DB
	mu    sync.Mutex
	cache map[string]int
}

func NewReportNumberGenerator(gormDB *gorm.DB) *ReportNumberGenerator {
	return &ReportNumberGenerator{
		db:    gormDB,
		cache: make(map[string]int),
	}
}

func (g *ReportNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateKey := time.Now().Format("20060102")

	seq, err := g.nextSequence(ctx, dateKey)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("R-%s-%04d", dateKey, seq), nil
}

func (g *ReportNumberGenerator) nextSequence(ctx context.Context, dateKey string) (int, error) {
	if seq, ok := g.cache[dateKey]; ok {
		g.cache[dateKey] = seq + 1
		return seq + 1, nil
	}

	var maxNumber string
	tx := db.GetTxFromContext(ctx, g.db)

	err := tx.
		Table("reports").
		Select("MAX(number)").
		Where("number LIKE ?", fmt.Sprintf("R-%s-%%", dateKey)).
		Scan(&maxNumber).Error
	if err != nil {
		return 0, fmt.Errorf("failed to seed report number sequence: %w", err)
	}

	seq := 1
	if maxNumber != "" {
		if parsed, ok := sequenceSuffix(maxNumber); ok {
			seq = parsed + 1
		}
	}

	g.cache[dateKey] = seq
	return seq, nil
}

// sequenceSuffix extracts the numeric tail of a report number. A malformed
// stored number yields ok=false and the sequence restarts at 1 for the day.
func sequenceSuffix(number string) (int, bool) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0, false
	}
	seq, err := strconv.Atoi(number[idx+1:])
	if err != nil {
		return 0, false
	}
	return seq, true
}
