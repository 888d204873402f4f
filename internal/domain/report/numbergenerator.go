package report

import "context"

// NumberGenerator issues the public R-YYYYMMDD-NNNN report numbers. The
// production implementation lives in infrastructure/services and seeds its
// per-day sequence from the persisted reports.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}
