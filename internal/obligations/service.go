package obligations

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	id "taxgate/pkg/domain"
	dErrors "taxgate/pkg/domain-errors"
)

// PeriodSource reports the period keys for which a registration has already
// filed a return.
type PeriodSource interface {
	ListPeriodKeys(ctx context.Context, vrn id.VRN) ([]id.PeriodKey, error)
}

// Cache is a best-effort obligation cache keyed by registration and year.
// A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, vrn id.VRN, year int) ([]Obligation, bool, error)
	Set(ctx context.Context, vrn id.VRN, year int, obs []Obligation) error
}

// Service derives the quarterly filing obligations for a registration.
type Service struct {
	periods PeriodSource
	cache   Cache
	now     func() time.Time
}

// NewService creates an obligation service. cache may be nil.
func NewService(periods PeriodSource, cache Cache) *Service {
	return &Service{
		periods: periods,
		cache:   cache,
		now:     time.Now,
	}
}

// Obligations returns the given year's quarters that have started, marking
// each as fulfilled when a return exists for its period key. Year zero means
// the current year. Cache failures fall through to derivation.
func (s *Service) Obligations(ctx context.Context, callerVRN, vrn id.VRN, year int) ([]Obligation, error) {
	if callerVRN != vrn {
		return nil, dErrors.New(dErrors.CodeForbidden, "not enrolled for this registration")
	}

	now := s.now().UTC()
	if year == 0 {
		year = now.Year()
	}

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, vrn, year); err == nil && ok {
			return cached, nil
		}
	}

	keys, err := s.periods.ListPeriodKeys(ctx, vrn)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list fulfilled periods", err)
	}
	fulfilled := make(map[id.PeriodKey]struct{}, len(keys))
	for _, key := range keys {
		fulfilled[key] = struct{}{}
	}

	obs := quartersFor(now, year)
	for i := range obs {
		if _, ok := fulfilled[obs[i].PeriodKey]; ok {
			obs[i].Status = StatusFulfilled
		}
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, vrn, year, obs)
	}
	return obs, nil
}

func quartersFor(now time.Time, year int) []Obligation {
	var obs []Obligation
	for quarter := 1; quarter <= 4; quarter++ {
		start := time.Date(year, time.Month(3*quarter-2), 1, 0, 0, 0, 0, time.UTC)
		if start.After(now) {
			break
		}
		end := start.AddDate(0, 3, -1)
		obs = append(obs, Obligation{
			PeriodKey: periodKeyFor(year, quarter),
			Start:     start,
			End:       end,
			Due:       end.AddDate(0, 1, 7),
			Status:    StatusOpen,
		})
	}
	return obs
}

func periodKeyFor(year, quarter int) id.PeriodKey {
	return id.PeriodKey(fmt.Sprintf("%02dA%d", year%100, quarter))
}
