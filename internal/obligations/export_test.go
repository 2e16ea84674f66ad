package obligations

import "time"

// SetNow pins the service clock for deterministic quarter derivation in tests.
func SetNow(s *Service, now func() time.Time) {
	s.now = now
}
