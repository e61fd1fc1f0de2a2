package reservation

import (
	"slices"
	"strconv"
	"strings"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
)

// ParseServiceIDs reads a comma separated list such as "1,2,3".
func ParseServiceIDs(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, domain.ErrValidation("invalid_services", "services must be a comma separated list of ids")
		}
		ids = append(ids, uint(n))
	}
	return NormalizeServiceIDs(ids)
}

// NormalizeServiceIDs sorts and deduplicates ids and rejects empty lists.
func NormalizeServiceIDs(ids []uint) ([]uint, error) {
	out := slices.Clone(ids)
	slices.Sort(out)
	out = slices.Compact(out)

	if len(out) == 0 {
		return nil, domain.ErrValidation("missing_services", "at least one service is required")
	}
	if out[0] == 0 {
		return nil, domain.ErrValidation("invalid_services", "service ids must be positive")
	}
	return out, nil
}
