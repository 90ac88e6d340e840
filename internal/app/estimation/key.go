package estimation

import (
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/cespare/xxhash/v2"
	"strconv"
	"strings"
)

// Key is a digest of the fields that influence the result. Records that differ
// only in ignored fields, such as hip for male subjects, share a key.
func Key(r measurement.Record) string {
	s := r.Snapshot()
	parts := []string{
		s.Sex,
		formatFloat(s.AgeYears),
		formatFloat(s.WeightKg),
		formatFloat(s.HeightCm),
		formatFloat(s.NeckCm),
		formatFloat(s.WaistCm),
		formatFloat(s.HipCm),
	}
	return strconv.FormatUint(xxhash.Sum64String(strings.Join(parts, "|")), 16)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
