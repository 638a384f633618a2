package resolver

import (
	"runtime"
	"runtime/debug"
)

// pressureLevel indicates memory pressure severity during large batches.
type pressureLevel int

const (
	pressureNormal pressureLevel = iota
	pressureWarning
	pressureCritical
)

// memoryGuard watches heap usage against a soft limit so very large bulk
// runs shed work before the runtime starts thrashing. A zero limit
// disables the guard.
type memoryGuard struct {
	limitBytes int64
}

func newMemoryGuard(limitMB int64) *memoryGuard {
	if limitMB <= 0 {
		return &memoryGuard{}
	}
	limitBytes := limitMB * 1024 * 1024
	debug.SetMemoryLimit(limitBytes)
	return &memoryGuard{limitBytes: limitBytes}
}

// check returns the current heap usage as a fraction of the limit and the
// corresponding pressure level.
func (g *memoryGuard) check() (usedPercent float64, level pressureLevel) {
	if g.limitBytes <= 0 {
		return 0, pressureNormal
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	usedPercent = float64(memStats.HeapAlloc) / float64(g.limitBytes) * 100
	switch {
	case usedPercent >= 90:
		level = pressureCritical
	case usedPercent >= 75:
		level = pressureWarning
	default:
		level = pressureNormal
	}
	return usedPercent, level
}
