package calculation

import (
	"time"

	"github.com/immocalc/realty-calculator/pkg/dateutil"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// DefaultStartDate is the first day of next month, used when an input omits its start date.
// The schedule itself never reads the clock.
func DefaultStartDate() time.Time {
	return dateutil.AddMonths(dateutil.FirstOfMonth(nowFunc()), 1)
}
