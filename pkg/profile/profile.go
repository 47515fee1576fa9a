// Package profile builds an hourly power series for one calendar year from a
// set of declarative appliance usage rules.
package profile

import (
	"errors"
	"time"

	"github.com/loadlens/loadlens/pkg/types"
)

// ErrEmptyRuleSet means synthesis was attempted with zero rules. Callers
// should surface it as a warning rather than a hard failure.
var ErrEmptyRuleSet = errors.New("no appliance rules to synthesize from")

// Synthesize builds the canonical hourly series for every hour of the given
// calendar year (8760 rows, 8784 on a leap year). Each rule overlays its
// combined draw on every hour matching both its weekday set and its hour set;
// loads stack additively. Rules with no active hours contribute nothing.
func Synthesize(rules []types.ApplianceRule, year int) (types.Series, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyRuleSet
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 0, 0, 0, time.UTC)
	n := int(end.Sub(start)/time.Hour) + 1

	series := make(types.Series, n)
	for i := 0; i < n; i++ {
		series[i].TS = start.Add(time.Duration(i) * time.Hour)
	}

	for _, rule := range rules {
		hours := rule.HourSet()
		if len(hours) == 0 {
			continue
		}
		days := rule.ActiveDays()
		powerKW := rule.PowerKW()
		for i := range series {
			ts := series[i].TS
			if days[ts.Weekday()] && hours[ts.Hour()] {
				series[i].PowerKW += powerKW
			}
		}
	}
	return series, nil
}
