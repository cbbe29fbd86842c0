package analytics

import (
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

// PeriodStat is the aggregate for one time bucket.
type PeriodStat struct {
	MeanProfitLoss float64 `json:"mean"`
	Sessions       int     `json:"count"`
}

// PeriodBreakdown groups performance by when sessions were played, for
// spotting time-of-day or seasonal leaks. Buckets with no sessions are
// absent.
type PeriodBreakdown struct {
	ByHour      map[int]PeriodStat    `json:"by_hour"`
	ByDayOfWeek map[string]PeriodStat `json:"by_day_of_week"`
	ByMonth     map[string]PeriodStat `json:"by_month"`
}

// PerformanceByPeriod computes mean profit/loss and session counts
// grouped by hour of day, day of week, and month.
func PerformanceByPeriod(t *session.Table) PeriodBreakdown {
	out := PeriodBreakdown{
		ByHour:      make(map[int]PeriodStat),
		ByDayOfWeek: make(map[string]PeriodStat),
		ByMonth:     make(map[string]PeriodStat),
	}

	hourSums := make(map[int]float64)
	daySums := make(map[string]float64)
	monthSums := make(map[string]float64)

	for i, d := range t.Dates {
		pl := t.ProfitLoss[i]

		hour := d.Hour()
		hourSums[hour] += pl
		s := out.ByHour[hour]
		s.Sessions++
		out.ByHour[hour] = s

		day := d.Weekday().String()
		daySums[day] += pl
		s = out.ByDayOfWeek[day]
		s.Sessions++
		out.ByDayOfWeek[day] = s

		month := d.Month().String()
		monthSums[month] += pl
		s = out.ByMonth[month]
		s.Sessions++
		out.ByMonth[month] = s
	}

	for hour, s := range out.ByHour {
		s.MeanProfitLoss = hourSums[hour] / float64(s.Sessions)
		out.ByHour[hour] = s
	}
	for day, s := range out.ByDayOfWeek {
		s.MeanProfitLoss = daySums[day] / float64(s.Sessions)
		out.ByDayOfWeek[day] = s
	}
	for month, s := range out.ByMonth {
		s.MeanProfitLoss = monthSums[month] / float64(s.Sessions)
		out.ByMonth[month] = s
	}
	return out
}
