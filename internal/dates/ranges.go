package dates

import "time"

// MonthRange returns the inclusive first and last day of a calendar month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// CurrentMonthRange returns the full current calendar month.
func (p *Parser) CurrentMonthRange() (time.Time, time.Time) {
	now := p.Today()
	return MonthRange(now.Year(), now.Month())
}

// PreviousMonthRange returns the full previous calendar month.
func (p *Parser) PreviousMonthRange() (time.Time, time.Time) {
	y, m, _ := p.Today().Date()
	prev := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return MonthRange(prev.Year(), prev.Month())
}

// CurrentWeekRange returns the current calendar week. Weeks start on Monday,
// following the Spanish locale convention.
func (p *Parser) CurrentWeekRange() (time.Time, time.Time) {
	today := p.Today()
	offset := int(today.Weekday()-time.Monday+7) % 7
	start := today.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start, end
}
