package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// LastNDays retorna as últimas n datas em ordem cronológica, terminando hoje
func LastNDays(n int, now time.Time) []time.Time {
	dates := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, now.AddDate(0, 0, -i))
	}
	return dates
}
