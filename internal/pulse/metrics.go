package pulse

// TotalMentions sums the mention counts across a series. An empty series
// yields 0.
func TotalMentions(series []DailyPoint) int {
	total := 0
	for _, point := range series {
		total += point.Count
	}
	return total
}

// LatestAnxietyScore returns the anxiety value of the most recent day, or 0
// for an empty series.
func LatestAnxietyScore(series []DailyPoint) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1].Anxiety
}

// Summarize recomputes the derived reductions for a series. The work is O(n)
// over a short series, so there is no caching across refreshes.
func Summarize(series []DailyPoint) Summary {
	summary := Summary{
		TotalMentions: TotalMentions(series),
		LatestAnxiety: LatestAnxietyScore(series),
	}

	if len(series) == 0 {
		return summary
	}

	var anxiety, sadness, joy float64
	peak := series[0]
	for _, point := range series {
		anxiety += point.Anxiety
		sadness += point.Sadness
		joy += point.Joy
		if point.Count > peak.Count {
			peak = point
		}
	}

	n := float64(len(series))
	summary.MeanAnxiety = anxiety / n
	summary.MeanSadness = sadness / n
	summary.MeanJoy = joy / n
	summary.PeakMentionDay = peak.Date

	return summary
}
