package pulse

import "time"

// DailyPoint is one calendar day of the synthesized mention series.
type DailyPoint struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Anxiety float64 `json:"anxiety"`
	Sadness float64 `json:"sadness"`
	Joy     float64 `json:"joy"`
}

// Topic describes a trending discussion topic with its week-over-week change.
type Topic struct {
	Topic     string  `json:"topic"`
	ChangePct float64 `json:"changePct"`
	Mentions  int     `json:"mentions"`
}

// EmotionShare is a single slice of the emotion distribution.
type EmotionShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// GraphNode is a participant in the interaction graph. Degree is advisory
// display data, not necessarily the realized edge count.
type GraphNode struct {
	ID        string  `json:"id"`
	Degree    int     `json:"degree"`
	Sentiment float64 `json:"sentiment"`
}

// GraphEdge links two nodes by id with an interaction weight in [0,1).
type GraphEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// Graph bundles nodes and links for force-directed layout consumers.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphEdge `json:"links"`
}

// Meta echoes the requested window and platform back to the caller.
type Meta struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Platform string `json:"platform"`
}

// Summary carries the derived reductions recomputed on every refresh.
type Summary struct {
	TotalMentions  int     `json:"totalMentions"`
	LatestAnxiety  float64 `json:"latestAnxiety"`
	MeanAnxiety    float64 `json:"meanAnxiety"`
	MeanSadness    float64 `json:"meanSadness"`
	MeanJoy        float64 `json:"meanJoy"`
	PeakMentionDay string  `json:"peakMentionDay"`
}

// Snapshot is the complete dataset for one refresh cycle. It is owned by the
// refresh that produced it and replaced wholesale by the next one.
type Snapshot struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generatedAt"`
	TimeSeries  []DailyPoint   `json:"timeSeries"`
	Topics      []Topic        `json:"topics"`
	Emotions    []EmotionShare `json:"emotions"`
	Graph       Graph          `json:"graph"`
	Summary     Summary        `json:"summary"`
	Meta        Meta           `json:"meta"`
}

// QueryParams encapsulates the timeframe and platform requested by the user.
type QueryParams struct {
	From     time.Time
	To       time.Time
	Platform string
}
