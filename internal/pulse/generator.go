package pulse

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DateLayout is the calendar-day format used on the wire.
const DateLayout = "2006-01-02"

const (
	graphNodeCount    = 40
	graphEdgeAttempts = 80
)

// Generator synthesizes dashboard snapshots from shaped random draws. It is
// not safe for concurrent use; the refresher serializes refresh cycles.
type Generator struct {
	rng      *rand.Rand
	topics   []Topic
	emotions []EmotionShare
	latency  time.Duration
}

// WithRand overrides the random source so tests can pin exact outputs.
func WithRand(rng *rand.Rand) func(*Generator) {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithCatalog overrides the built-in topic and emotion tables.
func WithCatalog(c Catalog) func(*Generator) {
	return func(g *Generator) {
		g.topics = c.Topics
		g.emotions = c.Emotions
	}
}

// WithSimulatedLatency makes each fetch wait the given duration, emulating
// the network round-trip a real backend would add.
func WithSimulatedLatency(d time.Duration) func(*Generator) {
	return func(g *Generator) {
		g.latency = d
	}
}

// NewGenerator constructs a generator with a time-seeded random source and
// the built-in catalogs.
func NewGenerator(opts ...func(*Generator)) *Generator {
	g := &Generator{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		topics:   DefaultCatalog().Topics,
		emotions: DefaultCatalog().Emotions,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the source identifier.
func (g *Generator) Name() string { return "mock" }

// Fetch produces a fresh snapshot for the requested window.
func (g *Generator) Fetch(ctx context.Context, params QueryParams) (*Snapshot, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	snap := &Snapshot{
		GeneratedAt: time.Now().UTC(),
		TimeSeries:  g.series(params.From, params.To),
		Topics:      append([]Topic(nil), g.topics...),
		Emotions:    append([]EmotionShare(nil), g.emotions...),
		Graph:       g.graph(),
		Meta: Meta{
			From:     params.From.Format(DateLayout),
			To:       params.To.Format(DateLayout),
			Platform: params.Platform,
		},
	}
	snap.Summary = Summarize(snap.TimeSeries)
	return snap, nil
}

// DayCount resolves the inclusive number of calendar days between from and
// to. An inverted range still resolves to at least one day rather than an
// error; callers relying on stricter semantics must validate upstream.
func DayCount(from, to time.Time) int {
	days := int(math.Round(to.Sub(from).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

func (g *Generator) series(from, to time.Time) []DailyPoint {
	days := DayCount(from, to)
	series := make([]DailyPoint, 0, days)
	for i := 0; i < days; i++ {
		fi := float64(i)
		series = append(series, DailyPoint{
			Date:    from.AddDate(0, 0, i).Format(DateLayout),
			Count:   int(math.Round(200 + 40*math.Sin(fi/6) + g.rng.Float64()*60)),
			Anxiety: math.Max(0, (math.Sin(fi/7+0.5)+g.rng.Float64()*0.6)/2),
			Sadness: math.Max(0, (math.Cos(fi/8)+g.rng.Float64()*0.6)/2),
			Joy:     math.Max(0, (math.Cos(fi/5+1)+g.rng.Float64()*0.6)/2),
		})
	}
	return series
}

func (g *Generator) graph() Graph {
	nodes := make([]GraphNode, 0, graphNodeCount)
	for i := 0; i < graphNodeCount; i++ {
		nodes = append(nodes, GraphNode{
			ID:        fmt.Sprintf("user_%d", i),
			Degree:    int(math.Round(g.rng.Float64() * 10)),
			Sentiment: (g.rng.Float64() - 0.5) * 1.6,
		})
	}

	links := make([]GraphEdge, 0, graphEdgeAttempts)
	for i := 0; i < graphEdgeAttempts; i++ {
		a := g.rng.Intn(graphNodeCount)
		b := g.rng.Intn(graphNodeCount)
		// Self-loop draws are discarded without replacement, so the
		// realized edge count varies below the attempt budget.
		if a == b {
			continue
		}
		links = append(links, GraphEdge{
			Source: nodes[a].ID,
			Target: nodes[b].ID,
			Value:  g.rng.Float64(),
		})
	}

	return Graph{Nodes: nodes, Links: links}
}
