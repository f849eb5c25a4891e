package pulse

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog bundles the static topic and emotion tables attached to every
// snapshot. The tables are constant across refreshes in this version.
type Catalog struct {
	Topics   []Topic
	Emotions []EmotionShare
}

// DefaultCatalog returns the built-in tables.
func DefaultCatalog() Catalog {
	return Catalog{
		Topics: []Topic{
			{Topic: "exam stress", ChangePct: 0.22, Mentions: 420},
			{Topic: "job market anxiety", ChangePct: 0.12, Mentions: 320},
			{Topic: "sleep issues", ChangePct: 0.08, Mentions: 210},
			{Topic: "financial pressure", ChangePct: 0.05, Mentions: 150},
		},
		Emotions: []EmotionShare{
			{Name: "sadness", Value: 0.38},
			{Name: "anger", Value: 0.12},
			{Name: "fear", Value: 0.18},
			{Name: "joy", Value: 0.10},
			{Name: "neutral", Value: 0.22},
		},
	}
}

type rawCatalog struct {
	Topics []struct {
		Topic     string  `yaml:"topic"`
		ChangePct float64 `yaml:"change_pct"`
		Mentions  int     `yaml:"mentions"`
	} `yaml:"topics"`
	Emotions []struct {
		Name  string  `yaml:"name"`
		Value float64 `yaml:"value"`
	} `yaml:"emotions"`
}

// LoadCatalog reads replacement tables from a YAML file and validates them.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return Catalog{}, fmt.Errorf("catalog requires a path")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	if len(raw.Topics) == 0 {
		return Catalog{}, fmt.Errorf("catalog %s: at least one topic is required", path)
	}
	if len(raw.Emotions) == 0 {
		return Catalog{}, fmt.Errorf("catalog %s: at least one emotion is required", path)
	}

	catalog := Catalog{
		Topics:   make([]Topic, 0, len(raw.Topics)),
		Emotions: make([]EmotionShare, 0, len(raw.Emotions)),
	}

	for _, t := range raw.Topics {
		if t.Topic == "" {
			return Catalog{}, fmt.Errorf("catalog %s: topic name must not be empty", path)
		}
		if t.Mentions < 0 {
			return Catalog{}, fmt.Errorf("catalog %s: topic %q has negative mentions", path, t.Topic)
		}
		catalog.Topics = append(catalog.Topics, Topic{
			Topic:     t.Topic,
			ChangePct: t.ChangePct,
			Mentions:  t.Mentions,
		})
	}

	for _, e := range raw.Emotions {
		if e.Name == "" {
			return Catalog{}, fmt.Errorf("catalog %s: emotion name must not be empty", path)
		}
		if e.Value < 0 || e.Value > 1 {
			return Catalog{}, fmt.Errorf("catalog %s: emotion %q value %.2f out of [0,1]", path, e.Name, e.Value)
		}
		catalog.Emotions = append(catalog.Emotions, EmotionShare{
			Name:  e.Name,
			Value: e.Value,
		})
	}

	return catalog, nil
}
