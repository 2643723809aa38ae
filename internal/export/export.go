// Package export renders a full dump of the tracker state, including derived
// goal progress, as JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/goals"
	"github.com/julianstephens/tracklit/internal/models"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected json or yaml)", s)
	}
}

type GoalEntry struct {
	models.Goal `yaml:",inline"`
	Progress    goals.Result `json:"progress" yaml:"progress"`
}

type Document struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Timezone   string            `json:"timezone" yaml:"timezone"`
	Activities []models.Activity `json:"activities" yaml:"activities"`
	Goals      []GoalEntry       `json:"goals" yaml:"goals"`
}

// Build assembles a document. Goals are evaluated as of now and listed by name.
func Build(activities models.Activities, gs models.Goals, now time.Time) Document {
	doc := Document{
		Version:    constants.Version,
		ExportedAt: now,
		Timezone:   now.Location().String(),
		Activities: activities.Sorted(),
		Goals:      make([]GoalEntry, 0, len(gs)),
	}
	results := goals.EvaluateAll(gs, activities, now)
	for id, g := range gs {
		doc.Goals = append(doc.Goals, GoalEntry{Goal: g, Progress: results[id]})
	}
	sort.Slice(doc.Goals, func(i, j int) bool {
		if doc.Goals[i].Name != doc.Goals[j].Name {
			return doc.Goals[i].Name < doc.Goals[j].Name
		}
		return doc.Goals[i].ID < doc.Goals[j].ID
	})
	return doc
}

// Write encodes v, usually a Document or a progress snapshot
func Write(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
