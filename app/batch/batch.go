// Package batch loads YAML files with lists of downloads to queue
package batch

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/umputun/yourtube/app/queue"
)

const defaultQuality = "best"

var qualityRe = regexp.MustCompile(`^(best|\d{3,4}p)$`)

//go:generate go run ./internal/schema schema.json

//go:embed schema.json
var embeddedSchemaData []byte

// Config is a batch file
type Config struct {
	Quality string          `yaml:"quality,omitempty" json:"quality,omitempty" jsonschema:"description=default quality for jobs without one,default=best,example=best,example=720p"`
	Jobs    []queue.Request `yaml:"jobs" json:"jobs" jsonschema:"required,minItems=1,description=downloads to queue"`
}

// Load reads, verifies and normalizes a batch file. Jobs without quality get the file default.
func Load(file string) (*Config, error) {
	data, err := os.ReadFile(file) //nolint:gosec // file from trusted options
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	cfg := Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", file, err)
	}

	if err := Verify(&cfg); err != nil {
		return nil, fmt.Errorf("invalid batch file %s: %w", file, err)
	}

	if cfg.Quality == "" {
		cfg.Quality = defaultQuality
	}
	for i := range cfg.Jobs {
		if cfg.Jobs[i].Quality == "" {
			cfg.Jobs[i].Quality = cfg.Quality
		}
	}
	return &cfg, nil
}

// Verify validates the config against the embedded JSON schema constraints
func Verify(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal(embeddedSchemaData, &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	if cfg.Quality != "" && !qualityRe.MatchString(cfg.Quality) {
		return fmt.Errorf("invalid default quality %q, expected best or resolution like 720p", cfg.Quality)
	}
	if len(cfg.Jobs) == 0 {
		return errors.New("at least one job is required")
	}
	for i, job := range cfg.Jobs {
		if job.URL == "" {
			return fmt.Errorf("job %d: url is required", i+1)
		}
		u, err := url.Parse(job.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("job %d: invalid url %q", i+1, job.URL)
		}
		if job.Quality != "" && !qualityRe.MatchString(job.Quality) {
			return fmt.Errorf("job %d: invalid quality %q, expected best or resolution like 720p", i+1, job.Quality)
		}
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	schema := jsonschema.Reflect(&Config{})
	schema.Title = "Yourtube Batch File Schema"
	schema.Description = "Schema for yourtube queue batch files"
	schema.Version = "1.0.0"
	return schema
}
