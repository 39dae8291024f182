// Package config provides configuration loading and management for scholargraph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c360studio/scholargraph/export"
	"github.com/c360studio/scholargraph/graph"
	"github.com/c360studio/scholargraph/populate"
	"github.com/c360studio/scholargraph/schema"
	"gopkg.in/yaml.v3"
)

// Config represents the complete scholargraph configuration
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Schema   SchemaConfig   `yaml:"schema"`
	Populate PopulateConfig `yaml:"populate"`
	Output   OutputConfig   `yaml:"output"`
	NATS     NATSConfig     `yaml:"nats"`
	Neo4j    Neo4jConfig    `yaml:"neo4j"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Watch    WatchConfig    `yaml:"watch"`

	// switches records the boolean keys a parsed file sets explicitly
	switches *switches
}

// switches holds the boolean keys of one config file. A nil field means the
// file leaves the setting alone, so a later layer can turn a setting off.
type switches struct {
	Output struct {
		IncludeSchema *bool `yaml:"include_schema"`
	} `yaml:"output"`
	NATS struct {
		Embedded *bool `yaml:"embedded"`
		Publish  *bool `yaml:"publish"`
		KV       *bool `yaml:"kv"`
	} `yaml:"nats"`
}

// InputConfig locates the tabular sources. Patterns are doublestar globs
// resolved inside Dir; matching files of one source are read in order.
type InputConfig struct {
	Dir         string           `yaml:"dir"`
	Primary     string           `yaml:"primary"`
	Citations   string           `yaml:"citations"`
	Reviews     string           `yaml:"reviews"`
	Assignments string           `yaml:"assignments"`
	Columns     populate.Columns `yaml:"columns"`
}

// SchemaConfig selects the ontology profile
type SchemaConfig struct {
	// Profile is "base" or "strict"
	Profile string `yaml:"profile"`
}

// PopulateConfig configures identity and category choices
type PopulateConfig struct {
	// Identity is "natural" (DOI-derived paper IRIs) or "counter"
	Identity string `yaml:"identity"`
	// Chooser is "random" or "first"
	Chooser string `yaml:"chooser"`
	// Seed seeds the random chooser (0 = time-seeded)
	Seed uint64 `yaml:"seed"`
}

// OutputConfig configures the serialized graph
type OutputConfig struct {
	// Path is the output file ("-" = stdout)
	Path string `yaml:"path"`
	// Format is "turtle", "ntriples" or "jsonld"
	Format string `yaml:"format"`
	// IncludeSchema prepends the ontology to the individuals
	IncludeSchema bool `yaml:"include_schema"`
	// Prefixes adds Turtle prefix declarations (prefix -> namespace IRI)
	Prefixes map[string]string `yaml:"prefixes,omitempty"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = use embedded server when enabled)
	URL string `yaml:"url"`
	// Embedded indicates whether to use embedded NATS
	Embedded bool `yaml:"embedded"`
	// Publish sends one graph-ingest message per node
	Publish bool `yaml:"publish"`
	// Subject overrides the graph-ingest subject
	Subject string `yaml:"subject"`
	// KV stores node records in JetStream KV
	KV bool `yaml:"kv"`
}

// Enabled reports whether any NATS sink is configured.
func (n NATSConfig) Enabled() bool {
	return n.Publish || n.KV
}

// Neo4jConfig configures the Neo4j sink (empty URI disables it)
type Neo4jConfig struct {
	URI       string `yaml:"uri"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database"`
	BatchSize int    `yaml:"batch_size"`
}

// MetricsConfig configures the prometheus listener used in watch mode
type MetricsConfig struct {
	// Addr is the listen address (empty = disabled)
	Addr string `yaml:"addr"`
}

// WatchConfig configures re-runs on input changes
type WatchConfig struct {
	// Debounce coalesces bursts of file events
	Debounce time.Duration `yaml:"debounce"`
	// MinInterval is the minimum time between two runs
	MinInterval time.Duration `yaml:"min_interval"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Dir:         ".",
			Primary:     "data.csv",
			Citations:   "citations.csv",
			Reviews:     "reviews.csv",
			Assignments: "reviewers.csv",
			Columns:     populate.DefaultColumns(),
		},
		Schema: SchemaConfig{
			Profile: string(schema.ProfileBase),
		},
		Populate: PopulateConfig{
			Identity: string(populate.IdentityNaturalKey),
			Chooser:  "random",
		},
		Output: OutputConfig{
			Path:   "graph.ttl",
			Format: string(export.FormatTurtle),
		},
		NATS: NATSConfig{
			Embedded: false,
			Subject:  "",
		},
		Watch: WatchConfig{
			Debounce:    500 * time.Millisecond,
			MinInterval: 5 * time.Second,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Input.Primary == "" {
		return fmt.Errorf("input.primary is required")
	}
	if _, err := schema.ForProfile(schema.Profile(c.Schema.Profile)); err != nil {
		return fmt.Errorf("schema.profile: %w", err)
	}
	if _, err := populate.ParseIdentityMode(c.Populate.Identity); err != nil {
		return fmt.Errorf("populate.identity: %w", err)
	}
	switch c.Populate.Chooser {
	case "", "random", "first":
	default:
		return fmt.Errorf("populate.chooser must be random or first")
	}
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if s := c.NATS.Subject; s != "" {
		if !strings.HasPrefix(s, graph.GraphSubjectPrefix) || strings.ContainsAny(s, "*> \t") {
			return fmt.Errorf("nats.subject must be a literal subject under %q", graph.GraphSubjectPrefix)
		}
		if s == export.RDFExportSubject {
			return fmt.Errorf("nats.subject must differ from %s", export.RDFExportSubject)
		}
	}
	if c.NATS.Enabled() && c.NATS.URL == "" && !c.NATS.Embedded {
		return fmt.Errorf("nats.url is required when nats.publish or nats.kv is set without nats.embedded")
	}
	if c.Neo4j.BatchSize < 0 {
		return fmt.Errorf("neo4j.batch_size must not be negative")
	}
	if c.Watch.Debounce < 0 || c.Watch.MinInterval < 0 {
		return fmt.Errorf("watch durations must not be negative")
	}
	return nil
}

// Chooser builds the configured category chooser.
func (c *Config) Chooser() populate.CategoryChooser {
	if c.Populate.Chooser == "first" {
		return populate.FirstChooser{}
	}
	return populate.NewRandomChooser(c.Populate.Seed)
}


// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.Input.Columns = config.Input.Columns.WithDefaults()

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
// Booleans of a config read by the Loader follow the keys its file sets, so
// false overrides; otherwise a true value switches the setting on.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Input
	setString(&c.Input.Dir, other.Input.Dir)
	setString(&c.Input.Primary, other.Input.Primary)
	setString(&c.Input.Citations, other.Input.Citations)
	setString(&c.Input.Reviews, other.Input.Reviews)
	setString(&c.Input.Assignments, other.Input.Assignments)
	mergeColumns(&c.Input.Columns, other.Input.Columns)

	// Schema and population
	setString(&c.Schema.Profile, other.Schema.Profile)
	setString(&c.Populate.Identity, other.Populate.Identity)
	setString(&c.Populate.Chooser, other.Populate.Chooser)
	if other.Populate.Seed != 0 {
		c.Populate.Seed = other.Populate.Seed
	}

	// Output
	setString(&c.Output.Path, other.Output.Path)
	setString(&c.Output.Format, other.Output.Format)
	sw := other.switches
	if sw == nil {
		sw = switchesOf(other)
	}
	setBool(&c.Output.IncludeSchema, sw.Output.IncludeSchema)
	for prefix, iri := range other.Output.Prefixes {
		if c.Output.Prefixes == nil {
			c.Output.Prefixes = make(map[string]string)
		}
		c.Output.Prefixes[prefix] = iri
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
		c.NATS.Embedded = false
	}
	setBool(&c.NATS.Embedded, sw.NATS.Embedded)
	setBool(&c.NATS.Publish, sw.NATS.Publish)
	setBool(&c.NATS.KV, sw.NATS.KV)
	setString(&c.NATS.Subject, other.NATS.Subject)

	// Neo4j
	setString(&c.Neo4j.URI, other.Neo4j.URI)
	setString(&c.Neo4j.Username, other.Neo4j.Username)
	setString(&c.Neo4j.Password, other.Neo4j.Password)
	setString(&c.Neo4j.Database, other.Neo4j.Database)
	if other.Neo4j.BatchSize != 0 {
		c.Neo4j.BatchSize = other.Neo4j.BatchSize
	}

	// Metrics and watch
	setString(&c.Metrics.Addr, other.Metrics.Addr)
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Watch.MinInterval != 0 {
		c.Watch.MinInterval = other.Watch.MinInterval
	}
}

// switchesOf treats every true boolean of c as explicitly set.
func switchesOf(c *Config) *switches {
	on := func(v bool) *bool {
		if !v {
			return nil
		}
		return &v
	}
	sw := &switches{}
	sw.Output.IncludeSchema = on(c.Output.IncludeSchema)
	sw.NATS.Embedded = on(c.NATS.Embedded)
	sw.NATS.Publish = on(c.NATS.Publish)
	sw.NATS.KV = on(c.NATS.KV)
	return sw
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeColumns(dst *populate.Columns, src populate.Columns) {
	setString(&dst.Primary.DocumentType, src.Primary.DocumentType)
	setString(&dst.Primary.DOI, src.Primary.DOI)
	setString(&dst.Primary.Title, src.Primary.Title)
	setString(&dst.Primary.Abstract, src.Primary.Abstract)
	setString(&dst.Primary.Authors, src.Primary.Authors)
	setString(&dst.Primary.AuthorIDs, src.Primary.AuthorIDs)
	setString(&dst.Primary.SourceTitle, src.Primary.SourceTitle)
	setString(&dst.Primary.Year, src.Primary.Year)
	setString(&dst.Primary.Volume, src.Primary.Volume)
	setString(&dst.Primary.Keywords, src.Primary.Keywords)
	setString(&dst.Citations.Citing, src.Citations.Citing)
	setString(&dst.Citations.Cited, src.Citations.Cited)
	setString(&dst.Reviews.DOI, src.Reviews.DOI)
	setString(&dst.Reviews.Accepted, src.Reviews.Accepted)
	setString(&dst.Reviews.Review, src.Reviews.Review)
	setString(&dst.Assignments.DOI, src.Assignments.DOI)
	setString(&dst.Assignments.Reviewers, src.Assignments.Reviewers)
}
