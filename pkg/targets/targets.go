package targets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	defaultTokenMethod    = "OPTIONS"
	defaultTokenField     = "token"
	defaultTokenEndpoint  = "/"
	defaultSubmitEndpoint = "/"
	defaultTimeoutSeconds = 15
)

// configFile represents the structure of the targets configuration file.
type configFile struct {
	Targets []Target `json:"targets" yaml:"targets"`
}

// Target describes one intake endpoint: where to fetch the bearer token and
// where to send the submission.
type Target struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	BaseURL        string            `json:"base_url" yaml:"base_url"`
	TokenEndpoint  string            `json:"token_endpoint" yaml:"token_endpoint"`
	TokenMethod    string            `json:"token_method" yaml:"token_method"`
	TokenField     string            `json:"token_field" yaml:"token_field"`
	SubmitEndpoint string            `json:"submit_endpoint" yaml:"submit_endpoint"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Registry materializes target definitions loaded from config files.
type Registry struct {
	mu      sync.RWMutex
	targets []Target
	idx     map[string]Target
}

// LoadRegistry loads the target registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("targets file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open targets file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Targets) == 0 {
		return nil, errors.New("targets file contains no targets entries")
	}

	reg := &Registry{
		targets: make([]Target, len(fileReg.Targets)),
		idx:     make(map[string]Target, len(fileReg.Targets)),
	}

	for i := range fileReg.Targets {
		cfg := sanitizeTarget(fileReg.Targets[i])
		if err := validateTarget(cfg); err != nil {
			return nil, fmt.Errorf("targets[%d]: %w", i, err)
		}
		if _, exists := reg.idx[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate target id %q", cfg.ID)
		}
		reg.targets[i] = cfg
		reg.idx[cfg.ID] = cfg
	}

	return reg, nil
}

// parseRegistry attempts to decode the targets file content.
func parseRegistry(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg configFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return configFile{}, errors.New("targets file format not recognized (expected YAML or JSON)")
}

// sanitizeTarget trims and defaults the target fields.
func sanitizeTarget(cfg Target) Target {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)

	cfg.TokenEndpoint = strings.TrimSpace(cfg.TokenEndpoint)
	if cfg.TokenEndpoint == "" {
		cfg.TokenEndpoint = defaultTokenEndpoint
	}
	cfg.TokenMethod = strings.ToUpper(strings.TrimSpace(cfg.TokenMethod))
	if cfg.TokenMethod == "" {
		cfg.TokenMethod = defaultTokenMethod
	}
	cfg.TokenField = strings.TrimSpace(cfg.TokenField)
	if cfg.TokenField == "" {
		cfg.TokenField = defaultTokenField
	}
	cfg.SubmitEndpoint = strings.TrimSpace(cfg.SubmitEndpoint)
	if cfg.SubmitEndpoint == "" {
		cfg.SubmitEndpoint = defaultSubmitEndpoint
	}
	cfg.Headers = sanitizeHeaders(cfg.Headers)
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}

	return cfg
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateTarget checks that required fields are present.
func validateTarget(cfg Target) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required for target %q", cfg.ID)
	}
	return nil
}

// ByID returns the target config by id.
func (r *Registry) ByID(id string) (Target, bool) {
	if r == nil {
		return Target{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Target{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.idx[id]
	return cfg, ok
}

// All returns all configured targets.
func (r *Registry) All() []Target {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Target, len(r.targets))
	copy(out, r.targets)
	return out
}
