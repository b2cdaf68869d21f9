// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog loads and indexes model and tokenizer descriptors.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/llmcore/model"
	"github.com/jeranaias/llmcore/validate"
)

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is a validated index of model and tokenizer descriptors.
// Safe for concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	models     map[string]model.ModelConfig
	tokenizers map[string]model.TokenizerConfig

	validator *validate.Validator
	logger    *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithValidator replaces the validator used at admission.
func WithValidator(v *validate.Validator) Option {
	return func(c *Catalog) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithLogger replaces the logger used at the loading boundary.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		models:     make(map[string]model.ModelConfig),
		tokenizers: make(map[string]model.TokenizerConfig),
		validator:  validate.New(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewWithBuiltins creates a catalog seeded with the built-in model
// registry.
func NewWithBuiltins(opts ...Option) (*Catalog, error) {
	c := New(opts...)
	for _, cfg := range model.Models {
		if err := c.Register(cfg); err != nil {
			return nil, fmt.Errorf("builtin model %q: %w", cfg.ID, err)
		}
	}
	return c, nil
}

// =============================================================================
// REGISTRATION
// =============================================================================

// Register validates a model descriptor and admits it. Registering an
// ID twice replaces the earlier descriptor.
func (c *Catalog) Register(cfg model.ModelConfig) error {
	res := c.validator.ValidateModelConfig(cfg)
	if !res.Ok() {
		return res.Err()
	}
	for _, w := range res.Warnings {
		c.logger.Warn("model descriptor warning",
			"model_id", cfg.ID,
			"field", w.Field,
			"detail", w.Message)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.models[res.Value.ID] = res.Value
	return nil
}

// RegisterTokenizer validates a tokenizer descriptor and admits it.
func (c *Catalog) RegisterTokenizer(cfg model.TokenizerConfig) error {
	res := c.validator.ValidateTokenizerConfig(cfg)
	if !res.Ok() {
		return res.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokenizers[res.Value.Name] = res.Value
	return nil
}

// =============================================================================
// LOOKUPS
// =============================================================================

// Model returns the descriptor for the given model ID.
func (c *Catalog) Model(id string) (model.ModelConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.models[id]
	return cfg, ok
}

// Tokenizer returns the descriptor for the given tokenizer name.
func (c *Catalog) Tokenizer(name string) (model.TokenizerConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.tokenizers[name]
	return cfg, ok
}

// Models returns all registered model descriptors, sorted by ID.
func (c *Catalog) Models() []model.ModelConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.ModelConfig, 0, len(c.models))
	for _, cfg := range c.models {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered models.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// =============================================================================
// FILE LOADING
// =============================================================================

// file is the on-disk descriptor set shape, shared by all formats.
type file struct {
	Models     []model.ModelConfig     `json:"models" toml:"models" yaml:"models"`
	Tokenizers []model.TokenizerConfig `json:"tokenizers" toml:"tokenizers" yaml:"tokenizers"`
}

// LoadFile reads a descriptor file and registers its contents. The
// format follows the extension: .toml, .yaml/.yml, or .json. Any
// invalid descriptor fails the whole load; nothing from a failed file
// is admitted.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if err := c.LoadBytes(data, ext); err != nil {
		return fmt.Errorf("catalog file %s: %w", path, err)
	}

	c.logger.Info("catalog file loaded", "path", path)
	return nil
}

// LoadBytes parses a descriptor set in the given format (".toml",
// ".yaml"/".yml", or ".json") and registers its contents.
func (c *Catalog) LoadBytes(data []byte, format string) error {
	var f file

	switch format {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported catalog format %q", format)
	}

	// Validate the whole set before admitting any of it.
	staged := New(WithValidator(c.validator), WithLogger(c.logger))
	for i, cfg := range f.Models {
		if err := staged.Register(cfg); err != nil {
			return fmt.Errorf("models[%d] (%q): %w", i, cfg.ID, err)
		}
	}
	for i, cfg := range f.Tokenizers {
		if err := staged.RegisterTokenizer(cfg); err != nil {
			return fmt.Errorf("tokenizers[%d] (%q): %w", i, cfg.Name, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for id, cfg := range staged.models {
		c.models[id] = cfg
	}
	for name, cfg := range staged.tokenizers {
		c.tokenizers[name] = cfg
	}
	return nil
}
