package gomap

import (
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/parse"
)

// MapOption is an option for controlling the mapping process from Go to a
// document.
type MapOption interface {
	applyMap(*mapConfig)
}

// UnmapOption is an option for controlling the mapping process from a
// document to Go.
type UnmapOption interface {
	applyUnmap(*unmapConfig)
}

// Option applies in both directions.
type Option interface {
	MapOption
	UnmapOption
}

type mapConfig struct {
	Registry      *Registry
	EncodeOptions []encode.EncodeOption
}

type unmapConfig struct {
	Registry     *Registry
	ParseOptions []parse.ParseOption
}

func newMapConfig(opts []MapOption) *mapConfig {
	cfg := &mapConfig{}
	for _, opt := range opts {
		opt.applyMap(cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = Default()
	}
	return cfg
}

func newUnmapConfig(opts []UnmapOption) *unmapConfig {
	cfg := &unmapConfig{}
	for _, opt := range opts {
		opt.applyUnmap(cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = Default()
	}
	return cfg
}

type registryOption struct{ r *Registry }

func (o registryOption) applyMap(c *mapConfig)     { c.Registry = o.r }
func (o registryOption) applyUnmap(c *unmapConfig) { c.Registry = o.r }

// WithRegistry selects the registry used instead of Default().
func WithRegistry(r *Registry) Option {
	return registryOption{r: r}
}

type encodeOptions []encode.EncodeOption

func (o encodeOptions) applyMap(c *mapConfig) {
	c.EncodeOptions = append(c.EncodeOptions, o...)
}

// EncodeOptions passes opts through to encode.Encode.
func EncodeOptions(opts ...encode.EncodeOption) MapOption {
	return encodeOptions(opts)
}

type parseOptions []parse.ParseOption

func (o parseOptions) applyUnmap(c *unmapConfig) {
	c.ParseOptions = append(c.ParseOptions, o...)
}

// ParseOptions passes opts through to parse.Parse.
func ParseOptions(opts ...parse.ParseOption) UnmapOption {
	return parseOptions(opts)
}

// ToEncodeOptions extracts EncodeOptions from a slice of MapOptions.
func ToEncodeOptions(opts ...MapOption) []encode.EncodeOption {
	return newMapConfig(opts).EncodeOptions
}

// ToParseOptions extracts ParseOptions from a slice of UnmapOptions.
func ToParseOptions(opts ...UnmapOption) []parse.ParseOption {
	return newUnmapConfig(opts).ParseOptions
}
