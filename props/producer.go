// Package props produces merged key/value properties from local values and
// external locations, behind the same singleton/prototype guard the core
// production strategies use. Dotenv files are read with godotenv; files with
// a .yaml or .yml extension are parsed as YAML mappings and flattened to
// dotted keys.
package props

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/anoideaopen/factory/core"
	"github.com/anoideaopen/factory/core/contract"
	"github.com/anoideaopen/factory/core/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Option represents a function that applies configuration options to a
// properties producer.
type Option func(p *Producer) error

// WithLocal sets the locally configured property values.
func WithLocal(values map[string]string) Option {
	return func(p *Producer) error {
		p.local = values
		return nil
	}
}

// WithLocation appends property file locations, merged in the given order so
// later locations override earlier ones.
func WithLocation(paths ...string) Option {
	return func(p *Producer) error {
		p.locations = append(p.locations, paths...)
		return nil
	}
}

// WithLocalOverride makes local values override values loaded from
// locations. By default loaded values win.
func WithLocalOverride() Option {
	return func(p *Producer) error {
		p.localOverride = true
		return nil
	}
}

// WithIgnoreMissing skips locations that do not exist instead of failing.
func WithIgnoreMissing() Option {
	return func(p *Producer) error {
		p.ignoreMissing = true
		return nil
	}
}

// WithPrototype switches the producer to prototype mode, re-reading and
// re-merging all sources on every Produce call.
func WithPrototype() Option {
	return func(p *Producer) error {
		p.singleton = false
		return nil
	}
}

// Producer merges properties from its local values and its locations. In
// singleton mode (the default) the merge runs once during Init and every
// Produce call returns the cached result; in prototype mode every Produce
// call re-reads the locations. Its lifecycle follows the core producer:
// reading an unready singleton fails with core.ErrNotReady, a failed setup
// is terminal, and Init is callable once.
type Producer struct {
	local         map[string]string
	locations     []string
	localOverride bool
	ignoreMissing bool
	singleton     bool

	mu          sync.RWMutex
	initialized bool
	state       contract.State
	cached      map[string]string
	setupErr    error
}

var _ contract.Producer = (*Producer)(nil)

// NewProducer builds a properties producer from the given options.
func NewProducer(opts ...Option) (*Producer, error) {
	p := &Producer{
		singleton: true,
		state:     contract.StateUnprepared,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Init validates the configuration and, in singleton mode, merges all
// sources immediately and caches the result. A hosting container calls it
// exactly once; a failed merge leaves the producer permanently unready.
func (p *Producer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return core.ErrAlreadyInitialized
	}
	p.initialized = true

	p.state = contract.StatePrepared

	if !p.singleton {
		return nil
	}

	merged, err := p.merge()
	if err != nil {
		p.setupErr = err
		p.state = contract.StateFailed
		logger.Logger().WithError(err).Error("merging properties failed")

		return err
	}

	p.cached = merged
	p.state = contract.StateReady

	return nil
}

// Produce returns the merged properties as a map[string]string. Singleton
// mode returns the map cached during Init, the identical value on every
// call; prototype mode re-reads and re-merges the sources per call. Both
// modes require a prior Init.
func (p *Producer) Produce() (any, error) {
	if !p.singleton {
		p.mu.RLock()
		initialized := p.initialized
		p.mu.RUnlock()

		if !initialized {
			return nil, fmt.Errorf("%w: producer is not initialized", core.ErrInvocation)
		}

		return p.merge()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	switch p.state {
	case contract.StateReady:
		return p.cached, nil
	case contract.StateFailed:
		return nil, fmt.Errorf("%w: setup failed: %w", core.ErrNotReady, p.setupErr)
	default:
		return nil, core.ErrNotReady
	}
}

// Properties is Produce with a typed result.
func (p *Producer) Properties() (map[string]string, error) {
	value, err := p.Produce()
	if err != nil {
		return nil, err
	}

	return value.(map[string]string), nil //nolint:forcetypeassert
}

// ResultType reports the produced type, map[string]string.
func (p *Producer) ResultType() reflect.Type {
	return reflect.TypeOf(map[string]string(nil))
}

// IsSingleton reports whether Produce returns a shared cached value.
func (p *Producer) IsSingleton() bool {
	return p.singleton
}

// State returns the producer's lifecycle state.
func (p *Producer) State() contract.State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.state
}

// merge builds the combined property map. By default local values are laid
// down first so loaded values override them; with localOverride the order is
// reversed. Locations override each other left to right.
func (p *Producer) merge() (map[string]string, error) {
	merged := make(map[string]string, len(p.local))

	if !p.localOverride {
		for k, v := range p.local {
			merged[k] = v
		}
	}

	for _, location := range p.locations {
		values, err := load(location)
		if err != nil {
			if p.ignoreMissing && errors.Is(err, fs.ErrNotExist) {
				logger.Logger().WithField("location", location).Debug("skipping missing properties location")
				continue
			}

			return nil, err
		}

		for k, v := range values {
			merged[k] = v
		}
	}

	if p.localOverride {
		for k, v := range p.local {
			merged[k] = v
		}
	}

	return merged, nil
}

// load reads one location, picking the parser by file extension.
func load(location string) (map[string]string, error) {
	switch filepath.Ext(location) {
	case ".yaml", ".yml":
		return loadYAML(location)
	default:
		return godotenv.Read(location)
	}
}

// loadYAML parses a YAML mapping and flattens nested mappings and sequences
// to dotted keys: {server: {port: 8080}} becomes "server.port" and lists get
// index keys like "hosts.0". Scalars are rendered as strings.
func loadYAML(location string) (map[string]string, error) {
	raw, err := os.ReadFile(location)
	if err != nil {
		return nil, err
	}

	var root map[string]any
	if err = yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parsing '%s': %w", location, err)
	}

	values := make(map[string]string)
	for key, value := range root {
		flatten(key, value, values)
	}

	return values, nil
}

func flatten(key string, value any, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for k, nested := range v {
			flatten(key+"."+k, nested, out)
		}
	case []any:
		for i, nested := range v {
			flatten(fmt.Sprintf("%s.%d", key, i), nested, out)
		}
	case nil:
		out[key] = ""
	default:
		out[key] = fmt.Sprint(v)
	}
}
