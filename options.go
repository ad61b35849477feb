package widgetstore

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultDegree is the btree degree used by the ordered index.
const DefaultDegree = 32

// IDGenerator produces practically unique widget identifiers.
type IDGenerator func() WidgetID

// Clock returns the current instant. It stamps LastModified.
type Clock func() time.Time

// Options configures a RepoImpl.
type Options struct {
	// IDGenerator defaults to uuid.New.
	IDGenerator IDGenerator
	// Clock defaults to time.Now.
	Clock Clock
	// Logger defaults to a logger that discards everything.
	Logger *log.Logger
	// Degree of the ordered index btree.
	Degree int
}

// Option mutates Options.
type Option func(*Options)

func WithIDGenerator(gen IDGenerator) Option {
	return func(o *Options) { o.IDGenerator = gen }
}

func WithClock(clock Clock) Option {
	return func(o *Options) { o.Clock = clock }
}

func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func WithDegree(degree int) Option {
	return func(o *Options) { o.Degree = degree }
}

// SetDefaults fills in every unset field.
func (o *Options) SetDefaults() {
	if o.IDGenerator == nil {
		o.IDGenerator = uuid.New
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Degree == 0 {
		o.Degree = DefaultDegree
	}
}

// Validate sets defaults and checks the result.
func (o *Options) Validate() error {
	o.SetDefaults()
	if o.Degree < 2 {
		return fmt.Errorf("btree degree must be at least 2, got %d: %w", o.Degree, ErrInvalidOptions)
	}
	return nil
}

// createConfig holds the per-call options of Create.
type createConfig struct {
	zIndex ZIndex
	onTop  bool
}

// CreateOption customizes a single Create call.
type CreateOption func(*createConfig)

// AtZIndex places the new widget at z, shifting occupants upwards.
func AtZIndex(z ZIndex) CreateOption {
	return func(c *createConfig) {
		c.zIndex = z
		c.onTop = false
	}
}

// OnTop places the new widget above every existing one (at 0 when the
// store is empty or everything sits below 0).
func OnTop() CreateOption {
	return func(c *createConfig) { c.onTop = true }
}
