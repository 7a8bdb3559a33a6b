// Package store keeps the tracker's collections in memory and writes the
// whole collection back to its durable slot after every mutation.
//
// Stores are built once at startup and passed to whoever needs them. A store
// is not safe for concurrent use.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chaoscampaign/tracker/internal/codec"
	"github.com/chaoscampaign/tracker/internal/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Dependencies are shared by every store constructor.
type Dependencies struct {
	Backend storage.Backend
	// Key names the durable slot. Empty selects the store's default key.
	Key    string
	Logger *slog.Logger
	// Now stamps campaign timestamps. Defaults to time.Now.
	Now func() time.Time
	// MeterProvider receives the store.mutations counter. Defaults to the
	// global provider.
	MeterProvider metric.MeterProvider
}

// ErrNotFound is returned by operations that must report a missing parent
// as an error, such as adding a unit to a force that does not exist.
var ErrNotFound = errors.New("not found")

// Default slot keys.
const (
	DefaultCampaignsKey = "campaigns"
	DefaultBattlesKey   = "battles"
	DefaultForcesKey    = "chaos-campaign-forces"
	DefaultUnitsKey     = "chaos-campaign-units"
)

// Mutation outcomes recorded on the store.mutations counter.
const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeFailed   = "failed"
)

// collection is the ordered in-memory copy of one slot.
type collection[T any] struct {
	name    string
	key     string
	backend storage.Backend
	logger  *slog.Logger
	now     func() time.Time

	items []T
	id    func(T) string
	clone func(T) T

	mutations metric.Int64Counter
}

func newCollection[T any](
	name, defaultKey string,
	deps Dependencies,
	id func(T) string,
	clone func(T) T,
	decode func([]byte) (codec.Decoded[T], error),
) (*collection[T], error) {
	if deps.Backend == nil {
		return nil, fmt.Errorf("%s store: backend is required", name)
	}
	c := &collection[T]{
		name:    name,
		key:     deps.Key,
		backend: deps.Backend,
		logger:  deps.Logger,
		now:     deps.Now,
		items:   []T{},
		id:      id,
		clone:   clone,
	}
	if c.key == "" {
		c.key = defaultKey
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.logger = c.logger.With("collection", name, "key", c.key)

	counter, err := meter(deps.MeterProvider).Int64Counter(
		"store.mutations",
		metric.WithDescription("Number of store mutations by collection, operation and outcome"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store.mutations counter: %w", err)
	}
	c.mutations = counter

	if err := c.load(decode); err != nil {
		return nil, err
	}
	return c, nil
}

// load adopts the slot's contents. Only a backend error is returned; a
// missing or unreadable payload leaves the collection empty.
func (c *collection[T]) load(decode func([]byte) (codec.Decoded[T], error)) error {
	payload, ok, err := c.backend.Load(c.key)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.name, err)
	}
	if !ok {
		c.logger.Debug("No saved collection, starting empty")
		return nil
	}

	decoded, err := decode(payload)
	if err != nil {
		if errors.Is(err, codec.ErrMalformed) {
			c.logger.Warn("Ignoring malformed saved collection", "error", err)
			return nil
		}
		return fmt.Errorf("failed to decode %s: %w", c.name, err)
	}
	for _, d := range decoded.Dropped {
		c.logger.Warn("Dropped malformed entry", "path", d.Path, "field", d.Field, "reason", d.Reason)
	}
	c.items = decoded.Items
	c.logger.Debug("Loaded collection", "count", len(c.items))
	return nil
}

// commit persists next and, only if that succeeds, adopts it.
func (c *collection[T]) commit(next []T) error {
	payload, err := codec.Encode(next)
	if err != nil {
		return err
	}
	if err := c.backend.Save(c.key, payload); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.name, err)
	}
	c.items = next
	return nil
}

// snapshot returns a copy of the items that the caller may modify.
func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	for i, v := range c.items {
		out[i] = c.clone(v)
	}
	return out
}

func (c *collection[T]) index(id string) int {
	for i, v := range c.items {
		if c.id(v) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) get(id string) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.clone(c.items[i]), true
	}
	var zero T
	return zero, false
}

func (c *collection[T]) filter(keep func(T) bool) []T {
	out := []T{}
	for _, v := range c.items {
		if keep(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

func (c *collection[T]) append(v T) error {
	next := append(c.snapshot(), v)
	if err := c.commit(next); err != nil {
		c.record("add", outcomeFailed)
		return err
	}
	c.record("add", outcomeOK)
	return nil
}

// replace runs apply on a copy of the entity with the given id and commits
// the result. op names the operation in logs and metrics. Validation and
// persistence failures are logged and reported as absent.
func (c *collection[T]) replace(op, id string, apply func(T) (T, error)) (T, bool) {
	var zero T
	i := c.index(id)
	if i < 0 {
		c.record(op, outcomeNotFound)
		return zero, false
	}
	updated, ok := c.update(op, i, apply)
	if !ok {
		return zero, false
	}
	return updated, true
}

// update is replace for an entity already located at index i.
func (c *collection[T]) update(op string, i int, apply func(T) (T, error)) (T, bool) {
	var zero T
	id := c.id(c.items[i])
	updated, err := apply(c.clone(c.items[i]))
	if err != nil {
		c.logger.Warn("Rejected update", "op", op, "id", id, "error", err)
		c.record(op, outcomeInvalid)
		return zero, false
	}
	if err := c.set(op, i, updated); err != nil {
		c.logger.Error("Failed to persist update", "op", op, "id", id, "error", err)
		return zero, false
	}
	return c.clone(updated), true
}

// set commits v at index i.
func (c *collection[T]) set(op string, i int, v T) error {
	next := c.snapshot()
	next[i] = v
	if err := c.commit(next); err != nil {
		c.record(op, outcomeFailed)
		return err
	}
	c.record(op, outcomeOK)
	return nil
}

func (c *collection[T]) remove(id string) (bool, error) {
	i := c.index(id)
	if i < 0 {
		c.record("remove", outcomeNotFound)
		return false, nil
	}

	next := c.snapshot()
	next = append(next[:i], next[i+1:]...)
	if err := c.commit(next); err != nil {
		c.record("remove", outcomeFailed)
		return false, err
	}
	c.record("remove", outcomeOK)
	return true, nil
}

func (c *collection[T]) record(op, outcome string) {
	c.mutations.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("collection", c.name),
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}
