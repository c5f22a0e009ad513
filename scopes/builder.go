// Package scopes builds the three-tier AWS scope hierarchy in the
// platform: a provider umbrella under the root scope, one child per
// region, one grandchild per service seen in that region. Each tier's
// membership query matches the annotation fields the upload path
// populates.
package scopes

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aws-visibility/feed"
	"aws-visibility/internal/errors"
	"aws-visibility/internal/logging"
	"aws-visibility/policy"
)

// Client creates scopes in the platform
type Client interface {
	CreateScope(ctx context.Context, parentID, shortName, queryField, queryValue string) (string, error)
}

// Query fields for each tier. The values must match the labels the
// annotation upload writes, or the scopes never match any traffic.
const (
	providerField  = "user_SaaS Provider"
	regionField    = "user_SaaS Region"
	componentField = "user_SaaS Component"
)

// umbrellaName is both the short name and query value of the tier-1 scope
const umbrellaName = "AWS"

// Config configures a Builder
type Config struct {
	// Policy filters which regions and services get scopes
	Policy policy.Policy

	// Workers bounds concurrent region builds. Values below 2 keep the
	// build sequential in sorted region order.
	Workers int

	// FailFast aborts the whole build on the first failed creation
	// call instead of continuing to sibling scopes.
	FailFast bool
}

// Builder walks a region/service index and issues the scope creation
// calls tier by tier.
type Builder struct {
	client   Client
	policy   policy.Policy
	workers  int
	failFast bool
}

// NewBuilder creates a scope tree builder.
func NewBuilder(client Client, cfg *Config) *Builder {
	if cfg == nil {
		cfg = &Config{}
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Builder{
		client:   client,
		policy:   cfg.Policy,
		workers:  workers,
		failFast: cfg.FailFast,
	}
}

// Result summarizes one scope tree build
type Result struct {
	// Created counts successful creation calls, umbrella included
	Created int

	// Skipped counts regions and services rejected by policy
	Skipped int

	// Failures holds the isolated per-scope errors of a continuing build
	Failures []error
}

// Err combines the isolated failures into one error, nil when every
// creation call succeeded.
func (r *Result) Err() error {
	return multierr.Combine(r.Failures...)
}

// Build creates the scope tree under the given root scope. The umbrella
// scope is required before any descent, so its failure aborts the build.
// Region and component failures are isolated: the builder reports them
// and continues with the next sibling, unless FailFast is set.
func (b *Builder) Build(ctx context.Context, rootScopeID string, index feed.RegionServiceIndex) (*Result, error) {
	if rootScopeID == "" {
		return nil, errors.Config("root scope id is required")
	}

	umbrellaID, err := b.client.CreateScope(ctx, rootScopeID, umbrellaName, providerField, umbrellaName)
	if err != nil {
		logging.Error("failed to create umbrella scope", zap.Error(err))
		return nil, err
	}
	logging.Info("created umbrella scope",
		zap.String("short_name", umbrellaName),
		zap.String("scope_id", umbrellaID))

	acc := &accumulator{}
	acc.creation()

	regions := index.Regions()
	if b.workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.workers)
		for _, region := range regions {
			region := region
			g.Go(func() error {
				return b.buildRegion(gctx, acc, umbrellaID, region, index.Services(region))
			})
		}
		if err := g.Wait(); err != nil {
			return acc.result(), err
		}
	} else {
		for _, region := range regions {
			if err := b.buildRegion(ctx, acc, umbrellaID, region, index.Services(region)); err != nil {
				return acc.result(), err
			}
		}
	}

	result := acc.result()
	logging.Info("scope tree build finished",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", len(result.Failures)))
	return result, nil
}

// buildRegion creates one region scope and its component children. A
// non-nil return aborts the whole build; isolated failures are recorded
// on the accumulator instead.
func (b *Builder) buildRegion(ctx context.Context, acc *accumulator, umbrellaID, region string, services []string) error {
	if !b.policy.RegionAllowedOne(region) {
		acc.skip()
		logging.Debug("region rejected by policy", zap.String("region", region))
		return nil
	}

	regionID, err := b.client.CreateScope(ctx, umbrellaID, region, regionField, region)
	if err != nil {
		return b.report(acc, err, "failed to create region scope",
			zap.String("region", region))
	}
	acc.creation()
	logging.Info("created region scope",
		zap.String("region", region),
		zap.String("scope_id", regionID))

	for _, service := range services {
		if !b.policy.ServiceAllowedOne(service) {
			acc.skip()
			continue
		}

		if _, err := b.client.CreateScope(ctx, regionID, service, componentField, service); err != nil {
			if abort := b.report(acc, err, "failed to create component scope",
				zap.String("region", region), zap.String("service", service)); abort != nil {
				return abort
			}
			continue
		}
		acc.creation()
		logging.Info("created component scope",
			zap.String("region", region),
			zap.String("service", service))
	}
	return nil
}

// report logs a failed creation call. In fail-fast mode the error comes
// back to abort the build; otherwise it is recorded and nil returned so
// the build continues.
func (b *Builder) report(acc *accumulator, err error, msg string, fields ...zap.Field) error {
	logging.Error(msg, append(fields, zap.Error(err))...)
	if b.failFast {
		return err
	}
	acc.fail(err)
	return nil
}

// accumulator collects build counters across region workers
type accumulator struct {
	mu       sync.Mutex
	created  int
	skipped  int
	failures []error
}

func (a *accumulator) creation() {
	a.mu.Lock()
	a.created++
	a.mu.Unlock()
}

func (a *accumulator) skip() {
	a.mu.Lock()
	a.skipped++
	a.mu.Unlock()
}

func (a *accumulator) fail(err error) {
	a.mu.Lock()
	a.failures = append(a.failures, err)
	a.mu.Unlock()
}

func (a *accumulator) result() *Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return &Result{
		Created:  a.created,
		Skipped:  a.skipped,
		Failures: append([]error(nil), a.failures...),
	}
}
