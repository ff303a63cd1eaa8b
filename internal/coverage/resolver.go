package coverage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/vendorlink/vendorlink-backend/pkg/errors"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
	"github.com/vendorlink/vendorlink-backend/pkg/redis"
)

// StateSet holds normalized state codes resolved from coverage areas.
type StateSet map[string]struct{}

// Contains reports whether the set holds the normalized form of state.
func (s StateSet) Contains(state string) bool {
	_, ok := s[NormalizeState(state)]
	return ok
}

// NormalizeState canonicalizes a state value for comparison.
func NormalizeState(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}

// Cache is the subset of the redis client the resolver uses. A nil cache
// disables caching entirely; resolution stays correct either way.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CoverageKey(areaID string) string
}

// Resolver translates coverage-area identities into the set of states they
// span. Resolution is a pure lookup and idempotent; the redis cache is an
// efficiency concern only.
type Resolver interface {
	Resolve(ctx context.Context, areaIDs []uuid.UUID) (StateSet, error)
}

type resolver struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewResolver wires the coverage resolver. cache may be nil.
func NewResolver(repo Repository, cache Cache, cacheTTL time.Duration, logg *logger.Logger) (Resolver, error) {
	if repo == nil {
		return nil, fmt.Errorf("coverage repository required")
	}
	return &resolver{repo: repo, cache: cache, cacheTTL: cacheTTL, logg: logg}, nil
}

func (r *resolver) Resolve(ctx context.Context, areaIDs []uuid.UUID) (StateSet, error) {
	states := StateSet{}
	if len(areaIDs) == 0 {
		return states, nil
	}

	missing := make([]uuid.UUID, 0, len(areaIDs))
	for _, id := range areaIDs {
		if cached, ok := r.cachedStates(ctx, id); ok {
			for _, state := range cached {
				states[NormalizeState(state)] = struct{}{}
			}
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return states, nil
	}

	areas, err := r.repo.FindByIDs(ctx, missing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coverage areas")
	}
	for _, area := range areas {
		for _, state := range area.States {
			states[NormalizeState(state)] = struct{}{}
		}
		r.storeStates(ctx, area.ID, area.States)
	}
	return states, nil
}

func (r *resolver) cachedStates(ctx context.Context, areaID uuid.UUID) ([]string, bool) {
	if r.cache == nil {
		return nil, false
	}
	raw, err := r.cache.Get(ctx, r.cache.CoverageKey(areaID.String()))
	if err != nil {
		if !errors.Is(err, redis.Nil) && r.logg != nil {
			r.logg.Warn(ctx, "coverage cache read failed")
		}
		return nil, false
	}
	var states []string
	if err := json.Unmarshal([]byte(raw), &states); err != nil {
		return nil, false
	}
	return states, true
}

func (r *resolver) storeStates(ctx context.Context, areaID uuid.UUID, states []string) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(states)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, r.cache.CoverageKey(areaID.String()), string(raw), r.cacheTTL); err != nil && r.logg != nil {
		r.logg.Warn(ctx, "coverage cache write failed")
	}
}
