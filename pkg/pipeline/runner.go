package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/giftring/pkg/assign"
	"github.com/matzehuels/giftring/pkg/cache"
	"github.com/matzehuels/giftring/pkg/errors"
	"github.com/matzehuels/giftring/pkg/io"
	"github.com/matzehuels/giftring/pkg/observability"
)

const resultKeyType = "result"

// Runner executes generation requests with caching.
//
// A Runner holds no per-request state and is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds how long cached results live. Zero means no expiry.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means [cache.DefaultKeyer] and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Generate validates req and produces an assignment for it.
//
// The returned error covers malformed requests only; an infeasible or
// unsatisfied search is reported in Output.Result. Cache read and write
// failures are logged and otherwise ignored.
func (r *Runner) Generate(ctx context.Context, req io.Request) (*Output, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	shape, err := req.Shape.Shape()
	if err != nil {
		return nil, err
	}

	out := &Output{
		ID:      uuid.NewString(),
		Request: req,
	}
	start := time.Now()

	key := ""
	if req.Seed != 0 {
		hash, err := cache.HashJSON(req)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash request")
		}
		key = r.Keyer.ResultKey(hash)
		if res, ok := r.lookup(ctx, key); ok {
			out.Result = res
			out.CacheHit = true
		}
	}

	if !out.CacheHit {
		observability.Generator().OnGenerateStart(ctx, shape.String(), len(req.Participants))
		out.Result = assign.Generate(req.Participants, shape, req.Banned, req.Forced, req.Options())
		observability.Generator().OnGenerateComplete(ctx, shape.String(), out.Result.Attempts, out.Result.Success, time.Since(start))
		if key != "" {
			r.store(ctx, key, out.Result)
		}
	}

	out.Stats = Stats{
		Duration:     time.Since(start),
		Participants: len(req.Participants),
		Cycles:       len(out.Result.Cycles),
	}

	logger := r.Logger.With("id", out.ID)
	if out.Result.Success {
		logger.Info("generated assignment",
			"participants", len(req.Participants),
			"shape", shape,
			"cycles", len(out.Result.Cycles),
			"attempts", out.Result.Attempts,
			"cached", out.CacheHit,
			"duration", out.Stats.Duration)
	} else {
		logger.Warn("generation did not succeed",
			"participants", len(req.Participants),
			"shape", shape,
			"reason", out.Result.Reason,
			"attempts", out.Result.Attempts)
	}
	if out.Result.Warning != "" {
		logger.Debug("warning", "text", out.Result.Warning)
	}
	return out, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (assign.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return assign.Result{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, resultKeyType)
		return assign.Result{}, false
	}

	var res assign.Result
	if err := json.Unmarshal(data, &res); err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "key", key, "error", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, resultKeyType)
		return assign.Result{}, false
	}
	observability.Cache().OnCacheHit(ctx, resultKeyType)
	r.Logger.Debug("cache hit", "key", key)
	return res, true
}

func (r *Runner) store(ctx context.Context, key string, res assign.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		r.Logger.Warn("cannot encode result for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, resultKeyType, len(data))
}

// Cycles decomposes an existing assignment into its cycles. The pairings
// must name every participant exactly once as giver and once as receiver.
func (r *Runner) Cycles(a io.Assignment) (*CycleReport, error) {
	if err := errors.ValidateParticipants(a.Participants); err != nil {
		return nil, err
	}
	if !assign.IsPermutation(a.Pairings, a.Participants) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"pairings do not form a complete assignment of %d participants", len(a.Participants))
	}

	report := &CycleReport{}
	for _, c := range assign.DetectCycles(a.Pairings, a.Participants) {
		names := make([]string, len(c))
		for i, idx := range c {
			names[i] = a.Participants[idx]
		}
		report.Cycles = append(report.Cycles, names)
		report.Lengths = append(report.Lengths, len(c))
	}
	r.Logger.Debug("detected cycles", "participants", len(a.Participants), "cycles", len(report.Cycles))
	return report, nil
}

// String formats a report as one "A → B → A" line per cycle.
func (c *CycleReport) String() string {
	var b strings.Builder
	for _, names := range c.Cycles {
		b.WriteString(strings.Join(names, " → "))
		b.WriteString(" → ")
		b.WriteString(names[0])
		b.WriteByte('\n')
	}
	return b.String()
}
