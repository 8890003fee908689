// Package pipeline runs gift-exchange generation for the CLI and the API.
//
// The [Runner] validates a request, consults the result cache, calls the
// generator in [assign.Generate] and reports what happened through the
// logger and the hooks in pkg/observability. Both entry points share it so
// that caching and logging behave identically.
//
// # Caching
//
// Only seeded requests are cached. A request without a seed draws fresh
// randomness on every run, so a stored result would misrepresent it.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	out, err := runner.Generate(ctx, req)
//	if err != nil {
//	    return err // malformed request or cache failure
//	}
//	if !out.Result.Success {
//	    fmt.Println(out.Result.Warning)
//	}
//	svg, err := pipeline.Render(ctx, out, pipeline.FormatSVG)
package pipeline

import (
	"time"

	"github.com/matzehuels/giftring/pkg/assign"
	"github.com/matzehuels/giftring/pkg/errors"
	"github.com/matzehuels/giftring/pkg/io"
)

// Output formats accepted by [Render].
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats lists every output format, in help-text order.
var ValidFormats = []string{FormatText, FormatJSON, FormatDOT, FormatSVG, FormatPNG}

// ValidateFormat checks that format is one of [ValidFormats].
func ValidateFormat(format string) error {
	for _, f := range ValidFormats {
		if f == format {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid output format %q (want one of %v)", format, ValidFormats)
}

// Output is the outcome of one [Runner.Generate] call.
type Output struct {
	// ID identifies this run in logs and API responses.
	ID string `json:"id"`

	// Request is the validated request.
	Request io.Request `json:"request"`

	// Result is the generator's result. A failed search is still a
	// Result, with Success false and a Reason code.
	Result assign.Result `json:"result"`

	Stats Stats `json:"stats"`

	// CacheHit reports whether Result came from the cache.
	CacheHit bool `json:"cache_hit"`
}

// Stats describes one run.
type Stats struct {
	Duration     time.Duration `json:"duration_ns"`
	Participants int           `json:"participants"`
	Cycles       int           `json:"cycles"`
}

// CycleReport is the cycle decomposition of an existing assignment.
type CycleReport struct {
	// Cycles lists each cycle's members by name in giving order.
	Cycles  [][]string `json:"cycles"`
	Lengths []int      `json:"lengths"`
}
