// Package contracttester wires OpenAPI document loading, traffic
// ingestion, license verification, and schema validation into a single
// entry point, following the teacher's functional-options construction
// style (Talav-openapi's NewAPI) adapted from spec generation to traffic
// validation.
package contracttester

import (
	"context"

	"github.com/contract-tester/contract-tester/internal/advisory"
	"github.com/contract-tester/contract-tester/license"
	"github.com/contract-tester/contract-tester/specdoc"
	"github.com/contract-tester/contract-tester/traffic"
	"github.com/contract-tester/contract-tester/validator"
)

// Runner holds the configuration for one validation run. Create instances
// with NewRunner; configure with functional options.
type Runner struct {
	SpecPath    string
	TrafficPath string
	Options     validator.Options

	verifier    *license.Verifier
	skipLicense bool
}

// Option configures a Runner using the functional options pattern.
type Option func(*Runner)

// WithSpecPath sets the OpenAPI document path.
func WithSpecPath(path string) Option {
	return func(r *Runner) { r.SpecPath = path }
}

// WithTrafficPath sets the traffic capture path.
func WithTrafficPath(path string) Option {
	return func(r *Runner) { r.TrafficPath = path }
}

// WithOptions merges opts onto the Runner's current validator options
// (max errors, unknown-operation handling), so that stacking several
// WithOptions calls composes rather than clobbers — non-zero fields in
// the later call win, matching validator.MergeOptions.
func WithOptions(opts validator.Options) Option {
	return func(r *Runner) { r.Options = validator.MergeOptions(r.Options, opts) }
}

// WithLicenseVerifier overrides the default environment-driven license
// verifier, primarily for tests.
func WithLicenseVerifier(v *license.Verifier) Option {
	return func(r *Runner) { r.verifier = v }
}

// WithoutLicenseGate disables demo-mode truncation entirely, useful for
// tests that don't want to depend on environment license state.
func WithoutLicenseGate() Option {
	return func(r *Runner) { r.skipLicense = true }
}

// NewRunner builds a Runner from opts.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		verifier: license.NewVerifier(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loads the configured spec and traffic, applies the demo-mode cap
// when no valid license is present, and validates every record.
func (r *Runner) Run(ctx context.Context) (RunResult, error) {
	if r.SpecPath == "" {
		return RunResult{}, ErrSpecPathRequired
	}
	if r.TrafficPath == "" {
		return RunResult{}, ErrTrafficPathRequired
	}

	doc, err := specdoc.Load(ctx, r.SpecPath)
	if err != nil {
		return RunResult{}, err
	}

	records, err := traffic.Load(ctx, r.TrafficPath)
	if err != nil {
		return RunResult{}, err
	}

	var status license.Status
	if r.skipLicense {
		status = license.Status{Valid: true, Code: license.CodeOK}
	} else {
		status = r.verifier.Status()
	}

	var advisories advisory.List
	paths := doc.Paths()

	if !status.Valid {
		advisories.Append(advisory.New(advisory.CodeDemoMode, status.Message))
		if len(records) > license.DemoMaxTraffic {
			advisories.Append(advisory.New(advisory.CodeTrafficTruncated, "traffic capture truncated to demo limit"))
			records = records[:license.DemoMaxTraffic]
		}
		if len(paths) > license.DemoMaxPaths {
			advisories.Append(advisory.New(advisory.CodePathsTruncated, "spec paths truncated to demo limit"))
			paths = truncatePaths(paths, license.DemoMaxPaths)
		}
	}

	result := validator.Run(ctx, paths, records, r.Options)

	return RunResult{Validation: result, License: status, Advisories: advisories}, nil
}

// truncatePaths returns at most n entries of paths. Map iteration order is
// unspecified, matching the demo cap's "some prefix of paths" semantics —
// there is no declared ordering to truncate against since OpenAPI path
// maps carry no sequence.
func truncatePaths(paths map[string]any, n int) map[string]any {
	out := make(map[string]any, n)
	for k, v := range paths {
		if len(out) >= n {
			break
		}
		out[k] = v
	}
	return out
}
