package contracttester

import (
	"github.com/contract-tester/contract-tester/internal/advisory"
	"github.com/contract-tester/contract-tester/license"
	"github.com/contract-tester/contract-tester/validator"
)

// RunResult is the outcome of a full Runner.Run call: the validation
// result plus the license status that gated it and any demo-mode
// advisories raised along the way.
type RunResult struct {
	Validation validator.Result

	// License is the status of the license key used for this run.
	License license.Status

	// Advisories contains informational, non-fatal issues (demo-mode caps,
	// truncation). These are advisory only and do not indicate failure.
	Advisories advisory.List
}
