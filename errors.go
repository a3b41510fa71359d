package contracttester

import "errors"

// Configuration errors (returned by Runner.Run).
var (
	// ErrSpecPathRequired indicates no OpenAPI document path was configured.
	ErrSpecPathRequired = errors.New("contracttester: spec path is required")

	// ErrTrafficPathRequired indicates no traffic capture path was configured.
	ErrTrafficPathRequired = errors.New("contracttester: traffic path is required")
)
