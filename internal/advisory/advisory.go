// Package advisory collects informational, non-fatal notices raised
// during a validation run — demo-mode caps, truncated traffic, and the
// like — that should surface to the user without affecting exit status.
package advisory

import "fmt"

// Code identifies a specific advisory type.
type Code string

const (
	// CodeDemoMode indicates the run is operating without a valid license.
	CodeDemoMode Code = "DEMO_MODE"

	// CodeTrafficTruncated indicates traffic records beyond the demo cap
	// were dropped before validation.
	CodeTrafficTruncated Code = "TRAFFIC_TRUNCATED"

	// CodePathsTruncated indicates spec paths beyond the demo cap were
	// dropped before validation.
	CodePathsTruncated Code = "PATHS_TRUNCATED"
)

// Advisory is one informational notice.
type Advisory interface {
	Code() Code
	Message() string
	String() string
}

type advisory struct {
	code    Code
	message string
}

func (a *advisory) Code() Code      { return a.code }
func (a *advisory) Message() string { return a.message }
func (a *advisory) String() string  { return fmt.Sprintf("[%s] %s", a.code, a.message) }

// New creates an Advisory with the given code and message.
func New(code Code, message string) Advisory {
	return &advisory{code: code, message: message}
}

// List is a collection of Advisory with helper methods. Advisories are
// informational and never change a run's exit status.
type List []Advisory

// Has returns true if any advisory matches code.
func (l List) Has(code Code) bool {
	for _, a := range l {
		if a.Code() == code {
			return true
		}
	}
	return false
}

// Append adds an advisory to the collection.
func (l *List) Append(a Advisory) {
	*l = append(*l, a)
}
