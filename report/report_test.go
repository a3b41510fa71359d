package report

import (
	"testing"

	"github.com/contract-tester/contract-tester/license"
	"github.com/contract-tester/contract-tester/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_NoErrors(t *testing.T) {
	t.Parallel()
	result := validator.Result{TotalChecks: 3, ErrorCount: 0}

	html, err := Build(result, nil)

	require.NoError(t, err)
	assert.Contains(t, html, "Total checks:")
	assert.Contains(t, html, "3")
	assert.Contains(t, html, "<li>None</li>")
	assert.NotContains(t, html, "Demo mode")
}

func TestBuild_DemoModeBanner(t *testing.T) {
	t.Parallel()
	result := validator.Result{TotalChecks: 1, ErrorCount: 0}
	status := &license.Status{Valid: false}

	html, err := Build(result, status)

	require.NoError(t, err)
	assert.Contains(t, html, "Demo mode")
	assert.Contains(t, html, "Upgrade to Pro")
}

func TestBuild_ErrorDetailsWithHint(t *testing.T) {
	t.Parallel()
	result := validator.Result{
		TotalChecks: 1,
		ErrorCount:  1,
		ErrorsGrouped: map[string][]string{
			"request.param.missing|GET|/x": {"Missing query parameter 'a'"},
		},
		ErrorDetails: []validator.ErrorDetail{
			{Key: "request.param.missing|GET|/x", Message: "Missing query parameter 'a'", Hint: "Add the required parameter."},
		},
	}

	html, err := Build(result, nil)

	require.NoError(t, err)
	assert.Contains(t, html, "Missing query parameter &#39;a&#39;")
	assert.Contains(t, html, "Hint: Add the required parameter.")
}

func TestBuild_EscapesHTMLInMessages(t *testing.T) {
	t.Parallel()
	result := validator.Result{
		TotalChecks: 1,
		ErrorCount:  1,
		Errors:      []string{"<script>alert(1)</script>"},
	}

	html, err := Build(result, nil)

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
