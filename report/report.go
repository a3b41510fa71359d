// Package report renders a validator.Result as a self-contained HTML page,
// grounded on the reference implementation's template (spec.md §4.8).
// html/template is used instead of hand-built strings so every field is
// escaped automatically.
package report

import (
	"bytes"
	"html/template"
	"sort"
	"time"

	"github.com/contract-tester/contract-tester/license"
	"github.com/contract-tester/contract-tester/validator"
	"github.com/google/uuid"
)

// GroupRow is one entry in the "Error groups" section.
type GroupRow struct {
	Key   string
	Count int
}

type pageData struct {
	RunID        string
	Generated    string
	Total        int
	ErrorCount   int
	StoppedEarly bool
	DemoMode     bool
	Groups       []GroupRow
	Details      []validator.ErrorDetail
	HasDetails   bool
	PlainErrors  []string
}

var pageTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Contract Tester Report</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 24px; color: #222; }
    h1 { margin-bottom: 8px; }
    .meta { margin-bottom: 16px; color: #555; }
    .pill { display: inline-block; padding: 2px 8px; border-radius: 12px; background: #eee; }
    .err { color: #b00020; }
    .hint { color: #555; font-size: 0.9em; margin-top: 4px; }
    .banner { padding: 10px 12px; border-radius: 6px; background: #fff3cd; color: #6b4f00; margin: 12px 0; }
    .promo { padding: 12px; border-radius: 6px; background: #eef6ff; color: #123a6b; margin: 12px 0; }
    .promo strong { display: block; margin-bottom: 4px; }
  </style>
</head>
<body>
  <h1>Contract Tester Report</h1>
  {{if .DemoMode}}
  <div class="banner"><strong>Demo mode:</strong> report limited by license restrictions.</div>
  <div class="promo"><strong>Upgrade to Pro</strong>Remove demo limits, unlock unlimited reports, and export full results.</div>
  {{end}}
  <div class="meta">
    <span class="pill">Generated: {{.Generated}}Z</span>
    <span class="pill">Run: {{.RunID}}</span>
  </div>
  <p><strong>Total checks:</strong> {{.Total}}</p>
  <p><strong>Errors:</strong> <span class="err">{{.ErrorCount}}</span></p>
  <p><strong>Stopped early:</strong> {{.StoppedEarly}}</p>
  <h2>Error groups</h2>
  <ol>
    {{if .Groups}}{{range .Groups}}<li><strong>{{.Key}}</strong> ({{.Count}})</li>
    {{end}}{{else}}<li>None</li>{{end}}
  </ol>
  <h2>Errors</h2>
  <ol>
    {{if .HasDetails}}{{range .Details}}<li>{{.Message}}{{if .Hint}}<div class="hint">Hint: {{.Hint}}</div>{{end}}</li>
    {{end}}{{else}}{{if .PlainErrors}}{{range .PlainErrors}}<li>{{.}}</li>
    {{end}}{{else}}<li>None</li>{{end}}{{end}}
  </ol>
</body>
</html>
`))

// Build renders an HTML report for result. licenseStatus determines whether
// the demo-mode banner is shown; a nil licenseStatus is treated as valid
// (no banner), matching the reference's default.
func Build(result validator.Result, licenseStatus *license.Status) (string, error) {
	demoMode := licenseStatus != nil && !licenseStatus.Valid

	groups := make([]GroupRow, 0, len(result.ErrorsGrouped))
	for key, msgs := range result.ErrorsGrouped {
		groups = append(groups, GroupRow{Key: key, Count: len(msgs)})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	data := pageData{
		RunID:        uuid.New().String(),
		Generated:    time.Now().UTC().Format("2006-01-02T15:04:05.000000"),
		Total:        result.TotalChecks,
		ErrorCount:   result.ErrorCount,
		StoppedEarly: result.StoppedEarly,
		DemoMode:     demoMode,
		Groups:       groups,
		Details:      result.ErrorDetails,
		HasDetails:   len(result.ErrorDetails) > 0,
		PlainErrors:  result.Errors,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
