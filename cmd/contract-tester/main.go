// Command contract-tester validates captured HTTP traffic against an
// OpenAPI document, or diffs two documents for breaking changes. CLI
// argument parsing is out of core engineering scope (spec.md §6), so this
// uses the standard library's flag package rather than a third-party
// argument-parsing framework — no such dependency appears anywhere in the
// reference corpus.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/contract-tester/contract-tester"
	"github.com/contract-tester/contract-tester/diff"
	"github.com/contract-tester/contract-tester/internal/clierr"
	"github.com/contract-tester/contract-tester/internal/termcolor"
	"github.com/contract-tester/contract-tester/license"
	"github.com/contract-tester/contract-tester/report"
	"github.com/contract-tester/contract-tester/specdoc"
	"github.com/contract-tester/contract-tester/validator"
)

// version is the CLI's reported version; overridable at build time via
// -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	color := termcolor.SupportsColor(os.Stdout)

	licenseStatusFlag := false
	licenseJSONFlag := false
	noColorTop := false

	top := flag.NewFlagSet("contract-tester", flag.ContinueOnError)
	top.SetOutput(os.Stderr)
	top.BoolVar(&licenseStatusFlag, "license-status", false, "Print license status and exit")
	top.BoolVar(&licenseJSONFlag, "license-json", false, "Output license status as JSON (use with --license-status)")
	top.BoolVar(&noColorTop, "no-color", false, "Disable ANSI colors")
	showVersion := top.Bool("version", false, "Print version and exit")

	if err := top.Parse(argv); err != nil {
		return 2
	}
	if noColorTop {
		color = false
	}

	verifier := license.NewVerifier()

	if *showVersion {
		status := verifier.Status()
		tag := "demo"
		if status.Valid {
			tag = "licensed"
		}
		fmt.Printf("contract-tester %s (%s)\n", version, tag)
		return 0
	}

	if licenseStatusFlag {
		return cmdLicenseStatus(verifier, licenseJSONFlag, color)
	}

	rest := top.Args()
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, termcolor.Err("error: the following arguments are required: command", color))
		return 2
	}

	var err error
	switch rest[0] {
	case "validate":
		err = cmdValidate(rest[1:], verifier, color)
	case "diff":
		err = cmdDiff(rest[1:], verifier, color)
	default:
		fmt.Fprintf(os.Stderr, "%s\n", termcolor.Err(fmt.Sprintf("error: unknown command %q", rest[0]), color))
		return 2
	}

	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, termcolor.Err(err.Error(), color))
	return clierr.ExitCode(err)
}

func cmdLicenseStatus(verifier *license.Verifier, asJSON, color bool) int {
	status := verifier.Status()
	if asJSON {
		out := licenseStatusJSON(status)
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
		if status.Valid {
			return 0
		}
		return 1
	}
	if status.Valid {
		suffix := ""
		if status.ExpiresOn != "" {
			suffix = fmt.Sprintf(" (expires %s)", status.ExpiresOn)
		}
		fmt.Println(termcolor.OK(fmt.Sprintf("License: valid%s", suffix), color))
		return 0
	}
	code := status.Code
	if code == "" {
		code = "unknown"
	}
	message := status.Message
	if message == "" {
		message = "Invalid license."
	}
	fmt.Println(termcolor.Warn(fmt.Sprintf("License: demo mode [%s] %s", code, message), color))
	return 1
}

func licenseStatusJSON(status license.Status) map[string]any {
	out := map[string]any{
		"valid":   status.Valid,
		"code":    string(status.Code),
		"message": status.Message,
		"source":  nullableString(status.Source),
		"key":     nullableString(status.Key),
	}
	if status.ExpiresOn != "" {
		out["expires_on"] = status.ExpiresOn
	}
	if status.Valid {
		out["subject"] = nullableString(status.Subject)
		out["plan"] = nullableString(status.Plan)
	}
	return out
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func cmdValidate(argv []string, verifier *license.Verifier, color bool) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	specPath := fs.String("spec", "", "Path to OpenAPI JSON/YAML")
	trafficPath := fs.String("traffic", "", "Path to HAR or normalized traffic JSON")
	ignoreUnknown := fs.Bool("ignore-unknown", false, "Ignore traffic entries that don't match any operation")
	reportPath := fs.String("report", "", "Write an HTML report to this path")
	maxErrors := fs.Int("max-errors", 0, "Stop after this many errors (useful for large logs)")
	noColor := fs.Bool("no-color", false, "Disable ANSI colors")
	jsonOut := fs.Bool("json", false, "Output JSON")
	if err := fs.Parse(argv); err != nil {
		return clierr.Wrap(2, err)
	}
	if *noColor {
		color = false
	}
	if *specPath == "" || *trafficPath == "" {
		return clierr.New(2, "--spec and --traffic are required")
	}
	maxErrorsSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "max-errors" {
			maxErrorsSet = true
		}
	})
	if maxErrorsSet && *maxErrors <= 0 {
		return clierr.New(2, "--max-errors must be a positive integer")
	}

	runner := contracttester.NewRunner(
		contracttester.WithSpecPath(*specPath),
		contracttester.WithTrafficPath(*trafficPath),
		contracttester.WithLicenseVerifier(verifier),
		contracttester.WithOptions(validator.Options{MaxErrors: *maxErrors, IgnoreUnknown: *ignoreUnknown}),
	)

	status := verifier.Status()
	if !status.Valid {
		fmt.Println(termcolor.Warn(fmt.Sprintf("Demo mode: limiting traffic to %d entries.", license.DemoMaxTraffic), color))
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		return clierr.Wrap(2, err)
	}

	if !status.Valid {
		doc, derr := specdoc.Load(context.Background(), *specPath)
		if derr == nil && len(doc.Paths()) > license.DemoMaxPaths {
			return clierr.New(2, "Demo mode: spec has more than %d paths. Add a license to run.", license.DemoMaxPaths)
		}
	}

	printValidateResult(result.Validation, status, *jsonOut, color)

	if *reportPath != "" {
		html, rerr := report.Build(result.Validation, &status)
		if rerr != nil {
			return clierr.Wrap(2, rerr)
		}
		if werr := os.WriteFile(*reportPath, []byte(html), 0o644); werr != nil {
			return clierr.Wrap(2, werr)
		}
		if !*jsonOut {
			fmt.Printf("\nReport written to %s\n", *reportPath)
		}
	}

	if result.Validation.ErrorCount > 0 {
		return clierr.New(1, "validation found %d error(s)", result.Validation.ErrorCount)
	}
	return nil
}

func printValidateResult(result validator.Result, status license.Status, asJSON, color bool) {
	if asJSON {
		out := map[string]any{
			"total_checks":   result.TotalChecks,
			"error_count":    result.ErrorCount,
			"errors":         result.Errors,
			"errors_grouped": result.ErrorsGrouped,
			"stopped_early":  result.StoppedEarly,
			"license_status": licenseStatusJSON(status),
		}
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
		return
	}

	fmt.Printf("%s %d\n", termcolor.Strong("Total checks:", color), result.TotalChecks)
	fmt.Printf("%s %d\n", termcolor.Strong("Errors:", color), result.ErrorCount)
	if result.StoppedEarly {
		fmt.Println(termcolor.Warn("Stopped early due to max error limit.", color))
	}
	if result.ErrorCount == 0 {
		return
	}

	groupKeys := make([]string, 0, len(result.ErrorsGrouped))
	for k := range result.ErrorsGrouped {
		groupKeys = append(groupKeys, k)
	}
	sort.Strings(groupKeys)
	if len(groupKeys) > 0 {
		fmt.Println("\nTop error groups:")
		for i, k := range groupKeys {
			if i >= 5 {
				break
			}
			fmt.Printf("- %s (%d)\n", k, len(result.ErrorsGrouped[k]))
		}
	}

	fmt.Println("\nTop errors:")
	if len(result.ErrorDetails) > 0 {
		for i, item := range result.ErrorDetails {
			if i >= 10 {
				break
			}
			if item.Hint != "" {
				fmt.Printf("- %s (hint: %s)\n", item.Message, item.Hint)
			} else {
				fmt.Printf("- %s\n", item.Message)
			}
		}
		return
	}
	for i, e := range result.Errors {
		if i >= 10 {
			break
		}
		fmt.Printf("- %s\n", e)
	}
}

func cmdDiff(argv []string, verifier *license.Verifier, color bool) error {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	oldPath := fs.String("old", "", "Old spec")
	newPath := fs.String("new", "", "New spec")
	noColor := fs.Bool("no-color", false, "Disable ANSI colors")
	jsonOut := fs.Bool("json", false, "Output JSON")
	if err := fs.Parse(argv); err != nil {
		return clierr.Wrap(2, err)
	}
	if *noColor {
		color = false
	}
	if *oldPath == "" || *newPath == "" {
		return clierr.New(2, "--old and --new are required")
	}

	ctx := context.Background()
	oldDoc, err := specdoc.Load(ctx, *oldPath)
	if err != nil {
		return clierr.Wrap(2, err)
	}
	newDoc, err := specdoc.Load(ctx, *newPath)
	if err != nil {
		return clierr.Wrap(2, err)
	}

	status := verifier.Status()
	if !status.Valid {
		oldCount, newCount := len(oldDoc.Paths()), len(newDoc.Paths())
		maxCount := oldCount
		if newCount > maxCount {
			maxCount = newCount
		}
		if maxCount > license.DemoMaxPaths {
			return clierr.New(2, "Demo mode: specs have more than %d paths. Add a license to run.", license.DemoMaxPaths)
		}
		fmt.Println(termcolor.Warn(fmt.Sprintf("Demo mode: limited to specs with up to %d paths.", license.DemoMaxPaths), color))
	}

	result := diff.Compare(oldDoc.Paths(), newDoc.Paths())

	if *jsonOut {
		out := map[string]any{"breaking_changes": result.BreakingChanges}
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
	} else {
		fmt.Println(termcolor.Strong("Breaking changes:", color))
		if len(result.BreakingChanges) == 0 {
			fmt.Println("- " + termcolor.OK("None", color))
		}
		for _, item := range result.BreakingChanges {
			fmt.Printf("- %s\n", item)
		}
	}

	if len(result.BreakingChanges) > 0 {
		return clierr.New(1, "diff found %d breaking change(s)", len(result.BreakingChanges))
	}
	return nil
}
