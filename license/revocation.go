package license

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// revocationLocations returns the file(s) to union for the revoked-token
// set: CONTRACT_TESTER_REVOKED_FILE alone if set, otherwise both ./revoked_licenses.txt and
// ~/.contract_tester/revoked_licenses.txt.
func revocationLocations() []string {
	if envPath := os.Getenv("CONTRACT_TESTER_REVOKED_FILE"); envPath != "" {
		return []string{envPath}
	}
	locations := []string{"revoked_licenses.txt"}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".contract_tester", "revoked_licenses.txt"))
	}
	return locations
}

// loadRevocations unions every revocation file's non-blank, non-comment
// lines into a set of revoked fingerprints/jtis.
func loadRevocations() map[string]struct{} {
	out := make(map[string]struct{})
	for _, path := range revocationLocations() {
		readRevocations(path, out)
	}
	return out
}

func readRevocations(path string, out map[string]struct{}) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out[line] = struct{}{}
	}
}
