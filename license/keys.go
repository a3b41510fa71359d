package license

import (
	"os"
	"path/filepath"
	"strings"
)

// loadLicenseKey resolves a token in the documented order: the
// CONTRACT_TESTER_LICENSE env var, then CONTRACT_TESTER_LICENSE_FILE, then
// ./license.key, then ~/.contract_tester/license.key.
func loadLicenseKey() (string, string) {
	if env := strings.TrimSpace(os.Getenv("CONTRACT_TESTER_LICENSE")); env != "" {
		return env, "env"
	}

	if envPath := os.Getenv("CONTRACT_TESTER_LICENSE_FILE"); envPath != "" {
		if key, ok := readKeyFile(envPath); ok {
			return key, "file"
		}
	}

	for _, path := range licenseLocations() {
		if key, ok := readKeyFile(path); ok {
			return key, "file"
		}
	}

	return "", ""
}

func licenseLocations() []string {
	cwdKey := "license.key"
	home, err := os.UserHomeDir()
	if err != nil {
		return []string{cwdKey}
	}
	return []string{cwdKey, filepath.Join(home, ".contract_tester", "license.key")}
}

func readKeyFile(path string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", false
	}
	return key, true
}

// publicKeyPEM returns the configured verifier key, falling back to the
// built-in default.
func publicKeyPEM() string {
	if env := os.Getenv("CONTRACT_TESTER_LICENSE_PUBLIC_KEY"); env != "" {
		return env
	}
	return DefaultPublicKeyPEM
}
