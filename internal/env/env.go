// Package env resolves CRYPTOKIT_* environment variables, falling back to the
// legacy CRYPTOPALS_* names used by earlier releases.
package env

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	// Prefix is the current environment variable prefix.
	Prefix = "CRYPTOKIT_"
	// LegacyPrefix is still honoured but logs a deprecation warning.
	LegacyPrefix = "CRYPTOPALS_"
)

var (
	warnMu     sync.Mutex
	warnLogger = func(msg string, args ...any) { slog.Warn(msg, args...) }
	warnedKeys sync.Map
)

// Get looks up name under the current prefix and then under the legacy one.
// name is the suffix after the prefix, for example "LOG_LEVEL".
func Get(name string) (string, bool) {
	name = strings.ToUpper(name)
	return Lookup(Prefix+name, LegacyPrefix+name)
}

// Lookup returns the value of newKey if it exists. When only the legacy
// oldKey is present its value is returned and a warning is logged once per key.
func Lookup(newKey, oldKey string) (string, bool) {
	if v, ok := os.LookupEnv(newKey); ok {
		return v, true
	}
	if oldKey == "" {
		return "", false
	}
	if v, ok := os.LookupEnv(oldKey); ok {
		warnDeprecated(oldKey, newKey)
		return v, true
	}
	return "", false
}

func warnDeprecated(oldKey, newKey string) {
	onceIface, _ := warnedKeys.LoadOrStore(oldKey, &sync.Once{})
	onceIface.(*sync.Once).Do(func() {
		warnMu.Lock()
		logger := warnLogger
		warnMu.Unlock()
		logger("deprecated environment variable", "key", oldKey, "replacement", newKey)
	})
}

// ResetWarningsForTesting clears the once guards so a warning can fire again.
func ResetWarningsForTesting() {
	warnedKeys.Range(func(key, _ any) bool {
		warnedKeys.Delete(key)
		return true
	})
}

// SetWarnLoggerForTesting swaps the warning sink and returns a restore func.
func SetWarnLoggerForTesting(fn func(msg string, args ...any)) (restore func()) {
	warnMu.Lock()
	previous := warnLogger
	warnLogger = fn
	warnMu.Unlock()
	return func() {
		warnMu.Lock()
		warnLogger = previous
		warnMu.Unlock()
	}
}
