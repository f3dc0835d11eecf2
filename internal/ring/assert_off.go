//go:build !debug

package ring

// assertGeometry is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertGeometry(string, int, int, int) {}
