//go:build debug

package ring

import "fmt"

// assertGeometry panics if offset/size disagree with the array bounds.
// Only enabled with -tags debug.
func assertGeometry(method string, offset, size, capacity int) {
	if size < 0 || size > capacity {
		panic(fmt.Sprintf("%s: size %d outside [0, %d]", method, size, capacity))
	}
	if capacity > 0 && (offset < 0 || offset >= capacity) {
		panic(fmt.Sprintf("%s: offset %d outside [0, %d)", method, offset, capacity))
	}
}
