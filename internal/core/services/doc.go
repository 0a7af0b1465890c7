// Package services implements the driving port interfaces.
// Services contain the rendering logic and orchestrate
// calls to driven ports (sources and display surfaces).
//
// Services are pure Go with no external dependencies. Everything here
// runs synchronously on the caller's goroutine; hosts dispatch UI
// events one at a time.
package services
