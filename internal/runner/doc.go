// Package runner models hireable runners: archetypes, stat axes, hiring
// state, and the monotonic Ready → Injured → Dead life-cycle.
package runner
