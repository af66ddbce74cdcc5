// Package attacksim holds module-wide metadata for the attacksim tool.
package attacksim

// Version is the current attacksim release.
const Version = "v0.3.0"
