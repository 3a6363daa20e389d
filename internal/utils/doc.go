// Package utils contains small helpers shared across the module: JSON
// stringification and truncation for log output, and reasoning-trace
// stripping for raw model replies.
package utils
