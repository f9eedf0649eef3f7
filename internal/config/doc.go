// Package config loads server configuration from defaults, an optional
// YAML file, and environment variables, in that order of precedence.
//
// The file path comes from KUHI_MCP_CONFIG. Values inside the file may
// reference environment variables with ${VAR_NAME} syntax. Durations are
// written as Go duration strings ("30s", "5m") and parsed after loading.
package config
