// Package config loads the engine configuration.
//
// Settings are layered, later layers overriding earlier ones:
//
//  1. built-in defaults
//  2. the user file, ~/.config/secretsui/config.yaml
//  3. the project file, .secretsui/config.yaml in the working directory
//  4. SECRETSUI_* environment variables
//
// Command-line flags are applied on top by the caller.
package config
