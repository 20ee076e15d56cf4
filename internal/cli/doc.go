// Package cli provides command-line interface setup and configuration
// for fanyi. It handles flag parsing, command creation, configuration
// management using cobra and viper, and log setup.
package cli
