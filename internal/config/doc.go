// Package config resolves crikey's settings.
//
// Settings come from four layers, lowest precedence first:
//
//  1. Built-in defaults (Default)
//  2. A config file, TOML or YAML by extension
//  3. CRIKEY_* environment variables
//  4. Command-line flags, applied by the caller
//
// A file looks like:
//
//	[inject]
//	backend = "uinput"   # uinput, sim or print
//	settle = "2s"
//
//	[typing]
//	delay = 0            # seconds, or a duration string
//	maxNameLength = 64
//
//	[logging]
//	level = "warn"
//
//	[stream]
//	watch = false        # reload this file while reading stdin
//
// Environment variables map by section and camelCase name, so
// CRIKEY_TYPING_MAX_NAME_LENGTH sets typing.maxNameLength. CRIKEY_BACKEND,
// CRIKEY_SLEEP and CRIKEY_LOG_LEVEL are shorthands, and CRIKEY_CONFIG
// names the file itself.
package config
