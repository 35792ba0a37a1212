// Package config provides glint's settings.
//
// Settings come from three layers, lowest priority first:
//
//	┌─────────────────────────────┐
//	│  3. Environment (GLINT_*)   │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config file             │  ← ~/.config/glint/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command-line flags are applied by the caller on top of the result.
//
// # Configuration Files
//
// TOML and YAML are both accepted; the format follows the extension:
//
//	# ~/.config/glint/config.toml
//	theme = "dusk"
//	language = ""        # empty: detect from the file
//
//	[completion]
//	min_prefix = 2
//	max_items = 10
//
//	[palette]
//	keyword = "#ff7b72"
//
//	[extensions]
//	".mjs" = "typescript"
//
//	[[themes]]
//	id = "dusk"
//	name = "Dusk"
//	background = "#1e1b2e"
//	text = "#e6e1f0"
//	caret = "#f5a97f"
//
// # Error Handling
//
//   - ParseError (from the loader package): the file could not be parsed
//   - TypeError: a value has the wrong type; matches ErrTypeMismatch
//   - ValidationError: a value is out of range or unknown; matches
//     ErrValidationFailed
//
// # Live Reload
//
// Watcher re-reads the file on change and hands the new Config, or the
// error, to a callback.
package config
