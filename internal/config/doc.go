// Package config loads wledit settings.
//
// Settings come from three layers, later ones overriding earlier:
//
//  1. Built-in defaults (Default)
//  2. The config file, by default $XDG_CONFIG_HOME/wledit/config.toml;
//     a path ending in .yaml or .yml is read as YAML with the same keys
//  3. WLEDIT_-prefixed environment variables
//
// A Watcher reloads the file when it changes on disk so the chord timeout,
// status duration, ^Y behavior and host keys can be tuned without a restart.
//
// Example file:
//
//	[chord]
//	timeout_ms = 3000
//
//	[clipboard]
//	history_size = 10
//	use_system = true
//
//	[editor]
//	delete_line = "to_end"   # or "whole_line"
//	tab_width = 4
//
//	[status]
//	duration_ms = 2500
//
//	[keys]
//	save = "F2"
//	quit = "F10"
//	find = "F3"
//
//	[log]
//	level = "info"
//	file = ""
package config
