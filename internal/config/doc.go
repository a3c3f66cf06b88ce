// Package config provides the configuration system for scrollstep.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by cmd)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← SCROLLSTEP_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # File Format
//
//	[scroll]
//	pixels_per_line = 24.0
//	timeout = "100ms"
//
//	[wheel]
//	lines_per_notch = 1.0
//	shift_horizontal = true
//
//	[logging]
//	level = "info"
//
//	[hook]
//	script = "~/.config/scrollstep/hook.lua"
//
// # Sub-packages
//
//   - watcher: fsnotify based live reload of the config file
package config
