// Package config loads booktrack's configuration.
//
// # Resolution order
//
//  1. Built-in defaults (Default)
//  2. The config file: the explicit path, else ~/.config/booktrack/config.toml.
//     A missing file is not an error. .yaml/.yml files are read as YAML.
//  3. An optional .env file, then BOOKTRACK_* environment variables (ApplyEnv)
//  4. Validate
//
// # Fields
//
//	base_url          = "http://localhost:3000"   # BOOKTRACK_BASE_URL
//	request_timeout   = "10s"                     # BOOKTRACK_REQUEST_TIMEOUT, "0s" = no limit
//	alert_duration    = "5s"                      # BOOKTRACK_ALERT_DURATION
//	placeholder_image = "https://via.placeholder.com/150"
//	log_file          = "~/.local/state/booktrack/booktrack.log"
//	log_level         = "info"                    # debug, info, warn, error
//
// One base URL serves both reads and writes. Tilde paths are expanded.
package config
