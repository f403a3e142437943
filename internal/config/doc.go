// Package config loads and validates the localstt service configuration.
//
// Configuration is layered: a config.yml file (searched in standard
// locations), a .env file, and environment variables, with the
// environment taking precedence. All settings are deployment-time;
// nothing here changes per request.
//
// The original deployment's WHISPER_MODEL and WHISPER_DEVICE variables
// are honored as aliases for engine.model and engine.device.
package config
