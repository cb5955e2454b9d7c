// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Load is generic over the config struct type and caches the parsed result,
// so independent components can each load their own config section without
// re-reading the environment.
package config
