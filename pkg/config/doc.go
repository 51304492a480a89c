// Package config defines headline's settings model and loads it with koanf.
//
// Configuration is layered: embedded defaults (defaults.toml) are loaded
// first, then an optional vault-level .headline.toml or headline.toml
// overrides them. The merged result is decoded into a typed Settings struct
// and validated.
//
// Settings is a plain value type. Components never reach into a shared
// mutable configuration object; callers take a Settings snapshot and pass it
// (or the relevant sub-struct) into each evaluator call. Components that
// need to react to a settings reload register a callback via Subscribe.
package config
