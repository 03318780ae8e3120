// Package config loads server, identity and provider settings from
// environment variables and an optional YAML file, applies defaults and
// validates the result. The provider key names used by hosted deployments
// (GROQ_API_KEY, GEMINI_API_KEY and friends) are accepted as aliases.
package config
