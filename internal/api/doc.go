// Package api exposes the study features and account endpoints over HTTP.
// Handlers decode and validate JSON (or multipart document uploads), call
// the study service or identity provider, and map domain, auth and gateway
// errors to status codes with messages that are safe to show users.
package api
