// Package firebase implements email/password sign-up and sign-in against the
// Identity Toolkit REST API. It is the only place user credentials are
// checked; the service itself stores no passwords.
package firebase
