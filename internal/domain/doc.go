// Package domain holds the study vocabulary shared by every layer: the
// option enums each feature accepts, their defaults and count bounds, the
// authenticated User, and the validation errors raised before a request
// reaches a provider.
package domain
