// Package service contains the application use cases. StudyService turns
// each study feature's parameters into a prompt, runs it through the
// completion gateway and, for structured features, parses the result into
// records.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete provider: the gateway is seen only through the
// Generator interface.
//
// Error handling:
//   - input problems are returned as domain validation errors
//   - provider exhaustion is returned as *generation.Failure
//   - unexpected failures are wrapped in *StudyServiceError
package service
