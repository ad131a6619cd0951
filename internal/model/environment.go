package model

import "strings"

// Environment is the deployment environment the service runs in.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

// ParseEnvironment normalizes a configured environment name.
// Unknown names are treated as development.
func ParseEnvironment(name string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(name))) {
	case EnvironmentProduction:
		return EnvironmentProduction
	case EnvironmentStaging:
		return EnvironmentStaging
	default:
		return EnvironmentDevelopment
	}
}

// IsProduction reports whether internal details must be hidden from clients.
func (e Environment) IsProduction() bool {
	return e == EnvironmentProduction
}
