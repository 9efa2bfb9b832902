package constants

import "time"

// Application Information
const (
	AppName    = "Admin Panel"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix = "admin:"
	CacheKeyUser   = CacheKeyPrefix + "user:"
)

// DefaultCacheTTL applies when REDIS_TTL is not set.
const DefaultCacheTTL = 5 * time.Minute

// Landing paths the UI redirects to after sign-in
const (
	LandingAdmin = "/admin/manage-users"
	LandingUser  = "/users/manage-posts"
)
