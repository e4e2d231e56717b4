// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: WAFFLE's CoreConfig
// handles framework settings like HTTP ports, TLS, logging, and CORS.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer token configuration
	JWTSecret string        // Signing secret (must be strong in production)
	JWTTTL    time.Duration // Token lifetime

	// DefaultMemberPassword is the initial credential for members
	// created by a leader; they rotate it on first sign-in.
	DefaultMemberPassword string

	// Upload storage configuration
	UploadDir       string // Local directory for uploaded images
	UploadURLPrefix string // URL prefix the images are served under (e.g., "/files/uploads")

	// BaseURL is prepended to upload URLs returned to clients
	// (e.g., "https://rushtracker.app").
	BaseURL string
}
