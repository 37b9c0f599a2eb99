// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No session required; resolved if present
	SecurityOwner                        // Session optional; ownership checked by the service
	SecuritySession                      // Active session required
)

// EndpointSecurityConfig maps "METHOD /path-template" to the required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"POST /signup":       SecurityPublic,
	"POST /login":        SecurityPublic,
	"DELETE /logout":     SecurityPublic,
	"GET /check_session": SecurityPublic, // answers 401 itself, with an empty body
	"GET /healthz":       SecurityPublic,

	// Tools
	"GET /tools":         SecurityPublic,
	"GET /tools/{id}":    SecurityPublic,
	"POST /tools":        SecuritySession,
	"PATCH /tools/{id}":  SecurityOwner,
	"DELETE /tools/{id}": SecurityOwner,

	// Reviews
	"GET /tools/{tool_id}/reviews":  SecurityPublic,
	"POST /tools/{tool_id}/reviews": SecuritySession,

	// Bookings
	"GET /bookings":                SecuritySession,
	"POST /bookings":               SecuritySession,
	"POST /bookings/{id}/approve":  SecuritySession,
	"POST /bookings/{id}/reject":   SecuritySession,
	"POST /bookings/{id}/complete": SecuritySession,
}

// GetSecurityLevel returns the security level for a given method and route template
func GetSecurityLevel(method, pathTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method+" "+pathTemplate]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecuritySession
}
