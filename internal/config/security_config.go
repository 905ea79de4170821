package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityRefresh                      // Refresh token required
	SecurityAccess                       // Access token required
)

// EndpointSecurityConfig maps named HTTP routes to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"auth.signup":       SecurityPublic,
	"auth.login":        SecurityPublic,
	"auth.reset.verify": SecurityPublic,
	"auth.reset":        SecurityPublic,

	// Auth - Refresh Protected
	"auth.refresh": SecurityRefresh,

	// Reference data - Public
	"reports.titles": SecurityPublic,
	"files.download": SecurityPublic,
	"health":         SecurityPublic,

	// Resident - Access Protected
	"profile.get":        SecurityAccess,
	"profile.update":     SecurityAccess,
	"profile.image":      SecurityAccess,
	"dashboard.get":      SecurityAccess,
	"invoices.list":      SecurityAccess,
	"invoices.payable":   SecurityAccess,
	"payments.submit":    SecurityAccess,
	"payments.list":      SecurityAccess,
	"reports.submit":     SecurityAccess,
	"reports.list":       SecurityAccess,
	"announcements.list": SecurityAccess,
}

// GetSecurityLevel returns the level for a route name. Unknown routes require
// an access token.
func GetSecurityLevel(route string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[route]; ok {
		return level
	}
	return SecurityAccess
}
