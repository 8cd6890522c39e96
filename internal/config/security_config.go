package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Session cookie required
)

// RouteSecurity maps route names to their required security level
var RouteSecurity = map[string]SecurityLevel{
	// Auth - Public
	"auth.register": SecurityPublic,
	"auth.login":    SecurityPublic,
	"auth.logout":   SecurityPublic,

	// Auth - Access Protected
	"auth.me": SecurityAccess,

	// Groups - Public
	"groups.search": SecurityPublic,

	// Groups - Access Protected
	"groups.list":        SecurityAccess,
	"groups.create":      SecurityAccess,
	"groups.joinByCode":  SecurityAccess,
	"groups.get":         SecurityAccess,
	"groups.update":      SecurityAccess,
	"groups.delete":      SecurityAccess,
	"groups.members":     SecurityAccess,
	"groups.leave":       SecurityAccess,
	"groups.kick":        SecurityAccess,
	"requests.create":    SecurityAccess,
	"requests.pending":   SecurityAccess,
	"requests.mine":      SecurityAccess,
	"requests.count":     SecurityAccess,
	"requests.owned":     SecurityAccess,
	"requests.accept":    SecurityAccess,
	"requests.reject":    SecurityAccess,
	"requests.cancel":    SecurityAccess,
	"files.upload":       SecurityAccess,
	"files.list":         SecurityAccess,
	"files.download":     SecurityAccess,
	"files.delete":       SecurityAccess,
	"sessions.create":    SecurityAccess,
	"sessions.list":      SecurityAccess,
	"sessions.get":       SecurityAccess,
	"sessions.update":    SecurityAccess,
	"sessions.delete":    SecurityAccess,
	"dashboard.stats":    SecurityAccess,

	// Health - Public
	"health": SecurityPublic,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := RouteSecurity[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return SecurityAccess
}
