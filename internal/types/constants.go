package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Role is the platform-wide account role. It is assigned at registration
// and never changes afterward.
type Role string

const (
	RoleIntern       Role = "INTERN"
	RoleOrganization Role = "ORGANIZATION"
	RoleAdmin        Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleIntern, RoleOrganization, RoleAdmin:
		return true
	}
	return false
}

// Registerable reports whether a role may be chosen at signup. Admin
// accounts are seeded, never registered.
func (r Role) Registerable() bool {
	return r == RoleIntern || r == RoleOrganization
}

type InternshipType string

const (
	InternshipPaid    InternshipType = "PAID"
	InternshipUnpaid  InternshipType = "UNPAID"
	InternshipStipend InternshipType = "STIPEND"
)

func (t InternshipType) Valid() bool {
	switch t {
	case InternshipPaid, InternshipUnpaid, InternshipStipend:
		return true
	}
	return false
}

type ResourceType string

const (
	ResourceFile ResourceType = "FILE"
	ResourceURL  ResourceType = "URL"
)

func (t ResourceType) Valid() bool {
	return t == ResourceFile || t == ResourceURL
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
