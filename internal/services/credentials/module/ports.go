package module

import "shelfwatch/internal/services/credentials/domain"

// Ports defines credentials module ports exposed via the registry
type Ports struct {
	Resolver domain.ResolverPort
	Admin    domain.AdminPort
}
