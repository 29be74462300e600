package domain

import "context"

// ResolverPort turns a category into a ready-to-use Account
type ResolverPort interface {
	Resolve(ctx context.Context, category CategoryID) (Account, error)
}

// AdminPort manages stored credentials
type AdminPort interface {
	EnsureSchema(ctx context.Context) error
	Put(ctx context.Context, c Credential) error
	List(ctx context.Context) ([]CredentialInfo, error)
	Delete(ctx context.Context, category CategoryID) error
}
