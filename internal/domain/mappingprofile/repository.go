package mappingprofile

import "context"

// ProfileRepository is plain CRUD over named mapping snapshots. Names are
// unique per client.
type ProfileRepository interface {
	Save(ctx context.Context, profile MappingProfile) (MappingProfile, error)
	GetByName(ctx context.Context, clientID, name string) (MappingProfile, error)
	ListByClientID(ctx context.Context, clientID string) ([]MappingProfile, error)
	Delete(ctx context.Context, clientID, name string) error
}
