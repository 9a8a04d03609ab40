package mappingprofile

import (
	"context"
	"strings"
	"time"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
	"github.com/wagebook/wagebook-backend-go/internal/domain/mappingprofile"
)

// ProfileService is plain CRUD over named column-mapping snapshots. A loaded
// profile is never revalidated against the current header row; a stale one
// only shows up through the preview, which is the accepted trade-off.
type ProfileService struct {
	repo mappingprofile.ProfileRepository
}

func NewProfileService(repo mappingprofile.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) Save(ctx context.Context, clientID, name string, mapping importer.ColumnMapping) (mappingprofile.MappingProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return mappingprofile.MappingProfile{}, mappingprofile.ErrEmptyProfileName
	}
	return s.repo.Save(ctx, mappingprofile.MappingProfile{
		Name:      name,
		ClientID:  clientID,
		Mapping:   mapping,
		CreatedAt: time.Now(),
	})
}

func (s *ProfileService) Get(ctx context.Context, clientID, name string) (mappingprofile.MappingProfile, error) {
	return s.repo.GetByName(ctx, clientID, name)
}

func (s *ProfileService) List(ctx context.Context, clientID string) ([]mappingprofile.MappingProfile, error) {
	return s.repo.ListByClientID(ctx, clientID)
}

func (s *ProfileService) Delete(ctx context.Context, clientID, name string) error {
	return s.repo.Delete(ctx, clientID, name)
}
