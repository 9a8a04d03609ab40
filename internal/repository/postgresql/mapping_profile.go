package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
	"github.com/wagebook/wagebook-backend-go/internal/domain/mappingprofile"
	"github.com/wagebook/wagebook-backend-go/internal/pkg/database"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) mappingprofile.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

// Save implements mappingprofile.ProfileRepository.
func (p *profileRepositoryImpl) Save(ctx context.Context, profile mappingprofile.MappingProfile) (mappingprofile.MappingProfile, error) {
	q := GetQuerier(ctx, p.db)

	mapping, err := json.Marshal(profile.Mapping)
	if err != nil {
		return mappingprofile.MappingProfile{}, fmt.Errorf("failed to encode mapping: %w", err)
	}

	query := `
		INSERT INTO mapping_profiles (client_id, name, mapping, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING client_id, name, mapping, created_at
	`

	var raw []byte
	var stored mappingprofile.MappingProfile
	err = q.QueryRow(ctx, query, profile.ClientID, profile.Name, mapping, profile.CreatedAt).Scan(
		&stored.ClientID, &stored.Name, &raw, &stored.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return mappingprofile.MappingProfile{}, mappingprofile.ErrProfileNameExists
		}
		return mappingprofile.MappingProfile{}, fmt.Errorf("failed to save mapping profile: %w", err)
	}

	stored.Mapping = make(importer.ColumnMapping)
	if err := json.Unmarshal(raw, &stored.Mapping); err != nil {
		return mappingprofile.MappingProfile{}, fmt.Errorf("failed to decode mapping: %w", err)
	}
	return stored, nil
}

// GetByName implements mappingprofile.ProfileRepository.
func (p *profileRepositoryImpl) GetByName(ctx context.Context, clientID, name string) (mappingprofile.MappingProfile, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT client_id, name, mapping, created_at
		FROM mapping_profiles
		WHERE client_id = $1 AND name = $2
	`

	var raw []byte
	var profile mappingprofile.MappingProfile
	err := q.QueryRow(ctx, query, clientID, name).Scan(
		&profile.ClientID, &profile.Name, &raw, &profile.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return mappingprofile.MappingProfile{}, mappingprofile.ErrProfileNotFound
		}
		return mappingprofile.MappingProfile{}, fmt.Errorf("failed to get mapping profile: %w", err)
	}

	profile.Mapping = make(importer.ColumnMapping)
	if err := json.Unmarshal(raw, &profile.Mapping); err != nil {
		return mappingprofile.MappingProfile{}, fmt.Errorf("failed to decode mapping: %w", err)
	}
	return profile, nil
}

// ListByClientID implements mappingprofile.ProfileRepository.
func (p *profileRepositoryImpl) ListByClientID(ctx context.Context, clientID string) ([]mappingprofile.MappingProfile, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT client_id, name, mapping, created_at
		FROM mapping_profiles
		WHERE client_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []mappingprofile.MappingProfile
	for rows.Next() {
		var raw []byte
		var profile mappingprofile.MappingProfile
		if err := rows.Scan(&profile.ClientID, &profile.Name, &raw, &profile.CreatedAt); err != nil {
			return nil, err
		}
		profile.Mapping = make(importer.ColumnMapping)
		if err := json.Unmarshal(raw, &profile.Mapping); err != nil {
			return nil, fmt.Errorf("failed to decode mapping: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Delete implements mappingprofile.ProfileRepository.
func (p *profileRepositoryImpl) Delete(ctx context.Context, clientID, name string) error {
	q := GetQuerier(ctx, p.db)

	tag, err := q.Exec(ctx, `DELETE FROM mapping_profiles WHERE client_id = $1 AND name = $2`, clientID, name)
	if err != nil {
		return fmt.Errorf("failed to delete mapping profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mappingprofile.ErrProfileNotFound
	}
	return nil
}
