package organization

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/teamledger/teamledger-backend/internal/domain"
)

// CreateInput holds parameters for organization creation.
type CreateInput struct {
	Name string
}

// Validate validates the creation input.
func (i CreateInput) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return domain.NewValidationError("name", "required")
	}
	if len(i.Name) > 255 {
		return domain.NewValidationError("name", "too long")
	}
	return nil
}

// Create creates an organization and makes the creating user its owner,
// in one transaction. The slug is derived from the name and made unique
// by appending a numeric suffix when taken; it is immutable afterwards.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.Organization, error) {
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("organization.Create derive slug: %w", err)
	}

	var created *domain.Organization
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		org, err := s.orgs.Create(ctx, &domain.Organization{
			ID:   uuid.New(),
			Name: input.Name,
			Slug: slug,
		})
		if err != nil {
			return fmt.Errorf("create organization: %w", err)
		}

		_, err = s.orgs.CreateMembership(ctx, &domain.Membership{
			ID:     uuid.New(),
			UserID: userID,
			OrgID:  org.ID,
			Role:   domain.RoleOwner,
		})
		if err != nil {
			return fmt.Errorf("create owner membership: %w", err)
		}

		created = org
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("organization.Create: %w", err)
	}

	s.log.InfoContext(ctx, "organization created",
		slog.String("org_id", created.ID.String()),
		slog.String("slug", created.Slug))

	return created, nil
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts an organization name into its URL slug form.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugCollapse.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug derives a slug from the name and appends -1, -2, ... until
// it is free.
func (s *Service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "org"
	}

	slug := base
	for counter := 1; ; counter++ {
		taken, err := s.orgs.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
