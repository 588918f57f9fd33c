package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"lawfirm/internal/domain"
	"lawfirm/internal/repository"
	"lawfirm/internal/services"
)

// fixture is the YAML seed file layout.
type fixture struct {
	PracticeAreas []practiceAreaFixture `yaml:"practice_areas"`
	Lawyers       []lawyerFixture       `yaml:"lawyers"`
}

type practiceAreaFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type lawyerFixture struct {
	FullName        string   `yaml:"full_name"`
	Title           string   `yaml:"title"`
	Bio             string   `yaml:"bio"`
	Email           string   `yaml:"email"`
	Phone           string   `yaml:"phone"`
	ExperienceYears *int     `yaml:"experience_years"`
	PhotoURL        string   `yaml:"photo_url"`
	Languages       []string `yaml:"languages"`
	// PracticeAreas holds practice area names.
	PracticeAreas []string `yaml:"practice_areas"`
}

// summary counts what a seed run did.
type summary struct {
	AreasCreated   int
	AreasSkipped   int
	LawyersCreated int
	LawyersSkipped int
}

func loadFixture(r io.Reader) (*fixture, error) {
	var f fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

func optionalString(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// seed creates the practice areas and lawyers of f that do not exist yet.
// Practice areas match by name, lawyers by email. Lawyers without an email
// are always created.
func seed(ctx context.Context, db *gorm.DB, f *fixture, log zerolog.Logger) (summary, error) {
	var sum summary
	areas := services.NewPracticeAreaService(db, log)
	lawyers := services.NewLawyerService(db, log)

	areaIDs := make(map[string]uint, len(f.PracticeAreas))
	for _, pa := range f.PracticeAreas {
		existing, err := repository.FindPracticeAreaByName(db.WithContext(ctx), pa.Name)
		switch {
		case err == nil:
			areaIDs[pa.Name] = existing.ID
			sum.AreasSkipped++
			continue
		case !errors.Is(err, repository.ErrNotFound):
			return sum, fmt.Errorf("look up practice area %q: %w", pa.Name, err)
		}

		name := pa.Name
		created, err := areas.Create(ctx, &services.PracticeAreaPayload{
			Name:        &name,
			Description: optionalString(pa.Description),
		})
		if err != nil {
			return sum, fmt.Errorf("create practice area %q: %w", pa.Name, err)
		}
		areaIDs[pa.Name] = created.ID
		sum.AreasCreated++
	}

	for _, l := range f.Lawyers {
		email := optionalString(l.Email)
		if email != nil {
			_, err := repository.FindLawyerByEmail(db.WithContext(ctx), *email)
			if err == nil {
				sum.LawyersSkipped++
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return sum, fmt.Errorf("look up lawyer %q: %w", *email, err)
			}
		}

		ids, err := resolveAreas(ctx, db, areaIDs, l.PracticeAreas)
		if err != nil {
			return sum, fmt.Errorf("lawyer %q: %w", l.FullName, err)
		}

		fullName := l.FullName
		_, err = lawyers.Create(ctx, &services.LawyerPayload{
			FullName:        &fullName,
			Title:           optionalString(l.Title),
			Bio:             optionalString(l.Bio),
			Email:           email,
			Phone:           optionalString(l.Phone),
			ExperienceYears: l.ExperienceYears,
			PhotoURL:        optionalString(l.PhotoURL),
			Languages:       domain.Languages(l.Languages),
			PracticeAreaIDs: ids,
		})
		if err != nil {
			return sum, fmt.Errorf("create lawyer %q: %w", l.FullName, err)
		}
		sum.LawyersCreated++
	}

	return sum, nil
}

// resolveAreas maps practice area names to ids, looking up names that the
// fixture itself did not declare.
func resolveAreas(ctx context.Context, db *gorm.DB, known map[string]uint, names []string) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		if id, ok := known[name]; ok {
			ids = append(ids, id)
			continue
		}
		area, err := repository.FindPracticeAreaByName(db.WithContext(ctx), name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("unknown practice area %q", name)
			}
			return nil, err
		}
		known[name] = area.ID
		ids = append(ids, area.ID)
	}
	return ids, nil
}
