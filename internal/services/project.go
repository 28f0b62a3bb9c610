package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"gorm.io/gorm"

	"estatedesk/internal/domain"
)

// ProjectService implements the property catalog
type ProjectService struct {
	db *gorm.DB
}

// NewProjectService creates a new project service
func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// ProjectFilters are the optional catalog search filters. The literal value
// "all" is treated as absent, matching the dropdowns on the search page.
type ProjectFilters struct {
	Location    string
	BHK         string
	Builder     string
	Status      string
	ProjectType string
	SearchTerm  string
}

func filterSet(v string) bool {
	return v != "" && v != "all"
}

// Search returns catalog listings matching every present filter, sorted by
// project name. Location, bhk and builder match by case-insensitive
// substring; status and project type match exactly; searchTerm expands to an
// OR across project name, builder name and location.
func (s *ProjectService) Search(ctx context.Context, f ProjectFilters) ([]domain.RealEstateProject, error) {
	q := s.db.WithContext(ctx).Model(&domain.RealEstateProject{})

	if filterSet(f.Location) {
		q = q.Where("LOWER(location) LIKE LOWER(?)", "%"+f.Location+"%")
	}
	if filterSet(f.BHK) {
		q = q.Where("LOWER(bhk) LIKE LOWER(?)", "%"+f.BHK+"%")
	}
	if filterSet(f.Builder) {
		q = q.Where("LOWER(builder_name) LIKE LOWER(?)", "%"+f.Builder+"%")
	}
	if filterSet(f.Status) {
		q = q.Where("status_possession = ?", f.Status)
	}
	if filterSet(f.ProjectType) {
		q = q.Where("project_type = ?", f.ProjectType)
	}
	if f.SearchTerm != "" {
		pattern := "%" + f.SearchTerm + "%"
		q = q.Where(
			s.db.Where("LOWER(project_name) LIKE LOWER(?)", pattern).
				Or("LOWER(builder_name) LIKE LOWER(?)", pattern).
				Or("LOWER(location) LIKE LOWER(?)", pattern),
		)
	}

	var projects []domain.RealEstateProject
	if err := q.Order("project_name ASC").Find(&projects).Error; err != nil {
		log.Printf("[PROJECT] Search failed: database error: %v", err)
		return nil, NewInternalError("failed to search projects", err)
	}
	log.Printf("[PROJECT] Search successful: returned %d projects", len(projects))
	return projects, nil
}

// Locations returns the sorted set of distinct non-empty listing locations
func (s *ProjectService) Locations(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "location")
}

// Builders returns the sorted set of distinct non-empty builder names
func (s *ProjectService) Builders(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "builder_name")
}

func (s *ProjectService) distinct(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := s.db.WithContext(ctx).
		Model(&domain.RealEstateProject{}).
		Distinct(column).
		Where(column + " IS NOT NULL AND " + column + " != ''").
		Pluck(column, &values).Error
	if err != nil {
		log.Printf("[PROJECT] Distinct %s failed: database error: %v", column, err)
		return nil, NewInternalError("failed to fetch "+column+" values", err)
	}
	sort.Strings(values)
	return values, nil
}

// ProjectPayload is an admin listing creation request
type ProjectPayload struct {
	ProjectName      string `json:"project_name"`
	BuilderName      string `json:"builder_name"`
	ProjectType      string `json:"project_type"`
	MinPrice         string `json:"min_price"`
	MaxPrice         string `json:"max_price"`
	SizeSqft         string `json:"size_sqft"`
	BHK              string `json:"bhk"`
	StatusPossession string `json:"status_possession"`
	Location         string `json:"location"`
}

// Create inserts a listing after checking the (project, builder, location)
// uniqueness triple
func (s *ProjectService) Create(ctx context.Context, p *ProjectPayload) (*SubmitResult, error) {
	projectName := strings.TrimSpace(p.ProjectName)
	builderName := strings.TrimSpace(p.BuilderName)
	location := strings.TrimSpace(p.Location)
	log.Printf("[PROJECT] Create request: project=%s, builder=%s", projectName, builderName)

	if projectName == "" || builderName == "" || strings.TrimSpace(p.ProjectType) == "" ||
		strings.TrimSpace(p.MinPrice) == "" || strings.TrimSpace(p.MaxPrice) == "" ||
		strings.TrimSpace(p.SizeSqft) == "" || strings.TrimSpace(p.BHK) == "" ||
		strings.TrimSpace(p.StatusPossession) == "" || location == "" {
		return nil, NewBadRequestError("All fields are required")
	}

	var existing domain.RealEstateProject
	err := s.db.WithContext(ctx).
		Where("project_name = ? AND builder_name = ? AND location = ?", projectName, builderName, location).
		First(&existing).Error
	if err == nil {
		log.Printf("[PROJECT] Create rejected: duplicate listing %s / %s / %s", projectName, builderName, location)
		return nil, NewDuplicateError("Property already exists with the same name, builder, and location")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewInternalError("failed to check for existing property", err)
	}

	project := &domain.RealEstateProject{
		ProjectName:      projectName,
		BuilderName:      builderName,
		ProjectType:      strings.TrimSpace(p.ProjectType),
		MinPrice:         strings.TrimSpace(p.MinPrice),
		MaxPrice:         strings.TrimSpace(p.MaxPrice),
		SizeSqft:         strings.TrimSpace(p.SizeSqft),
		BHK:              strings.TrimSpace(p.BHK),
		StatusPossession: strings.TrimSpace(p.StatusPossession),
		Location:         location,
	}

	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		log.Printf("[PROJECT] Create failed: database error: %v", err)
		return nil, NewInternalError("failed to add property", err)
	}

	log.Printf("[PROJECT] Create successful: id=%d, project=%s", project.ID, project.ProjectName)
	return &SubmitResult{
		Success: true,
		Message: "Property added successfully",
		ID:      project.ID,
	}, nil
}
