package repository

import (
	"context"

	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/pkg/docstore"
)

// CourseRepository persists courses and their embedded lectures.
type CourseRepository struct {
	Collection[models.Course]
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(store docstore.Store) *CourseRepository {
	return &CourseRepository{Collection: NewCollection[models.Course](store, models.CollectionCourses)}
}

// ProjectRepository persists research projects.
type ProjectRepository struct {
	Collection[models.ResearchProject]
}

// NewProjectRepository constructs a project repository.
func NewProjectRepository(store docstore.Store) *ProjectRepository {
	return &ProjectRepository{Collection: NewCollection[models.ResearchProject](store, models.CollectionProjects)}
}

// InterestsRepository persists the research interests singleton.
type InterestsRepository struct {
	docs Collection[models.ResearchInterests]
}

// NewInterestsRepository constructs an interests repository.
func NewInterestsRepository(store docstore.Store) *InterestsRepository {
	return &InterestsRepository{docs: NewCollection[models.ResearchInterests](store, models.CollectionResearch)}
}

// Get returns docstore.ErrNotFound until the document is first saved.
func (r *InterestsRepository) Get(ctx context.Context) (*models.ResearchInterests, error) {
	return r.docs.Get(ctx, models.InterestsDocumentID)
}

// Save overwrites the singleton.
func (r *InterestsRepository) Save(ctx context.Context, interests *models.ResearchInterests) error {
	return r.docs.Set(ctx, models.InterestsDocumentID, interests)
}

// PublicationRepository persists publications under their section collection.
type PublicationRepository struct {
	store docstore.Store
}

// NewPublicationRepository constructs a publication repository.
func NewPublicationRepository(store docstore.Store) *PublicationRepository {
	return &PublicationRepository{store: store}
}

// Section returns the collection of section.
func (r *PublicationRepository) Section(section models.PublicationSection) Collection[models.Publication] {
	return NewCollection[models.Publication](r.store, section.Collection())
}

// WatchRepository persists watch-out-for items under their category collection.
type WatchRepository struct {
	store docstore.Store
}

// NewWatchRepository constructs a watch repository.
func NewWatchRepository(store docstore.Store) *WatchRepository {
	return &WatchRepository{store: store}
}

// Category returns the collection of category.
func (r *WatchRepository) Category(category models.WatchCategory) Collection[models.WatchItem] {
	return NewCollection[models.WatchItem](r.store, category.Collection())
}
