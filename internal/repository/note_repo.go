package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/icloudnotebook/notebook-backend/internal/common"
	"github.com/icloudnotebook/notebook-backend/internal/domain"
)

// NoteRepository note data access
type NoteRepository interface {
	FindAllByUser(userID uint64) ([]domain.Note, error)
	FindOwned(userID uint64, id string) (*domain.Note, error)
	Create(note *domain.Note) error
	UpdateFields(note *domain.Note, fields map[string]interface{}) error
	Delete(note *domain.Note) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// FindAllByUser returns the user's notes, pinned first, most recently
// modified first within each group.
func (r *noteRepository) FindAllByUser(userID uint64) ([]domain.Note, error) {
	var notes []domain.Note
	err := r.db.Where("user_id = ?", userID).
		Order("is_pinned DESC, updated_at DESC").
		Find(&notes).Error
	return notes, err
}

// FindOwned resolves an id to a note owned by the given user. A nonexistent
// id and an id owned by someone else are both reported as ErrNoteNotFound so
// callers cannot distinguish the two. Every id-scoped operation goes through
// this lookup.
func (r *noteRepository) FindOwned(userID uint64, id string) (*domain.Note, error) {
	var note domain.Note
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Create(note *domain.Note) error {
	return r.db.Create(note).Error
}

// UpdateFields applies a partial column update. GORM touches updated_at on
// map-based updates, so the last-modified timestamp always advances.
func (r *noteRepository) UpdateFields(note *domain.Note, fields map[string]interface{}) error {
	return r.db.Model(note).Updates(fields).Error
}

func (r *noteRepository) Delete(note *domain.Note) error {
	return r.db.Delete(note).Error
}
