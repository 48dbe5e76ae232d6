package service

import (
	"strings"

	"github.com/icloudnotebook/notebook-backend/internal/common"
	"github.com/icloudnotebook/notebook-backend/internal/domain"
	"github.com/icloudnotebook/notebook-backend/internal/repository"
)

// ValidationError carries per-field validation failures
type ValidationError struct {
	Fields []common.FieldError
}

func (e *ValidationError) Error() string { return "validation failed" }

// NoteService implements the note business rules. Every operation is scoped
// to the owning user; ownership is assigned at creation and never changes.
type NoteService struct {
	repo repository.NoteRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(repo repository.NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// List returns all notes owned by the user, pinned first then by recency
func (s *NoteService) List(userID uint64) ([]domain.Note, error) {
	return s.repo.FindAllByUser(userID)
}

// Get returns a single owned note
func (s *NoteService) Get(userID uint64, id string) (*domain.Note, error) {
	return s.repo.FindOwned(userID, id)
}

// Create validates and persists a new note owned by the user
func (s *NoteService) Create(userID uint64, req *domain.CreateNoteRequest) (*domain.Note, error) {
	var fields []common.FieldError

	title := strings.TrimSpace(req.Title)
	if title == "" {
		fields = append(fields, common.FieldError{Field: "title", Message: "Title is required"})
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		fields = append(fields, common.FieldError{Field: "content", Message: "Content is required"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	note := &domain.Note{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Tags:     domain.StringList(req.Tags),
		Color:    req.Color,
		IsPinned: req.IsPinned,
	}
	if err := s.repo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update applies a partial update to an owned note. Supplied title/content
// must be non-empty after trimming; unspecified fields are left unchanged.
func (s *NoteService) Update(userID uint64, id string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.repo.FindOwned(userID, id)
	if err != nil {
		return nil, err
	}

	var invalid []common.FieldError
	updates := map[string]interface{}{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			invalid = append(invalid, common.FieldError{Field: "title", Message: "Title cannot be empty"})
		} else {
			updates["title"] = title
		}
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			invalid = append(invalid, common.FieldError{Field: "content", Message: "Content cannot be empty"})
		} else {
			updates["content"] = content
		}
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{Fields: invalid}
	}

	if req.Tags != nil {
		updates["tags"] = domain.StringList(*req.Tags)
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.IsPinned != nil {
		updates["is_pinned"] = *req.IsPinned
	}

	if len(updates) == 0 {
		return note, nil
	}

	if err := s.repo.UpdateFields(note, updates); err != nil {
		return nil, err
	}

	// Re-read so the response carries the store's updated_at
	return s.repo.FindOwned(userID, id)
}

// Delete removes an owned note
func (s *NoteService) Delete(userID uint64, id string) error {
	note, err := s.repo.FindOwned(userID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(note)
}
