package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/icloudnotebook/notebook-backend/internal/common"
	"github.com/icloudnotebook/notebook-backend/internal/domain"
	"github.com/icloudnotebook/notebook-backend/internal/repository"
)

type NoteServiceTestSuite struct {
	suite.Suite
	svc *NoteService
}

func (s *NoteServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&domain.User{}, &domain.Note{}))

	s.svc = NewNoteService(repository.NewNoteRepository(db))
}

func (s *NoteServiceTestSuite) fieldMessages(err error) map[string]string {
	vErr, ok := err.(*ValidationError)
	s.Require().True(ok, "expected *ValidationError, got %T", err)
	out := map[string]string{}
	for _, f := range vErr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func (s *NoteServiceTestSuite) TestCreateRejectsMissingFieldsItemized() {
	_, err := s.svc.Create(1, &domain.CreateNoteRequest{})
	s.Require().Error(err)

	fields := s.fieldMessages(err)
	s.Equal("Title is required", fields["title"])
	s.Equal("Content is required", fields["content"])
}

func (s *NoteServiceTestSuite) TestCreateRejectsWhitespaceOnly() {
	_, err := s.svc.Create(1, &domain.CreateNoteRequest{Title: "   ", Content: "\t\n"})
	s.Require().Error(err)

	fields := s.fieldMessages(err)
	s.Len(fields, 2)
}

func (s *NoteServiceTestSuite) TestCreateTrimsAndAppliesDefaults() {
	note, err := s.svc.Create(1, &domain.CreateNoteRequest{Title: "  Hello  ", Content: " world "})
	s.Require().NoError(err)

	s.Equal("Hello", note.Title)
	s.Equal("world", note.Content)
	s.Equal(domain.DefaultColor, note.Color)
	s.Empty(note.Tags)
	s.False(note.IsPinned)
}

func (s *NoteServiceTestSuite) TestCreateKeepsExplicitValues() {
	note, err := s.svc.Create(1, &domain.CreateNoteRequest{
		Title:    "T",
		Content:  "C",
		Tags:     []string{"a", "b"},
		Color:    "#ff0000",
		IsPinned: true,
	})
	s.Require().NoError(err)

	s.Equal(domain.StringList{"a", "b"}, note.Tags)
	s.Equal("#ff0000", note.Color)
	s.True(note.IsPinned)
}

func (s *NoteServiceTestSuite) TestUpdateLeavesUnspecifiedFieldsIntact() {
	note, err := s.svc.Create(1, &domain.CreateNoteRequest{
		Title: "Original", Content: "Body", Tags: []string{"keep"}, Color: "#00ff00",
	})
	s.Require().NoError(err)

	time.Sleep(10 * time.Millisecond)
	newTitle := "Renamed"
	updated, err := s.svc.Update(1, note.ID, &domain.UpdateNoteRequest{Title: &newTitle})
	s.Require().NoError(err)

	s.Equal("Renamed", updated.Title)
	s.Equal("Body", updated.Content)
	s.Equal(domain.StringList{"keep"}, updated.Tags)
	s.Equal("#00ff00", updated.Color)
	s.Equal(note.CreatedAt.Unix(), updated.CreatedAt.Unix())
	s.True(updated.UpdatedAt.After(note.UpdatedAt))
}

func (s *NoteServiceTestSuite) TestUpdateRejectsBlankTitle() {
	note, err := s.svc.Create(1, &domain.CreateNoteRequest{Title: "T", Content: "C"})
	s.Require().NoError(err)

	blank := "   "
	_, err = s.svc.Update(1, note.ID, &domain.UpdateNoteRequest{Title: &blank})
	s.Require().Error(err)

	fields := s.fieldMessages(err)
	s.Equal("Title cannot be empty", fields["title"])

	// Stored note unchanged
	current, err := s.svc.Get(1, note.ID)
	s.Require().NoError(err)
	s.Equal("T", current.Title)
}

func (s *NoteServiceTestSuite) TestUpdateEmptyBodyIsNoop() {
	note, err := s.svc.Create(1, &domain.CreateNoteRequest{Title: "T", Content: "C"})
	s.Require().NoError(err)

	updated, err := s.svc.Update(1, note.ID, &domain.UpdateNoteRequest{})
	s.Require().NoError(err)
	s.Equal(note.UpdatedAt.Unix(), updated.UpdatedAt.Unix())
}

func (s *NoteServiceTestSuite) TestPinToggleRoundTrip() {
	note, err := s.svc.Create(1, &domain.CreateNoteRequest{Title: "T", Content: "C"})
	s.Require().NoError(err)

	pin := true
	updated, err := s.svc.Update(1, note.ID, &domain.UpdateNoteRequest{IsPinned: &pin})
	s.Require().NoError(err)
	s.True(updated.IsPinned)
	s.Equal("T", updated.Title)

	pin = false
	updated, err = s.svc.Update(1, note.ID, &domain.UpdateNoteRequest{IsPinned: &pin})
	s.Require().NoError(err)
	s.False(updated.IsPinned)
}

func (s *NoteServiceTestSuite) TestOperationsScopedToOwner() {
	note, err := s.svc.Create(1, &domain.CreateNoteRequest{Title: "T", Content: "C"})
	s.Require().NoError(err)

	_, err = s.svc.Get(2, note.ID)
	s.ErrorIs(err, common.ErrNoteNotFound)

	newTitle := "Hijacked"
	_, err = s.svc.Update(2, note.ID, &domain.UpdateNoteRequest{Title: &newTitle})
	s.ErrorIs(err, common.ErrNoteNotFound)

	s.ErrorIs(s.svc.Delete(2, note.ID), common.ErrNoteNotFound)

	// Owner still sees the untouched note
	current, err := s.svc.Get(1, note.ID)
	s.Require().NoError(err)
	s.Equal("T", current.Title)
}

func (s *NoteServiceTestSuite) TestDeleteThenGetFails() {
	note, err := s.svc.Create(1, &domain.CreateNoteRequest{Title: "T", Content: "C"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(1, note.ID))

	_, err = s.svc.Get(1, note.ID)
	s.ErrorIs(err, common.ErrNoteNotFound)
}

func TestNoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NoteServiceTestSuite))
}
