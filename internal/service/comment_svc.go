package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
)

type CommentService struct {
	repo   CommentStore
	videos VideoStore
}

func NewCommentService(repo CommentStore, videos VideoStore) *CommentService {
	return &CommentService{repo: repo, videos: videos}
}

// Add posts a comment on an existing video.
func (s *CommentService) Add(ctx context.Context, authorID uuid.UUID, req model.AddCommentRequest) (*model.Comment, error) {
	message := strings.TrimSpace(req.Message)
	if strings.TrimSpace(req.VideoID) == "" || message == "" {
		return nil, validation("Video ID and comment text are required")
	}
	videoID, err := parseID(req.VideoID, "Invalid video ID format")
	if err != nil {
		return nil, err
	}
	if tooLong(message, MaxCommentLen) {
		return nil, validation("Comment must be at most 1000 characters")
	}

	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, internal("check video", err)
	}
	if !exists {
		return nil, notFound("Video not found")
	}

	cm := &model.Comment{
		ID:       uuid.New(),
		AuthorID: authorID,
		VideoID:  videoID,
		Message:  message,
	}
	if err := s.repo.Create(ctx, cm); err != nil {
		return nil, internal("create comment", err)
	}
	return s.load(ctx, cm.ID)
}

// ListByVideo returns the video's comments, newest first.
func (s *CommentService) ListByVideo(ctx context.Context, rawVideoID string) ([]model.Comment, error) {
	videoID, err := parseID(rawVideoID, "Invalid video ID format")
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, internal("list comments", err)
	}
	return comments, nil
}

// RequireAuthor loads the comment and fails with Forbidden unless callerID wrote it.
func (s *CommentService) RequireAuthor(ctx context.Context, rawID string, callerID uuid.UUID, action string) (*model.Comment, error) {
	id, err := parseID(rawID, "Invalid comment ID format")
	if err != nil {
		return nil, err
	}
	cm, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if cm.AuthorID != callerID {
		return nil, forbidden("You are not authorized to " + action + " this comment")
	}
	return cm, nil
}

// Update replaces the comment text. The author check runs before the message
// is validated.
func (s *CommentService) Update(ctx context.Context, rawID string, callerID uuid.UUID, message string) (*model.Comment, error) {
	cm, err := s.RequireAuthor(ctx, rawID, callerID, "update")
	if err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, validation("Comment text is required")
	}
	if tooLong(message, MaxCommentLen) {
		return nil, validation("Comment must be at most 1000 characters")
	}

	if err := s.repo.UpdateMessage(ctx, cm.ID, message); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("Comment not found")
		}
		return nil, internal("update comment", err)
	}
	return s.load(ctx, cm.ID)
}

// Delete removes the comment.
func (s *CommentService) Delete(ctx context.Context, rawID string, callerID uuid.UUID) error {
	cm, err := s.RequireAuthor(ctx, rawID, callerID, "delete")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, cm.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("Comment not found")
		}
		return internal("delete comment", err)
	}
	return nil
}

func (s *CommentService) load(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	cm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("Comment not found")
		}
		return nil, internal("find comment", err)
	}
	return cm, nil
}
