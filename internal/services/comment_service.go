package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maeul-dev/maeul-backend/internal/models"
	"github.com/maeul-dev/maeul-backend/internal/visibility"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidRequest  = errors.New("invalid request")
)

// CommentRow is a comment with its read-time reply counter.
type CommentRow struct {
	models.Comment
	TotalReplies int64 `json:"total_replies"`
}

type CommentService struct {
	db     *gorm.DB
	posts  *PostService
	filter *ContentFilter
}

func NewCommentService(db *gorm.DB, posts *PostService, filter *ContentFilter) *CommentService {
	return &CommentService{db: db, posts: posts, filter: filter}
}

// Add creates a comment on a visible post. A parent id threads the comment
// under an existing visible comment of the same post; the closure table
// gains the self pair plus one pair per ancestor so descendants remain
// reachable without recursion.
func (s *CommentService) Add(viewer *models.User, postID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	if _, err := s.posts.GetVisible(viewer.ID, viewer.TownID, postID); err != nil {
		return nil, err
	}

	if ok, reason := s.filter.Check(content); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.filter.RejectionMessage(reason))
	}

	if parentID != nil {
		parent, err := s.getVisible(viewer.ID, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrInvalidRequest
		}
	}

	authorID := viewer.ID
	comment := models.Comment{
		ID:       uuid.New(),
		PostID:   postID,
		AuthorID: &authorID,
		Content:  content,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		var ancestorIDs []uuid.UUID
		if parentID != nil {
			if err := tx.Model(&models.CommentClosure{}).
				Where("child_comment_id = ?", *parentID).
				Pluck("parent_comment_id", &ancestorIDs).Error; err != nil {
				return err
			}
		}

		return tx.Create(closureRows(comment.ID, ancestorIDs)).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// List returns the visible comments of a visible post in thread order.
// Soft-deleted comments stay in the list; the handler masks their content.
func (s *CommentService) List(viewer *models.User, postID uuid.UUID) ([]CommentRow, error) {
	if _, err := s.posts.GetVisible(viewer.ID, viewer.TownID, postID); err != nil {
		return nil, err
	}

	var rows []CommentRow
	err := s.db.Model(&models.Comment{}).
		Select(visibility.CommentCounters).
		Scopes(visibility.CommentsFor(viewer.ID, postID)).
		Order("comments.created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete soft-deletes a comment: the flag is set, content and closure rows
// stay so replies keep their place. Author only; a comment addressed under
// the wrong post or someone else's comment is ErrInvalidRequest.
func (s *CommentService) Delete(viewer *models.User, postID, commentID uuid.UUID) error {
	comment, err := s.getVisible(viewer.ID, commentID)
	if err != nil {
		return err
	}

	if comment.PostID != postID {
		return ErrInvalidRequest
	}
	if comment.AuthorID == nil || *comment.AuthorID != viewer.ID {
		return ErrInvalidRequest
	}

	return s.db.Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("deleted", true).Error
}

func (s *CommentService) getVisible(viewerID, commentID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.
		Scopes(visibility.CommentVisible(viewerID)).
		Where("comments.id = ?", commentID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// closureRows builds the closure rows for a new comment: one row per
// ancestor of its parent (the parent's closure set already contains the
// parent's self pair) plus the new comment's own self pair.
func closureRows(commentID uuid.UUID, ancestorIDs []uuid.UUID) []models.CommentClosure {
	rows := make([]models.CommentClosure, 0, len(ancestorIDs)+1)
	for _, ancestor := range ancestorIDs {
		rows = append(rows, models.CommentClosure{
			ParentCommentID: ancestor,
			ChildCommentID:  commentID,
		})
	}
	rows = append(rows, models.CommentClosure{
		ParentCommentID: commentID,
		ChildCommentID:  commentID,
	})
	return rows
}
