package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maeul-dev/maeul-backend/internal/models"
)

var ErrSelfBlock = errors.New("cannot block yourself or your own content")

// BlockService manages the three directional block relations. Blocking is
// idempotent: re-blocking an already blocked target succeeds without a
// second row. Nobody is notified, and mutual block status is never computed.
type BlockService struct {
	db    *gorm.DB
	posts *PostService
}

func NewBlockService(db *gorm.DB, posts *PostService) *BlockService {
	return &BlockService{db: db, posts: posts}
}

func (s *BlockService) BlockUser(blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrSelfBlock
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", blockedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return insertIgnoringDuplicate(s.db, &models.UserBlock{
		ID:        uuid.New(),
		BlockerID: blockerID,
		BlockedID: blockedID,
	}).Error
}

func (s *BlockService) UnblockUser(blockerID, blockedID uuid.UUID) error {
	return s.db.
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.UserBlock{}).Error
}

// BlockPost hides a single post from the viewer without touching its
// author. The target must currently be visible; anything else is
// ErrPostNotFound, including posts already hidden by a block.
func (s *BlockService) BlockPost(viewer *models.User, postID uuid.UUID) error {
	row, err := s.posts.GetVisible(viewer.ID, viewer.TownID, postID)
	if err != nil {
		// An already-blocked post is invisible to its blocker; re-blocking
		// it is still an idempotent success, not a 404.
		if errors.Is(err, ErrPostNotFound) {
			var existing models.PostBlock
			if e := s.db.Where("user_id = ? AND post_id = ?", viewer.ID, postID).First(&existing).Error; e == nil {
				return nil
			}
		}
		return err
	}
	if row.AuthorID == viewer.ID {
		return ErrSelfBlock
	}

	return insertIgnoringDuplicate(s.db, &models.PostBlock{
		ID:     uuid.New(),
		UserID: viewer.ID,
		PostID: postID,
	}).Error
}

func (s *BlockService) UnblockPost(viewerID, postID uuid.UUID) error {
	return s.db.
		Where("user_id = ? AND post_id = ?", viewerID, postID).
		Delete(&models.PostBlock{}).Error
}

func (s *BlockService) BlockComment(viewer *models.User, commentID uuid.UUID) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != nil && *comment.AuthorID == viewer.ID {
		return ErrSelfBlock
	}

	return insertIgnoringDuplicate(s.db, &models.CommentBlock{
		ID:        uuid.New(),
		UserID:    viewer.ID,
		CommentID: commentID,
	}).Error
}

func (s *BlockService) UnblockComment(viewerID, commentID uuid.UUID) error {
	return s.db.
		Where("user_id = ? AND comment_id = ?", viewerID, commentID).
		Delete(&models.CommentBlock{}).Error
}

// BlockedUserIDs lists the users the viewer has blocked.
func (s *BlockService) BlockedUserIDs(viewerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := s.db.Model(&models.UserBlock{}).
		Where("blocker_id = ?", viewerID).
		Pluck("blocked_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
