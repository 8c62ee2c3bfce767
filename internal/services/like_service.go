package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maeul-dev/maeul-backend/internal/models"
	"github.com/maeul-dev/maeul-backend/internal/visibility"
)

var ErrSelfLike = errors.New("cannot like yourself")

// insertIgnoringDuplicate inserts a like or block pair, leaning on the pair
// unique index for idempotency: a concurrent duplicate lands on ON CONFLICT
// DO NOTHING instead of surfacing a constraint error.
func insertIgnoringDuplicate(db *gorm.DB, value interface{}) *gorm.DB {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(value)
}

// LikeService records post and user likes. Liking twice is a no-op success;
// unliking something never liked is the same. Like counts are computed as
// subqueries at read time, so nothing here maintains counters.
type LikeService struct {
	db    *gorm.DB
	posts *PostService
}

func NewLikeService(db *gorm.DB, posts *PostService) *LikeService {
	return &LikeService{db: db, posts: posts}
}

func (s *LikeService) LikePost(viewer *models.User, postID uuid.UUID) error {
	if _, err := s.posts.GetVisible(viewer.ID, viewer.TownID, postID); err != nil {
		return err
	}

	return insertIgnoringDuplicate(s.db, &models.PostLike{
		ID:     uuid.New(),
		UserID: viewer.ID,
		PostID: postID,
	}).Error
}

func (s *LikeService) UnlikePost(viewerID, postID uuid.UUID) error {
	return s.db.
		Where("user_id = ? AND post_id = ?", viewerID, postID).
		Delete(&models.PostLike{}).Error
}

func (s *LikeService) LikeUser(viewer *models.User, targetID uuid.UUID) error {
	if viewer.ID == targetID {
		return ErrSelfLike
	}

	var target models.User
	err := s.db.
		Scopes(visibility.UsersFor(viewer.ID, viewer.TownID)).
		Where("users.id = ?", targetID).
		First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return insertIgnoringDuplicate(s.db, &models.UserLike{
		ID:       uuid.New(),
		UserID:   viewer.ID,
		TargetID: targetID,
	}).Error
}

func (s *LikeService) UnlikeUser(viewerID, targetID uuid.UUID) error {
	return s.db.
		Where("user_id = ? AND target_id = ?", viewerID, targetID).
		Delete(&models.UserLike{}).Error
}
