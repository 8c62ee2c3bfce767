package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maeul-dev/maeul-backend/internal/models"
	"github.com/maeul-dev/maeul-backend/internal/storage"
	"github.com/maeul-dev/maeul-backend/internal/visibility"
)

// UserRow is a user plus the like counter computed at read time.
type UserRow struct {
	models.User
	TotalLikes int64 `json:"total_likes"`
}

type UserService struct {
	db     *gorm.DB
	store  ObjectStorage
	filter *ContentFilter
}

func NewUserService(db *gorm.DB, store ObjectStorage, filter *ContentFilter) *UserService {
	return &UserService{db: db, store: store, filter: filter}
}

// Profile returns the caller's own profile with its like counter. No
// visibility scope: you always see yourself.
func (s *UserService) Profile(userID uuid.UUID) (*UserRow, error) {
	var row UserRow
	err := s.db.Model(&models.User{}).
		Select(visibility.UserCounters).
		Preload("Town").
		Where("users.id = ?", userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &row, nil
}

// GetVisible fetches another neighbour's profile through the viewer's
// visibility scope. Blocked users come back as not found.
func (s *UserService) GetVisible(viewer *models.User, targetID uuid.UUID) (*UserRow, error) {
	if viewer.ID == targetID {
		return s.Profile(viewer.ID)
	}

	var row UserRow
	err := s.db.Model(&models.User{}).
		Select(visibility.UserCounters).
		Scopes(visibility.UsersFor(viewer.ID, viewer.TownID)).
		Preload("Town").
		Where("users.id = ?", targetID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &row, nil
}

// List returns the viewer's town directory, newest members first.
func (s *UserService) List(viewer *models.User, page, limit int) ([]UserRow, error) {
	page, limit = clampPage(page, limit)

	var rows []UserRow
	err := s.db.Model(&models.User{}).
		Select(visibility.UserCounters).
		Scopes(visibility.UsersFor(viewer.ID, viewer.TownID)).
		Order("users.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateBio replaces the caller's bio after content screening.
func (s *UserService) UpdateBio(userID uuid.UUID, bio string) error {
	if ok, reason := s.filter.Check(bio); !ok {
		return fmt.Errorf("%w: %s", ErrContentRejected, s.filter.RejectionMessage(reason))
	}
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("bio", bio).Error
}

// UpdatePicture uploads the new profile picture, points the user at it and
// then removes the previous object. The old delete is best effort; a stale
// object in the bucket beats a profile pointing at nothing.
func (s *UserService) UpdatePicture(ctx context.Context, userID uuid.UUID, body io.Reader, contentType string) (string, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	key := storage.ProfilePicturePrefix + storage.RandomBasename()
	url, err := s.store.Upload(ctx, key, body, contentType)
	if err != nil {
		return "", err
	}

	if err := s.db.Model(&user).Update("picture", url).Error; err != nil {
		return "", err
	}

	if oldKey, ok := storage.KeyFromURL(user.Picture); ok {
		if err := s.store.Delete(ctx, oldKey); err != nil {
			slog.Warn("failed to delete previous profile picture", "key", oldKey, "error", err)
		}
	}

	return url, nil
}
