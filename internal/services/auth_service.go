package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maeul-dev/maeul-backend/internal/config"
	"github.com/maeul-dev/maeul-backend/internal/dto"
	"github.com/maeul-dev/maeul-backend/internal/models"
	"github.com/maeul-dev/maeul-backend/internal/sms"
	"github.com/maeul-dev/maeul-backend/internal/storage"
)

var (
	ErrPhoneTaken          = errors.New("phone number already registered")
	ErrVerification        = errors.New("invalid verification code")
	ErrVerificationExpired = errors.New("verification code expired")
	ErrInvalidToken        = errors.New("invalid or expired refresh token")
	ErrUserNotFound        = errors.New("user not found")
)

type AuthService struct {
	db      *gorm.DB
	cfg     *config.Config
	towns   *TownService
	storage ObjectStorage
	sender  sms.Sender
}

func NewAuthService(db *gorm.DB, cfg *config.Config, towns *TownService, store ObjectStorage, sender sms.Sender) *AuthService {
	return &AuthService{db: db, cfg: cfg, towns: towns, storage: store, sender: sender}
}

// SetupVerification issues a fresh 6-digit code for phone, replacing any
// pending one, and hands it to the SMS sender. Only a bcrypt hash of the
// code is stored.
func (s *AuthService) SetupVerification(ctx context.Context, phone string) error {
	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash verification code: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ?", phone).Delete(&models.PhoneVerification{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.PhoneVerification{
			ID:       uuid.New(),
			Phone:    phone,
			CodeHash: string(hash),
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	return s.sender.Send(ctx, phone, code)
}

// VerifyCode checks the pending code for phone without consuming it.
func (s *AuthService) VerifyCode(phone, code string) error {
	var pending models.PhoneVerification
	if err := s.db.Where("phone = ?", phone).First(&pending).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVerification
		}
		return err
	}

	if codeExpired(pending.CreatedAt, s.cfg.VerificationCodeTTL, time.Now()) {
		return ErrVerificationExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(pending.CodeHash), []byte(code)) != nil {
		return ErrVerification
	}
	return nil
}

// CancelVerification discards any pending code for phone.
func (s *AuthService) CancelVerification(phone string) error {
	return s.db.Where("phone = ?", phone).Delete(&models.PhoneVerification{}).Error
}

// Register creates a verified account: the phone code must match, the town
// is resolved by address, and the identity photo lands in object storage.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, photo io.Reader, photoContentType string) (*dto.TokenResponse, error) {
	if err := s.VerifyCode(req.Phone, req.AuthorizationCode); err != nil {
		return nil, err
	}

	var existing models.User
	if err := phoneConflictQuery(s.db, req.Phone).First(&existing).Error; err == nil {
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	birthdate, err := time.Parse("2006-01-02", req.Birthdate)
	if err != nil {
		return nil, fmt.Errorf("invalid birthdate: %w", err)
	}

	town, err := s.towns.FindOrCreateByAddress(req.Address)
	if err != nil {
		return nil, err
	}

	photoKey := storage.VerificationPhotoPrefix + storage.RandomBasename()
	photoURL, err := s.storage.Upload(ctx, photoKey, photo, photoContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload verification photo: %w", err)
	}

	user := models.User{
		ID:                   uuid.New(),
		Name:                 req.Name,
		Phone:                req.Phone,
		Birthdate:            datatypes.Date(birthdate),
		Sex:                  req.Sex,
		TownID:               town.ID,
		VerificationType:     req.VerificationType,
		VerificationPhotoURL: photoURL,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.CancelVerification(req.Phone); err != nil {
		slog.Error("failed to cancel phone verification", "error", err, "user_id", user.ID.String())
	}

	return s.generateTokenPair(&user)
}

// Login verifies the phone code against an existing account and issues a
// token pair. The code is consumed on success.
func (s *AuthService) Login(phone, code string) (*dto.TokenResponse, error) {
	if err := s.VerifyCode(phone, code); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.CancelVerification(phone); err != nil {
		slog.Error("failed to cancel phone verification", "error", err, "user_id", user.ID.String())
	}

	return s.generateTokenPair(&user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// DeleteAccount removes the user's posts, likes, blocks and sessions, nulls
// authorship on their comments and soft-deletes the account row. Orphaned
// image objects are removed from storage after the transaction commits.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	var imageURLs []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var postIDs []uuid.UUID
		if err := tx.Model(&models.Post{}).Where("author_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			if err := tx.Model(&models.PostImage{}).Where("post_id IN ?", postIDs).Pluck("image_url", &imageURLs).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostBlock{}).Error; err != nil {
				return err
			}
			for _, postID := range postIDs {
				if err := deletePostComments(tx, postID); err != nil {
					return err
				}
			}
		}

		if err := tx.Where("author_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR target_id = ?", userID, userID).Delete(&models.UserLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blocker_id = ? OR blocked_id = ?", userID, userID).Delete(&models.UserBlock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PostBlock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CommentBlock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}

		// Authored comments survive with a nulled author to keep threads intact.
		if err := tx.Model(&models.Comment{}).Where("author_id = ?", userID).Update("author_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}

	for _, url := range imageURLs {
		if key, ok := storage.KeyFromURL(url); ok {
			if err := s.storage.Delete(ctx, key); err != nil {
				slog.Error("failed to delete post image object", "error", err, "key", key)
			}
		}
	}
	if key, ok := storage.KeyFromURL(user.VerificationPhotoURL); ok {
		if err := s.storage.Delete(ctx, key); err != nil {
			slog.Error("failed to delete verification photo object", "error", err, "key", key)
		}
	}

	return nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.TokenResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

// phoneConflictQuery matches any account row holding phone, soft-deleted
// included. The unique index on users.phone spans deleted rows, so the
// conflict check has to look past GORM's deleted_at filter or a
// re-registration of a deleted account's phone would hit the index raw.
func phoneConflictQuery(db *gorm.DB, phone string) *gorm.DB {
	return db.Unscoped().Model(&models.User{}).Where("phone = ?", phone)
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func codeExpired(createdAt time.Time, ttl time.Duration, now time.Time) bool {
	return now.Sub(createdAt) >= ttl
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
