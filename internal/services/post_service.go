package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/maeul-dev/maeul-backend/internal/dto"
	"github.com/maeul-dev/maeul-backend/internal/models"
	"github.com/maeul-dev/maeul-backend/internal/storage"
	"github.com/maeul-dev/maeul-backend/internal/visibility"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrContentRejected = errors.New("content rejected")
	ErrInvalidPostType = errors.New("invalid post type")
)

// ObjectStorage is the slice of the S3 client the services depend on.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// PostRow is a post with its read-time counters and image URLs.
type PostRow struct {
	models.Post
	TotalLikes    int64    `json:"total_likes"`
	TotalComments int64    `json:"total_comments"`
	Images        []string `gorm:"-" json:"images"`
}

type PostService struct {
	db      *gorm.DB
	storage ObjectStorage
	filter  *ContentFilter
}

func NewPostService(db *gorm.DB, store ObjectStorage, filter *ContentFilter) *PostService {
	return &PostService{db: db, storage: store, filter: filter}
}

// Create publishes a post in the author's own town. Gathering metadata is
// dropped for non-gathering types. Image parts are uploaded inside the
// transaction so a failed upload rolls the post back.
func (s *PostService) Create(ctx context.Context, author *models.User, req *dto.PostCreateRequest, images []*multipart.FileHeader) (*models.Post, error) {
	postType := models.PostType(req.PostType)
	if !postType.Valid() {
		return nil, ErrInvalidPostType
	}

	if ok, reason := s.filter.Check(req.Content); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.filter.RejectionMessage(reason))
	}

	post := models.Post{
		ID:       uuid.New(),
		AuthorID: author.ID,
		TownID:   author.TownID,
		PostType: postType,
		Content:  req.Content,
	}
	if postType == models.PostTypeGathering {
		post.AgeRange = req.AgeRange
		post.Capacity = req.Capacity
		post.Place = req.Place
	}

	var uploadedKeys []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		keys, err := s.uploadImages(ctx, tx, post.ID, images)
		uploadedKeys = keys
		return err
	})
	if err != nil {
		s.removeObjectKeys(ctx, uploadedKeys)
		return nil, err
	}
	return &post, nil
}

// Edit replaces a post's content and images. Only the author may edit; an
// owner mismatch surfaces as ErrPostNotFound so block and ownership state
// never leak.
func (s *PostService) Edit(ctx context.Context, viewer *models.User, postID uuid.UUID, req *dto.PostEditRequest, images []*multipart.FileHeader) (*models.Post, error) {
	row, err := s.GetVisible(viewer.ID, viewer.TownID, postID)
	if err != nil {
		return nil, err
	}
	if row.AuthorID != viewer.ID {
		return nil, ErrPostNotFound
	}

	if ok, reason := s.filter.Check(req.Content); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.filter.RejectionMessage(reason))
	}

	// Object deletes stay outside the transaction: a rollback can restore
	// image rows, but not objects already gone from the bucket.
	var oldImageURLs, uploadedKeys []string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("id = ? AND author_id = ?", postID, viewer.ID).
			Update("content", req.Content).Error; err != nil {
			return err
		}
		urls, err := deleteImageRows(tx, postID)
		if err != nil {
			return err
		}
		oldImageURLs = urls
		keys, err := s.uploadImages(ctx, tx, postID, images)
		uploadedKeys = keys
		return err
	})
	if err != nil {
		s.removeObjectKeys(ctx, uploadedKeys)
		return nil, err
	}
	s.removeImageObjects(ctx, oldImageURLs)

	row.Content = req.Content
	return &row.Post, nil
}

// Delete removes a post, its images and its engagement rows. Author only;
// mismatches surface as ErrPostNotFound.
func (s *PostService) Delete(ctx context.Context, viewer *models.User, postID uuid.UUID) error {
	row, err := s.GetVisible(viewer.ID, viewer.TownID, postID)
	if err != nil {
		return err
	}
	if row.AuthorID != viewer.ID {
		return ErrPostNotFound
	}

	var imageURLs []string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		urls, err := deleteImageRows(tx, postID)
		if err != nil {
			return err
		}
		imageURLs = urls
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostBlock{}).Error; err != nil {
			return err
		}
		if err := deletePostComments(tx, postID); err != nil {
			return err
		}
		return tx.Where("id = ? AND author_id = ?", postID, viewer.ID).Delete(&models.Post{}).Error
	})
	if err != nil {
		return err
	}
	s.removeImageObjects(ctx, imageURLs)
	return nil
}

// GetVisible fetches one post through the visibility filter. A blocked post
// and a nonexistent one are both ErrPostNotFound.
func (s *PostService) GetVisible(viewerID, townID, postID uuid.UUID) (*PostRow, error) {
	var row PostRow
	err := s.db.Model(&models.Post{}).
		Select(visibility.PostCounters).
		Scopes(visibility.PostsFor(viewerID, townID)).
		Where("posts.id = ?", postID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.attachImages([]*PostRow{&row}); err != nil {
		return nil, err
	}
	return &row, nil
}

// clampPage bounds client-supplied pagination so a rogue limit can never
// drop the LIMIT clause or pull an unbounded page.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// List returns the viewer's visible posts in a town, newest first, each with
// fresh counters and image URLs.
func (s *PostService) List(viewerID, townID uuid.UUID, postType *models.PostType, page, limit int) ([]PostRow, error) {
	page, limit = clampPage(page, limit)

	query := s.db.Model(&models.Post{}).
		Select(visibility.PostCounters).
		Scopes(visibility.PostsFor(viewerID, townID))
	if postType != nil {
		query = query.Scopes(visibility.PostsOfType(*postType))
	}

	var rows []PostRow
	if err := query.
		Order("posts.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	refs := lo.Map(rows, func(_ PostRow, i int) *PostRow { return &rows[i] })
	if err := s.attachImages(refs); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PostService) attachImages(rows []*PostRow) error {
	if len(rows) == 0 {
		return nil
	}

	postIDs := lo.Map(rows, func(r *PostRow, _ int) uuid.UUID { return r.ID })

	var images []models.PostImage
	if err := s.db.Where("post_id IN ?", postIDs).Order("created_at ASC").Find(&images).Error; err != nil {
		return err
	}

	byPost := lo.GroupBy(images, func(img models.PostImage) uuid.UUID { return img.PostID })
	for _, row := range rows {
		row.Images = lo.Map(byPost[row.ID], func(img models.PostImage, _ int) string { return img.ImageURL })
		if row.Images == nil {
			row.Images = []string{}
		}
	}
	return nil
}

// uploadImages uploads each image part and records its row inside tx. The
// uploaded keys are returned even on error so the caller can clean up the
// bucket if the surrounding transaction rolls back.
func (s *PostService) uploadImages(ctx context.Context, tx *gorm.DB, postID uuid.UUID, images []*multipart.FileHeader) ([]string, error) {
	var uploaded []string
	for _, header := range images {
		file, err := header.Open()
		if err != nil {
			return uploaded, fmt.Errorf("failed to open image part: %w", err)
		}

		key := storage.PostImagePrefix + storage.RandomBasename()
		url, err := s.storage.Upload(ctx, key, file, header.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			return uploaded, err
		}
		uploaded = append(uploaded, key)

		if err := tx.Create(&models.PostImage{
			ID:       uuid.New(),
			PostID:   postID,
			ImageURL: url,
		}).Error; err != nil {
			return uploaded, err
		}
	}
	return uploaded, nil
}

// deleteImageRows removes a post's image rows inside tx and returns the
// object URLs they pointed at. It never touches the bucket itself; object
// deletion is the caller's post-commit step.
func deleteImageRows(tx *gorm.DB, postID uuid.UUID) ([]string, error) {
	var urls []string
	if err := tx.Model(&models.PostImage{}).
		Where("post_id = ?", postID).
		Pluck("image_url", &urls).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.PostImage{}).Error; err != nil {
		return nil, err
	}
	return urls, nil
}

// removeImageObjects best-effort deletes committed-away objects by URL.
func (s *PostService) removeImageObjects(ctx context.Context, urls []string) {
	keys := make([]string, 0, len(urls))
	for _, url := range urls {
		if key, ok := storage.KeyFromURL(url); ok {
			keys = append(keys, key)
		}
	}
	s.removeObjectKeys(ctx, keys)
}

func (s *PostService) removeObjectKeys(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			slog.Error("failed to delete post image object", "error", err, "key", key)
		}
	}
}

// deletePostComments hard-deletes a post's comment thread: comments,
// their closure rows and any comment blocks pointing at them. Comment
// soft-deletion does not apply here; the post they hang off is gone.
func deletePostComments(tx *gorm.DB, postID uuid.UUID) error {
	var commentIDs []uuid.UUID
	if err := tx.Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Pluck("id", &commentIDs).Error; err != nil {
		return err
	}
	if len(commentIDs) == 0 {
		return nil
	}

	if err := tx.Where("child_comment_id IN ?", commentIDs).Delete(&models.CommentClosure{}).Error; err != nil {
		return err
	}
	if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentBlock{}).Error; err != nil {
		return err
	}
	return tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}
