// Package visibility implements the content-visibility policy as reusable
// GORM scopes. Every list/fetch of posts, comments or users composes the
// same predicate shape: a scoping predicate (town or post), an author-level
// block exclusion and an item-level block exclusion. Blocked and nonexistent
// resources are indistinguishable to callers: a filtered-out row is simply
// not found.
package visibility

import (
	"github.com/google/uuid"
	"github.com/maeul-dev/maeul-backend/internal/models"
	"gorm.io/gorm"
)

// PostsFor scopes a post query to what viewerID may see inside townID:
// same-town posts whose author the viewer has not blocked and which the
// viewer has not individually blocked. Cross-town posts never match,
// whatever the block state.
func PostsFor(viewerID, townID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("posts.town_id = ?", townID).
			Where("posts.author_id NOT IN (?)", blockedUserIDs(db, viewerID)).
			Where("posts.id NOT IN (?)", blockedPostIDs(db, viewerID))
	}
}

// PostsOfType narrows a post query to one post type.
func PostsOfType(postType models.PostType) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.post_type = ?", postType)
	}
}

// CommentsFor scopes a comment query to one post, minus comments from
// blocked authors and individually blocked comments. Soft-deleted comments
// and comments whose author account is gone (author_id null) stay in the
// result set; rendering them as placeholders is the caller's concern.
func CommentsFor(viewerID, postID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("comments.post_id = ?", postID).
			Where("(comments.author_id IS NULL OR comments.author_id NOT IN (?))", blockedUserIDs(db, viewerID)).
			Where("comments.id NOT IN (?)", blockedCommentIDs(db, viewerID))
	}
}

// CommentVisible applies only the block predicates for comments, for
// single-comment fetches where the post scope comes from the caller.
func CommentVisible(viewerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("(comments.author_id IS NULL OR comments.author_id NOT IN (?))", blockedUserIDs(db, viewerID)).
			Where("comments.id NOT IN (?)", blockedCommentIDs(db, viewerID))
	}
}

// UsersFor scopes the town directory for a viewer: same-town users the
// viewer has not blocked. Soft-deleted users are excluded by GORM's
// DeletedAt handling. There is no item-level block for users; blocking the
// user already covers it.
func UsersFor(viewerID, townID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("users.town_id = ?", townID).
			Where("users.id NOT IN (?)", blockedUserIDs(db, viewerID))
	}
}

// PostCounters selects post columns plus total_likes/total_comments as
// correlated scalar subqueries. Correlated counts, not joins with
// aggregation: a post with zero engagement still appears, with count 0.
const PostCounters = "posts.*, " +
	"(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) AS total_likes, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS total_comments"

// CommentCounters selects comment columns plus total_replies, the number of
// closure descendants excluding the self pair.
const CommentCounters = "comments.*, " +
	"(SELECT COUNT(*) FROM comment_closures WHERE comment_closures.parent_comment_id = comments.id " +
	"AND comment_closures.child_comment_id <> comments.id) AS total_replies"

// UserCounters selects user columns plus total_likes received.
const UserCounters = "users.*, " +
	"(SELECT COUNT(*) FROM user_likes WHERE user_likes.target_id = users.id) AS total_likes"

func blockedUserIDs(db *gorm.DB, viewerID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.UserBlock{}).
		Select("blocked_id").
		Where("blocker_id = ?", viewerID)
}

func blockedPostIDs(db *gorm.DB, viewerID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.PostBlock{}).
		Select("post_id").
		Where("user_id = ?", viewerID)
}

func blockedCommentIDs(db *gorm.DB, viewerID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.CommentBlock{}).
		Select("comment_id").
		Where("user_id = ?", viewerID)
}
