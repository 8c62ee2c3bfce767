package visibility

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/maeul-dev/maeul-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestPostsForPredicateShape(t *testing.T) {
	db := dryRunDB(t)
	viewer := uuid.New()
	town := uuid.New()

	var posts []models.Post
	stmt := db.Scopes(PostsFor(viewer, town)).Find(&posts).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "posts.town_id")
	assert.Contains(t, sql, "posts.author_id NOT IN (SELECT")
	assert.Contains(t, sql, "posts.id NOT IN (SELECT")
	assert.Contains(t, sql, "user_blocks")
	assert.Contains(t, sql, "post_blocks")
	assert.Contains(t, sql, "blocker_id")
	// The two exclusion sets stay independent predicates.
	assert.Equal(t, 1, strings.Count(sql, "user_blocks"))
	assert.Equal(t, 1, strings.Count(sql, "post_blocks"))
	assert.Contains(t, stmt.Vars, viewer)
	assert.Contains(t, stmt.Vars, town)
}

func TestPostsOfTypeAddsTypePredicate(t *testing.T) {
	db := dryRunDB(t)

	var posts []models.Post
	stmt := db.Scopes(PostsFor(uuid.New(), uuid.New()), PostsOfType(models.PostTypeGathering)).
		Find(&posts).Statement

	assert.Contains(t, stmt.SQL.String(), "posts.post_type")
	assert.Contains(t, stmt.Vars, models.PostTypeGathering)
}

func TestCommentsForKeepsNullAuthors(t *testing.T) {
	db := dryRunDB(t)
	viewer := uuid.New()
	post := uuid.New()

	var comments []models.Comment
	sql := db.Scopes(CommentsFor(viewer, post)).Find(&comments).Statement.SQL.String()

	// A comment whose author account was deleted must not be filtered out by
	// the NOT IN subquery evaluating to NULL.
	assert.Contains(t, sql, "comments.author_id IS NULL OR comments.author_id NOT IN (SELECT")
	assert.Contains(t, sql, "comments.post_id")
	assert.Contains(t, sql, "comment_blocks")
	// No deleted-flag predicate: soft-deleted comments stay listed as placeholders.
	assert.NotContains(t, sql, "comments.deleted")
}

func TestUsersForScopesTownAndBlocks(t *testing.T) {
	db := dryRunDB(t)
	viewer := uuid.New()
	town := uuid.New()

	var users []models.User
	sql := db.Scopes(UsersFor(viewer, town)).Find(&users).Statement.SQL.String()

	assert.Contains(t, sql, "users.town_id")
	assert.Contains(t, sql, "users.id NOT IN (SELECT")
	assert.Contains(t, sql, "user_blocks")
	// Soft-deleted accounts drop out of the directory.
	assert.Contains(t, sql, "deleted_at")
	// Users have no item-level block table.
	assert.NotContains(t, sql, "post_blocks")
	assert.NotContains(t, sql, "comment_blocks")
}

func TestCountersAreCorrelatedSubqueries(t *testing.T) {
	// Counts must be scalar subqueries so zero-engagement rows are never
	// dropped by an inner join.
	assert.Contains(t, PostCounters, "(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) AS total_likes")
	assert.Contains(t, PostCounters, "(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS total_comments")
	assert.NotContains(t, strings.ToUpper(PostCounters), "JOIN")

	assert.Contains(t, CommentCounters, "comment_closures.parent_comment_id = comments.id")
	assert.Contains(t, CommentCounters, "comment_closures.child_comment_id <> comments.id")

	assert.Contains(t, UserCounters, "user_likes.target_id = users.id")
}

func TestBlockedSubqueriesSelectTargetColumn(t *testing.T) {
	db := dryRunDB(t)
	viewer := uuid.New()

	var ids []uuid.UUID
	sub := blockedUserIDs(db, viewer)
	sql := sub.Find(&ids).Statement.SQL.String()
	assert.Contains(t, sql, "blocked_id")
	assert.Contains(t, sql, "blocker_id")
}
