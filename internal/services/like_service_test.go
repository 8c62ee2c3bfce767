package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/maeul-dev/maeul-backend/internal/models"
)

func TestInsertIgnoringDuplicateUsesConflictClause(t *testing.T) {
	db := dryRunDB(t)

	stmt := insertIgnoringDuplicate(db, &models.PostLike{
		ID:     uuid.New(),
		UserID: uuid.New(),
		PostID: uuid.New(),
	}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "INSERT INTO")
	assert.Contains(t, sql, "post_likes")
	// A concurrent duplicate pair must resolve inside the database, not
	// bubble up as a constraint violation.
	assert.Contains(t, sql, "ON CONFLICT")
	assert.Contains(t, sql, "DO NOTHING")
}

func TestInsertIgnoringDuplicateCoversBlockTables(t *testing.T) {
	db := dryRunDB(t)

	for _, value := range []interface{}{
		&models.UserBlock{ID: uuid.New(), BlockerID: uuid.New(), BlockedID: uuid.New()},
		&models.PostBlock{ID: uuid.New(), UserID: uuid.New(), PostID: uuid.New()},
		&models.CommentBlock{ID: uuid.New(), UserID: uuid.New(), CommentID: uuid.New()},
		&models.UserLike{ID: uuid.New(), UserID: uuid.New(), TargetID: uuid.New()},
	} {
		sql := insertIgnoringDuplicate(db, value).Statement.SQL.String()
		assert.Contains(t, sql, "ON CONFLICT", "for %T", value)
		assert.Contains(t, sql, "DO NOTHING", "for %T", value)
	}
}
