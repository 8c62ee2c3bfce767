package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maeul-dev/maeul-backend/internal/models"
)

func TestClosureRowsTopLevel(t *testing.T) {
	commentID := uuid.New()

	rows := closureRows(commentID, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, commentID, rows[0].ParentCommentID)
	assert.Equal(t, commentID, rows[0].ChildCommentID)
}

func TestClosureRowsReply(t *testing.T) {
	commentID := uuid.New()
	root := uuid.New()
	parent := uuid.New()

	rows := closureRows(commentID, []uuid.UUID{root, parent})

	require.Len(t, rows, 3)

	// Every row points at the new comment as child.
	for _, row := range rows {
		assert.Equal(t, commentID, row.ChildCommentID)
	}

	parents := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		parents = append(parents, row.ParentCommentID)
	}
	assert.Contains(t, parents, root)
	assert.Contains(t, parents, parent)
	assert.Contains(t, parents, commentID, "self pair must be present")
}

func TestClosureRowsSelfPairLast(t *testing.T) {
	commentID := uuid.New()
	rows := closureRows(commentID, []uuid.UUID{uuid.New()})

	last := rows[len(rows)-1]
	assert.Equal(t, models.CommentClosure{
		ParentCommentID: commentID,
		ChildCommentID:  commentID,
	}, last)
}
