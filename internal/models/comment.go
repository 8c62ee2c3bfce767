package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a threaded reply on a post. Deletion is a flag only so that
// thread structure survives; AuthorID goes null when the author's account is
// deleted but the row itself stays.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID  *uuid.UUID `gorm:"type:uuid;index" json:"author_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Deleted   bool       `gorm:"not null;default:false" json:"deleted"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CommentClosure stores every ancestor/descendant pair of the comment tree,
// including the self pair, so multi-level thread reads never recurse.
type CommentClosure struct {
	ParentCommentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"parent_comment_id"`
	ChildCommentID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"child_comment_id"`
}

func (CommentClosure) TableName() string {
	return "comment_closures"
}
