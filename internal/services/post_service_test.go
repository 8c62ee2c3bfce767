package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
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

// fakeObjectStore records bucket traffic so tests can assert which objects
// a service touched, and when.
type fakeObjectStore struct {
	uploaded  []string
	deleted   []string
	deleteErr error
}

func (f *fakeObjectStore) Upload(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	f.uploaded = append(f.uploaded, key)
	return "https://bucket.s3.region.amazonaws.com/" + key, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

func TestDeleteImageRowsLeavesBucketAlone(t *testing.T) {
	db := dryRunDB(t)
	fake := &fakeObjectStore{}
	svc := &PostService{db: db, storage: fake}

	urls, err := deleteImageRows(db.Session(&gorm.Session{DryRun: true}), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, urls)

	// Row deletion must never reach into storage; object deletes are the
	// caller's post-commit step so a rollback cannot orphan image rows.
	assert.Empty(t, svc.storage.(*fakeObjectStore).deleted)
	assert.Empty(t, fake.uploaded)
}

func TestRemoveImageObjectsDerivesKeys(t *testing.T) {
	fake := &fakeObjectStore{}
	svc := &PostService{storage: fake}

	svc.removeImageObjects(context.Background(), []string{
		"https://bucket.s3.ap-northeast-2.amazonaws.com/post_image/abc123",
		"https://elsewhere.example.com/not-ours",
		"not a url",
	})

	assert.Equal(t, []string{"post_image/abc123"}, fake.deleted)
}

func TestRemoveObjectKeysToleratesFailures(t *testing.T) {
	fake := &fakeObjectStore{deleteErr: errors.New("bucket unavailable")}
	svc := &PostService{storage: fake}

	// Best effort: every key is attempted, nothing panics.
	svc.removeObjectKeys(context.Background(), []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, fake.deleted)
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 20, 1, 20},
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{2, 100, 2, 100},
		{2, 101, 2, 20},
	}
	for _, tc := range cases {
		page, limit := clampPage(tc.page, tc.limit)
		assert.Equal(t, tc.wantPage, page, "page for %+v", tc)
		assert.Equal(t, tc.wantLimit, limit, "limit for %+v", tc)
	}
}
