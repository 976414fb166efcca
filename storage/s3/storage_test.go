package s3_test

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filegate/storage"
	"github.com/dmitrymomot/filegate/storage/s3"
)

// mockClient records calls and returns canned responses.
type mockClient struct {
	putInputs    []*s3aws.PutObjectInput
	copyInputs   []*s3aws.CopyObjectInput
	deleteInputs []*s3aws.DeleteObjectInput
	headInputs   []*s3aws.HeadObjectInput
	listInputs   []*s3aws.ListObjectsV2Input

	headOut *s3aws.HeadObjectOutput
	headErr error
	getOut  *s3aws.GetObjectOutput
	getErr  error
	listOut *s3aws.ListObjectsV2Output
}

func (m *mockClient) PutObject(ctx context.Context, in *s3aws.PutObjectInput, _ ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error) {
	m.putInputs = append(m.putInputs, in)
	return &s3aws.PutObjectOutput{}, nil
}

func (m *mockClient) GetObject(ctx context.Context, in *s3aws.GetObjectInput, _ ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getOut, nil
}

func (m *mockClient) HeadObject(ctx context.Context, in *s3aws.HeadObjectInput, _ ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error) {
	m.headInputs = append(m.headInputs, in)
	if m.headErr != nil {
		return nil, m.headErr
	}
	return m.headOut, nil
}

func (m *mockClient) ListObjectsV2(ctx context.Context, in *s3aws.ListObjectsV2Input, _ ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error) {
	m.listInputs = append(m.listInputs, in)
	return m.listOut, nil
}

func (m *mockClient) CopyObject(ctx context.Context, in *s3aws.CopyObjectInput, _ ...func(*s3aws.Options)) (*s3aws.CopyObjectOutput, error) {
	m.copyInputs = append(m.copyInputs, in)
	return &s3aws.CopyObjectOutput{}, nil
}

func (m *mockClient) DeleteObject(ctx context.Context, in *s3aws.DeleteObjectInput, _ ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error) {
	m.deleteInputs = append(m.deleteInputs, in)
	return &s3aws.DeleteObjectOutput{}, nil
}

func newStorage(t *testing.T, client s3.Client) *s3.Storage {
	t.Helper()

	store, err := s3.New(context.Background(), s3.Config{
		Bucket: "test-bucket",
		Region: "us-east-1",
	}, s3.WithClient(client))
	require.NoError(t, err)
	return store
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := s3.New(context.Background(), s3.Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, storage.ErrInvalidConfig)

	_, err = s3.New(context.Background(), s3.Config{Bucket: "b"})
	assert.ErrorIs(t, err, storage.ErrInvalidConfig)
}

func TestWriteMapsPathToKey(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	store := newStorage(t, client)

	require.NoError(t, store.Write(context.Background(), "/uploads/a.txt", []byte("hello")))

	require.Len(t, client.putInputs, 1)
	in := client.putInputs[0]
	assert.Equal(t, "test-bucket", aws.ToString(in.Bucket))
	assert.Equal(t, "uploads/a.txt", aws.ToString(in.Key))

	data, err := io.ReadAll(in.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestStat(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		modified := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
		client := &mockClient{
			headOut: &s3aws.HeadObjectOutput{
				ContentLength: aws.Int64(42),
				LastModified:  aws.Time(modified),
			},
		}
		store := newStorage(t, client)

		info, err := store.Stat(context.Background(), "/uploads/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "a.txt", info.Name)
		assert.Equal(t, int64(42), info.Size)
		assert.Equal(t, modified, info.CreatedAt)
	})

	t.Run("missing_key", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{headErr: &types.NotFound{}}
		store := newStorage(t, client)

		_, err := store.Stat(context.Background(), "/uploads/a.txt")
		assert.ErrorIs(t, err, storage.ErrNotExist)
	})
}

func TestRead(t *testing.T) {
	t.Parallel()

	t.Run("streams_body", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{
			getOut: &s3aws.GetObjectOutput{Body: io.NopCloser(strings.NewReader("content"))},
		}
		store := newStorage(t, client)

		rc, err := store.Read(context.Background(), "/a.txt")
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("missing_key", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{getErr: &types.NoSuchKey{}}
		store := newStorage(t, client)

		_, err := store.Read(context.Background(), "/a.txt")
		assert.ErrorIs(t, err, storage.ErrNotExist)
	})
}

func TestRenameCopiesThenDeletes(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	store := newStorage(t, client)

	require.NoError(t, store.Rename(context.Background(), "/dir/old.txt", "/dir/new.txt"))

	require.Len(t, client.copyInputs, 1)
	assert.Equal(t, url.PathEscape("test-bucket/dir/old.txt"), aws.ToString(client.copyInputs[0].CopySource))
	assert.Equal(t, "dir/new.txt", aws.ToString(client.copyInputs[0].Key))

	require.Len(t, client.deleteInputs, 1)
	assert.Equal(t, "dir/old.txt", aws.ToString(client.deleteInputs[0].Key))
}

func TestDeleteVerifiesExistence(t *testing.T) {
	t.Parallel()

	t.Run("existing_object", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{headOut: &s3aws.HeadObjectOutput{}}
		store := newStorage(t, client)

		require.NoError(t, store.Delete(context.Background(), "/a.txt"))
		require.Len(t, client.headInputs, 1)
		require.Len(t, client.deleteInputs, 1)
	})

	t.Run("missing_object", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{headErr: &types.NotFound{}}
		store := newStorage(t, client)

		err := store.Delete(context.Background(), "/a.txt")
		assert.ErrorIs(t, err, storage.ErrNotExist)
		assert.Empty(t, client.deleteInputs)
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	t.Run("immediate_children", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{
			listOut: &s3aws.ListObjectsV2Output{
				Contents: []types.Object{
					{Key: aws.String("uploads/")}, // directory marker skipped
					{Key: aws.String("uploads/a.txt"), Size: aws.Int64(3)},
					{Key: aws.String("uploads/deep/b.txt"), Size: aws.Int64(9)}, // not immediate
				},
				CommonPrefixes: []types.CommonPrefix{
					{Prefix: aws.String("uploads/deep/")},
				},
			},
		}
		store := newStorage(t, client)

		entries, err := store.List(context.Background(), "/uploads")
		require.NoError(t, err)

		require.Len(t, client.listInputs, 1)
		assert.Equal(t, "uploads/", aws.ToString(client.listInputs[0].Prefix))
		assert.Equal(t, "/", aws.ToString(client.listInputs[0].Delimiter))

		require.Len(t, entries, 2)
		assert.Equal(t, "deep", entries[0].Name)
		assert.True(t, entries[0].IsDir)
		assert.Equal(t, "a.txt", entries[1].Name)
		assert.Equal(t, int64(3), entries[1].Size)
	})

	t.Run("empty_prefix_is_not_exist", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{listOut: &s3aws.ListObjectsV2Output{}}
		store := newStorage(t, client)

		_, err := store.List(context.Background(), "/missing")
		assert.ErrorIs(t, err, storage.ErrNotExist)
	})
}
