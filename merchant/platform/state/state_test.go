package state

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "session.state"))

	blob, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, blob)

	require.NoError(t, store.Save(ctx, []byte("resume-me")))

	blob, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("resume-me"), blob)
}

type fakeObjects struct {
	objects map[string][]byte
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()
	objects := &fakeObjects{objects: map[string][]byte{}}
	store := newS3Store(objects, "merchants", "76561198000000001/session.state")

	blob, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, blob, "missing key is an empty state")

	require.NoError(t, store.Save(ctx, []byte{1, 2, 3}))
	assert.Contains(t, objects.objects, "merchants/76561198000000001/session.state")

	blob, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, blob)
}
