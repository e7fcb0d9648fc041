package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// fakeS3 is an in-memory stand-in for the S3 API.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	getErr  error
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3(t *testing.T) {
	fake := newFakeS3()
	s := newS3WithClient(fake, "records", "crate/")
	exerciseStore(t, s)

	t.Run("object layout", func(t *testing.T) {
		if _, ok := fake.objects["records/crate/albumsData.json"]; !ok {
			t.Errorf("expected object crate/albumsData.json, have %v", fake.objects)
		}
	})

	t.Run("api not found code", func(t *testing.T) {
		fake.getErr = &smithy.GenericAPIError{Code: "NotFound", Message: "gone"}
		defer func() { fake.getErr = nil }()

		if _, err := s.Get(context.Background(), "albumsData"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		fake.getErr = &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"}
		defer func() { fake.getErr = nil }()

		_, err := s.Get(context.Background(), "albumsData")
		if err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("expected access error, got %v", err)
		}
	})

	t.Run("put failure", func(t *testing.T) {
		fake.putErr = errors.New("quota exceeded")
		defer func() { fake.putErr = nil }()

		if err := s.Put(context.Background(), "albumsData", []byte(`[]`)); err == nil {
			t.Error("expected put error")
		}
	})
}
