package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-builder/internal/shared/storage/object"
)

type fakeS3 struct {
	objects map[string][]byte
	puts    []*s3.PutObjectInput
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = body
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/file.pdf", want: "user/file.pdf"},
		{name: "simple prefix", prefix: "resumes", key: "user/file.pdf", want: "resumes/user/file.pdf"},
		{name: "prefix and key slashes", prefix: "/resumes/", key: "/user/file.pdf", want: "resumes/user/file.pdf"},
		{name: "empty key", prefix: "resumes", key: "", want: "resumes"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestSaveOpenDelete(t *testing.T) {
	fake := newFakeS3()
	store := NewWithClient(fake, "bucket", "generated/", "")
	ctx := context.Background()

	info, err := store.Save(ctx, "user-1", "resume.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if info.SizeBytes != 8 {
		t.Fatalf("unexpected size %d", info.SizeBytes)
	}
	put := fake.puts[0]
	if !strings.HasPrefix(aws.ToString(put.Key), "generated/") {
		t.Fatalf("expected prefixed key, got %q", aws.ToString(put.Key))
	}
	if aws.ToInt64(put.ContentLength) != 8 || put.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("unexpected put input: %+v", put)
	}

	rc, err := store.Open(ctx, info.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rc.Close()

	if err := store.Delete(ctx, info.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, info.Key); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveUsesKMSWhenConfigured(t *testing.T) {
	fake := newFakeS3()
	store := NewWithClient(fake, "bucket", "", "kms-key")
	if _, err := store.Save(context.Background(), "user-1", "resume.pdf", "application/pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	put := fake.puts[0]
	if put.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(put.SSEKMSKeyId) != "kms-key" {
		t.Fatalf("expected kms encryption, got %+v", put)
	}
}
