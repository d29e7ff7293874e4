package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"nutriplan"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source yields the raw JSON of a stored profile.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

type FileSource struct {
	FilePath string
}

func NewFileSource(filePath string) *FileSource {
	return &FileSource{FilePath: filePath}
}

func (f *FileSource) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(f.FilePath)
}

type s3GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a profile document from an S3 object.
type S3Source struct {
	bucket string
	key    string
	s3     s3GetObjectAPI
}

func NewS3Source(client s3GetObjectAPI, bucket, key string) *S3Source {
	return &S3Source{
		bucket: bucket,
		key:    key,
		s3:     client,
	}
}

func (s *S3Source) Load(ctx context.Context) ([]byte, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get profile object s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// StaticSource serves fixed bytes, used by tests and the Lambda handler.
type StaticSource struct {
	data []byte
	err  error
}

func NewStaticSource(data []byte) *StaticSource {
	return &StaticSource{data: data}
}

func NewStaticSourceWithError(err error) *StaticSource {
	return &StaticSource{err: err}
}

func (s *StaticSource) Load(ctx context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

// Load reads, decodes and validates a profile from src.
func Load(ctx context.Context, src Source) (nutriplan.UserProfile, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nutriplan.UserProfile{}, fmt.Errorf("failed to load profile: %w", err)
	}

	var p nutriplan.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nutriplan.UserProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}

	if err := Validate(p); err != nil {
		return nutriplan.UserProfile{}, err
	}
	return p, nil
}
