// Package blobstore wraps the external base-text blob collaborator named in
// spec §1/§6: an S3 bucket holding UTF-8 base text at
// base_texts/{expression_id}/{manifestation_id}.txt. Spec treats this as an
// external key→bytes store; this package is the concrete default
// implementation the rest of the system is wired against.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/openpecha/corpusgraph/pkg/apperrors"
)

// Store is the process-wide singleton client (spec §5's "blob store client
// is likewise a process-wide singleton").
type Store struct {
	client *s3.Client
	bucket string
	log    *zap.Logger
}

func New(client *s3.Client, bucket string, log *zap.Logger) *Store {
	return &Store{client: client, bucket: bucket, log: log}
}

func key(expressionID, manifestationID string) string {
	return fmt.Sprintf("base_texts/%s/%s.txt", expressionID, manifestationID)
}

// Put uploads base text, overwriting any prior content atomically at the
// blob layer.
func (s *Store) Put(ctx context.Context, expressionID, manifestationID string, content []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(expressionID, manifestationID)),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return apperrors.NewInternal("write base text", err)
	}
	return nil
}

// Get returns the full base text.
func (s *Store) Get(ctx context.Context, expressionID, manifestationID string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(expressionID, manifestationID)),
	})
	if err != nil {
		return nil, apperrors.NewNotFound("base text not found")
	}
	defer out.Body.Close()
	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, apperrors.NewInternal("read base text", err)
	}
	return b, nil
}

// Slice returns base_text[start:end], clamped to the stored length.
func (s *Store) Slice(ctx context.Context, expressionID, manifestationID string, start, end int) ([]byte, error) {
	full, err := s.Get(ctx, expressionID, manifestationID)
	if err != nil {
		return nil, err
	}
	if start < 0 || start > len(full) || end < start {
		return nil, apperrors.NewInvalidRequest("span out of range")
	}
	if end > len(full) {
		end = len(full)
	}
	return full[start:end], nil
}

// Len returns the stored base text's byte length, used by the span-
// relocation engine and by read-time span validation (spec §3 invariant 3/5).
func (s *Store) Len(ctx context.Context, expressionID, manifestationID string) (int, error) {
	full, err := s.Get(ctx, expressionID, manifestationID)
	if err != nil {
		return 0, err
	}
	return len(full), nil
}

// Replace applies a [start,end) replacement with newContent and returns the
// resulting full text, without persisting it; callers store the result
// before the accompanying graph transaction (span relocation) and restore
// the previous text if that transaction fails.
func Replace(base []byte, start, end int, newContent []byte) []byte {
	out := make([]byte, 0, len(base)-(end-start)+len(newContent))
	out = append(out, base[:start]...)
	out = append(out, newContent...)
	out = append(out, base[end:]...)
	return out
}

// Delete removes the stored base text. Used by rollback paths only; base
// text is otherwise immutable once written per manifestation lifecycle.
func (s *Store) Delete(ctx context.Context, expressionID, manifestationID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(expressionID, manifestationID)),
	})
	return err
}

// RollbackBaseText undoes a Put that preceded a graph transaction which then
// failed, per spec §5's explicit rollback_base_text helper. previous is nil
// when the manifestation did not exist before the failed write (new
// manifestation), in which case the object is removed outright; otherwise
// the prior content is restored.
func (s *Store) RollbackBaseText(ctx context.Context, expressionID, manifestationID string, previous []byte) {
	var err error
	if previous == nil {
		err = s.Delete(ctx, expressionID, manifestationID)
	} else {
		err = s.Put(ctx, expressionID, manifestationID, previous)
	}
	if err != nil {
		s.log.Error("rollback_base_text failed",
			zap.String("expression_id", expressionID),
			zap.String("manifestation_id", manifestationID),
			zap.Error(err))
	}
}
