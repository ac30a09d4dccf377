package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/krishimitre/krishimitre/internal/logging"
	sc "github.com/krishimitre/krishimitre/internal/server/config"
)

// ErrModelUnavailable is returned when the ML service cannot be reached or
// answers with a non-2xx status.
var ErrModelUnavailable = errors.New("model service unavailable")

// Seams for the AWS SDK, swapped out in tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// MLService forwards prediction requests to the external model service and
// archives uploaded plant images to object storage.
type MLService struct {
	config *sc.Config
	hc     *http.Client
	logger logging.Logger
}

func NewMLService(cfg *sc.Config, logger logging.Logger) *MLService {
	return &MLService{
		config: cfg,
		hc:     &http.Client{Timeout: 30 * time.Second},
		logger: logger.With("module", "ml"),
	}
}

// GetRandomStorageKey builds a date-partitioned object key for an uploaded
// image.
func GetRandomStorageKey(filename string) string {
	d := nowFn()
	return fmt.Sprintf("uploads/%d/%d/%d/%v-%s", d.Year(), d.Month(), d.Day(), uuid.New(), filename)
}

// RecommendCrop forwards the soil/climate readings to the model's
// crop-recommend endpoint and passes the answer through untouched.
func (s *MLService) RecommendCrop(ctx context.Context, payload []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.config.MLBaseURL+"/crop-recommend", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return s.roundTrip(req)
}

// DetectDisease forwards the image to the model's predict endpoint and,
// when a verdict comes back, archives the image to object storage.
// Archiving is best effort: failures are logged and do not affect the
// response.
func (s *MLService) DetectDisease(ctx context.Context, filename string, image []byte) (json.RawMessage, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.config.MLBaseURL+"/predict", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	result, err := s.roundTrip(req)
	if err != nil {
		return nil, err
	}

	if err := s.archiveImage(ctx, filename, image); err != nil {
		s.logger.Warn(ctx, "failed to archive image", "filename", filename, "error", err)
	}
	return result, nil
}

func (s *MLService) roundTrip(req *http.Request) (json.RawMessage, error) {
	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrModelUnavailable, resp.StatusCode)
	}
	return json.RawMessage(data), nil
}

func (s *MLService) getS3Client() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func (s *MLService) archiveImage(ctx context.Context, filename string, image []byte) error {
	client, err := s.getS3Client()
	if err != nil {
		return err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(filename)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(image),
	})
	return err
}
