package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/config"
)

const thumbnailMaxDim = 480

// ImageStore uploads portfolio images to S3: the original as received plus a
// downscaled webp thumbnail. A nil ImageStore means uploads are disabled.
type ImageStore struct {
	client *s3.Client
	bucket string
	region string
}

func NewImageStore(cfg *config.Config) *ImageStore {
	if cfg.AWSAccessKey == "" || cfg.AWSSecretKey == "" {
		return nil
	}

	awsCfg := aws.Config{
		Region: cfg.AWSRegion,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKey,
			cfg.AWSSecretKey,
			"",
		),
	}

	return &ImageStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		region: cfg.AWSRegion,
	}
}

type UploadResult struct {
	ImageURL     string
	ThumbnailURL string
}

// UploadPortfolioImage stores the original and a webp thumbnail under a
// random key scoped to the provider.
func (s *ImageStore) UploadPortfolioImage(
	ctx context.Context,
	providerID uint,
	r io.Reader,
	contentType string,
) (*UploadResult, error) {

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	key := fmt.Sprintf("portfolio/%d/%s", providerID, uuid.NewString())

	if err := s.put(ctx, key, raw, contentType); err != nil {
		return nil, err
	}

	thumb, err := encodeThumbnail(img)
	if err != nil {
		return nil, err
	}
	thumbKey := key + "_thumb.webp"
	if err := s.put(ctx, thumbKey, thumb, "image/webp"); err != nil {
		return nil, err
	}

	return &UploadResult{
		ImageURL:     s.objectURL(key),
		ThumbnailURL: s.objectURL(thumbKey),
	}, nil
}

func (s *ImageStore) put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *ImageStore) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func encodeThumbnail(src image.Image) ([]byte, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := 1.0
	if w > h && w > thumbnailMaxDim {
		scale = float64(thumbnailMaxDim) / float64(w)
	} else if h >= w && h > thumbnailMaxDim {
		scale = float64(thumbnailMaxDim) / float64(h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
