package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStore keeps every logical bucket as a key prefix inside one OSS bucket.
type OSSStore struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
	publicBase string
	prefix     string
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func NewOSSStoreFromEnv() (*OSSStore, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 {
			log.Printf("[OSS] warn: skip location check, access denied (bucket=%s)", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSStore{
		bucket:     bkt,
		endpoint:   endpoint,
		bucketName: bucketName,
		publicBase: strings.TrimRight(getEnv("ALI_OSS_PUBLIC_BASE"), "/"),
		prefix:     strings.Trim(getEnv("ALI_OSS_PREFIX"), "/"),
	}, nil
}

func (s *OSSStore) Name() string { return "oss" }

func (s *OSSStore) key(bucket, path string) string {
	k := bucket + "/" + strings.TrimLeft(path, "/")
	if s.prefix != "" {
		k = s.prefix + "/" + k
	}
	return k
}

func (s *OSSStore) Upload(ctx context.Context, bucket, path string, body io.Reader, _ int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.bucket.PutObject(s.key(bucket, path), body, opts...); err != nil {
		return "", err
	}
	return s.PublicURL(bucket, path), nil
}

func (s *OSSStore) Delete(ctx context.Context, bucket, path string) error {
	return s.bucket.DeleteObject(s.key(bucket, path), oss.WithContext(ctx))
}

func (s *OSSStore) base() string {
	if s.publicBase != "" {
		return s.publicBase
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s", s.bucketName, end)
}

func (s *OSSStore) PublicURL(bucket, path string) string {
	return s.base() + "/" + s.key(bucket, path)
}

func (s *OSSStore) PathFromURL(bucket, publicURL string) (string, bool) {
	prefix := s.base() + "/" + s.key(bucket, "")
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(publicURL, prefix), true
}
