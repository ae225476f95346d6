// Package report implements the optional, write-only external status
// snapshot uploader from SPEC_FULL.md §2. It is monitoring-only: nothing
// it writes is ever read back, so it cannot violate spec.md's "no
// persistence across restarts" Non-goal. Grounded on mk48's
// server/cloud/fs/s3.go PutObjectRequest usage, generalized from static
// file upload to periodic JSON snapshots, with cenkalti/backoff retries
// (mk48 has no retry wrapper of its own; thousand-worlds' corpus-wide
// stack informed picking a real ecosystem backoff library rather than a
// hand-rolled retry loop).
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog/log"

	"tidekeep/internal/config"
)

// Snapshot is a point-in-time population count, uploaded for external
// observability only.
type Snapshot struct {
	Players int       `json:"players"`
	Towers  int       `json:"towers"`
	Stones  int       `json:"stones"`
	Time    time.Time `json:"time"`
}

// Reporter accepts periodic snapshots. Implementations must not block the
// hub goroutine; Offline's Report is a no-op and S3Reporter's upload runs
// in its own goroutine.
type Reporter interface {
	Report(snap Snapshot)
}

// Offline is the default Reporter when no bucket is configured.
type Offline struct{}

func (Offline) Report(Snapshot) {}

// S3Reporter uploads each snapshot to S3 as a small JSON object, retrying
// with exponential backoff on transient failure.
type S3Reporter struct {
	svc    *s3.S3
	bucket string
	prefix string
}

func NewS3Reporter(cfg config.Report) (*S3Reporter, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.Region)})
	if err != nil {
		return nil, fmt.Errorf("report: new aws session: %w", err)
	}
	return &S3Reporter{svc: s3.New(sess), bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (r *S3Reporter) Report(snap Snapshot) {
	snap.Time = time.Now()
	body, err := json.Marshal(snap)
	if err != nil {
		log.Error().Err(err).Msg("report: marshal snapshot")
		return
	}

	go r.upload(body)
}

func (r *S3Reporter) upload(body []byte) {
	key := fmt.Sprintf("%s/status.json", r.prefix)

	op := func() error {
		req, _ := r.svc.PutObjectRequest(&s3.PutObjectInput{
			Bucket:       aws.String(r.bucket),
			Key:          aws.String(key),
			Body:         bytes.NewReader(body),
			ContentType:  aws.String("application/json"),
			CacheControl: aws.String("no-cache"),
		})
		return req.Send()
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 10 * time.Second

	if err := backoff.Retry(op, policy); err != nil {
		log.Warn().Err(err).Msg("report: upload failed after retries")
	}
}

// New picks Offline or S3Reporter based on whether a bucket is configured.
func New(cfg config.Report) Reporter {
	if cfg.Bucket == "" {
		return Offline{}
	}
	reporter, err := NewS3Reporter(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("report: falling back to offline reporter")
		return Offline{}
	}
	return reporter
}
