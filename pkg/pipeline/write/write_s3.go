/*
 * Copyright (C) 2023 KrishJani
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package write

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
)

var s3Log = logrus.WithField("component", "write.S3")

const s3ResultVersion = "1.0"

// s3ObjectPutter narrows the minio client for tests.
type s3ObjectPutter interface {
	PutObject(ctx context.Context, bucketName string, objectName string, reader io.Reader,
		objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type writeS3 struct {
	s3Params api.WriteS3
	client   s3ObjectPutter
	now      func() time.Time
}

// Write uploads the whole annotated batch as one JSON object named after the
// run timestamp.
func (w *writeS3) Write(entries []config.GenericMap) error {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	body, err := json.Marshal(map[string]interface{}{
		"version": s3ResultVersion,
		"records": entries,
	})
	if err != nil {
		return errors.Wrap(err, "marshaling result object")
	}
	objectName := fmt.Sprintf("%sdrive-anomalies-%s.json", w.s3Params.ObjectPrefix, w.now().UTC().Format("2006-01-02T15-04-05"))
	_, err = w.client.PutObject(context.Background(), w.s3Params.Bucket, objectName,
		bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return errors.Wrapf(err, "uploading %s to bucket %s", objectName, w.s3Params.Bucket)
	}
	s3Log.Infof("uploaded %d entries to %s/%s", len(entries), w.s3Params.Bucket, objectName)
	return nil
}

// NewWriteS3 creates a writer uploading result batches to S3-compatible storage.
func NewWriteS3(params config.StageParam) (Writer, error) {
	s3Config := api.WriteS3{}
	if params.Write != nil && params.Write.S3 != nil {
		s3Config = *params.Write.S3
	}
	if s3Config.Endpoint == "" || s3Config.Bucket == "" {
		return nil, errors.New("s3 endpoint and bucket must be provided")
	}
	client, err := minio.New(s3Config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s3Config.AccessKeyID, s3Config.SecretAccessKey, ""),
		Secure: s3Config.Secure,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connecting to s3")
	}
	s3Log.Infof("writing results to %s bucket %s", s3Config.Endpoint, s3Config.Bucket)
	return &writeS3{s3Params: s3Config, client: client, now: time.Now}, nil
}
