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
	"context"
	"io"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	minio "github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/test"
)

type fakeS3Client struct {
	bucket     string
	objectName string
	body       []byte
	err        error
}

func (f *fakeS3Client) PutObject(_ context.Context, bucketName, objectName string, reader io.Reader,
	_ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	f.bucket = bucketName
	f.objectName = objectName
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.body = body
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(body))}, nil
}

func TestWriteS3_UploadsBatch(t *testing.T) {
	fake := &fakeS3Client{}
	writer := &writeS3{
		s3Params: api.WriteS3{Bucket: "drive-results", ObjectPrefix: "daily/"},
		client:   fake,
		now: func() time.Time {
			return time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)
		},
	}

	err := writer.Write([]config.GenericMap{
		test.GetIngestMockEntry("SN-A", false),
		test.GetIngestMockEntry("SN-B", true),
	})
	require.NoError(t, err)

	require.Equal(t, "drive-results", fake.bucket)
	require.Equal(t, "daily/drive-anomalies-2023-04-05T06-07-08.json", fake.objectName)

	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	var decoded struct {
		Version string                   `json:"version"`
		Records []map[string]interface{} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(fake.body, &decoded))
	require.Equal(t, s3ResultVersion, decoded.Version)
	require.Len(t, decoded.Records, 2)
	require.Equal(t, "SN-A", decoded.Records[0]["serial_number"])
}

func TestWriteS3_PropagatesUploadError(t *testing.T) {
	fake := &fakeS3Client{err: errors.New("access denied")}
	writer := &writeS3{
		s3Params: api.WriteS3{Bucket: "drive-results"},
		client:   fake,
		now:      time.Now,
	}

	err := writer.Write([]config.GenericMap{test.GetIngestMockEntry("SN-A", false)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bucket drive-results")
}

func TestNewWriteS3_Validation(t *testing.T) {
	param := func(cfg api.WriteS3) config.StageParam {
		return config.StageParam{Write: &config.Write{Type: api.S3Type, S3: &cfg}}
	}

	_, err := NewWriteS3(param(api.WriteS3{}))
	require.Error(t, err)

	_, err = NewWriteS3(param(api.WriteS3{Endpoint: "localhost:9000"}))
	require.Error(t, err)

	writer, err := NewWriteS3(param(api.WriteS3{Endpoint: "localhost:9000", Bucket: "results"}))
	require.NoError(t, err)
	require.NotNil(t, writer)
}
