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
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/detect"
	"github.com/KrishJani/drive-health-pipeline/pkg/test"
)

type fakeKafkaWriter struct {
	messages []kafkago.Message
	err      error
}

func (f *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func TestWriteKafka_PublishesKeyedMessages(t *testing.T) {
	fake := &fakeKafkaWriter{}
	writer := &writeKafka{kafkaWriter: fake}

	err := writer.Write([]config.GenericMap{
		test.GetIngestMockEntry("SN-A", false),
		test.GetIngestMockEntry("SN-B", true),
	})
	require.NoError(t, err)
	require.Len(t, fake.messages, 2)

	require.Equal(t, []byte("SN-A"), fake.messages[0].Key)
	require.Equal(t, []byte("SN-B"), fake.messages[1].Key)

	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(fake.messages[1].Value, &decoded))
	require.Equal(t, "SN-B", decoded[detect.FieldSerialNumber])
	require.Equal(t, float64(1), decoded[detect.FieldFailure])
}

func TestWriteKafka_EntryWithoutSerial(t *testing.T) {
	fake := &fakeKafkaWriter{}
	writer := &writeKafka{kafkaWriter: fake}

	err := writer.Write([]config.GenericMap{{"threshold": 0.1}})
	require.NoError(t, err)
	require.Len(t, fake.messages, 1)
	require.Nil(t, fake.messages[0].Key)
}

func TestWriteKafka_PropagatesWriteError(t *testing.T) {
	fake := &fakeKafkaWriter{err: context.DeadlineExceeded}
	writer := &writeKafka{kafkaWriter: fake}

	err := writer.Write([]config.GenericMap{test.GetIngestMockEntry("SN-A", false)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "writing to kafka")
}

func TestNewWriteKafka(t *testing.T) {
	param := func(cfg api.WriteKafka) config.StageParam {
		return config.StageParam{Write: &config.Write{Type: api.KafkaType, Kafka: &cfg}}
	}

	_, err := NewWriteKafka(param(api.WriteKafka{}))
	require.Error(t, err)

	_, err = NewWriteKafka(param(api.WriteKafka{Address: "localhost:9092"}))
	require.Error(t, err)

	writer, err := NewWriteKafka(param(api.WriteKafka{
		Address:      "localhost:9092",
		Topic:        "drive-anomalies",
		Balancer:     "leastBytes",
		WriteTimeout: 2,
	}))
	require.NoError(t, err)

	kafka, ok := writer.(*writeKafka)
	require.True(t, ok)
	inner, ok := kafka.kafkaWriter.(*kafkago.Writer)
	require.True(t, ok)
	require.Equal(t, "drive-anomalies", inner.Topic)
	require.IsType(t, &kafkago.LeastBytes{}, inner.Balancer)
	require.Equal(t, 2*time.Second, inner.WriteTimeout)
	require.Equal(t, 10*time.Second, inner.ReadTimeout)
}
