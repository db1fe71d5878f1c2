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
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/KrishJani/drive-health-pipeline/pkg/api"
	"github.com/KrishJani/drive-health-pipeline/pkg/config"
	"github.com/KrishJani/drive-health-pipeline/pkg/detect"
)

var kafkaLog = logrus.WithField("component", "write.Kafka")

const (
	defaultKafkaReadTimeout  = int64(10)
	defaultKafkaWriteTimeout = int64(10)
)

type kafkaWriteMessage interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type writeKafka struct {
	kafkaParams api.WriteKafka
	kafkaWriter kafkaWriteMessage
}

// Write publishes the annotated records to the configured topic, keyed by
// drive serial number so records of one drive land on one partition.
func (w *writeKafka) Write(entries []config.GenericMap) error {
	kafkaLog.Debugf("publishing %d entries", len(entries))
	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	msgs := make([]kafkago.Message, 0, len(entries))
	for _, entry := range entries {
		value, err := json.Marshal(entry)
		if err != nil {
			return errors.Wrap(err, "marshaling entry")
		}
		var key []byte
		if serial, ok := entry[detect.FieldSerialNumber].(string); ok {
			key = []byte(serial)
		}
		msgs = append(msgs, kafkago.Message{Key: key, Value: value})
	}
	if err := w.kafkaWriter.WriteMessages(context.Background(), msgs...); err != nil {
		return errors.Wrap(err, "writing to kafka")
	}
	return nil
}

// NewWriteKafka creates a writer publishing annotated records to kafka.
func NewWriteKafka(params config.StageParam) (Writer, error) {
	kafkaConfig := api.WriteKafka{}
	if params.Write != nil && params.Write.Kafka != nil {
		kafkaConfig = *params.Write.Kafka
	}
	if kafkaConfig.Address == "" || kafkaConfig.Topic == "" {
		return nil, errors.New("kafka address and topic must be provided")
	}

	var balancer kafkago.Balancer
	switch kafkaConfig.Balancer {
	case "roundRobin":
		balancer = &kafkago.RoundRobin{}
	case "leastBytes":
		balancer = &kafkago.LeastBytes{}
	case "hash":
		balancer = &kafkago.Hash{}
	case "crc32":
		balancer = &kafkago.CRC32Balancer{}
	case "murmur2":
		balancer = &kafkago.Murmur2Balancer{}
	default:
		balancer = nil
	}

	readTimeoutSecs := kafkaConfig.ReadTimeout
	if readTimeoutSecs == 0 {
		readTimeoutSecs = defaultKafkaReadTimeout
	}
	writeTimeoutSecs := kafkaConfig.WriteTimeout
	if writeTimeoutSecs == 0 {
		writeTimeoutSecs = defaultKafkaWriteTimeout
	}

	kafkaLog.Infof("publishing results to %s topic %s", kafkaConfig.Address, kafkaConfig.Topic)
	return &writeKafka{
		kafkaParams: kafkaConfig,
		kafkaWriter: &kafkago.Writer{
			Addr:         kafkago.TCP(kafkaConfig.Address),
			Topic:        kafkaConfig.Topic,
			Balancer:     balancer,
			ReadTimeout:  time.Duration(readTimeoutSecs) * time.Second,
			WriteTimeout: time.Duration(writeTimeoutSecs) * time.Second,
			BatchSize:    kafkaConfig.BatchSize,
			BatchBytes:   kafkaConfig.BatchBytes,
		},
	}, nil
}
