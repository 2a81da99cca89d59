// Copyright 2026 The DeepBrainChain Authors
// This file is part of the DeepBrainChain library.
//
// The DeepBrainChain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The DeepBrainChain library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the DeepBrainChain library. If not, see <http://www.gnu.org/licenses/>.

package events

import (
	"encoding/json"

	"github.com/Shopify/sarama"

	dbclog "github.com/DeepBrainChain/DeepBrainChain-3.0/log"
)

var logger = dbclog.NewModuleLogger(dbclog.Events)

// KafkaSink mirrors every published event to a Kafka topic so off-chain
// consumers (billing dashboards, explorers) can follow the system
// without reading the state store directly — grounded on the teacher's
// kafka_client and datasync/chaindatafetcher packages, which exist for
// exactly this purpose. Messages are snappy-compressed, matching the
// teacher's own producer config convention.
type KafkaSink struct {
	topic    string
	producer sarama.AsyncProducer
}

// NewKafkaSink dials brokers and returns a Sink. Producer errors are
// logged, never propagated — publishing to Kafka is a best-effort
// mirror, not part of the deterministic state transition.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.Return.Successes = false
	cfg.Producer.Return.Errors = true

	producer, err := sarama.NewAsyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	sink := &KafkaSink{topic: topic, producer: producer}
	go sink.drainErrors()
	return sink, nil
}

func (s *KafkaSink) drainErrors() {
	for err := range s.producer.Errors() {
		logger.Warn("kafka event publish failed", "err", err)
	}
}

func (s *KafkaSink) Publish(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		logger.Warn("event marshal failed", "kind", e.Kind, "err", err)
		return
	}
	s.producer.Input() <- &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(e.Kind),
		Value: sarama.ByteEncoder(payload),
	}
}

func (s *KafkaSink) Close() error { return s.producer.Close() }
