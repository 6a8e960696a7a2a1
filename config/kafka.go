package config

import (
	"fmt"
	"net"
	"peerscore/utils"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const auditTopic = "peerscore-audit"

func CreateAuditTopic() error {
	broker := Env().KafkaBroker
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER environment variable not set")
	}

	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return err
	}
	defer utils.Closer(conn)()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer utils.Closer(controllerConn)()

	topicConfig := kafka.TopicConfig{
		Topic:             auditTopic,
		NumPartitions:     1,
		ReplicationFactor: 1,
		ConfigEntries: []kafka.ConfigEntry{
			{
				ConfigName:  "compression.type",
				ConfigValue: "zstd",
			},
			// 30 days retention
			{
				ConfigName:  "retention.ms",
				ConfigValue: "2592000000",
			},
			{
				ConfigName:  "retention.bytes",
				ConfigValue: "-1",
			},
		},
	}

	return controllerConn.CreateTopics(topicConfig)
}

var auditWriter *kafka.Writer
var auditWriterErr error
var auditWriterOnce sync.Once

// GetAuditWriter returns the process-wide writer for the audit topic,
// creating the topic on first use.
func GetAuditWriter() (*kafka.Writer, error) {
	auditWriterOnce.Do(func() {
		broker := Env().KafkaBroker
		if broker == "" {
			auditWriterErr = fmt.Errorf("KAFKA_BROKER environment variable not set")
			return
		}
		if auditWriterErr = CreateAuditTopic(); auditWriterErr != nil {
			return
		}
		auditWriter = kafka.NewWriter(kafka.WriterConfig{
			Brokers:          []string{broker},
			Topic:            auditTopic,
			CompressionCodec: kafka.Zstd.Codec(),
			BatchTimeout:     200 * time.Millisecond,
		})
	})
	return auditWriter, auditWriterErr
}
