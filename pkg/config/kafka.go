package config

import (
	"fmt"
	"strings"
	"time"
)

type KafkaConfig struct {
	Brokers []string      `koanf:"brokers"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the Kafka configuration.
func (c *KafkaConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Kafka ---\n")
	b.WriteString(fmt.Sprintf("  brokers: %s\n", strings.Join(c.Brokers, ",")))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *KafkaConfig) Validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are not configured")
	}
	for _, broker := range c.Brokers {
		if strings.TrimSpace(broker) == "" {
			return fmt.Errorf("kafka broker address must not be empty")
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("kafka dial timeout is not configured")
	}
	return nil
}
