// Package config holds the catalog service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/gocommerce-catalog/pkg/config"
	"github.com/abgdnv/gocommerce-catalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	EventsDriverNATS  = "nats"
	EventsDriverKafka = "kafka"
	EventsDriverNone  = "none"
)

type StoreConfig struct {
	Driver string `koanf:"driver"`
}

type EventsConfig struct {
	Driver string `koanf:"driver"`
}

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Store      StoreConfig             `koanf:"store"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Events     EventsConfig            `koanf:"events"`
	NATS       config.NATSConfig       `koanf:"nats"`
	Kafka      config.KafkaConfig      `koanf:"kafka"`
	Resilience config.ResilienceConfig `koanf:"resilience"`
	CORS       config.CORSConfig       `koanf:"cors"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString("\n--- Store ---\n")
	b.WriteString(fmt.Sprintf("  store.driver: %s\n", c.Store.Driver))
	if c.Store.Driver == StoreDriverPostgres {
		b.WriteString(c.Database.String())
	}
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString("\n--- Events ---\n")
	b.WriteString(fmt.Sprintf("  events.driver: %s\n", c.Events.Driver))
	switch c.Events.Driver {
	case EventsDriverNATS:
		b.WriteString(c.NATS.String())
	case EventsDriverKafka:
		b.WriteString(c.Kafka.String())
	}
	b.WriteString(c.Resilience.String())
	b.WriteString(c.CORS.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks every section the selected drivers need. Empty drivers default
// to postgres and nats.
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	switch c.Store.Driver {
	case "":
		c.Store.Driver = StoreDriverPostgres
		fallthrough
	case StoreDriverPostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver: %s", c.Store.Driver)
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.GRPC.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	switch c.Events.Driver {
	case "":
		c.Events.Driver = EventsDriverNATS
		fallthrough
	case EventsDriverNATS:
		if err := c.NATS.Validate(); err != nil {
			return err
		}
	case EventsDriverKafka:
		if err := c.Kafka.Validate(); err != nil {
			return err
		}
	case EventsDriverNone:
	default:
		return fmt.Errorf("unknown events driver: %s", c.Events.Driver)
	}
	if c.Events.Driver != EventsDriverNone {
		if err := c.Resilience.Validate(); err != nil {
			return err
		}
	}
	return c.CORS.Validate()
}
