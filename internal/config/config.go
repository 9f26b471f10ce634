package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for the marketplace system
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Server   ServerConfig   `yaml:"server"`
	Pricing  PricingConfig  `yaml:"pricing"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port"`
}

// PricingConfig holds the marketplace pricing parameters. The values here
// are business configuration; the settlement math never recomputes them.
type PricingConfig struct {
	TaxRate            decimal.Decimal `yaml:"tax_rate"`
	CostRatio          decimal.Decimal `yaml:"cost_ratio"`
	DeliveryETAMinutes int             `yaml:"delivery_eta_minutes"`
}

// DeliveryETA returns the configured delivery estimate as a duration
func (p *PricingConfig) DeliveryETA() time.Duration {
	return time.Duration(p.DeliveryETAMinutes) * time.Minute
}

// Load reads configuration from a YAML file. Sections absent from the
// file keep their defaults.
func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := defaultConfig()
	scanner := bufio.NewScanner(file)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Check for section headers
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			currentSection = strings.TrimSuffix(line, ":")
			continue
		}

		// Parse key-value pairs
		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if err := config.setValue(currentSection, key, value); err != nil {
				return nil, fmt.Errorf("failed to set config value %s.%s: %w", currentSection, key, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return config, nil
}

// defaultConfig returns the configuration defaults applied before the
// file is read
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 3000},
		Pricing: PricingConfig{
			TaxRate:            decimal.RequireFromString("0.08"),
			CostRatio:          decimal.RequireFromString("0.70"),
			DeliveryETAMinutes: 45,
		},
	}
}

// setValue sets a configuration value based on section and key
func (c *Config) setValue(section, key, value string) error {
	switch section {
	case "database":
		return c.setDatabaseValue(key, value)
	case "rabbitmq":
		return c.setRabbitMQValue(key, value)
	case "server":
		return c.setServerValue(key, value)
	case "pricing":
		return c.setPricingValue(key, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

// setDatabaseValue sets database configuration values
func (c *Config) setDatabaseValue(key, value string) error {
	switch key {
	case "host":
		c.Database.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.Database.Port = port
	case "user":
		c.Database.User = value
	case "password":
		c.Database.Password = value
	case "database":
		c.Database.Database = value
	default:
		return fmt.Errorf("unknown database key: %s", key)
	}
	return nil
}

// setRabbitMQValue sets RabbitMQ configuration values
func (c *Config) setRabbitMQValue(key, value string) error {
	switch key {
	case "host":
		c.RabbitMQ.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.RabbitMQ.Port = port
	case "user":
		c.RabbitMQ.User = value
	case "password":
		c.RabbitMQ.Password = value
	default:
		return fmt.Errorf("unknown rabbitmq key: %s", key)
	}
	return nil
}

// setServerValue sets HTTP server configuration values
func (c *Config) setServerValue(key, value string) error {
	switch key {
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.Server.Port = port
	default:
		return fmt.Errorf("unknown server key: %s", key)
	}
	return nil
}

// setPricingValue sets pricing configuration values
func (c *Config) setPricingValue(key, value string) error {
	switch key {
	case "tax_rate":
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("invalid tax_rate value: %w", err)
		}
		c.Pricing.TaxRate = rate
	case "cost_ratio":
		ratio, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("invalid cost_ratio value: %w", err)
		}
		c.Pricing.CostRatio = ratio
	case "delivery_eta_minutes":
		minutes, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid delivery_eta_minutes value: %w", err)
		}
		c.Pricing.DeliveryETAMinutes = minutes
	default:
		return fmt.Errorf("unknown pricing key: %s", key)
	}
	return nil
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
