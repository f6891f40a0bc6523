package config

import (
	"fmt"
	"time"

	dbredis "davazen/pkg/db/redis"
)

// Поддерживаемые драйверы хранилища.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

// StorageConfig выбирает драйвер хранилища.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"DAVAZEN_STORAGE_DRIVER" env-default:"memory"`
}

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"DAVAZEN_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DAVAZEN_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DAVAZEN_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DAVAZEN_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"DAVAZEN_POSTGRES_DB" env-default:"davazen"`
	MinConn  int    `yaml:"min_conn" env:"DAVAZEN_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"DAVAZEN_POSTGRES_MAX_CONN" env-default:"10"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"DAVAZEN_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"DAVAZEN_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"DAVAZEN_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"DAVAZEN_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"DAVAZEN_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"DAVAZEN_REDIS_TIMEOUT" env-default:"5s"`
}

// ClientConfig преобразует настройки в конфигурацию клиента.
func (c *RedisConfig) ClientConfig() *dbredis.Config {
	return &dbredis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}

// SQLiteConfig содержит путь к файлу базы.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"DAVAZEN_SQLITE_PATH" env-default:"davazen.db"`
}
