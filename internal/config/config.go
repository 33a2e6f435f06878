// Package config загружает конфигурацию приложения из переменных окружения.
package config

import (
	"log"
	"os"
	"strconv"
)

// DBSSLmode определяет режим SSL-подключения к PostgreSQL.
type DBSSLmode string

const (
	// SSLDisable - SSL-шифрование отключено.
	SSLDisable DBSSLmode = "disable"
	// SSLRequire - SSL обязателен, но сертификат сервера не проверяется.
	SSLRequire DBSSLmode = "require"
	// SSLVerifyFull - SSL обязателен, сертификат сервера проверяется.
	SSLVerifyFull DBSSLmode = "verify-full"
)

// IsValid возвращает true, если значение является допустимым режимом SSL.
func (m DBSSLmode) IsValid() bool {
	switch m {
	case SSLDisable, SSLRequire, SSLVerifyFull:
		return true
	default:
		return false
	}
}

// ServerConfig - конфигурация HTTP-сервера.
type ServerConfig struct {
	Addr string
}

// LoadServer загружает конфигурацию сервера из окружения.
func LoadServer() ServerConfig {
	return ServerConfig{
		Addr: getEnv("SERVER_ADDR", ":8080"),
	}
}

// EngineConfig - параметры движка жизненного цикла багов.
type EngineConfig struct {
	// CASRetries - верхняя граница повторов при конфликте версий.
	CASRetries int
	// LoginRPS - сколько попыток входа в секунду пропускает лимитер.
	LoginRPS float64
	// LoginBurst - размер всплеска для лимитера входа.
	LoginBurst int
}

// LoadEngine загружает параметры движка из окружения.
func LoadEngine() EngineConfig {
	retries, err := strconv.Atoi(getEnv("CAS_RETRIES", "3"))
	if err != nil || retries < 1 {
		log.Printf("warning: invalid CAS_RETRIES; using default 3")
		retries = 3
	}

	rps, err := strconv.ParseFloat(getEnv("LOGIN_RPS", "5"), 64)
	if err != nil || rps <= 0 {
		log.Printf("warning: invalid LOGIN_RPS; using default 5")
		rps = 5
	}

	burst, err := strconv.Atoi(getEnv("LOGIN_BURST", "10"))
	if err != nil || burst < 1 {
		log.Printf("warning: invalid LOGIN_BURST; using default 10")
		burst = 10
	}

	return EngineConfig{CASRetries: retries, LoginRPS: rps, LoginBurst: burst}
}

// DBConfig - набор параметров для подключения к базе данных.
type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	SSLmode  DBSSLmode
	Port     int
}

// LoadDB загружает конфигурацию бд из окружения и возвращает DBConfig.
func LoadDB() DBConfig {
	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("invalid DB_PORT %v", err)
	}

	rmode := getEnv("DB_SSLMODE", string(SSLDisable))
	mode := DBSSLmode(rmode)
	if !mode.IsValid() {
		log.Printf("warning: invalid DB_SSLMODE=%q; using default %q", rmode, SSLDisable)
		mode = SSLDisable
	}

	return DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "bugtrack"),
		Password: getEnv("DB_PASSWORD", "bugtrack"),
		Name:     getEnv("DB_NAME", "bugtrack"),
		SSLmode:  mode,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
