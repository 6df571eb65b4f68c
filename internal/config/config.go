package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type MoodServerConfig struct {
	HTTPAddr        string
	ReadBodyMaxByte int64
	CatalogPath     string
	DBDSN           string
	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTUsername    string
	MQTTPassword    string
	MQTTTopicPrefix string
	DetectorBaseURL string
	DetectorTimeout time.Duration
}

// LoadMoodServerConfig reads the server configuration from the
// environment. Everything is optional: with no DB DSN the server skips
// persistence, with no broker it skips event publishing, with no detector
// it falls back to the simulator, and with no catalog path it serves the
// embedded catalog.
func LoadMoodServerConfig() MoodServerConfig {
	return MoodServerConfig{
		HTTPAddr:        getenvDefault("MOOD_HTTP_ADDR", ":9020"),
		ReadBodyMaxByte: int64(getenvIntDefault("MOOD_MAX_BODY_BYTES", 1<<20)),
		CatalogPath:     strings.TrimSpace(os.Getenv("MOOD_CATALOG_PATH")),
		DBDSN:           os.Getenv("DB_DSN"),
		MQTTBrokerURL:   strings.TrimSpace(os.Getenv("MQTT_BROKER_URL")),
		MQTTClientID:    getenvDefault("MOOD_MQTT_CLIENT_ID", "mood-server"),
		MQTTUsername:    os.Getenv("MQTT_USERNAME"),
		MQTTPassword:    os.Getenv("MQTT_PASSWORD"),
		MQTTTopicPrefix: getenvDefault("MQTT_TOPIC_PREFIX", "moodring"),
		DetectorBaseURL: strings.TrimSpace(os.Getenv("DETECTOR_BASE_URL")),
		DetectorTimeout: time.Duration(getenvIntDefault("DETECTOR_TIMEOUT_SECONDS", 3)) * time.Second,
	}
}

func getenvDefault(key, val string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return val
}

func getenvIntDefault(key string, val int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return val
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return val
	}
	return n
}
