package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config repräsentiert die Hauptkonfiguration der Anwendung
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Store       StoreConfig       `mapstructure:"store"`
	Watcher     WatcherConfig     `mapstructure:"watcher"`
	AutoResolve AutoResolveConfig `mapstructure:"autoresolve"`
	MQTT        MQTTConfig        `mapstructure:"mqtt"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Session     SessionConfig     `mapstructure:"session"`
}

// ServerConfig enthält Server-bezogene Einstellungen
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Timezone string `mapstructure:"timezone"`
}

// LogConfig enthält Log-Einstellungen
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// StoreConfig enthält Einstellungen für den In-Memory-Datenspeicher
type StoreConfig struct {
	// Künstliche Latenz pro Service-Aufruf in Millisekunden (simuliert Netzwerklatenz)
	LatencyMs int `mapstructure:"latency_ms"`
}

// WatcherConfig enthält die Konfiguration für den Incident-Watcher
type WatcherConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalSeconds int  `mapstructure:"interval_seconds"`
}

// AutoResolveConfig enthält die Konfiguration für die automatische Auflösung alter Vorfälle
type AutoResolveConfig struct {
	Enabled              bool `mapstructure:"enabled"`
	CheckIntervalSeconds int  `mapstructure:"check_interval_seconds"`
}

// MQTTConfig enthält die Konfiguration für den optionalen Detection-Ingest über MQTT
type MQTTConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Broker   string `mapstructure:"broker"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
}

// CORSConfig enthält die CORS-Einstellungen für das Browser-Frontend
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SessionConfig enthält Einstellungen für die Cookie-Session (Theme-Präferenz)
type SessionConfig struct {
	Secret     string `mapstructure:"secret"`
	CookieName string `mapstructure:"cookie_name"`
}

// Load lädt die Konfiguration aus Datei, Umgebungsvariablen und Standardwerten
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Standardwerte festlegen
	setDefaults(v)

	// Konfigurationsdatei laden, wenn vorhanden
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Warnf("Config file %s does not exist, using defaults", configPath)
		} else {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			log.Infof("Config loaded from %s", configPath)
		}
	}

	// Umgebungsvariablen überlagern die Konfiguration
	v.AutomaticEnv()
	v.SetEnvPrefix("METROWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Konfiguration in Struct umwandeln
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Sicherstellen, dass erforderliche Verzeichnisse existieren
	if err := ensureDirectories(&cfg); err != nil {
		return nil, fmt.Errorf("failed to create required directories: %w", err)
	}

	return &cfg, nil
}

// setDefaults legt Standardwerte für die Konfiguration fest
func setDefaults(v *viper.Viper) {
	// Server-Standardwerte
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.timezone", "UTC")

	// Log-Standardwerte
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	// Store-Standardwerte: die Originaldienste simulieren 200-500ms Netzwerklatenz
	v.SetDefault("store.latency_ms", 300)

	// Watcher-Standardwerte
	v.SetDefault("watcher.enabled", true)
	v.SetDefault("watcher.interval_seconds", 30)

	// AutoResolve-Standardwerte
	v.SetDefault("autoresolve.enabled", true)
	v.SetDefault("autoresolve.check_interval_seconds", 60)

	// MQTT-Standardwerte (Ingest ist standardmäßig deaktiviert)
	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.port", 1883)
	v.SetDefault("mqtt.client_id", "metrowatch-go")
	v.SetDefault("mqtt.topic", "metrowatch/detections")

	// CORS-Standardwerte
	v.SetDefault("cors.allowed_origins", []string{"*"})

	// Session-Standardwerte
	v.SetDefault("session.secret", "metrowatch-dev-secret")
	v.SetDefault("session.cookie_name", "metrowatch")
}

// ensureDirectories stellt sicher, dass alle erforderlichen Verzeichnisse existieren
func ensureDirectories(cfg *Config) error {
	// Log-Verzeichnis (nur wenn in eine Datei geloggt wird)
	if cfg.Log.File != "" {
		logDir := filepath.Dir(cfg.Log.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	return nil
}
