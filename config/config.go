// config/config.go
package config

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pmb-ti/accountrenewal/model"
)

// Configuration stores all the configurations
type Configuration struct {
	Server    ServerConfiguration
	Redis     RedisConfiguration
	Directory DirectoryConfiguration
	Neo4j     Neo4jConfiguration
	Log       LogConfiguration
	Domains   map[string]DomainConfiguration
}

// ServerConfiguration stores the port and rate limit settings of the HTTP API
type ServerConfiguration struct {
	Port      string
	RateLimit RateLimitConfiguration
}

type RateLimitConfiguration struct {
	Requests int
	Window   time.Duration
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// DirectoryConfiguration selects the directory binding: "ldap", "neo4j" or "memory".
type DirectoryConfiguration struct {
	Backend string
}

// Neo4jConfiguration stores data for the graph mirror of the directory
type Neo4jConfiguration struct {
	URI      string
	Username string
	Password string
	Database string
}

type LogConfiguration struct {
	Dir string
}

// DomainConfiguration describes one Active Directory domain.
type DomainConfiguration struct {
	Label              string
	URL                string
	BaseDN             string
	BindUser           string
	BindPassword       string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("RENEWAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	return load()
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.rateLimit.requests", 60)
	viper.SetDefault("server.rateLimit.window", "1m")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("directory.backend", "ldap")
	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("neo4j.username", "neo4j")
	viper.SetDefault("neo4j.password", "")
	viper.SetDefault("neo4j.database", "neo4j")
	viper.SetDefault("log.dir", "")

	for _, id := range []string{"saude", "betim"} {
		setDomainDefaults(id)
	}
}

// setDomainDefaults registers every key of a domain so that Unmarshal also
// reads them from RENEWAL_DOMAINS_<ID>_<KEY> environment variables.
func setDomainDefaults(id string) {
	prefix := "domains." + id + "."
	viper.SetDefault(prefix+"label", id+".pmb")
	viper.SetDefault(prefix+"url", "ldap://"+id+".pmb:389")
	viper.SetDefault(prefix+"baseDN", "DC="+id+",DC=pmb")
	viper.SetDefault(prefix+"bindUser", "")
	viper.SetDefault(prefix+"bindPassword", "")
	viper.SetDefault(prefix+"timeout", "10s")
	viper.SetDefault(prefix+"insecureSkipVerify", false)
}

func load() error {
	var c Configuration
	if err := viper.Unmarshal(&c); err != nil {
		return err
	}
	config = &c
	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// Domains returns the configured directory domains sorted by identifier.
func Domains() []model.Domain {
	if config == nil {
		return nil
	}
	ids := make([]string, 0, len(config.Domains))
	for id := range config.Domains {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	domains := make([]model.Domain, 0, len(ids))
	for _, id := range ids {
		domains = append(domains, model.Domain{ID: model.DomainID(id), Label: config.Domains[id].Label})
	}
	return domains
}

// Domain returns the configuration of one domain.
func Domain(id model.DomainID) (DomainConfiguration, bool) {
	if config == nil {
		return DomainConfiguration{}, false
	}
	d, ok := config.Domains[string(id)]
	return d, ok
}

// DomainLabel resolves a domain to its human readable label.
func DomainLabel(id model.DomainID) string {
	if d, ok := Domain(id); ok && d.Label != "" {
		return d.Label
	}
	return model.UnknownDomainLabel
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}
