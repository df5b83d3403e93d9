package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmb-ti/accountrenewal/model"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setDefaults()
	require.NoError(t, load())

	c := GetConfig()
	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, 60, c.Server.RateLimit.Requests)
	assert.Equal(t, time.Minute, c.Server.RateLimit.Window)
	assert.Equal(t, "ldap", c.Directory.Backend)

	assert.Equal(t, []model.Domain{
		{ID: "betim", Label: "betim.pmb"},
		{ID: "saude", Label: "saude.pmb"},
	}, Domains())

	saude, ok := Domain("saude")
	require.True(t, ok)
	assert.Equal(t, "DC=saude,DC=pmb", saude.BaseDN)
	assert.Equal(t, 10*time.Second, saude.Timeout)
}

func TestDomainLabel(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setDefaults()
	viper.Set("domains.betim.label", "betim.example")
	require.NoError(t, load())

	assert.Equal(t, "saude.pmb", DomainLabel("saude"))
	assert.Equal(t, "betim.example", DomainLabel("betim"))
	assert.Equal(t, model.UnknownDomainLabel, DomainLabel("contagem"))
}

func TestInitConfig_DomainCredentialsFromEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("RENEWAL_DOMAINS_SAUDE_BINDUSER", "svc-renewal")
	t.Setenv("RENEWAL_DOMAINS_SAUDE_BINDPASSWORD", "s3cret")
	t.Setenv("RENEWAL_DOMAINS_SAUDE_INSECURESKIPVERIFY", "true")
	t.Setenv("RENEWAL_NEO4J_PASSWORD", "graph-pass")
	t.Setenv("RENEWAL_REDIS_DB", "2")
	require.NoError(t, InitConfig())

	saude, ok := Domain("saude")
	require.True(t, ok)
	assert.Equal(t, "svc-renewal", saude.BindUser)
	assert.Equal(t, "s3cret", saude.BindPassword)
	assert.True(t, saude.InsecureSkipVerify)

	betim, ok := Domain("betim")
	require.True(t, ok)
	assert.Empty(t, betim.BindUser)
	assert.False(t, betim.InsecureSkipVerify)

	c := GetConfig()
	assert.Equal(t, "graph-pass", c.Neo4j.Password)
	assert.Equal(t, 2, c.Redis.DB)
}
