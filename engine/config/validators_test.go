package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePort(t *testing.T) {
	t.Run("Should accept empty and valid ports", func(t *testing.T) {
		for _, v := range []string{"", "1", "5432", "65535"} {
			assert.NoError(t, ValidatePort(v), "port %q", v)
		}
	})
	t.Run("Should reject non-numbers and out-of-range ports", func(t *testing.T) {
		for _, v := range []string{"abc", "0", "-1", "65536"} {
			assert.Error(t, ValidatePort(v), "port %q", v)
		}
	})
}

func TestValidateHost(t *testing.T) {
	t.Run("Should accept empty, hostnames, and addresses", func(t *testing.T) {
		for _, v := range []string{"", "localhost", "db.example.com", "10.0.0.12"} {
			assert.NoError(t, ValidateHost(v), "host %q", v)
		}
	})
	t.Run("Should reject values with spaces", func(t *testing.T) {
		assert.Error(t, ValidateHost("not a host"))
	})
}

func TestValidateHostPort(t *testing.T) {
	t.Run("Should accept host:port node specs", func(t *testing.T) {
		for _, v := range []string{"localhost:11211", "cache.example.com:6379"} {
			assert.NoError(t, ValidateHostPort(v), "node %q", v)
		}
	})
	t.Run("Should reject specs without a port", func(t *testing.T) {
		for _, v := range []string{"", "localhost", "localhost:"} {
			assert.Error(t, ValidateHostPort(v), "node %q", v)
		}
	})
}

func TestValidateName(t *testing.T) {
	t.Run("Should accept plain names", func(t *testing.T) {
		for _, v := range []string{"forumdb", "forum.log", "askbot.db"} {
			assert.NoError(t, ValidateName(v), "name %q", v)
		}
	})
	t.Run("Should reject empty names and path separators", func(t *testing.T) {
		for _, v := range []string{"", "  ", "a/b", `a\b`} {
			assert.Error(t, ValidateName(v), "name %q", v)
		}
	})
}

func TestValidateChoice(t *testing.T) {
	check := ValidateChoice([]string{"1", "2"})
	t.Run("Should accept values in the set", func(t *testing.T) {
		assert.NoError(t, check("1"))
		assert.NoError(t, check("2"))
	})
	t.Run("Should reject values outside the set", func(t *testing.T) {
		assert.Error(t, check("3"))
		assert.Error(t, check(""))
	})
}

func TestValidateNumber(t *testing.T) {
	t.Run("Should accept empty and non-negative integers", func(t *testing.T) {
		for _, v := range []string{"", "0", "1", "15"} {
			assert.NoError(t, ValidateNumber(v), "value %q", v)
		}
	})
	t.Run("Should reject negatives and non-numbers", func(t *testing.T) {
		for _, v := range []string{"-1", "one", "1.5"} {
			assert.Error(t, ValidateNumber(v), "value %q", v)
		}
	})
}
