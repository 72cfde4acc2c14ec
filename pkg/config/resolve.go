package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. VPLAN_PASSWORD.
const EnvPrefix = "VPLAN"

// Keys shared by command flags and environment variables
const (
	KeySchool       = "school"
	KeyUsername     = "username"
	KeyPassword     = "password"
	KeyClass        = "class"
	KeyShowDate     = "show_date"
	KeyMatchPolicy  = "match"
	KeyBaseURL      = "base_url"
	KeyCacheMinutes = "cache_minutes"
)

// NewViper returns a viper instance reading VPLAN_* environment variables.
// Callers bind their command flags to it with BindPFlag.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Resolve returns cfg with every value set in v (changed flags, then
// environment) layered on top. cfg itself is not modified.
func Resolve(cfg *AppConfig, v *viper.Viper) *AppConfig {
	out := *cfg

	if v.IsSet(KeySchool) {
		out.SchoolNumber = v.GetString(KeySchool)
	}
	if v.IsSet(KeyUsername) {
		out.Username = v.GetString(KeyUsername)
	}
	if v.IsSet(KeyPassword) {
		out.Password = v.GetString(KeyPassword)
	}
	if v.IsSet(KeyClass) {
		out.Class = v.GetString(KeyClass)
	}
	if v.IsSet(KeyShowDate) {
		out.SetShowDate(v.GetBool(KeyShowDate))
	}
	if v.IsSet(KeyMatchPolicy) {
		out.MatchPolicy = v.GetString(KeyMatchPolicy)
	}
	if v.IsSet(KeyBaseURL) {
		out.BaseURL = v.GetString(KeyBaseURL)
	}
	if v.IsSet(KeyCacheMinutes) {
		out.CacheMinutes = v.GetInt(KeyCacheMinutes)
	}

	return &out
}
