package radiance

import "github.com/spf13/pflag"

// Config holds the connection parameters for a radiance query endpoint.
// None of the fields are validated here; a missing host or credential
// shows up as a RequestError on the first query.
type Config struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// AddToFlagSet registers the connection flags, bound to c's fields.
// Defaults are empty so that environment values bound through viper are
// not shadowed.
func (c *Config) AddToFlagSet(fs *pflag.FlagSet) {
	fs.StringVar(&c.Host, "host", "", "URL of the ClickHouse HTTP endpoint (env RADIANCE_HOST)")
	fs.StringVar(&c.User, "user", "", "User to authenticate as (env RADIANCE_USER)")
	fs.StringVar(&c.Password, "password", "", "Password for user (env RADIANCE_PASSWORD)")
}
