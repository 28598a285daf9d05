package devenv

// MagtifunTestConfig is read from `dev/.state/magtifun_config.json5` by the
// tests that talk to the live site, they are skipped when it does not exist.
type MagtifunTestConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
}
