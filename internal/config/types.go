package config

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	SessionSecret string
	Environment   string
}
