package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	JWTAccessSecret   string `env:"JWT_ACCESS_SECRET,required"`
	JWTRefreshSecret  string `env:"JWT_REFRESH_SECRET,required"`
	AccessTTLSeconds  int    `env:"JWT_ACCESS_TTL_SECONDS" envDefault:"3600"`
	RefreshTTLSeconds int    `env:"JWT_REFRESH_TTL_SECONDS" envDefault:"604800"`

	// Código maestro de OTP. Vacío lo deshabilita.
	OTPMasterCode string `env:"OTP_MASTER_CODE"`

	SSOSharedSecret string `env:"SSO_SHARED_SECRET"`

	SMSGatewayURL string `env:"SMS_GATEWAY_URL"`
	SMSGatewayKey string `env:"SMS_GATEWAY_KEY"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
