package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

type AppConfig struct {
	Port             string `mapstructure:"PORT" validate:"required"`
	GRPCPort         string `mapstructure:"GRPC_PORT" validate:"required"`
	AppEnv           string `mapstructure:"APP_ENV"`
	ServiceName      string `mapstructure:"SERVICE_NAME"`
	StorageDriver    string `mapstructure:"STORAGE_DRIVER" validate:"oneof=mongo postgres"`
	MongoURI         string `mapstructure:"MONGODB_URI" validate:"required_if=StorageDriver mongo"`
	DatabaseName     string `mapstructure:"DATABASE_NAME" validate:"required_if=StorageDriver mongo"`
	CollectionName   string `mapstructure:"COLLECTION_NAME" validate:"required_if=StorageDriver mongo"`
	PostgresUsername string `mapstructure:"POSTGRES_USERNAME"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDatabase string `mapstructure:"POSTGRES_DATABASE" validate:"required_if=StorageDriver postgres"`
	PostgresSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	PostgresHost     string `mapstructure:"POSTGRES_HOST" validate:"required_if=StorageDriver postgres"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
}

// Read loads the configuration and panics when it is incomplete.
func Read() *AppConfig {
	appConfig, err := Load(".env")
	if err != nil {
		panic(fmt.Errorf("fatal error reading config: %w", err))
	}

	return appConfig
}

// Load reads envFile if it exists, overlays the process environment and
// validates the result.
func Load(envFile string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()

	bindEnvVariables(v)
	setDefaults(v)

	var appConfig AppConfig
	if err := v.Unmarshal(&appConfig); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&appConfig); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &appConfig, nil
}

func bindEnvVariables(v *viper.Viper) {
	_ = v.BindEnv("PORT")
	_ = v.BindEnv("GRPC_PORT")
	_ = v.BindEnv("APP_ENV")
	_ = v.BindEnv("SERVICE_NAME")
	_ = v.BindEnv("STORAGE_DRIVER")
	_ = v.BindEnv("MONGODB_URI")
	_ = v.BindEnv("DATABASE_NAME")
	_ = v.BindEnv("COLLECTION_NAME")
	_ = v.BindEnv("POSTGRES_USERNAME")
	_ = v.BindEnv("POSTGRES_PASSWORD")
	_ = v.BindEnv("POSTGRES_DATABASE")
	_ = v.BindEnv("POSTGRES_SSLMODE")
	_ = v.BindEnv("POSTGRES_HOST")
	_ = v.BindEnv("POSTGRES_PORT")
	_ = v.BindEnv("RABBITMQ_URL")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GRPC_PORT", "9090")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_NAME", "catalog")
	v.SetDefault("STORAGE_DRIVER", StorageMongo)
	v.SetDefault("DATABASE_NAME", "test")
	v.SetDefault("COLLECTION_NAME", "items")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
}
