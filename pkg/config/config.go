package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	AWSRegion        string `envconfig:"AWS_REGION" default:"ap-south-1"`
	OrderTableName   string `envconfig:"ORDER_TABLE_NAME" default:"orders"`
	KafkaBrokers     string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT" default:""` // DynamoDB Local endpoint

	Currency         string `envconfig:"CURRENCY" default:"INR"`
	PaymentBaseURL   string `envconfig:"PAYMENT_BASE_URL" default:"https://api.razorpay.com"`
	PaymentKeyID     string `envconfig:"PAYMENT_KEY_ID"`
	PaymentKeySecret string `envconfig:"PAYMENT_KEY_SECRET"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
