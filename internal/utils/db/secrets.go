package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// retrieveCredentials usa DB_USERNAME/DB_PASSWORD quando presentes;
// caso contrário lê o segredo AWSCURRENT de secretID.
func retrieveCredentials(ctx context.Context, usuario, senha, secretID string) (string, string, error) {
	if usuario != "" && senha != "" {
		return usuario, senha, nil
	}
	if secretID == "" {
		return "", "", errors.New("credenciais do banco ausentes: defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", "", fmt.Errorf("carregar configuração AWS: %w", err)
	}
	client := secretsmanager.NewFromConfig(cfg)

	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("ler segredo %s: %w", secretID, err)
	}
	if result.SecretString == nil {
		return "", "", fmt.Errorf("segredo %s sem SecretString", secretID)
	}
	return parseCredentials([]byte(*result.SecretString))
}

func parseCredentials(raw []byte) (string, string, error) {
	var secret Credentials
	if err := json.Unmarshal(raw, &secret); err != nil {
		return "", "", fmt.Errorf("decodificar segredo do banco: %w", err)
	}
	if secret.Username == "" || secret.Password == "" {
		return "", "", errors.New("segredo do banco sem username/password")
	}
	return secret.Username, secret.Password, nil
}
