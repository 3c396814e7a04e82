package armazenamento

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Parametros struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	UseSSL    bool
}

// S3 arquiva exportações num bucket compatível com S3.
type S3 struct {
	Client *minio.Client
	Bucket string
}

func Conectar(p Parametros) (*S3, error) {
	if p.Endpoint == "" || p.Bucket == "" {
		return nil, fmt.Errorf("armazenamento: endpoint e bucket são obrigatórios")
	}
	client, err := minio.New(p.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(p.AccessKey, p.SecretKey, ""),
		Secure: p.UseSSL,
		Region: p.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("armazenamento: %w", err)
	}
	return &S3{Client: client, Bucket: p.Bucket}, nil
}

// GarantirBucket cria o bucket se ainda não existir.
func (s *S3) GarantirBucket(ctx context.Context) error {
	existe, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return err
	}
	if !existe {
		return s.Client.MakeBucket(ctx, s.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Arquivar grava conteudo em chave e devolve o caminho s3://bucket/chave.
func (s *S3) Arquivar(ctx context.Context, chave, contentType string, conteudo []byte) (string, error) {
	_, err := s.Client.PutObject(ctx, s.Bucket, chave, bytes.NewReader(conteudo), int64(len(conteudo)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("arquivar %s: %w", chave, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.Bucket, chave), nil
}
