package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KromaEnergia/api-erp/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Destino recebe o arquivo de backup já serializado
type Destino interface {
	Enviar(ctx context.Context, chave string, conteudo []byte) error
}

// putObjectAPI é o pedaço do cliente S3 usado aqui
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Destino struct {
	client putObjectAPI
	bucket string
}

// NewS3Destino aceita AWS ou qualquer S3 compatível (MinIO) via Endpoint.
// Sem AccessKey usa a cadeia padrão de credenciais da AWS.
func NewS3Destino(ctx context.Context, cfg config.S3Config) (*S3Destino, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket S3 não configurado (ERP_S3_BUCKET)")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Destino{client: client, bucket: cfg.Bucket}, nil
}

func (d *S3Destino) Enviar(ctx context.Context, chave string, conteudo []byte) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(chave),
		Body:        bytes.NewReader(conteudo),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("erro ao enviar backup para s3://%s/%s: %w", d.bucket, chave, err)
	}
	return nil
}
