package s3

import (
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Client struct {
	client PutObjectAPI
	prefix string
}

func NewClient(cfg aws.Config, prefix string) *Client {
	return NewClientWithAPI(s3.NewFromConfig(cfg), prefix)
}

func NewClientWithAPI(api PutObjectAPI, prefix string) *Client {
	return &Client{
		client: api,
		prefix: prefix,
	}
}

func (c *Client) Key(name string) string {
	if c.prefix == "" {
		return name
	}
	return path.Join(c.prefix, name)
}

func (c *Client) PutFile(ctx context.Context, reader io.Reader, bucket, name, contentType string) (string, error) {
	key := c.Key(name)
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err := c.client.PutObject(ctx, input)
	return key, err
}
