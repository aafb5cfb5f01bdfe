package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestClient_PutFile(t *testing.T) {
	api := &fakeS3{}
	client := NewClientWithAPI(api, "home/latest")

	key, err := client.PutFile(context.Background(), strings.NewReader(`{}`), "bucket", "pokemon_ranking.json", "application/json")
	require.NoError(t, err)

	assert.Equal(t, "home/latest/pokemon_ranking.json", key)
	require.Len(t, api.inputs, 1)
	assert.Equal(t, "bucket", aws.ToString(api.inputs[0].Bucket))
	assert.Equal(t, key, aws.ToString(api.inputs[0].Key))
	assert.Equal(t, "application/json", aws.ToString(api.inputs[0].ContentType))
	assert.Equal(t, `{}`, api.bodies[0])
}

func TestClient_KeyWithoutPrefix(t *testing.T) {
	client := NewClientWithAPI(&fakeS3{}, "")
	assert.Equal(t, "usage.csv", client.Key("usage.csv"))
}
