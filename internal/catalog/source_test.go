package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	objects map[string]string
	keys    []string
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	key := aws.StringValue(in.Key)
	f.keys = append(f.keys, key)
	body, ok := f.objects[key]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) HeadObjectWithContext(_ aws.Context, in *s3.HeadObjectInput, _ ...request.Option) (*s3.HeadObjectOutput, error) {
	body, ok := f.objects[aws.StringValue(in.Key)]
	if !ok {
		return nil, awserr.New("NotFound", "Not Found", nil)
	}
	return &s3.HeadObjectOutput{ETag: aws.String(`"` + body + `"`)}, nil
}

func TestDirSource_ReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCatalog(t, fs, "/data", map[string]string{BrandsFile: `{"baxi":"Baxi"}`})
	src := NewDirSource(fs, "/data")

	data, err := src.ReadFile(context.Background(), BrandsFile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"baxi":"Baxi"}`, string(data))

	_, err = src.ReadFile(context.Background(), PricesFile)
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestDirSource_FingerprintTracksChanges(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCatalog(t, fs, "/data", map[string]string{BrandsFile: `{}`})
	src := NewDirSource(fs, "/data")
	ctx := context.Background()

	first, err := src.Fingerprint(ctx, TableFiles)
	require.NoError(t, err)

	again, err := src.Fingerprint(ctx, TableFiles)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	writeCatalog(t, fs, "/data", map[string]string{BrandsFile: `{"baxi":"Baxi"}`})
	changed, err := src.Fingerprint(ctx, TableFiles)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestS3Source_ReadFile(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"catalog/brands.json": `{"baxi":"Baxi"}`}}
	src := NewS3Source(client, "bucket", "/catalog/")

	data, err := src.ReadFile(context.Background(), BrandsFile)
	require.NoError(t, err)
	assert.Equal(t, `{"baxi":"Baxi"}`, string(data))
	assert.Equal(t, []string{"catalog/brands.json"}, client.keys)

	_, err = src.ReadFile(context.Background(), PricesFile)
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestS3Source_Fingerprint(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"brands.json": `{}`}}
	src := NewS3Source(client, "bucket", "")
	ctx := context.Background()

	first, err := src.Fingerprint(ctx, TableFiles)
	require.NoError(t, err)

	client.objects["brands.json"] = `{"baxi":"Baxi"}`
	second, err := src.Fingerprint(ctx, TableFiles)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestLoad_FromS3(t *testing.T) {
	client := &fakeS3{objects: map[string]string{}}
	for name, body := range fixtureFiles() {
		client.objects["shop/"+name] = body
	}

	snap := Load(context.Background(), NewS3Source(client, "bucket", "shop"))

	assert.Len(t, snap.Products, 4)
	assert.Len(t, snap.Categories, 4)
	assert.Equal(t, 900.0, snap.EffectivePrice("1"))
}
