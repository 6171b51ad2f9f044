package aws_s3

import (
	"context"
	"io"
	"strings"

	"github.com/haierkeys/sheet-memo-dashboard/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

func (p *S3) objectKey(fileKey string) string {
	if p.Config.CustomPath != "" {
		return strings.TrimSuffix(fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/")+fileKey, "/")
	}
	return fileKey
}

// PutFile 上传文件到 bucket
func (p *S3) PutFile(fileKey string, file io.Reader, cType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.objectKey(fileKey)),
		Body:   file,
	}
	if cType != "" {
		input.ContentType = aws.String(cType)
	}

	if _, err := p.S3Client.PutObject(context.TODO(), input); err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}
	return fileKey, nil
}

// GetFile 从 bucket 读取文件
func (p *S3) GetFile(fileKey string) (io.ReadCloser, error) {
	out, err := p.S3Client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.objectKey(fileKey)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}
	return out.Body, nil
}

// Delete 删除 bucket 中的文件
func (p *S3) Delete(fileKey string) error {
	_, err := p.S3Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.objectKey(fileKey)),
	})
	if err != nil {
		return errors.Wrap(err, "aws_s3")
	}
	return nil
}
