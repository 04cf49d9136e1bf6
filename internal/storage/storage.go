package storage

import "mime/multipart"

// Storage 是对象存储的上传接口，S3、GCS 与本地磁盘实现共用
type Storage interface {
	UploadFile(file *multipart.FileHeader, key string) (string, error)
}
