package util

import (
	"github.com/google/uuid"
)

// GenerateUploadKey 生成唯一的对象存储键：随机ID + 原始文件名
func GenerateUploadKey(originalFilename string) string {
	return uuid.NewString() + originalFilename
}
