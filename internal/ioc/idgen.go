package ioc

import (
	"gitee.com/aquaflow/purifier-notify/internal/pkg/idgen"
)

func InitIDGenerator() *idgen.Generator {
	return idgen.NewGenerator()
}
