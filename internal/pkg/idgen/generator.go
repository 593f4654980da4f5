package idgen

import (
	"fmt"

	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"github.com/sony/sonyflake"
)

// Generator 投递任务与台账共用的雪花ID生成器
type Generator struct {
	sf *sonyflake.Sonyflake
}

func NewGenerator() *Generator {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{})
	if sf == nil {
		panic("初始化 sonyflake 失败")
	}
	return &Generator{sf: sf}
}

func (g *Generator) NextID() (uint64, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrIDGenerateFailed, err)
	}
	return id, nil
}
