package domain

import "time"

// TDSReading 净水器上报的TDS检测值
type TDSReading struct {
	ID         uint64
	UserID     int64  // 设备归属用户
	DeviceID   string // 净水器设备编号
	Value      int    // TDS 读数，单位 ppm
	RecordedAt time.Time
}
