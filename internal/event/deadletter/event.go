package deadletter

// EventName 死信消息投递到的 topic
const EventName = "notification_dead_letters"

// Event 死信信号。任务进入 DEAD 后外发，供人工介入或下游补偿消费
type Event struct {
	JobID    uint64 `json:"jobId"`
	Channel  string `json:"channel"`
	UserID   int64  `json:"userId"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Attempt  int32  `json:"attempt"`
	Cause    string `json:"cause"`
	DeadAtMs int64  `json:"deadAtMs"`
}
