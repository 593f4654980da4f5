package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"gitee.com/aquaflow/purifier-notify/internal/pkg/idgen"
	"gitee.com/aquaflow/purifier-notify/internal/repository"
	"gitee.com/aquaflow/purifier-notify/internal/service/alert"
	"gitee.com/aquaflow/purifier-notify/internal/service/producer"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// Handler 通知平台对外的 HTTP 入口。
// 入队接口只反馈接收成败，投递结果要查台账
type Handler struct {
	producer producer.Service
	ledger   repository.NotificationRepository
	readings repository.TDSReadingRepository
	notifier *alert.Notifier
	idgen    *idgen.Generator
	logger   *elog.Component
}

func NewHandler(
	p producer.Service,
	ledger repository.NotificationRepository,
	readings repository.TDSReadingRepository,
	notifier *alert.Notifier,
	gen *idgen.Generator,
) *Handler {
	return &Handler{
		producer: p,
		ledger:   ledger,
		readings: readings,
		notifier: notifier,
		idgen:    gen,
		logger:   elog.DefaultLogger,
	}
}

func (h *Handler) RegisterRoutes(server *gin.Engine) {
	server.POST("/notification", h.SendToUser)
	server.POST("/notification/all", h.SendToAll)
	server.POST("/notification/batch", h.SendBatch)
	server.GET("/notification/:id", h.GetNotification)
	server.GET("/notification/user/:userId", h.ListUserNotifications)
	server.POST("/reading", h.RecordReading)
}

type payload struct {
	Title   string `json:"title"`
	Message string `json:"message" binding:"required"`
}

type sendToUserReq struct {
	UserID  int64   `json:"userId" binding:"required"`
	Type    string  `json:"type" binding:"required"`
	Payload payload `json:"payload" binding:"required"`
}

type sendResult struct {
	UserID int64  `json:"userId"`
	JobID  uint64 `json:"jobId"`
}

// SendToUser 为单个用户入队一条通知
func (h *Handler) SendToUser(ctx *gin.Context) {
	var req sendToUserReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ch, err := domain.ChannelOf(req.Type)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.producer.EnqueueOne(ctx.Request.Context(), producer.Command{
		Channel: ch,
		UserID:  req.UserID,
		Title:   req.Payload.Title,
		Message: req.Payload.Message,
	})
	if err != nil {
		h.respondEnqueueError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, sendResult{UserID: res.UserID, JobID: res.JobID})
}

func (h *Handler) respondEnqueueError(ctx *gin.Context, err error) {
	if errors.Is(err, errs.ErrInvalidParameter) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// 入队基础设施故障，任务从未被接受
	h.logger.Error("入队失败", elog.FieldErr(err))
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "入队失败"})
}

type sendToAllReq struct {
	Type    string  `json:"type" binding:"required"`
	Payload payload `json:"payload" binding:"required"`
}

// SendToAll 向全量用户广播
func (h *Handler) SendToAll(ctx *gin.Context) {
	var req sendToAllReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ch, err := domain.ChannelOf(req.Type)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.producer.EnqueueAll(ctx.Request.Context(), producer.Command{
		Channel: ch,
		Title:   req.Payload.Title,
		Message: req.Payload.Message,
	})
	if err != nil && len(results) == 0 {
		// 连用户目录都拉不到，整个广播没有发生
		h.logger.Error("广播入队失败", elog.FieldErr(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "广播失败"})
		return
	}
	h.respondBatch(ctx, results, err)
}

type sendBatchReq struct {
	UserIDs []int64 `json:"userIds" binding:"required"`
	Type    string  `json:"type" binding:"required"`
	Payload payload `json:"payload" binding:"required"`
}

// SendBatch 对指定用户列表批量入队
func (h *Handler) SendBatch(ctx *gin.Context) {
	var req sendBatchReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ch, err := domain.ChannelOf(req.Type)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmds := make([]producer.Command, 0, len(req.UserIDs))
	for _, uid := range req.UserIDs {
		cmds = append(cmds, producer.Command{
			Channel: ch,
			UserID:  uid,
			Title:   req.Payload.Title,
			Message: req.Payload.Message,
		})
	}
	results, err := h.producer.EnqueueMany(ctx.Request.Context(), cmds)
	h.respondBatch(ctx, results, err)
}

func (h *Handler) respondBatch(ctx *gin.Context, results []producer.Result, err error) {
	out := make([]sendResult, 0, len(results))
	for _, r := range results {
		out = append(out, sendResult{UserID: r.UserID, JobID: r.JobID})
	}
	body := gin.H{"results": out}
	if err != nil {
		// 部分失败也算接受，失败明细随响应返回
		body["error"] = err.Error()
	}
	ctx.JSON(http.StatusAccepted, body)
}

type notificationVO struct {
	ID      uint64 `json:"id"`
	UserID  int64  `json:"userId"`
	Channel string `json:"channel"`
	Message string `json:"message"`
	Status  string `json:"status"`
	SentAt  int64  `json:"sentAt,omitempty"`
}

// GetNotification 查询单条台账
func (h *Handler) GetNotification(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "非法的通知ID"})
		return
	}
	n, err := h.ledger.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotificationNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "查询台账失败"})
		return
	}
	ctx.JSON(http.StatusOK, h.toVO(n))
}

// ListUserNotifications 查询某用户的通知历史
func (h *Handler) ListUserNotifications(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "非法的用户ID"})
		return
	}
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := h.ledger.ListByUserID(ctx.Request.Context(), userID, offset, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "查询通知历史失败"})
		return
	}
	out := make([]notificationVO, 0, len(list))
	for _, n := range list {
		out = append(out, h.toVO(n))
	}
	ctx.JSON(http.StatusOK, gin.H{"notifications": out})
}

type recordReadingReq struct {
	UserID   int64  `json:"userId" binding:"required"`
	DeviceID string `json:"deviceId" binding:"required"`
	Value    int    `json:"value" binding:"min=0"`
}

// RecordReading 上报一条TDS读数，入库后触发告警判定
func (h *Handler) RecordReading(ctx *gin.Context) {
	var req recordReadingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.idgen.NextID()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "上报失败"})
		return
	}
	reading, err := h.readings.Create(ctx.Request.Context(), domain.TDSReading{
		ID:         id,
		UserID:     req.UserID,
		DeviceID:   req.DeviceID,
		Value:      req.Value,
		RecordedAt: time.Now(),
	})
	if err != nil {
		h.logger.Error("写入TDS读数失败",
			elog.Int64("userID", req.UserID),
			elog.String("deviceID", req.DeviceID),
			elog.FieldErr(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "上报失败"})
		return
	}

	// 告警尽力而为，不影响上报结果
	h.notifier.OnReadingRecorded(ctx.Request.Context(), reading)
	ctx.JSON(http.StatusCreated, gin.H{"id": reading.ID})
}

func (h *Handler) toVO(n domain.Notification) notificationVO {
	vo := notificationVO{
		ID:      n.ID,
		UserID:  n.UserID,
		Channel: n.Channel.String(),
		Message: n.Message,
		Status:  n.Status.String(),
	}
	if !n.SentAt.IsZero() {
		vo.SentAt = n.SentAt.UnixMilli()
	}
	return vo
}
