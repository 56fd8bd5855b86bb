package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"TimerBot/internal/cache"
	"TimerBot/internal/model"
	"TimerBot/pkg/attendance"
	"TimerBot/pkg/logger"
	"TimerBot/pkg/metrics"
	"TimerBot/pkg/snowflake"
	"TimerBot/pkg/whatsapp"
	"TimerBot/utils"
)

// IngestService 位置事件处理管道。
// 单趟同步处理：解析 → 去重 → 分类 → 写缓存 → 立即消费并调网关 → 回发结果。
// 所有失败都在原地转成出站消息或日志，绝不向 webhook 传输层抛错，
// 否则渠道商会把事件当作未送达无限重投。
type IngestService struct {
	coords    cache.CoordinateStore
	dedup     cache.DedupStore
	validator attendance.Validator
	sender    whatsapp.Client

	now func() time.Time
}

var (
	ingestService *IngestService
	ingestOnce    sync.Once
)

func Ingest() *IngestService {
	ingestOnce.Do(func() {
		ingestService = NewIngestService(
			cache.NewCoordinateStore(),
			cache.NewDedupStore(),
			attendance.GetValidator(),
			whatsapp.GetClient(),
		)
	})

	return ingestService
}

func NewIngestService(coords cache.CoordinateStore, dedup cache.DedupStore, validator attendance.Validator, sender whatsapp.Client) *IngestService {
	return &IngestService{
		coords:    coords,
		dedup:     dedup,
		validator: validator,
		sender:    sender,
		now:       time.Now,
	}
}

// ProcessWebhook 处理一次 webhook 投递携带的全部消息事件。
// 管道运行在与请求脱钩的 context 上：渠道商超时中断请求时，
// 进行中的考勤处理和回复仍要跑完，副作用不能悄悄丢失。
func (s *IngestService) ProcessWebhook(ctx context.Context, payload *model.WebhookPayload) {
	ctx = context.WithoutCancel(ctx)
	deliveryID := uuid.NewString()

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			// 同一次投递内按数组顺序处理；跨投递的乱序无法感知
			for _, msg := range change.Value.Messages {
				s.processMessage(ctx, change.Value, msg, deliveryID)
			}
		}
	}
}

func (s *IngestService) processMessage(ctx context.Context, value model.ChangeValue, msg model.InboundMessage, deliveryID string) {
	metrics.GetMetrics().RecordWebhookEvent(ctx, msg.Type)

	first, err := s.dedup.TryMark(ctx, msg.ID)
	if err != nil {
		// 去重存储故障时继续处理：宁可冒重复风险也不丢打卡
		logger.Logger.Warn("Dedup store failed, processing anyway",
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
	} else if !first {
		metrics.GetMetrics().RecordDuplicateDrop(ctx)
		logger.Logger.Info("Duplicate webhook delivery dropped",
			zap.String("message_id", msg.ID),
			zap.String("delivery_id", deliveryID),
		)
		return
	}

	switch msg.Type {
	case "location":
		s.processLocation(ctx, value, msg)
	default:
		// 非位置消息统一回指引文案
		s.sendText(ctx, msg.From, msgFallbackInstructions, "fallback")
	}
}

func (s *IngestService) processLocation(ctx context.Context, value model.ChangeValue, msg model.InboundMessage) {
	if msg.Location == nil {
		s.sendText(ctx, msg.From, msgLocationError, "location_error")
		return
	}

	loc := model.NewLocationMessage(msg, value.ContactName(msg.From), s.now())

	if !loc.HasCoordinates() {
		logger.Logger.Warn("Location message without coordinates",
			zap.String("sender", loc.SenderID),
		)
		s.sendText(ctx, loc.SenderID, msgLocationError, "location_error")
		return
	}

	if !loc.IsLive() {
		metrics.GetMetrics().RecordPinnedRejection(ctx)
		logger.Logger.Info("Pinned location rejected",
			zap.String("sender", loc.SenderID),
			zap.String("name", loc.SenderName),
			zap.String("place", loc.PlaceName),
		)
		s.sendText(ctx, loc.SenderID, renderPinnedRejection(loc.PlaceName, loc.Address), "pinned_rejection")
		return
	}

	if err := s.coords.Put(ctx, loc.SenderID, loc.Latitude, loc.Longitude); err != nil {
		logger.Logger.Error("Failed to store coordinates",
			zap.String("sender", loc.SenderID),
			zap.Error(err),
		)
		s.sendText(ctx, loc.SenderID, msgLocationError, "location_error")
		return
	}

	logger.Logger.Info("Live location accepted",
		zap.String("sender", loc.SenderID),
		zap.String("name", loc.SenderName),
		zap.Float64("latitude", loc.Latitude),
		zap.Float64("longitude", loc.Longitude),
	)

	// 接收和处理折叠成同一趟：写入后立刻消费并校验
	s.processAttendance(ctx, loc.SenderID)
}

func (s *IngestService) processAttendance(ctx context.Context, senderID string) {
	coords, ok, err := s.coords.TakeIfFresh(ctx, senderID)
	if err != nil {
		logger.Logger.Error("Failed to take coordinates",
			zap.String("sender", senderID),
			zap.Error(err),
		)
		s.sendText(ctx, senderID, msgLocationNotFound, "cache_miss")
		return
	}
	if !ok {
		// 正常业务结果：用户没发过位置或已过期，请求重发
		metrics.GetMetrics().RecordCacheMiss(ctx)
		s.sendText(ctx, senderID, msgLocationNotFound, "cache_miss")
		return
	}

	phone := utils.NormalizePhone(senderID)

	start := s.now()
	result, err := s.validator.Validate(ctx, phone, coords.Latitude, coords.Longitude)
	duration := s.now().Sub(start).Seconds()

	if err != nil {
		metrics.GetMetrics().RecordGatewayCall(ctx, "error", duration)
		logger.Logger.Error("Attendance validation failed",
			zap.String("phone", phone),
			zap.Error(err),
		)
		s.sendText(ctx, senderID, msgGatewayFailure, "gateway_failure")
		return
	}

	if !result.Valid {
		metrics.GetMetrics().RecordGatewayCall(ctx, "rejected", duration)
		logger.Logger.Info("Attendance rejected by gateway",
			zap.String("phone", phone),
			zap.String("reason", result.Message),
		)
		s.sendText(ctx, senderID, renderRejected(result.Message), "gateway_rejected")
		return
	}

	metrics.GetMetrics().RecordGatewayCall(ctx, "accepted", duration)
	logger.Logger.Info("Attendance accepted",
		zap.String("phone", phone),
		zap.String("branch", result.BranchName),
	)
	s.sendText(ctx, senderID, renderAccepted(result), "gateway_accepted")
}

// sendText 单次 best-effort 发送。失败只记日志，
// 已完成的校验不因通知失败而回滚。
func (s *IngestService) sendText(ctx context.Context, to, body, kind string) {
	dispatchID, _ := snowflake.NextID()

	resp, err := s.sender.SendText(ctx, to, body)
	if err != nil {
		metrics.GetMetrics().RecordMessageSent(ctx, kind, "failure")
		logger.Logger.Error("Failed to send WhatsApp message",
			zap.String("to", to),
			zap.String("kind", kind),
			zap.Int64("dispatch_id", dispatchID),
			zap.Error(err),
		)
		return
	}

	metrics.GetMetrics().RecordMessageSent(ctx, kind, "success")
	logger.Logger.Debug("WhatsApp message dispatched",
		zap.String("to", to),
		zap.String("kind", kind),
		zap.Int64("dispatch_id", dispatchID),
		zap.String("message_id", resp.MessageID),
	)
}
