package service

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"TimerBot/internal/cache"
	"TimerBot/internal/model"
	"TimerBot/pkg/attendance"
	"TimerBot/pkg/logger"
	"TimerBot/pkg/snowflake"
	"TimerBot/pkg/whatsapp"
)

func TestMain(m *testing.M) {
	logger.Init()
	snowflake.Init()
	os.Exit(m.Run())
}

// missCoordStore 永远落空的坐标存储，用于模拟过期/未上报场景
type missCoordStore struct{}

func (missCoordStore) Put(ctx context.Context, senderID string, lat, lon float64) error {
	return nil
}

func (missCoordStore) TakeIfFresh(ctx context.Context, senderID string) (cache.Coordinates, bool, error) {
	return cache.Coordinates{}, false, nil
}

func newTestIngest(t *testing.T) (*IngestService, *attendance.MockValidator, *whatsapp.MockClient) {
	t.Helper()

	coords := cache.NewMemoryCoordinateStore(5*time.Minute, 0)
	dedup := cache.NewMemoryDedupStore(24*time.Hour, 0)
	validator := attendance.NewMockValidator()
	sender := whatsapp.NewMockClient()

	svc := NewIngestService(coords, dedup, validator, sender)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }

	return svc, validator, sender
}

func liveLocationPayload(messageID, from string, lat, lon float64) *model.WebhookPayload {
	return locationPayload(messageID, from, model.LocationContent{Latitude: lat, Longitude: lon})
}

func locationPayload(messageID, from string, loc model.LocationContent) *model.WebhookPayload {
	return &model.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []model.Entry{{
			ID: "1234567890",
			Changes: []model.Change{{
				Field: "messages",
				Value: model.ChangeValue{
					MessagingProduct: "whatsapp",
					Contacts: []model.Contact{{
						WaID:    from,
						Profile: model.ContactProfile{Name: "Ana"},
					}},
					Messages: []model.InboundMessage{{
						ID:       messageID,
						From:     from,
						Type:     "location",
						Location: &loc,
					}},
				},
			}},
		}},
	}
}

func TestLiveLocationTriggersValidation(t *testing.T) {
	svc, validator, sender := newTestIngest(t)

	validator.Result = &model.ValidationResult{
		Valid:      true,
		Message:    "✅ Check-in registrado",
		BranchName: "Sucursal Centro",
		Time:       "2025-06-01T09:00:00-06:00",
		Timezone:   "America/Mexico_City",
	}

	svc.ProcessWebhook(context.Background(), liveLocationPayload("wamid.live1", "5215512345678", 19.4326, -99.1332))

	if validator.CallCount() != 1 {
		t.Fatalf("expected 1 gateway call, got %d", validator.CallCount())
	}

	call := validator.Calls[0]
	if call.Phone != "+5215512345678" {
		t.Fatalf("phone not normalized: %q", call.Phone)
	}
	if call.Latitude != 19.4326 || call.Longitude != -99.1332 {
		t.Fatalf("unexpected coordinates: %+v", call)
	}

	calls := sender.CallsSnapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(calls))
	}
	if calls[0].To != "5215512345678" {
		t.Fatalf("reply sent to wrong recipient: %q", calls[0].To)
	}
	if !strings.Contains(calls[0].Body, "Sucursal Centro") {
		t.Fatalf("reply missing branch name: %q", calls[0].Body)
	}
	if !strings.Contains(calls[0].Body, "09:00") {
		t.Fatalf("reply missing formatted check time: %q", calls[0].Body)
	}
}

func TestPinnedLocationRejectedWithoutGatewayCall(t *testing.T) {
	svc, validator, sender := newTestIngest(t)

	payload := locationPayload("wamid.pin1", "5215512345678", model.LocationContent{
		Latitude:  19.4326,
		Longitude: -99.1332,
		Name:      "Oficina Central",
		Address:   "Av. Reforma 123",
	})
	svc.ProcessWebhook(context.Background(), payload)

	if validator.CallCount() != 0 {
		t.Fatalf("pinned location must not reach the gateway, got %d calls", validator.CallCount())
	}

	calls := sender.CallsSnapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 rejection reply, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Body, "UBICACIÓN NO VÁLIDA") {
		t.Fatalf("expected rejection text, got %q", calls[0].Body)
	}
	if !strings.Contains(calls[0].Body, "Oficina Central") {
		t.Fatalf("rejection should echo the rejected place, got %q", calls[0].Body)
	}

	// 固定位置不能写入缓存被后续消费
	coords, ok, _ := svc.coords.TakeIfFresh(context.Background(), "5215512345678")
	if ok {
		t.Fatalf("pinned location must not be cached, got %+v", coords)
	}
}

func TestPinnedRejectionDefaultsWhenMetadataPartial(t *testing.T) {
	svc, _, sender := newTestIngest(t)

	// 只有 url 字段也按保存点处理
	payload := locationPayload("wamid.pin2", "5215512345678", model.LocationContent{
		Latitude:  19.4326,
		Longitude: -99.1332,
		URL:       "https://maps.example/abc",
	})
	svc.ProcessWebhook(context.Background(), payload)

	calls := sender.CallsSnapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Body, "Punto guardado") {
		t.Fatalf("expected default place label, got %q", calls[0].Body)
	}
	if !strings.Contains(calls[0].Body, "Dirección no disponible") {
		t.Fatalf("expected default address label, got %q", calls[0].Body)
	}
}

func TestCacheMissAsksForResend(t *testing.T) {
	_, validator, sender := newTestIngest(t)

	svc := NewIngestService(missCoordStore{}, cache.NewMemoryDedupStore(24*time.Hour, 0), validator, sender)
	svc.processAttendance(context.Background(), "5215512345678")

	if validator.CallCount() != 0 {
		t.Fatalf("cache miss must not reach the gateway, got %d calls", validator.CallCount())
	}

	calls := sender.CallsSnapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 resend prompt, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Body, "No encontré tu ubicación") {
		t.Fatalf("expected resend prompt, got %q", calls[0].Body)
	}
}

func TestDuplicateDeliveryProcessedOnce(t *testing.T) {
	svc, validator, sender := newTestIngest(t)

	payload := liveLocationPayload("wamid.dup1", "5215512345678", 19.4326, -99.1332)
	svc.ProcessWebhook(context.Background(), payload)
	svc.ProcessWebhook(context.Background(), payload)

	if validator.CallCount() != 1 {
		t.Fatalf("duplicate delivery must be dropped, got %d gateway calls", validator.CallCount())
	}
	if calls := sender.CallsSnapshot(); len(calls) != 1 {
		t.Fatalf("duplicate delivery must not produce a second reply, got %d", len(calls))
	}
}

func TestGatewayRejectionRelayedToSender(t *testing.T) {
	svc, validator, sender := newTestIngest(t)

	validator.Result = &model.ValidationResult{
		Valid:   false,
		Message: "Estás fuera del rango permitido de la sucursal.",
	}

	svc.ProcessWebhook(context.Background(), liveLocationPayload("wamid.rej1", "5215512345678", 19.4326, -99.1332))

	calls := sender.CallsSnapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Body, "Estás fuera del rango permitido") {
		t.Fatalf("gateway reason must be relayed, got %q", calls[0].Body)
	}
	if !strings.Contains(calls[0].Body, "contacta a tu empleador") {
		t.Fatalf("expected escalation hint, got %q", calls[0].Body)
	}
}

func TestGatewayFailureSendsRetryPrompt(t *testing.T) {
	svc, validator, sender := newTestIngest(t)

	validator.FailNext = true

	svc.ProcessWebhook(context.Background(), liveLocationPayload("wamid.err1", "5215512345678", 19.4326, -99.1332))

	calls := sender.CallsSnapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Body, "Error al procesar tu solicitud") {
		t.Fatalf("expected retry prompt, got %q", calls[0].Body)
	}
}

func TestTextMessageGetsFallbackInstructions(t *testing.T) {
	svc, validator, sender := newTestIngest(t)

	payload := &model.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []model.Entry{{
			ID: "1234567890",
			Changes: []model.Change{{
				Field: "messages",
				Value: model.ChangeValue{
					MessagingProduct: "whatsapp",
					Messages: []model.InboundMessage{{
						ID:   "wamid.txt1",
						From: "5215512345678",
						Type: "text",
						Text: &model.TextContent{Body: "hola"},
					}},
				},
			}},
		}},
	}
	svc.ProcessWebhook(context.Background(), payload)

	if validator.CallCount() != 0 {
		t.Fatalf("text message must not reach the gateway, got %d calls", validator.CallCount())
	}

	calls := sender.CallsSnapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 fallback reply, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Body, "ubicación actual") {
		t.Fatalf("fallback should instruct sending live location, got %q", calls[0].Body)
	}
}

func TestNonMessageChangesIgnored(t *testing.T) {
	svc, validator, sender := newTestIngest(t)

	payload := &model.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []model.Entry{{
			ID: "1234567890",
			Changes: []model.Change{{
				Field: "statuses",
				Value: model.ChangeValue{MessagingProduct: "whatsapp"},
			}},
		}},
	}
	svc.ProcessWebhook(context.Background(), payload)

	if validator.CallCount() != 0 || len(sender.CallsSnapshot()) != 0 {
		t.Fatal("status-only deliveries must be ignored")
	}
}

func TestSendFailureDoesNotPanic(t *testing.T) {
	svc, validator, sender := newTestIngest(t)

	sender.FailNext = true

	svc.ProcessWebhook(context.Background(), liveLocationPayload("wamid.sf1", "5215512345678", 19.4326, -99.1332))

	// 发送失败只记日志，校验结果不回滚
	if validator.CallCount() != 1 {
		t.Fatalf("validation must still happen, got %d calls", validator.CallCount())
	}
}

func TestMissingCoordinatesAskForResend(t *testing.T) {
	svc, validator, sender := newTestIngest(t)

	payload := locationPayload("wamid.zero1", "5215512345678", model.LocationContent{})
	svc.ProcessWebhook(context.Background(), payload)

	if validator.CallCount() != 0 {
		t.Fatalf("zero coordinates must not reach the gateway, got %d calls", validator.CallCount())
	}
	calls := sender.CallsSnapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 error reply, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Body, "No pude obtener tu ubicación") {
		t.Fatalf("expected location error text, got %q", calls[0].Body)
	}
}
