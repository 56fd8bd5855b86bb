package handler

import (
	"net/url"
	"os"
	"testing"

	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"

	"TimerBot/config"
	"TimerBot/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	config.Cfg.MetaVerifyToken = "verify-secret"
	os.Exit(m.Run())
}

func newVerifyEngine() *route.Engine {
	opts := hertzconfig.NewOptions([]hertzconfig.Option{})
	engine := route.NewEngine(opts)
	engine.GET("/webhook", VerifyWebhook)
	return engine
}

func verifyURL(mode, token, challenge string) string {
	q := url.Values{}
	q.Set("hub.mode", mode)
	q.Set("hub.verify_token", token)
	q.Set("hub.challenge", challenge)
	return "/webhook?" + q.Encode()
}

func TestVerifyWebhookEchoesChallenge(t *testing.T) {
	engine := newVerifyEngine()

	w := ut.PerformRequest(engine, "GET", verifyURL("subscribe", "verify-secret", "1158201444"), nil)

	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode())
	}
	if string(resp.Body()) != "1158201444" {
		t.Fatalf("challenge not echoed, got %q", string(resp.Body()))
	}
}

func TestVerifyWebhookRejectsBadToken(t *testing.T) {
	engine := newVerifyEngine()

	w := ut.PerformRequest(engine, "GET", verifyURL("subscribe", "wrong", "1158201444"), nil)

	if w.Result().StatusCode() != 403 {
		t.Fatalf("expected 403, got %d", w.Result().StatusCode())
	}
}

func TestVerifyWebhookRejectsBadMode(t *testing.T) {
	engine := newVerifyEngine()

	w := ut.PerformRequest(engine, "GET", verifyURL("unsubscribe", "verify-secret", "1158201444"), nil)

	if w.Result().StatusCode() != 403 {
		t.Fatalf("expected 403, got %d", w.Result().StatusCode())
	}
}

func TestVerifyWebhookRejectsEmptyToken(t *testing.T) {
	engine := newVerifyEngine()
	config.Cfg.MetaVerifyToken = ""
	defer func() { config.Cfg.MetaVerifyToken = "verify-secret" }()

	// 服务端未配置 token 时，空 token 也不能通过
	w := ut.PerformRequest(engine, "GET", verifyURL("subscribe", "", "1158201444"), nil)

	if w.Result().StatusCode() != 403 {
		t.Fatalf("expected 403, got %d", w.Result().StatusCode())
	}
}
