package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"leadbot_backend/internal/bot/domain"
	"leadbot_backend/internal/leads"
	"leadbot_backend/platform/logger"
	"leadbot_backend/platform/validator"
)

type stubLeads struct{}

func (stubLeads) HasOpenLead(context.Context, string) (bool, error)        { return false, nil }
func (stubLeads) StartAwaitingPhotos(context.Context, leads.NewLead) error { return nil }
func (stubLeads) UpdateOpenLead(context.Context, leads.NewLead) error      { return nil }
func (stubLeads) SavePhotos(context.Context, string, []string) error       { return nil }
func (stubLeads) CompleteWithPhotos(context.Context, string, []string) error {
	return nil
}
func (stubLeads) RequestAdvisor(context.Context, string, string) error { return nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	rules := domain.RuleSet{"Auto": {MinYear: 2015, MinAmount: 10000, MaxAmount: 1000000}}
	module := NewModule(stubLeads{}, rules, 4, validator.New(), logger.New("test"))

	engine := gin.New()
	engine.POST("/webhook/whatsapp", module.handler.HandleInbound)
	return engine
}

func postForm(t *testing.T, engine *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHandleInboundRejectsMissingSender(t *testing.T) {
	engine := newTestRouter()

	w := postForm(t, engine, url.Values{"Body": {"hola"}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "missing sender") {
		t.Errorf("body = %q, want the validation message", w.Body.String())
	}
}

func TestHandleInboundRepliesTwiML(t *testing.T) {
	engine := newTestRouter()

	w := postForm(t, engine, url.Values{
		"From": {"whatsapp:+5215512345678"},
		"Body": {"hola"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
		t.Errorf("content type = %q, want text/xml", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<Response>") || !strings.Contains(body, "Solicitar") {
		t.Errorf("body = %q, want a TwiML menu reply", body)
	}
}
