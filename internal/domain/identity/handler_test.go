package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/pkg/pagination"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	e := echo.New()
	return h, e
}

func TestHandler_CreateDoctor(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Asha Rao","age":45,"specialization":"CARDIOLOGY","consultationFee":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var d Doctor
	json.Unmarshal(rec.Body.Bytes(), &d)
	if d.ID != "DOC-1001" {
		t.Errorf("expected DOC-1001, got %s", d.ID)
	}
	if d.ConsultationFee != 1000 {
		t.Errorf("expected fee 1000, got %v", d.ConsultationFee)
	}
}

func TestHandler_CreateDoctor_Invalid(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"","specialization":"CARDIOLOGY"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateDoctor(c)
	if !apperr.IsInvalidData(err) {
		t.Errorf("expected InvalidData, got %v", err)
	}
}

func TestHandler_CreatePatient_MalformedBody(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(`{"name":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePatient(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 HTTPError, got %v", err)
	}
}

func TestHandler_GetPatient(t *testing.T) {
	h, e := newTestHandler()

	p := &Patient{Name: "Meera Iyer", Age: 30}
	h.svc.CreatePatient(context.Background(), p)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)

	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetDoctor_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("DOC-404")

	if err := h.GetDoctor(c); !apperr.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestHandler_DeletePatient(t *testing.T) {
	h, e := newTestHandler()

	p := &Patient{Name: "Delete Me", Age: 20}
	h.svc.CreatePatient(context.Background(), p)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)

	if err := h.DeletePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestHandler_ListDoctors_Paginated(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		h.svc.CreateDoctor(ctx, &Doctor{Name: name, Specialization: General})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors?limit=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListDoctors(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		pagination.Response
		Data []Doctor `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 3 || !resp.HasMore {
		t.Errorf("expected total 3 with more pages, got %+v", resp.Response)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 doctors on the first page, got %d", len(resp.Data))
	}
}

func TestHandler_SearchPatients(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()
	h.svc.CreatePatient(ctx, &Patient{Name: "Meera Iyer"})
	h.svc.CreatePatient(ctx, &Patient{Name: "Karan Mehta"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/search?keyword=meera", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SearchPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Meera Iyer") || strings.Contains(rec.Body.String(), "Karan") {
		t.Errorf("unexpected search body: %s", rec.Body.String())
	}
}
