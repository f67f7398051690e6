package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matchday-hq/matchday-service/internal/handler"
	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
	"github.com/matchday-hq/matchday-service/internal/service"
)

func TestTeamHandler_Create_OK(t *testing.T) {
	stub := &stubTeamService{}
	stub.create.team = model.Team{ID: 1, Name: "Falcons U12"}
	r := newRouter(stubPingerNoop{}, stub, &stubLiveGameService{})

	body, _ := json.Marshal(map[string]string{"name": "Falcons U12"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, handler.APIV1Prefix+"/teams", bytes.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp model.Team
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ID != 1 || resp.Name != "Falcons U12" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestTeamHandler_Create_Invalid(t *testing.T) {
	stub := &stubTeamService{}
	stub.create.err = service.NewInvalidInputError([]service.FieldError{{Field: "name", Message: "must not be empty"}})
	r := newRouter(stubPingerNoop{}, stub, &stubLiveGameService{})

	body, _ := json.Marshal(map[string]string{"name": ""})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, handler.APIV1Prefix+"/teams", bytes.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("invalid_input")) || !bytes.Contains(w.Body.Bytes(), []byte("name")) {
		t.Fatalf("expected field error for name, body=%s", w.Body.String())
	}
}

func TestTeamHandler_Get_NotFound(t *testing.T) {
	stub := &stubTeamService{}
	stub.get.err = repository.ErrNotFound
	r := newRouter(stubPingerNoop{}, stub, &stubLiveGameService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, handler.APIV1Prefix+"/teams/42", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTeamHandler_List_OK(t *testing.T) {
	stub := &stubTeamService{}
	stub.list.res = repository.PageResult[model.Team]{
		Items: []model.Team{{ID: 1, Name: "Falcons U12"}},
		Total: 1,
	}
	r := newRouter(stubPingerNoop{}, stub, &stubLiveGameService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, handler.APIV1Prefix+"/teams?limit=10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("Falcons U12")) {
		t.Fatalf("expected body to contain the team: %s", w.Body.String())
	}
}
