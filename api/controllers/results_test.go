package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wagerworks/wagerbook-backend/api/middleware"
	"github.com/wagerworks/wagerbook-backend/internal/results"
	pkgerrors "github.com/wagerworks/wagerbook-backend/pkg/errors"
)

type testResultsService struct {
	reportFn func(ctx context.Context, input results.ReportResultInput) error
}

func (s *testResultsService) ReportResult(ctx context.Context, input results.ReportResultInput) error {
	if s.reportFn != nil {
		return s.reportFn(ctx, input)
	}
	return nil
}

func resultRequest(t *testing.T, actorID, eventID, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+eventID+"/result", strings.NewReader(body))
	if actorID != "" {
		req = req.WithContext(middleware.WithActorID(req.Context(), actorID))
	}
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", eventID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestResultsReportSuccess(t *testing.T) {
	called := false
	svc := &testResultsService{
		reportFn: func(ctx context.Context, input results.ReportResultInput) error {
			called = true
			if input.Sender != "oracle-1" || input.EventID != 3 || input.ResultOption != 1 {
				t.Fatalf("unexpected input %+v", input)
			}
			return nil
		},
	}

	req := resultRequest(t, "oracle-1", "3", `{"result":1}`)
	resp := httptest.NewRecorder()
	ResultsReport(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestResultsReportZeroResult(t *testing.T) {
	svc := &testResultsService{
		reportFn: func(ctx context.Context, input results.ReportResultInput) error {
			if input.ResultOption != 0 {
				t.Fatalf("result 0 must survive decoding, got %d", input.ResultOption)
			}
			return nil
		},
	}

	req := resultRequest(t, "oracle-1", "3", `{"result":0}`)
	resp := httptest.NewRecorder()
	ResultsReport(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestResultsReportMissingIdentity(t *testing.T) {
	req := resultRequest(t, "", "3", `{"result":1}`)
	resp := httptest.NewRecorder()
	ResultsReport(&testResultsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestResultsReportUnauthorizedSender(t *testing.T) {
	svc := &testResultsService{
		reportFn: func(ctx context.Context, input results.ReportResultInput) error {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
		},
	}

	req := resultRequest(t, "impostor", "3", `{"result":1}`)
	resp := httptest.NewRecorder()
	ResultsReport(svc, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestResultsReportMissingResult(t *testing.T) {
	req := resultRequest(t, "oracle-1", "3", `{}`)
	resp := httptest.NewRecorder()
	ResultsReport(&testResultsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
