package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cardiopredict/ml"
	"cardiopredict/predict"
)

const sampleBody = `{"age":63,"sex":1,"cp":3,"trestbps":145,"chol":233,"fbs":1,"restecg":0,"thalach":150,"exang":0,"oldpeak":2.3,"slope":0,"ca":0,"thal":1}`

type fakeModel struct {
	label int
	err   error
	panic any
	calls int
	got   []float64
}

func (f *fakeModel) Predict(features []float64) (int, error) {
	f.calls++
	f.got = features
	if f.panic != nil {
		panic(f.panic)
	}
	return f.label, f.err
}

func newTestServer(t *testing.T, model ml.Classifier) *Server {
	t.Helper()
	svc, err := predict.NewService(model)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srv, err := NewServer(DefaultServerConfig(), svc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return srv
}

func postPredict(t *testing.T, srv *Server, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return payload
}

func TestHandlePredict(t *testing.T) {
	tests := []struct {
		class int
		want  string
	}{
		{1, "Heart Disease Detected"},
		{0, "No Heart Disease"},
		{2, "No Heart Disease"},
		{-1, "No Heart Disease"},
	}
	for _, tt := range tests {
		model := &fakeModel{label: tt.class}
		w := postPredict(t, newTestServer(t, model), sampleBody)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		want := `{"prediction":"` + tt.want + `"}`
		if got := strings.TrimSpace(w.Body.String()); got != want {
			t.Fatalf("class %d: body %s, want %s", tt.class, got, want)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type %q", ct)
		}
	}
}

func TestHandlePredictVectorOrder(t *testing.T) {
	model := &fakeModel{label: 1}
	postPredict(t, newTestServer(t, model), sampleBody)

	want := []float64{63, 1, 3, 145, 233, 1, 0, 150, 0, 2.3, 0, 0, 1}
	if len(model.got) != len(want) {
		t.Fatalf("model got %v", model.got)
	}
	for i := range want {
		if model.got[i] != want[i] {
			t.Fatalf("feature %d = %v, want %v", i, model.got[i], want[i])
		}
	}
}

func TestHandlePredictModelError(t *testing.T) {
	model := &fakeModel{err: &ml.InferenceError{Model: "stub", Err: errors.New("model exploded")}}
	w := postPredict(t, newTestServer(t, model), sampleBody)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	detail, _ := decodeBody(t, w)["detail"].(string)
	if detail != "Prediction error: model exploded" {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestHandlePredictModelPanic(t *testing.T) {
	model := &fakeModel{panic: "nil weights"}
	w := postPredict(t, newTestServer(t, model), sampleBody)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	detail, _ := decodeBody(t, w)["detail"].(string)
	if !strings.Contains(detail, "Prediction error:") || !strings.Contains(detail, "nil weights") {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestHandlePredictValidation(t *testing.T) {
	tests := map[string]string{
		"missing field": strings.Replace(sampleBody, `"thal":1`, `"other":1`, 1),
		"wrong type":    strings.Replace(sampleBody, `"age":63`, `"age":"old"`, 1),
		"invalid json":  `{"age":`,
		"not an object": `"hello"`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			model := &fakeModel{label: 1}
			w := postPredict(t, newTestServer(t, model), body)

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", w.Code)
			}
			detail, ok := decodeBody(t, w)["detail"].([]any)
			if !ok || len(detail) == 0 {
				t.Fatalf("expected a detail list, got %s", w.Body.String())
			}
			if model.calls != 0 {
				t.Fatalf("model called %d times", model.calls)
			}
		})
	}
}

func TestHandlePredictCoercesNumericStrings(t *testing.T) {
	body := strings.Replace(sampleBody, `"age":63`, `"age":"63"`, 1)
	body = strings.Replace(body, `"oldpeak":2.3`, `"oldpeak":"2.3"`, 1)
	body = strings.Replace(body, `"fbs":1`, `"fbs":true`, 1)
	model := &fakeModel{label: 1}
	w := postPredict(t, newTestServer(t, model), body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if model.got[0] != 63 || model.got[5] != 1 || model.got[9] != 2.3 {
		t.Fatalf("model got %v", model.got)
	}
}

func TestHandlePredictMissingFieldDetail(t *testing.T) {
	body := strings.Replace(sampleBody, `"oldpeak":2.3,`, ``, 1)
	w := postPredict(t, newTestServer(t, &fakeModel{}), body)

	var payload struct {
		Detail []struct {
			Type string `json:"type"`
			Loc  []any  `json:"loc"`
			Msg  string `json:"msg"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(payload.Detail) != 1 {
		t.Fatalf("expected 1 error, got %+v", payload.Detail)
	}
	d := payload.Detail[0]
	if d.Type != "missing" || d.Msg != "Field required" || len(d.Loc) != 2 || d.Loc[0] != "body" || d.Loc[1] != "oldpeak" {
		t.Fatalf("unexpected detail %+v", d)
	}
}

func TestHandlePredictCharset(t *testing.T) {
	body := strings.TrimSuffix(sampleBody, "}") + `,"note":"caf` + "\xe9" + `"}`
	w := postPredict(t, newTestServer(t, &fakeModel{label: 1}), body, "Content-Type", "application/json; charset=iso-8859-1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = postPredict(t, newTestServer(t, &fakeModel{label: 1}), sampleBody, "Content-Type", "application/json; charset=klingon")
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", w.Code)
	}
	if detail := decodeBody(t, w)["detail"]; detail != "Unsupported charset: klingon" {
		t.Fatalf("unexpected detail %v", detail)
	}
}

func TestHandlePredictBodyTooLarge(t *testing.T) {
	svc, err := predict.NewService(&fakeModel{label: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := DefaultServerConfig()
	cfg.MaxBodyBytes = 16
	srv, err := NewServer(cfg, svc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := postPredict(t, srv, sampleBody)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
}
