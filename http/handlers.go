package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cardiopredict/heart"
	"cardiopredict/predict"
)

const serviceName = "Heart Disease Prediction API"

// allowedMethods 已知路径允许的方法，用于405响应
var allowedMethods = map[string]string{
	"/":           "GET",
	"/health":     "GET",
	"/predict":    "POST",
	"/schema":     "GET",
	"/ws/predict": "GET",
}

// Handlers 预测API处理器
type Handlers struct {
	svc      *predict.Service
	logger   *zap.Logger
	upgrader websocket.Upgrader

	pingInterval time.Duration
	pongWait     time.Duration
	maxFrame     int64
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("POST /predict", h.handlePredict)
	mux.HandleFunc("GET /schema", h.handleSchema)
	mux.HandleFunc("GET /ws/predict", h.handlePredictStream)
	mux.HandleFunc("/", h.handleNotFound)
}

func (h *Handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": serviceName,
		"status":  "running",
	})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"model_loaded": h.svc.ModelLoaded(),
	})
}

func (h *Handlers) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, heart.Schema())
}

func (h *Handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if allow, ok := allowedMethods[r.URL.Path]; ok {
		w.Header().Set("Allow", allow)
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	writeDetail(w, http.StatusNotFound, "Not Found")
}

func (h *Handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		var cerr *charsetError
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &cerr):
			writeDetail(w, http.StatusUnsupportedMediaType, cerr.Error())
		case errors.As(err, &maxErr):
			writeDetail(w, http.StatusRequestEntityTooLarge, "Request body too large")
		default:
			writeDetail(w, http.StatusBadRequest, "Could not read request body")
		}
		return
	}

	status, payload := h.evaluate(r.Context(), body)
	writeJSON(w, status, payload)
}

// evaluate 校验并预测，/predict和/ws/predict共用
func (h *Handlers) evaluate(ctx context.Context, body []byte) (int, any) {
	obs, err := heart.Decode(body)
	if err != nil {
		var verr *heart.ValidationError
		if errors.As(err, &verr) {
			return http.StatusUnprocessableEntity, map[string]any{"detail": verr.Errors}
		}
		return http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()}
	}

	label, err := h.svc.Predict(ctx, obs)
	if err != nil {
		var perr *predict.Error
		if !errors.As(err, &perr) {
			perr = &predict.Error{Err: err}
		}
		return http.StatusInternalServerError, map[string]string{"detail": perr.Error()}
	}
	return http.StatusOK, map[string]heart.Label{"prediction": label}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
