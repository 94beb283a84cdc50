package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"reviewpulse/handlers"
	"reviewpulse/routes"
	"reviewpulse/sentiment"
)

var fixtureCSV = "review,sentiment\n" + strings.Join([]string{
	"This movie was absolutely wonderful and touching,positive",
	"A wonderful heartfelt touching masterpiece that I loved,positive",
	"Loved every minute with wonderful acting and a touching story,positive",
	"Wonderful film with touching moments and brilliant acting,positive",
	"Brilliant and wonderful performances made this touching film shine,positive",
	"Terrible waste of time and I hated every minute of it,negative",
	"Awful terrible boring mess that I hated completely,negative",
	"Hated this terrible boring film with its awful script,negative",
	"Terrible awful script with boring and dreadful pacing,negative",
	"Dreadful boring and terrible film that I hated watching,negative",
}, "\n") + "\n"

var (
	normalizerOnce sync.Once
	normalizerInst *sentiment.Normalizer
	normalizerErr  error
)

func newService(t *testing.T, datasetPath string) (*handlers.Service, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	normalizerOnce.Do(func() {
		normalizerInst, normalizerErr = sentiment.NewNormalizer()
	})
	if normalizerErr != nil {
		t.Fatalf("NewNormalizer: %v", normalizerErr)
	}

	store := sentiment.NewStore()
	svc := &handlers.Service{
		Trainer:   sentiment.NewTrainer(normalizerInst, zerolog.Nop()),
		Predictor: sentiment.NewPredictor(normalizerInst, store),
		Store:     store,
		Training:  sentiment.DefaultTrainingConfig(datasetPath),
		Logger:    zerolog.Nop(),
	}
	return svc, routes.SetupRouter(svc)
}

func fixturePath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func doJSON(t *testing.T, router *gin.Engine, method, url, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("%s %s returned invalid JSON %q: %v", method, url, w.Body.String(), err)
	}
	return w, payload
}

func TestStatusBeforeTraining(t *testing.T) {
	_, router := newService(t, fixturePath(t))
	w, payload := doJSON(t, router, http.MethodGet, "/api/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ready, _ := payload["model_ready"].(bool); ready {
		t.Error("model_ready = true before any training")
	}
}

func TestPredictBeforeTraining(t *testing.T) {
	_, router := newService(t, fixturePath(t))
	w, payload := doJSON(t, router, http.MethodPost, "/api/predict",
		`{"text":"this text is long enough to pass validation"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if payload["error"] == nil {
		t.Error("response should carry an error message")
	}
}

func TestPredictRejectsBadRequests(t *testing.T) {
	_, router := newService(t, fixturePath(t))

	tests := []struct {
		name string
		body string
	}{
		{"not JSON", "not json at all"},
		{"missing text", `{}`},
		{"short text", `{"text":"short"}`},
		{"unknown field", `{"text":"long enough review text","extra":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, payload := doJSON(t, router, http.MethodPost, "/api/predict", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if payload["error"] == nil {
				t.Error("response should carry an error message")
			}
		})
	}
}

func TestTrainMissingDataset(t *testing.T) {
	_, router := newService(t, filepath.Join(t.TempDir(), "missing.csv"))
	w, payload := doJSON(t, router, http.MethodPost, "/api/train", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for an expected data failure", w.Code)
	}
	if success, _ := payload["success"].(bool); success {
		t.Error("success = true for missing dataset")
	}
	message, _ := payload["message"].(string)
	if !strings.Contains(message, "Training failed") {
		t.Errorf("message %q should describe the failure", message)
	}
}

func TestTrainPredictStatusFlow(t *testing.T) {
	_, router := newService(t, fixturePath(t))

	w, payload := doJSON(t, router, http.MethodPost, "/api/train", "")
	if w.Code != http.StatusOK {
		t.Fatalf("train status = %d, want 200", w.Code)
	}
	if success, _ := payload["success"].(bool); !success {
		t.Fatalf("training failed: %v", payload["message"])
	}
	if message, _ := payload["message"].(string); !strings.Contains(message, "Accuracy") {
		t.Errorf("message %q should report accuracy", message)
	}

	w, payload = doJSON(t, router, http.MethodGet, "/api/status", "")
	if ready, _ := payload["model_ready"].(bool); !ready {
		t.Error("model_ready = false after successful training")
	}

	w, payload = doJSON(t, router, http.MethodPost, "/api/predict",
		`{"text":"This was a wonderful and touching film"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("predict status = %d, want 200: %v", w.Code, payload)
	}
	if payload["sentiment"] != "Positive" {
		t.Errorf("sentiment = %v, want Positive", payload["sentiment"])
	}
	for _, key := range []string{"confidence", "probability_positive", "probability_negative"} {
		value, _ := payload[key].(string)
		if !strings.HasSuffix(value, "%") {
			t.Errorf("%s = %q, want a percentage", key, value)
		}
	}
}
