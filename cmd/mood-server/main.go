package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"moodring/internal/catalog"
	"moodring/internal/classify"
	"moodring/internal/config"
	"moodring/internal/db"
	"moodring/internal/detector"
	"moodring/internal/domain"
	"moodring/internal/mqtt"
	"moodring/internal/recommend"
)

type classifyRequest struct {
	Emotions map[string]float64 `json:"emotions"`
}

type recommendRequest struct {
	Emotions map[string]float64      `json:"emotions"`
	Taste    *domain.TasteSignal     `json:"taste,omitempty"`
	Events   []domain.EventCandidate `json:"events,omitempty"`
}

type fromImageRequest struct {
	Image string `json:"image"`
}

type simulateRequest struct {
	Subject string `json:"subject"`
}

type recommendResponse struct {
	Mood           domain.ClassifiedMood           `json:"mood"`
	Recommendation domain.RecommendationParameters `json:"recommendation"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.LoadMoodServerConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := catalog.NewFileProvider(cfg.CatalogPath, logger)
	classifier := classify.New(provider, classify.NewScorer(classify.DefaultScorerConfig()), classify.DefaultConfig())
	mapper := recommend.NewMapper(recommend.DefaultConfig())
	detectorClient := detector.NewClient(cfg.DetectorBaseURL, cfg.DetectorTimeout)
	simulator := detector.Simulator{}

	var store *db.Store
	if cfg.DBDSN != "" {
		s, err := db.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Error("connect db failed", "error", err)
			os.Exit(1)
		}
		defer s.Close()
		if err := s.Migrate(ctx); err != nil {
			logger.Error("migrate db failed", "error", err)
			os.Exit(1)
		}
		store = s
		logger.Info("classification persistence enabled")
	}

	publisher := mqtt.NewPublisher(mqtt.PublisherConfig{
		BrokerURL:   cfg.MQTTBrokerURL,
		ClientID:    cfg.MQTTClientID,
		Username:    cfg.MQTTUsername,
		Password:    cfg.MQTTPassword,
		TopicPrefix: cfg.MQTTTopicPrefix,
	}, logger)
	if publisher.Enabled() {
		if err := publisher.Start(ctx); err != nil {
			logger.Error("connect mqtt failed", "error", err)
			os.Exit(1)
		}
		logger.Info("classification events enabled", "broker", cfg.MQTTBrokerURL)
	}

	// record persists and publishes one result; both sides are optional
	// and best-effort.
	record := func(ctx context.Context, mood domain.ClassifiedMood) {
		if store != nil {
			if err := store.SaveClassification(ctx, mood); err != nil {
				logger.Warn("save classification failed", "id", mood.ID, "error", err)
			}
		}
		publisher.PublishClassification(mood)
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":       true,
			"profiles": len(provider.Profiles(req.Context())),
		})
	})

	r.Get("/v1/mood/profiles", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"profiles": provider.Profiles(req.Context()),
		})
	})

	r.Post("/v1/mood/classify", func(w http.ResponseWriter, req *http.Request) {
		var in classifyRequest
		if err := decodeJSONBody(req, cfg.ReadBodyMaxByte, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		if in.Emotions == nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "emotions is required"})
			return
		}

		mood := classifier.Classify(req.Context(), in.Emotions)
		record(req.Context(), mood)
		writeJSON(w, http.StatusOK, mood)
	})

	r.Post("/v1/mood/recommend", func(w http.ResponseWriter, req *http.Request) {
		var in recommendRequest
		if err := decodeJSONBody(req, cfg.ReadBodyMaxByte, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		if in.Emotions == nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "emotions is required"})
			return
		}

		mood := classifier.Classify(req.Context(), in.Emotions)
		record(req.Context(), mood)
		writeJSON(w, http.StatusOK, recommendResponse{
			Mood:           mood,
			Recommendation: mapper.Map(mood, in.Taste, in.Events),
		})
	})

	r.Post("/v1/mood/from-image", func(w http.ResponseWriter, req *http.Request) {
		var in fromImageRequest
		if err := decodeJSONBody(req, cfg.ReadBodyMaxByte, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		image, err := base64.StdEncoding.DecodeString(in.Image)
		if err != nil || len(image) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "image must be non-empty base64"})
			return
		}

		var raw map[string]float64
		if detectorClient.Enabled() {
			raw, err = detectorClient.Detect(req.Context(), image)
			if err != nil {
				logger.Warn("detector call failed", "error", err)
				writeJSON(w, http.StatusBadGateway, map[string]any{"error": "emotion detector unavailable"})
				return
			}
		} else {
			raw = simulator.Detect(string(image))
		}

		mood := classifier.Classify(req.Context(), raw)
		record(req.Context(), mood)
		writeJSON(w, http.StatusOK, mood)
	})

	r.Post("/v1/mood/simulate", func(w http.ResponseWriter, req *http.Request) {
		var in simulateRequest
		if err := decodeJSONBody(req, cfg.ReadBodyMaxByte, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		if strings.TrimSpace(in.Subject) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "subject is required"})
			return
		}

		raw := simulator.Detect(in.Subject)
		mood := classifier.Classify(req.Context(), raw)
		record(req.Context(), mood)
		writeJSON(w, http.StatusOK, map[string]any{"detected": raw, "mood": mood})
	})

	r.Post("/v1/catalog/reload", func(w http.ResponseWriter, req *http.Request) {
		provider.ClearCache()
		profiles := provider.Profiles(req.Context())
		logger.Info("catalog reloaded", "profiles", len(profiles))
		writeJSON(w, http.StatusOK, map[string]any{"profiles": len(profiles)})
	})

	r.Get("/v1/mood/history", func(w http.ResponseWriter, req *http.Request) {
		if store == nil {
			writeJSON(w, http.StatusOK, map[string]any{"classifications": []domain.ClassifiedMood{}})
			return
		}
		limit := 20
		if v := req.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 200 {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "limit should be in [1, 200]"})
				return
			}
			limit = n
		}
		history, err := store.RecentClassifications(req.Context(), limit)
		if err != nil {
			logger.Error("load history failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"classifications": history})
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("mood server started", "addr", cfg.HTTPAddr,
			"catalog", catalogSource(cfg.CatalogPath),
			"detector", detectorClient.Enabled(),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func decodeJSONBody(req *http.Request, maxBytes int64, out any) error {
	defer req.Body.Close()
	data, err := io.ReadAll(io.LimitReader(req.Body, maxBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return fmt.Errorf("request body too large")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return fmt.Errorf("invalid json: multiple JSON values")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
