package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"smartscrape/internal/config"
	"smartscrape/internal/crawler"
	"smartscrape/internal/ioformats"
	"smartscrape/internal/scraper"
	"smartscrape/internal/store"
)

type scrapeReq struct {
	URL    string `json:"url"`
	Format string `json:"format,omitempty"`
}

type jobsReq struct {
	URL      string `json:"url"`
	MaxPages int    `json:"max_pages,omitempty"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer zap.L().Sync() //nolint:errcheck

	client := crawler.NewHTTPClient(
		cfg.Fetch.Timeout(),
		cfg.Fetch.DialTimeout(),
		cfg.Fetch.SizeCapBytes,
		cfg.Fetch.RatePerSec,
	)
	defer client.Close()
	s := scraper.New(client)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		zap.L().Fatal("open store", zap.Error(err))
	}
	defer st.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      logRequest(newMux(s, st, cfg.Scrape.MaxPages)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zap.L().Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	zap.L().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func newMux(s *scraper.Scraper, st *store.Store, defaultMaxPages int) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// POST /scrape  { "url": "https://...", "format": "json"|"csv" }
	mux.HandleFunc("POST /scrape", func(w http.ResponseWriter, r *http.Request) {
		var req scrapeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		runID, err := st.Create(ctx, req.URL)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		result, err := s.Scrape(ctx, req.URL)
		if err != nil {
			if ferr := st.Fail(ctx, runID, err); ferr != nil {
				zap.L().Warn("record failed run", zap.Error(ferr))
			}
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		if err := st.Finish(ctx, runID, result); err != nil {
			zap.L().Warn("record finished run", zap.Error(err))
		}

		if req.Format == "csv" {
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", `attachment; filename="scraped_data.csv"`)
			if err := ioformats.WriteCSV(w, result); err != nil {
				zap.L().Error("write csv", zap.Error(err))
			}
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	// POST /jobs  { "url": "https://...", "max_pages": 3 }
	mux.HandleFunc("POST /jobs", func(w http.ResponseWriter, r *http.Request) {
		var req jobsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		maxPages := req.MaxPages
		if maxPages <= 0 {
			maxPages = defaultMaxPages
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
		defer cancel()

		jobs, err := s.ScrapeJobs(ctx, req.URL, maxPages)
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
	})

	// GET /scrapes?limit=20
	mux.HandleFunc("GET /scrapes", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		runs, err := st.List(r.Context(), limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, runs)
	})

	// GET /scrapes/{id}
	mux.HandleFunc("GET /scrapes/{id}", func(w http.ResponseWriter, r *http.Request) {
		run, err := st.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, run)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}
