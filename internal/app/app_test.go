package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type fakeService struct {
	name     string
	startErr error
	stopErr  error
	stopped  bool
	order    *[]string
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-ctx.Done()
	return nil
}

func (f *fakeService) Stop(_ context.Context) error {
	f.stopped = true
	if f.order != nil {
		*f.order = append(*f.order, f.name)
	}
	return f.stopErr
}

func TestRunnerStopsAllOnFailure(t *testing.T) {
	healthy := &fakeService{name: "healthy"}
	broken := &fakeService{name: "broken", startErr: errors.New("boom")}
	err := NewRunner(healthy, broken).Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("run want boom got %v", err)
	}
	if !healthy.stopped || !broken.stopped {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerCancelIsCleanExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &fakeService{name: "svc"}
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := NewRunner(svc).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled run want nil got %v", err)
	}
	if !svc.stopped {
		t.Fatalf("service should be stopped")
	}
}

func TestRunnerStopsInReverseOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var order []string
	services := []Service{
		&fakeService{name: "http", order: &order},
		&fakeService{name: "worker", order: &order},
		&fakeService{name: "scheduler", order: &order},
	}
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := NewRunner(services...).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("run want nil got %v", err)
	}
	if strings.Join(order, ",") != "scheduler,worker,http" {
		t.Fatalf("stop order want scheduler,worker,http got %v", order)
	}
}

func TestRunnerReportsStopFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stuck := &fakeService{name: "worker", stopErr: errors.New("drain timeout")}
	healthy := &fakeService{name: "http"}
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := NewRunner(healthy, stuck).Run(ctx, time.Second, nil)
	if err == nil || !strings.Contains(err.Error(), "stop worker: drain timeout") {
		t.Fatalf("run want stop error got %v", err)
	}
	if !healthy.stopped {
		t.Fatalf("remaining services should still be stopped")
	}
}

func TestRunnerRejectsNilService(t *testing.T) {
	if err := NewRunner(&fakeService{name: "http"}, nil).Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("nil service should fail")
	}
}

func TestHTTPServiceServesAndStops(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	svc := NewHTTPService(config.ServerConfig{Host: "127.0.0.1", Port: "0"}, handler)
	if svc.Addr() != "127.0.0.1:0" {
		t.Fatalf("configured addr want 127.0.0.1:0 got %s", svc.Addr())
	}

	done := make(chan error, 1)
	go func() { done <- svc.Start(context.Background()) }()
	select {
	case <-svc.Ready():
	case err := <-done:
		t.Fatalf("start failed: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("http service not ready")
	}

	resp, err := http.Get("http://" + svc.Addr() + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("body want ok got %s", string(body))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := svc.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("start after stop want nil got %v", err)
	}
}

func TestValidMode(t *testing.T) {
	for _, mode := range []string{ModeAll, ModeAPI, ModeWorker} {
		if !ValidMode(mode) {
			t.Fatalf("mode %s should be valid", mode)
		}
	}
	if ValidMode("cli") {
		t.Fatalf("cli should be invalid")
	}
	if normalizeOptions(Options{}).Mode != ModeAll {
		t.Fatalf("default mode should be all")
	}
}

func TestBuildServicesByMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:app_%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		Server:    config.ServerConfig{Host: "127.0.0.1", Port: "0", Mode: "debug"},
		JWT:       config.JWTConfig{SecretKey: "app-test-secret", ExpireHours: 1},
		IDGen:     config.IDGenConfig{MinLength: 10},
		Scheduler: config.SchedulerConfig{Enabled: true},
	}
	container, err := provider.NewContainerWithDB(cfg, db)
	if err != nil {
		t.Fatalf("init container failed: %v", err)
	}

	runner, err := buildServices(cfg, ModeAPI, container)
	if err != nil || len(runner.services) != 1 || runner.services[0].Name() != "http" {
		t.Fatalf("api mode want only http, got %v", err)
	}

	runner, err = buildServices(cfg, ModeAll, container)
	if err != nil {
		t.Fatalf("all mode failed: %v", err)
	}
	names := make([]string, 0, len(runner.services))
	for _, svc := range runner.services {
		names = append(names, svc.Name())
	}
	if strings.Join(names, ",") != "http,scheduler" {
		t.Fatalf("all mode without queue want http,scheduler got %v", names)
	}

	if _, err := buildServices(cfg, ModeWorker, container); err == nil {
		t.Fatalf("worker mode with disabled queue should fail")
	}
}
