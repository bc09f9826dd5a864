package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatusWithoutChecksIsOK(t *testing.T) {
	report := NewService().Status(context.Background())
	if !report.OK || report.Checks != nil || report.Info != nil {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestStatusReportsFailingCheck(t *testing.T) {
	svc := NewService()
	svc.AddCheck("database", func(context.Context) error { return nil })
	svc.AddCheck("redis", func(context.Context) error { return errors.New("connection refused") })
	svc.AddCheck("ignored", nil)
	svc.SetInfo("taxonomy", "default")

	report := svc.Status(context.Background())
	if report.OK {
		t.Fatalf("expected not ok")
	}
	if report.Checks["database"] != "ok" || report.Checks["redis"] != "connection refused" {
		t.Fatalf("unexpected checks: %+v", report.Checks)
	}
	if _, ok := report.Checks["ignored"]; ok {
		t.Fatalf("nil check should not be registered")
	}
	if report.Info["taxonomy"] != "default" {
		t.Fatalf("unexpected info: %+v", report.Info)
	}
}

func TestStatusChecksSeeDeadline(t *testing.T) {
	svc := NewService()
	svc.AddCheck("slow", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			return errors.New("no deadline")
		}
		return nil
	})
	if report := svc.Status(context.Background()); !report.OK {
		t.Fatalf("expected deadline to be set: %+v", report.Checks)
	}
}
