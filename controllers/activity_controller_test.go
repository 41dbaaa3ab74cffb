package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sprintplanner/models"
	"sprintplanner/planner"
)

// stubStore embeds the interface and overrides only what a test touches.
type stubStore struct {
	planner.Store
	activity *models.Activity
}

func (s *stubStore) ActivityByID(ctx context.Context, id uint) (*models.Activity, error) {
	return s.activity, nil
}

func (s *stubStore) ActivitiesForUser(ctx context.Context, userID uint) ([]models.Activity, error) {
	if s.activity == nil {
		return nil, nil
	}
	return []models.Activity{*s.activity}, nil
}

func (s *stubStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	activity.ID = 1
	s.activity = activity
	return nil
}

func (s *stubStore) UpdateActivityCategory(ctx context.Context, id uint, category models.TaskCategory) error {
	s.activity.Category = category
	return nil
}

type stubDirectory struct {
	planner.Directory
}

func newActivityApp(store planner.Store) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	service := planner.NewService(store, &stubDirectory{}, logger)
	ac := NewActivityController(service, logger)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Get("/api/activities", ac.GetActivities)
	app.Post("/api/activities", ac.CreateActivity)
	app.Patch("/api/activities/:id", ac.UpdateActivityCategory)
	app.Delete("/api/activities/:id", ac.DeleteActivity)
	return app
}

func TestCreateActivityEndpoint(t *testing.T) {
	store := &stubStore{}
	app := newActivityApp(store)

	req := httptest.NewRequest("POST", "/api/activities", strings.NewReader(`{"title":"stretch","category":"Required"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusCreated)
	}
	if store.activity == nil || store.activity.Title != "stretch" {
		t.Errorf("stored activity = %+v", store.activity)
	}
}

func TestCreateActivityEndpointMissingFields(t *testing.T) {
	app := newActivityApp(&stubStore{})

	req := httptest.NewRequest("POST", "/api/activities", strings.NewReader(`{"title":"stretch"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}

// The PATCH body is the category alone as a JSON string.
func TestUpdateActivityCategoryEndpoint(t *testing.T) {
	activity := &models.Activity{Title: "stretch", Category: models.CategoryRequired, UserID: 1}
	activity.ID = 4
	store := &stubStore{activity: activity}
	app := newActivityApp(store)

	req := httptest.NewRequest("PATCH", "/api/activities/4", strings.NewReader(`"Finished"`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var got models.Activity
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Category != models.CategoryFinished {
		t.Errorf("category = %v, want %v", got.Category, models.CategoryFinished)
	}
}

func TestUpdateActivityCategoryEndpointOtherOwner(t *testing.T) {
	activity := &models.Activity{Title: "stretch", Category: models.CategoryRequired, UserID: 9}
	activity.ID = 4
	app := newActivityApp(&stubStore{activity: activity})

	req := httptest.NewRequest("PATCH", "/api/activities/4", strings.NewReader(`"Finished"`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusNotFound)
	}
}

func TestUpdateActivityCategoryEndpointBadID(t *testing.T) {
	app := newActivityApp(&stubStore{})

	req := httptest.NewRequest("PATCH", "/api/activities/abc", strings.NewReader(`"Finished"`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}
