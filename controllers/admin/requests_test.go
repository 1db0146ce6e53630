package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func patchJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestActionRequest_InvalidID(t *testing.T) {
	app := fiber.New()
	app.Patch("/admin/provider-requests/:id", ActionRequest)

	resp := patchJSON(t, app, "/admin/provider-requests/abc", map[string]string{"action": "approve"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", resp.StatusCode)
	}
}

func TestActionRequest_InvalidAction(t *testing.T) {
	app := fiber.New()
	app.Patch("/admin/provider-requests/:id", ActionRequest)

	resp := patchJSON(t, app, "/admin/provider-requests/7", map[string]string{"action": "escalate"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown action, got %d", resp.StatusCode)
	}
}
