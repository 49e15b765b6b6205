package handler

import (
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/service"
)

func newCommentApp(svc CommentAPI) *fiber.App {
	h := NewCommentHandler(svc)
	app := fiber.New()
	app.Get("/api/comments/:videoId", h.ListByVideo)
	app.Post("/api/comments", requireAuth(), h.Add)
	app.Put("/api/comments/:commentId", requireAuth(), h.Update)
	app.Delete("/api/comments/:commentId", requireAuth(), h.Delete)
	return app
}

func TestCommentAdd(t *testing.T) {
	author := uuid.New()
	app := newCommentApp(&stubComments{})

	resp := doRequest(t, app, "POST", "/api/comments", `{"videoId":"x","message":"nice"}`, bearer(t, author))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	body := decode(t, resp)
	if body["message"] != "Comment added successfully" {
		t.Errorf("message = %v", body["message"])
	}
	comment, _ := body["comment"].(map[string]any)
	if comment["message"] != "nice" {
		t.Errorf("comment = %v", comment)
	}

	missing := newCommentApp(&stubComments{stubOwned{err: svcErr(service.KindValidation, "Video ID and comment text are required")}})
	resp = doRequest(t, missing, "POST", "/api/comments", `{}`, bearer(t, author))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decode(t, resp); body["message"] != "Video ID and comment text are required" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestCommentList(t *testing.T) {
	resp := doRequest(t, newCommentApp(&stubComments{}), "GET", "/api/comments/"+uuid.NewString(), "", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if _, ok := decode(t, resp)["comments"]; !ok {
		t.Error("response missing comments key")
	}
}

func TestCommentUpdateAndDelete(t *testing.T) {
	author := uuid.New()
	svc := &stubComments{stubOwned{owner: author, exists: true}}
	app := newCommentApp(svc)
	id := uuid.NewString()

	if resp := doRequest(t, app, "PUT", "/api/comments/"+id, `{`, bearer(t, uuid.New())); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("stranger status = %d, want 403", resp.StatusCode)
	}
	resp := doRequest(t, app, "PUT", "/api/comments/"+id, `{"message":"edited"}`, bearer(t, author))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("author status = %d, want 200", resp.StatusCode)
	}
	if body := decode(t, resp); body["message"] != "Comment updated successfully" {
		t.Errorf("message = %v", body["message"])
	}

	if resp := doRequest(t, app, "DELETE", "/api/comments/"+id, "", bearer(t, author)); resp.StatusCode != fiber.StatusOK {
		t.Errorf("delete status = %d, want 200", resp.StatusCode)
	}
}
