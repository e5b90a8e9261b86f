package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/niksmo/bloomora/internal/core/service"
)

// GET  v1/home (200 OK)
// GET  v1/care/tasks?due=today (200 OK)
// POST v1/care/tasks/{id}/complete (200 OK, 404)
// GET  v1/blog, v1/blog/{id} (200 OK, 404)
// GET  v1/quiz, POST v1/quiz JSON {"answers" {"1": "Bright", ...}} (200 OK, 400, 422)
// GET  v1/admin/sales (200 OK, 503)

type ContentHandler struct {
	catalog service.Catalog
	care    *service.Care
	blog    service.Blog
	quiz    service.Quiz
	promos  []string
}

func RegisterContent(
	mux *http.ServeMux,
	catalog service.Catalog,
	care *service.Care,
	blog service.Blog,
	quiz service.Quiz,
	promos []string,
) {
	h := ContentHandler{catalog, care, blog, quiz, slices.Clone(promos)}
	mux.HandleFunc("GET /v1/home", h.GetHome)
	mux.HandleFunc("GET /v1/care/tasks", h.GetTasks)
	mux.HandleFunc("POST /v1/care/tasks/{id}/complete", h.CompleteTask)
	mux.HandleFunc("GET /v1/blog", h.GetPosts)
	mux.HandleFunc("GET /v1/blog/{id}", h.GetPost)
	mux.HandleFunc("GET /v1/quiz", h.GetQuiz)
	mux.HandleFunc("POST /v1/quiz", h.AnswerQuiz)
}

func (h ContentHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.GetHome"
	writeJSON(w, slog.With("op", op), http.StatusOK, Home{
		NewArrivals: productsFromDomain(h.catalog.NewArrivals()),
		Posts:       postsFromDomain(h.blog.Posts()),
		Promos:      h.promos,
	})
}

func (h ContentHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.GetTasks"
	tasks := h.care.Tasks()
	if r.URL.Query().Get("due") == "today" {
		tasks = h.care.DueToday(time.Now())
	}
	out := make([]CareTask, len(tasks))
	for i, t := range tasks {
		out[i] = taskFromDomain(t)
	}
	writeJSON(w, slog.With("op", op), http.StatusOK, out)
}

func (h ContentHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.CompleteTask"
	log := slog.With("op", op)

	t, err := h.care.Complete(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, taskFromDomain(t))
}

func (h ContentHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.GetPosts"
	writeJSON(w, slog.With("op", op), http.StatusOK,
		postsFromDomain(h.blog.Posts()))
}

func (h ContentHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.GetPost"
	log := slog.With("op", op)

	p, err := h.blog.Post(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, BlogPost(p))
}

func (h ContentHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.GetQuiz"
	writeJSON(w, slog.With("op", op), http.StatusOK,
		questionsFromDomain(h.quiz.Questions()))
}

func (h ContentHandler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	const op = "ContentHandler.AnswerQuiz"
	log := slog.With("op", op)

	var req QuizAnswers
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	res, err := h.quiz.Result(req.Answers)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, QuizResult{
		Persona:     res.Persona,
		Recommended: productsFromDomain(res.Recommended),
	})
}

type SalesReporter interface {
	SalesReport(context.Context) ([]domain.ProductSales, error)
}

type AdminHandler struct {
	reporter SalesReporter
}

func RegisterAdmin(mux *http.ServeMux, reporter SalesReporter) {
	h := AdminHandler{reporter}
	mux.HandleFunc("GET /v1/admin/sales", h.GetSales)
}

func (h AdminHandler) GetSales(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetSales"
	log := slog.With("op", op)

	sales, err := h.reporter.SalesReport(r.Context())
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	out := make([]ProductSales, len(sales))
	for i, s := range sales {
		out[i] = ProductSales(s)
	}
	writeJSON(w, log, http.StatusOK, out)
}
