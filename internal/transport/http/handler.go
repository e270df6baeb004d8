package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quiz-builder-service/internal/app"
	"quiz-builder-service/internal/domain"
)

// Handler exposes the quiz authoring and scoring use cases over REST.
// Responses share a {status, message, data} envelope.
type Handler struct {
	service *app.QuizService
}

func NewHandler(service *app.QuizService) *Handler {
	return &Handler{service: service}
}

// Register mounts the API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/create-quiz", h.createQuiz)
	mux.HandleFunc("POST /api/{quizId}/add-question", h.addQuestion)
	mux.HandleFunc("POST /api/{quizId}/submit-answer", h.submitAnswers)
	mux.HandleFunc("GET /api/quizzes", h.listQuizzes)
	mux.HandleFunc("GET /api/{quizId}/questions", h.getQuestions)
}

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Status: status, Message: message, Data: data}); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError maps domain signals onto HTTP statuses. Unexpected failures
// are logged and reported generically without internal detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, "quiz not found", nil)
	case domain.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
	default:
		log.Printf("server error: %v", err)
		writeJSON(w, http.StatusInternalServerError, "server error", nil)
	}
}

func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	quiz, err := h.service.CreateQuiz(r.Context(), body.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "quiz created successfully", quiz.ID)
}

func (h *Handler) addQuestion(w http.ResponseWriter, r *http.Request) {
	var payload domain.QuestionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	question, err := h.service.AddQuestion(r.Context(), r.PathValue("quizId"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "question added", question)
}

// questionView strips correct-answer data; clients fetching questions must
// never see which options are correct.
type questionView struct {
	ID      string              `json:"id"`
	Text    string              `json:"text"`
	Type    domain.QuestionType `json:"type"`
	Options []optionView        `json:"options,omitempty"`
}

type optionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (h *Handler) getQuestions(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.LoadQuiz(r.Context(), r.PathValue("quizId"))
	if err != nil {
		writeError(w, err)
		return
	}

	questions := make([]questionView, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		view := questionView{ID: q.ID, Text: q.Text, Type: q.Type}
		if q.Type != domain.QuestionText {
			view.Options = make([]optionView, 0, len(q.Options))
			for _, opt := range q.Options {
				view.Options = append(view.Options, optionView{ID: opt.ID, Text: opt.Text})
			}
		}
		questions = append(questions, view)
	}
	writeJSON(w, http.StatusOK, "questions fetched successfully", questions)
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListQuizzes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "quizzes fetched successfully", list)
}

func (h *Handler) submitAnswers(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Answers []domain.Answer `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if body.Answers == nil {
		writeJSON(w, http.StatusBadRequest, "answers array required", nil)
		return
	}

	result, err := h.service.Score(r.Context(), r.PathValue("quizId"), body.Answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "answers submitted successfully", result)
}
