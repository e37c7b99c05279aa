package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/anjarmara/skinsight/internal/application/analysis"
	appauth "github.com/anjarmara/skinsight/internal/application/auth"
	domai "github.com/anjarmara/skinsight/internal/domain/ai"
	domain "github.com/anjarmara/skinsight/internal/domain/analysis"
	"github.com/anjarmara/skinsight/internal/domain/users"
	"github.com/anjarmara/skinsight/internal/middleware"
)

type Router struct {
	analysisSvc *appanalysis.Service
	authSvc     *appauth.Service
}

// NewRouter wires the API surface. authMW guards the /api/ingredients
// routes; auth endpoints themselves stay open. rateLimitMW runs after
// authMW on the ingredient routes so buckets key on the authenticated
// user, and on the auth routes where callers are keyed by address.
func NewRouter(analysisSvc *appanalysis.Service, authSvc *appauth.Service, authMW, rateLimitMW func(http.Handler) http.Handler) http.Handler {
	r := &Router{analysisSvc: analysisSvc, authSvc: authSvc}
	mux := chi.NewRouter()

	mux.Route("/api/auth", func(rt chi.Router) {
		if rateLimitMW != nil {
			rt.Use(rateLimitMW)
		}
		rt.Post("/signup", r.wrap(r.handleSignup))
		rt.Post("/login", r.wrap(r.handleLogin))
	})

	mux.Route("/api/ingredients", func(rt chi.Router) {
		if authMW != nil {
			rt.Use(authMW)
		}
		if rateLimitMW != nil {
			rt.Use(rateLimitMW)
		}
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/analyze-image", r.wrap(r.handleAnalyzeImage))
		rt.Get("/history", r.wrap(r.handleHistory))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks caller mistakes so wrap can answer 400 instead
// of 500.
type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error { return badRequestError{err: err} }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, users.ErrNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, users.ErrAlreadyExists):
			writeError(w, http.StatusConflict, err)
		case errors.Is(err, appauth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err)
		case errors.Is(err, appauth.ErrMissingFields),
			errors.Is(err, appanalysis.ErrEmptyIngredients):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, domai.ErrExtractionFailed):
			middleware.IncrementExtractionsFailed()
			writeError(w, http.StatusBadGateway, err)
		default:
			var br badRequestError
			if errors.As(err, &br) {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			writeError(w, http.StatusInternalServerError, err)
		}
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// analysisView is the serialized record shape returned by the API.
type analysisView struct {
	ID                    string  `json:"id"`
	Username              string  `json:"username"`
	IdentifiedIngredients string  `json:"identifiedIngredients"`
	SafetyAnalysis        string  `json:"safetyAnalysis"`
	SafetyScore           float64 `json:"safetyScore"`
	AnalysisDate          string  `json:"analysisDate"`
	ProductName           string  `json:"productName,omitempty"`
	ImageURL              string  `json:"imageUrl,omitempty"`
}

func toView(a *domain.Analysis) analysisView {
	return analysisView{
		ID:                    string(a.ID),
		Username:              a.Username,
		IdentifiedIngredients: a.Ingredients,
		SafetyAnalysis:        a.Result,
		SafetyScore:           a.SafetyScore,
		AnalysisDate:          a.CreatedAt.Format("2006-01-02 15:04:05"),
		ProductName:           a.ProductName,
		ImageURL:              a.ImageURL,
	}
}

// POST /api/auth/signup
func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}

	token, err := r.authSvc.Signup(req.Context(), body.Username, body.Password)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"token": token, "message": "User registered successfully"})
}

// POST /api/auth/login
func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}

	token, err := r.authSvc.Login(req.Context(), body.Username, body.Password)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"token": token, "message": "Login successful"})
}

// POST /api/ingredients/analyze
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	username := middleware.GetUsernameFromContext(req.Context())
	if username == "" {
		return users.ErrNotFound
	}

	var body struct {
		Ingredients string `json:"ingredients"`
		ProductName string `json:"productName"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}
	if err := middleware.ValidateIngredientsText(body.Ingredients); err != nil {
		return badRequest(err)
	}
	if err := middleware.ValidateProductName(body.ProductName); err != nil {
		return badRequest(err)
	}

	a, err := r.analysisSvc.Analyze(req.Context(), username, body.Ingredients, middleware.SanitizeString(body.ProductName))
	if err != nil {
		return err
	}

	recordAnalysisMetrics(a)
	return writeJSON(w, toView(a))
}

// POST /api/ingredients/analyze-image (multipart: image, productName)
func (r *Router) handleAnalyzeImage(w http.ResponseWriter, req *http.Request) error {
	username := middleware.GetUsernameFromContext(req.Context())
	if username == "" {
		return users.ErrNotFound
	}

	if err := req.ParseMultipartForm(middleware.MaxImageBytes); err != nil {
		return badRequest(fmt.Errorf("invalid multipart form: %w", err))
	}

	file, header, err := req.FormFile("image")
	if err != nil {
		return badRequest(fmt.Errorf("image file is required"))
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := middleware.ValidateImageContentType(contentType); err != nil {
		return badRequest(err)
	}

	data, err := io.ReadAll(io.LimitReader(file, middleware.MaxImageBytes+1))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return badRequest(fmt.Errorf("image file is empty"))
	}
	if len(data) > middleware.MaxImageBytes {
		return badRequest(fmt.Errorf("image too large (max %d bytes)", middleware.MaxImageBytes))
	}

	productName := middleware.SanitizeString(req.FormValue("productName"))
	if err := middleware.ValidateProductName(productName); err != nil {
		return badRequest(err)
	}

	a, err := r.analysisSvc.AnalyzeImage(req.Context(), username, data, contentType, productName)
	if err != nil {
		return err
	}

	recordAnalysisMetrics(a)
	return writeJSON(w, toView(a))
}

// GET /api/ingredients/history
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	username := middleware.GetUsernameFromContext(req.Context())
	if username == "" {
		return users.ErrNotFound
	}

	list, err := r.analysisSvc.History(req.Context(), username)
	if err != nil {
		return err
	}

	views := make([]analysisView, 0, len(list))
	for _, a := range list {
		views = append(views, toView(a))
	}
	return writeJSON(w, views)
}

func recordAnalysisMetrics(a *domain.Analysis) {
	middleware.IncrementAnalyses()
	var result domain.Result
	if err := json.Unmarshal([]byte(a.Result), &result); err == nil && domain.IsFallback(result) {
		middleware.IncrementAnalysesFallback()
	}
}
