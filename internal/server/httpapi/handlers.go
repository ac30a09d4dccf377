package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/krishimitre/krishimitre/internal/logging"
	"github.com/krishimitre/krishimitre/internal/server/models"
	"github.com/krishimitre/krishimitre/internal/server/services"
)

// Service contracts the handlers depend on. The concrete services in the
// services package satisfy these; tests substitute fakes.
type FarmerService interface {
	Signup(ctx context.Context, form services.SignupForm) (*models.Farmer, string, error)
	Login(ctx context.Context, email, password string) (*models.Farmer, string, error)
	UpdateProfile(ctx context.Context, farmerID string, fields map[string]any) (*models.Farmer, error)
	Dashboard(ctx context.Context, email string) (*models.Farmer, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, form services.FeedbackForm) error
	Stats(ctx context.Context) (*services.FeedbackStats, error)
}

type MLService interface {
	RecommendCrop(ctx context.Context, payload []byte) (json.RawMessage, error)
	DetectDisease(ctx context.Context, filename string, image []byte) (json.RawMessage, error)
}

// maxImageSize caps disease-detection uploads (bytes).
const maxImageSize = 10 << 20

type Handler struct {
	farmers  FarmerService
	feedback FeedbackService
	ml       MLService
	logger   logging.Logger
}

func NewHandler(farmers FarmerService, feedback FeedbackService, ml MLService, logger logging.Logger) *Handler {
	return &Handler{
		farmers:  farmers,
		feedback: feedback,
		ml:       ml,
		logger:   logger.With("module", "httpapi"),
	}
}

// farmerDTO is the public projection of a farmer record. The password hash
// never appears in a response.
type farmerDTO struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Location    string `json:"location"`
	PhoneNumber string `json:"phoneNumber"`
	FarmSize    string `json:"farmSize"`
	JoinedDate  string `json:"joinedDate"`
}

func toDTO(f *models.Farmer) farmerDTO {
	return farmerDTO{
		Name:        f.Name,
		Email:       f.Email,
		Location:    f.Location,
		PhoneNumber: f.PhoneNumber,
		FarmSize:    f.FarmSize,
		JoinedDate:  f.JoinedDate,
	}
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateSignup(req); errs != nil {
		writeValidation(w, errs)
		return
	}

	farmer, token, err := h.farmers.Signup(r.Context(), services.SignupForm{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		FarmSize:    req.FarmSize,
		JoinedDate:  req.JoinedDate,
	})
	if err != nil {
		h.logger.Warn(r.Context(), "signup failed", "email", req.Email, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  toDTO(farmer),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	farmer, token, err := h.farmers.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toDTO(farmer),
	})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	farmer, err := h.farmers.UpdateProfile(r.Context(), farmerIDFromContext(r.Context()), fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toDTO(farmer)})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	farmer, err := h.farmers.Dashboard(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDTO(farmer))
}

func (h *Handler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateFeedback(req); errs != nil {
		writeValidation(w, errs)
		return
	}

	err := h.feedback.Submit(r.Context(), services.FeedbackForm{
		Name:     req.Name,
		Email:    req.Email,
		Rating:   req.Rating,
		Category: req.Category,
		Message:  req.Message,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Feedback submitted successfully")
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.feedback.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	latest := make([]map[string]any, 0, len(stats.Latest))
	for _, fb := range stats.Latest {
		latest = append(latest, map[string]any{
			"name":    fb.Name,
			"rating":  fb.Rating,
			"message": fb.Message,
			"time":    fb.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	trend := make([]map[string]any, 0, len(stats.Trend))
	for _, p := range stats.Trend {
		trend = append(trend, map[string]any{"date": p.Date, "count": p.Count})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"averageRating":      stats.AverageRating,
		"totalFeedback":      stats.TotalFeedback,
		"ratingDistribution": stats.RatingDistribution,
		"latestFeedback":     latest,
		"trendData":          trend,
	})
}

func (h *Handler) recommendCrop(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.ml.RecommendCrop(r.Context(), payload)
	if err != nil {
		h.logger.Warn(r.Context(), "crop recommendation failed", "error", err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(result)
}

func (h *Handler) detectDisease(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Image is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	result, err := h.ml.DetectDisease(r.Context(), header.Filename, image)
	if err != nil {
		h.logger.Warn(r.Context(), "disease detection failed", "error", err)
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(result)
}
