// Package api implements the HTTP JSON client for the Krishi Mitre backend.
//
// Authentication endpoints return the decoded response body as an untyped
// Envelope: backends in the wild disagree on the exact shape (token vs
// accessToken, user vs userInfo vs a flat DTO), and the session layer owns
// the strategy chain that interprets it. Feature endpoints have stable
// shapes and are typed.
package api

import (
	"context"
	"encoding/json"
	"io"
)

// Envelope is a decoded 2xx JSON response body from an auth endpoint.
type Envelope map[string]any

// SignupRequest is the payload for POST /farmer/signup. Name, Email and
// Password are required; the rest is optional profile data.
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Location    string `json:"location,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	FarmSize    string `json:"farmSize,omitempty"`
	JoinedDate  string `json:"joinedDate,omitempty"`
}

// CropRequest carries soil and climate readings for crop recommendation.
type CropRequest struct {
	N           float64 `json:"N"`
	P           float64 `json:"P"`
	K           float64 `json:"K"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// CropScore is one recommended crop with the model's confidence.
type CropScore struct {
	Crop       string  `json:"crop"`
	Confidence float64 `json:"confidence"`
}

// CropResponse is the recommendation result passed through from the ML
// service.
type CropResponse struct {
	Status   string      `json:"status"`
	TopCrops []CropScore `json:"top_3_crops"`
}

// FeedbackRequest is the payload for POST /feedback.
type FeedbackRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// FeedbackSnippet is one of the most recent feedback entries shown on the
// analytics dashboard.
type FeedbackSnippet struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// TrendPoint is a per-weekday feedback count.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// FeedbackStats is the analytics document served by the backend.
type FeedbackStats struct {
	AverageRating      float64           `json:"averageRating"`
	TotalFeedback      int               `json:"totalFeedback"`
	RatingDistribution map[string]int    `json:"ratingDistribution"`
	LatestFeedback     []FeedbackSnippet `json:"latestFeedback"`
	TrendData          []TrendPoint      `json:"trendData"`
}

// Dashboard is the farmer profile card.
type Dashboard struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Location    string `json:"location"`
	JoinedDate  string `json:"joinedDate"`
	PhoneNumber string `json:"phoneNumber"`
	FarmSize    string `json:"farmSize"`
}

type Client interface {
	Login(ctx context.Context, email, password string) (Envelope, error)
	Signup(ctx context.Context, req SignupRequest) (Envelope, error)
	UpdateProfile(ctx context.Context, token string, fields map[string]any) (Envelope, error)
	DetectDisease(ctx context.Context, filename string, image io.Reader) (json.RawMessage, error)
	RecommendCrop(ctx context.Context, req CropRequest) (*CropResponse, error)
	SubmitFeedback(ctx context.Context, req FeedbackRequest) error
	FeedbackAnalytics(ctx context.Context) (*FeedbackStats, error)
	Dashboard(ctx context.Context, email string) (*Dashboard, error)
}
