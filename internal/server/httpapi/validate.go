package httpapi

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^(\+91)?[0-9]{10}$`)
)

type signupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Location    string `json:"location"`
	PhoneNumber string `json:"phoneNumber"`
	FarmSize    string `json:"farmSize"`
	JoinedDate  string `json:"joinedDate"`
}

func validateSignup(req signupRequest) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(req.Email) {
		errs["email"] = "Invalid email format"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	} else if len(req.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if req.PhoneNumber != "" && !phonePattern.MatchString(req.PhoneNumber) {
		errs["phoneNumber"] = "Invalid Indian phone number"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type feedbackRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

func validateFeedback(req feedbackRequest) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(req.Email) {
		errs["email"] = "Invalid email format"
	}
	if req.Rating < 1 || req.Rating > 5 {
		errs["rating"] = "Rating must be between 1 and 5"
	}
	if strings.TrimSpace(req.Message) == "" {
		errs["message"] = "Message is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
