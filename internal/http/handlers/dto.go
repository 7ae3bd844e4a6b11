package handlers

import (
	"time"

	"github.com/pribylovaa/agrilearn-network/internal/models"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	ID          string     `json:"id"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

type sessionResponse struct {
	User   userResponse   `json:"user"`
	Tokens tokensResponse `json:"tokens"`
}

type diseaseLogRequest struct {
	CropName      string `json:"cropName"`
	DiseaseName   string `json:"diseaseName"`
	Severity      string `json:"severity"`
	Region        string `json:"region"`
	DiagnosisDate string `json:"diagnosisDate,omitempty"`
}

type diseaseLogResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	CropName      string    `json:"cropName"`
	DiseaseName   string    `json:"diseaseName"`
	Severity      string    `json:"severity"`
	Region        string    `json:"region"`
	DiagnosisDate time.Time `json:"diagnosisDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

type photoPresignRequest struct {
	ContentType   string `json:"contentType"`
	ContentLength int64  `json:"contentLength"`
}

type photoPresignResponse struct {
	UploadURL       string            `json:"uploadUrl"`
	Key             string            `json:"key"`
	ExpiresIn       int64             `json:"expiresIn"`
	RequiredHeaders map[string]string `json:"requiredHeaders"`
}

type photoConfirmRequest struct {
	Key string `json:"key"`
}

type photoConfirmResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func tokensFrom(p *models.TokenPair) tokensResponse {
	return tokensResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}

func userFrom(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		FullName:    u.FullName,
		Email:       u.Email,
		Phone:       u.Phone,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func diseaseLogFrom(l models.DiseaseLog) diseaseLogResponse {
	return diseaseLogResponse{
		ID:            l.ID.String(),
		UserID:        l.UserID.String(),
		CropName:      l.CropName,
		DiseaseName:   l.DiseaseName,
		Severity:      string(l.Severity),
		Region:        l.Region,
		DiagnosisDate: l.DiagnosisDate,
		CreatedAt:     l.CreatedAt,
	}
}
