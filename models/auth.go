package models

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	FullName      string `json:"full_name" validate:"required"`
	Qualification string `json:"qualification,omitempty"`
	// DOB is sent as an ISO date (YYYY-MM-DD).
	DOB string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Message is the generic {"msg": "..."} acknowledgement returned by mutating endpoints.
type Message struct {
	Msg string `json:"msg"`
}

type Created struct {
	ID int64 `json:"id"`
}

type ExportJob struct {
	JobID string `json:"job_id"`
}
