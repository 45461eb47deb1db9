package model

type IssueTokenPayload struct {
	Email string `json:"email" validate:"required,email"`
}

func (p *IssueTokenPayload) Validate() error {
	return validate.Struct(p)
}

type TokenResponse struct {
	Token string `json:"token"`
}
