package help

import "github.com/osa911/formintake/internal/models"

// HelpRequest is the accepted body of POST /help. Any other key is rejected.
type HelpRequest struct {
	Recaptcha   string `json:"recaptcha"`
	Name        string `json:"Name" validate:"required,notblank,max=100"`
	Phone       string `json:"Phone" validate:"max=32"`
	Email       string `json:"Email" validate:"required,notblank,max=254"`
	CompanyName string `json:"CompanyName" validate:"max=200"`
	Query       string `json:"Query" validate:"required,notblank,max=5000"`
}

// ToModel copies the allow-listed fields into a storage record
func (r *HelpRequest) ToModel() *models.HelpRequest {
	return &models.HelpRequest{
		Name:        r.Name,
		Phone:       r.Phone,
		Email:       r.Email,
		CompanyName: r.CompanyName,
		Query:       r.Query,
	}
}

// HelpResponse is returned once the request is stored
type HelpResponse struct {
	Message string              `json:"message"`
	NewHelp *models.HelpRequest `json:"newHelp"`
}
