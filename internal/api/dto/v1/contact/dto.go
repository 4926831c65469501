package contact

import "github.com/osa911/formintake/internal/models"

// ContactRequest is the accepted body of POST /contact. Query is the legacy
// name of Message; a body carrying both must carry the same text in each.
type ContactRequest struct {
	Recaptcha string `json:"recaptcha"`
	Name      string `json:"Name" validate:"required,notblank,max=100"`
	Email     string `json:"Email" validate:"required,notblank,max=254"`
	Phone     string `json:"Phone" validate:"max=32"`
	Subject   string `json:"Subject" validate:"max=200"`
	Message   string `json:"Message" validate:"required_without=Query,max=5000"`
	Query     string `json:"Query" validate:"max=5000,alias_of=Message"`
}

// Body returns the message text, whichever field it arrived in
func (r *ContactRequest) Body() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Query
}

// ToModel copies the allow-listed fields into a storage record
func (r *ContactRequest) ToModel() *models.ContactRequest {
	return &models.ContactRequest{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Subject: r.Subject,
		Message: r.Body(),
	}
}

// ContactResponse is returned once the request is stored
type ContactResponse struct {
	Message    string                 `json:"message"`
	NewContact *models.ContactRequest `json:"newContact"`
}
