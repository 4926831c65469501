package models

import "time"

// Collection names, shared by every store backend
const (
	CollectionHelp    = "help"
	CollectionContact = "contact"
)

// HelpRequest is a stored "help" form submission. Records are append-only.
type HelpRequest struct {
	ID          string    `json:"_id" bson:"-" firestore:"-"`
	Name        string    `json:"Name" bson:"Name" firestore:"Name"`
	Phone       string    `json:"Phone" bson:"Phone" firestore:"Phone"`
	Email       string    `json:"Email" bson:"Email" firestore:"Email"`
	CompanyName string    `json:"CompanyName" bson:"CompanyName" firestore:"CompanyName"`
	Query       string    `json:"Query" bson:"Query" firestore:"Query"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

// ContactRequest is a stored "contact" form submission. The message body is
// always kept in Message, even when the client sent it as Query.
type ContactRequest struct {
	ID        string    `json:"_id" bson:"-" firestore:"-"`
	Name      string    `json:"Name" bson:"Name" firestore:"Name"`
	Email     string    `json:"Email" bson:"Email" firestore:"Email"`
	Phone     string    `json:"Phone" bson:"Phone" firestore:"Phone"`
	Subject   string    `json:"Subject" bson:"Subject" firestore:"Subject"`
	Message   string    `json:"Message" bson:"Message" firestore:"Message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}
