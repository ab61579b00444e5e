package domain

import "go.mongodb.org/mongo-driver/v2/bson"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserFields is the client-writable part of a user record.
// Users hold no credentials; authentication is delegated to the identity provider.
type UserFields struct {
	Email       string `json:"email" bson:"email" validate:"required,email"`
	DisplayName string `json:"displayName" bson:"displayName" validate:"required"`
	Role        string `json:"role" bson:"role" validate:"required,oneof=user admin"`
}

// User is a stored user document.
type User struct {
	ID         bson.ObjectID `json:"id" bson:"_id"`
	UserFields `bson:",inline"`
	Timestamps `bson:",inline"`
}
