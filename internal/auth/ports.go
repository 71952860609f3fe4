package auth

import "congress-api/internal/logs"

type UserServicePort interface {
	CreateUser(user User) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUserByID(id int) (*User, error)
	GetAllUsers() ([]User, error)
	UpdateUser(id int, input UserInput) (*User, error)
	UpdateProfile(id int, input ProfileInput) (*User, error)
	DeleteUser(id int) error
	SendOTP(email string) (*User, string, error)
	ResetPassword(email, code, newPassword string) (*User, error)
}

type LogServicePort interface {
	Log(entry logs.SystemLog, payload any) error
}

var _ UserServicePort = (*UserService)(nil)
var _ LogServicePort = (*logs.LogService)(nil)
