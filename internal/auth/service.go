package auth

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"congress-api/config"
	"congress-api/internal/util"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already exists")
)

type UserService struct {
	DB  *gorm.DB
	CFG *config.Config
}

var sendMail = smtp.SendMail

func (s *UserService) CreateUser(user User) (*User, error) {
	if user.Role == "" {
		user.Role = "user"
	}

	if err := s.DB.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserService) GetUserByEmail(email string) (*User, error) {
	var user User
	result := s.DB.Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (s *UserService) GetUserByID(id int) (*User, error) {
	var user User
	result := s.DB.Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *UserService) GetAllUsers() ([]User, error) {
	var users []User
	result := s.DB.Order("created_at DESC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// UpdateUser applies an admin edit. Password is changed only when the
// input carries a non-blank one.
func (s *UserService) UpdateUser(id int, input UserInput) (*User, error) {
	var existing User
	if err := s.DB.Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var dup int64
	if err := s.DB.Model(&User{}).
		Where("(username = ? OR email = ?) AND id <> ?", input.Username, input.Email, id).
		Count(&dup).Error; err != nil {
		return nil, err
	}
	if dup > 0 {
		return nil, ErrDuplicateUser
	}

	updates := map[string]any{
		"username":   input.Username,
		"email":      input.Email,
		"role":       input.Role,
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"updated_at": time.Now(),
	}
	if strings.TrimSpace(input.Password) != "" {
		hashed, err := util.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}

	if err := s.DB.Model(&User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(id)
}

func (s *UserService) UpdateProfile(id int, input ProfileInput) (*User, error) {
	existing, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if strings.TrimSpace(input.Username) != "" {
		updates["username"] = input.Username
	}
	if strings.TrimSpace(input.Email) != "" {
		updates["email"] = input.Email
	}
	if strings.TrimSpace(input.FirstName) != "" {
		updates["first_name"] = input.FirstName
	}
	if strings.TrimSpace(input.LastName) != "" {
		updates["last_name"] = input.LastName
	}
	if strings.TrimSpace(input.Password) != "" {
		hashed, err := util.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}

	if err := s.DB.Model(&User{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return s.GetUserByID(id)
}

func (s *UserService) DeleteUser(id int) error {
	var existing User
	if err := s.DB.Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.DB.Delete(&existing).Error
}

func (s *UserService) SendOTP(email string) (*User, string, error) {
	var user User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", errors.New("user not found")
	}

	otp := fmt.Sprintf("%06d", util.RandomInt(100000, 999999))

	record := OTP{
		Email: email,
		Code:  otp,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return nil, "", err
	}

	from := s.CFG.GmailUser
	password := s.CFG.GmailPass
	to := []string{user.Email}
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	subject := "OTP to change password"
	body := fmt.Sprintf(
		"Hi there,\n\n"+
			"Your OTP to change the password is: %s\n\n"+
			"This code will expire in 10 minutes.\n\n"+
			"Thank you.",
		otp,
	)

	message := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s",
		user.Email,
		subject,
		body,
	))

	smtpAuth := smtp.PlainAuth("", from, password, smtpHost)

	if err := sendMail(smtpHost+":"+smtpPort, smtpAuth, from, to, message); err != nil {
		log.Printf("Error sending email to %s: %v\n", user.Email, err)
		return nil, "", errors.New("failed to send OTP email")
	}

	return &user, otp, nil
}

// ResetPassword verifies the latest OTP for the email and replaces the
// password. Codes older than 10 minutes are rejected.
func (s *UserService) ResetPassword(email, code, newPassword string) (*User, error) {
	var otp OTP
	if err := s.DB.Where("email = ? AND code = ?", email, code).
		Order("created_at desc").First(&otp).Error; err != nil {
		return nil, errors.New("invalid OTP")
	}

	var user User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.New("user not found")
	}

	if time.Since(otp.CreatedAt) > 10*time.Minute {
		return nil, errors.New("OTP expired")
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(&User{}).Where("email = ?", email).
		Update("password", hashed).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
