package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"antigravity-pm/internal/model"
	"antigravity-pm/internal/repository"
)

// InviteService creates accounts for invited members and emails them their
// temporary credentials.
type InviteService struct {
	userRepo *repository.UserRepository
	mailer   EmailSender
	baseURL  string
}

func NewInviteService(userRepo *repository.UserRepository, mailer EmailSender, baseURL string) *InviteService {
	return &InviteService{userRepo: userRepo, mailer: mailer, baseURL: baseURL}
}

// Invite registers the email with a generated password (when not already
// registered) and sends the credential email. The email send is the
// authoritative step: an SMTP failure fails the invite.
func (s *InviteService) Invite(ctx context.Context, email, role string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if role == "" {
		role = "Member"
	}

	password, err := tempPassword(10)
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}

	_, err = s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == gorm.ErrRecordNotFound:
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user := model.User{
			Email:        email,
			FullName:     "Invited Member",
			PasswordHash: string(hash),
			Role:         model.RoleTeamMember,
		}
		if err := s.userRepo.Create(ctx, &user); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("find user: %w", err)
	}

	body := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
    <h2 style="color: #4f46e5;">Antigravity PM</h2>
    <p>Hello,</p>
    <p>You have been invited to join the <strong>Antigravity</strong> workspace as a <strong>%s</strong>.</p>
    <p>We have created an account for you.</p>
    <div style="background-color: #f8fafc; padding: 15px; border-radius: 8px; margin: 20px 0;">
      <p style="margin: 0; font-weight: bold;">Login Credentials:</p>
      <p style="margin: 5px 0;">Email: %s</p>
      <p style="margin: 5px 0;">Password: <strong>%s</strong></p>
    </div>
    <p>Click the button below to sign in:</p>
    <a href="%s/auth/login" style="background-color: #4f46e5; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Login Now</a>
    <p style="margin-top: 20px; font-size: 12px; color: #888;">Please change your password after logging in.</p>
  </div>
</body>
</html>`, role, email, password, s.baseURL)

	return s.mailer.Send(email, "You're invited to join Antigravity PM", body)
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func tempPassword(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
